package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signserver/internal/models"
)

// buildOutput lays anchors out in the model's column-per-anchor format:
// rows cx, cy, w, h followed by one row per class score.
func buildOutput(anchors int, numClasses int, boxes []anchorBox) []float32 {
	output := make([]float32, (4+numClasses)*anchors)
	for _, b := range boxes {
		output[b.index] = b.cx
		output[anchors+b.index] = b.cy
		output[2*anchors+b.index] = b.w
		output[3*anchors+b.index] = b.h
		output[(4+b.class)*anchors+b.index] = b.score
	}
	return output
}

type anchorBox struct {
	index  int
	cx, cy float32
	w, h   float32
	class  int
	score  float32
}

func TestDecodeOutput_ThresholdAndBoxes(t *testing.T) {
	labels := []string{"green light", "red light", "stop"}
	const anchors = 100

	output := buildOutput(anchors, len(labels), []anchorBox{
		{index: 0, cx: 320, cy: 320, w: 100, h: 80, class: 2, score: 0.9},
		{index: 5, cx: 100, cy: 100, w: 40, h: 40, class: 1, score: 0.6},
		{index: 9, cx: 500, cy: 200, w: 60, h: 60, class: 0, score: 0.1}, // below threshold
	})

	detections := decodeOutput(output, labels, 640, 0.25)
	require.Len(t, detections, 2)

	first := detections[0]
	assert.Equal(t, 2, first.ClassID)
	assert.Equal(t, "stop", first.ClassName)
	assert.InDelta(t, 0.9, float64(first.Confidence), 0.0001)
	assert.InDelta(t, 270, float64(first.X1), 0.001)
	assert.InDelta(t, 280, float64(first.Y1), 0.001)
	assert.InDelta(t, 370, float64(first.X2), 0.001)
	assert.InDelta(t, 360, float64(first.Y2), 0.001)

	for _, d := range detections {
		assert.LessOrEqual(t, d.X1, d.X2)
		assert.LessOrEqual(t, d.Y1, d.Y2)
		assert.GreaterOrEqual(t, float64(d.Confidence), 0.0)
		assert.LessOrEqual(t, float64(d.Confidence), 1.0)
	}
}

func TestDecodeOutput_ClampsToInputBounds(t *testing.T) {
	labels := []string{"stop"}
	const anchors = 10

	// Box hangs over the left and bottom edges.
	output := buildOutput(anchors, len(labels), []anchorBox{
		{index: 0, cx: 10, cy: 630, w: 100, h: 100, class: 0, score: 0.8},
	})

	detections := decodeOutput(output, labels, 640, 0.25)
	require.Len(t, detections, 1)

	d := detections[0]
	assert.Equal(t, float32(0), d.X1)
	assert.Equal(t, float32(640), d.Y2)
	assert.LessOrEqual(t, d.X1, d.X2)
	assert.LessOrEqual(t, d.Y1, d.Y2)
}

func TestDecodeOutput_EmptyAndMalformed(t *testing.T) {
	labels := []string{"a", "b"}

	// Nothing above the threshold is a valid empty result.
	quiet := buildOutput(50, len(labels), nil)
	assert.Empty(t, decodeOutput(quiet, labels, 640, 0.25))

	// Output length not divisible by the row count.
	assert.Nil(t, decodeOutput(make([]float32, 13), labels, 640, 0.25))
}

func TestApplyGreedyNMS(t *testing.T) {
	overlapping := []models.Detection{
		{ClassID: 0, Confidence: 0.6, X1: 12, Y1: 12, X2: 108, Y2: 108},
		{ClassID: 0, Confidence: 0.9, X1: 10, Y1: 10, X2: 110, Y2: 110},
		{ClassID: 1, Confidence: 0.8, X1: 400, Y1: 400, X2: 500, Y2: 500},
	}

	kept := applyGreedyNMS(overlapping, 0.7)
	require.Len(t, kept, 2)

	// Highest score of the overlapping cluster survives; output is
	// ordered by descending confidence.
	assert.InDelta(t, 0.9, float64(kept[0].Confidence), 0.0001)
	assert.Equal(t, 1, kept[1].ClassID)
}

func TestApplyGreedyNMS_Empty(t *testing.T) {
	assert.Empty(t, applyGreedyNMS(nil, 0.7))
}

func TestIoU(t *testing.T) {
	a := models.Detection{X1: 0, Y1: 0, X2: 100, Y2: 100}
	b := models.Detection{X1: 50, Y1: 50, X2: 150, Y2: 150}
	c := models.Detection{X1: 200, Y1: 200, X2: 300, Y2: 300}

	assert.InDelta(t, 2500.0/17500.0, float64(iou(a, b)), 0.0001)
	assert.Equal(t, float32(0), iou(a, c))
	assert.InDelta(t, 1.0, float64(iou(a, a)), 0.0001)
}
