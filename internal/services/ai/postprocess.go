package ai

import (
	"sort"

	"signserver/internal/models"
)

// decodeOutput converts the raw [4+classes, anchors] model output into
// detections. Each anchor is a column: cx, cy, w, h followed by per-class
// scores. Anchors scoring below confThreshold are dropped here, at the
// model boundary. Box coordinates stay in the resized input space, clamped
// to [0, inputSize] with x1<=x2 and y1<=y2.
func decodeOutput(output []float32, labels []string, inputSize int, confThreshold float32) []models.Detection {
	cols := 4 + len(labels)
	if cols <= 4 || len(output)%cols != 0 {
		return nil
	}
	anchors := len(output) / cols

	var detections []models.Detection
	limit := float32(inputSize)

	for i := 0; i < anchors; i++ {
		classID, score := 0, float32(0)
		for j := 0; j < len(labels); j++ {
			if s := output[(4+j)*anchors+i]; s > score {
				score = s
				classID = j
			}
		}
		if score < confThreshold {
			continue
		}

		xc := output[i]
		yc := output[anchors+i]
		w := output[2*anchors+i]
		h := output[3*anchors+i]

		x1 := clamp(xc-w/2, limit)
		y1 := clamp(yc-h/2, limit)
		x2 := clamp(xc+w/2, limit)
		y2 := clamp(yc+h/2, limit)
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		if y2 < y1 {
			y1, y2 = y2, y1
		}

		detections = append(detections, models.Detection{
			ClassID:    classID,
			ClassName:  labelFor(labels, classID),
			Confidence: score,
			X1:         x1,
			Y1:         y1,
			X2:         x2,
			Y2:         y2,
		})
	}

	return detections
}

func clamp(v, max float32) float32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// applyGreedyNMS suppresses overlapping boxes, keeping the highest scoring
// one of each overlapping cluster. The surviving detections come out in
// descending confidence order.
func applyGreedyNMS(detections []models.Detection, iouThreshold float32) []models.Detection {
	if len(detections) == 0 {
		return detections
	}

	sorted := make([]models.Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]models.Detection, 0, len(sorted))
	suppressed := make([]bool, len(sorted))

	for i := 0; i < len(sorted); i++ {
		if suppressed[i] {
			continue
		}
		kept = append(kept, sorted[i])
		for j := i + 1; j < len(sorted); j++ {
			if !suppressed[j] && iou(sorted[i], sorted[j]) > iouThreshold {
				suppressed[j] = true
			}
		}
	}

	return kept
}

// iou computes intersection over union of two boxes.
func iou(a, b models.Detection) float32 {
	interW := minf(a.X2, b.X2) - maxf(a.X1, b.X1)
	interH := minf(a.Y2, b.Y2) - maxf(a.Y1, b.Y1)
	if interW <= 0 || interH <= 0 {
		return 0
	}
	inter := interW * interH
	areaA := (a.X2 - a.X1) * (a.Y2 - a.Y1)
	areaB := (b.X2 - b.X1) * (b.Y2 - b.Y1)
	union := areaA + areaB - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
