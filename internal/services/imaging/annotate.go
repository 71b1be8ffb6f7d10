package imaging

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"signserver/internal/models"
)

// tierColors maps confidence tiers to the colors drawn on the image.
var tierColors = map[models.Tier]color.RGBA{
	models.TierHigh:   {R: 0, G: 180, B: 0, A: 0},
	models.TierMedium: {R: 255, G: 165, B: 0, A: 0},
	models.TierLow:    {R: 255, G: 0, B: 0, A: 0},
}

// Annotate draws the detections onto the image and returns it re-encoded
// as JPEG. The image is resized to size x size first; detection boxes are
// expressed in that coordinate space.
func Annotate(imageBytes []byte, detections []models.Detection, size int) ([]byte, error) {
	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: decoded image is empty", models.ErrDecode)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)

	for _, detection := range detections {
		tint := tierColors[models.TierFor(detection.Confidence)]
		rect := image.Rect(int(detection.X1), int(detection.Y1), int(detection.X2), int(detection.Y2))
		if err := gocv.Rectangle(&resized, rect, tint, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %v", err)
		}

		label := fmt.Sprintf("%s (%.2f)", detection.ClassName, detection.Confidence)
		pt := image.Pt(int(detection.X1), int(detection.Y1)-5)
		if pt.Y < 10 {
			pt.Y = int(detection.Y1) + 15
		}
		if err := gocv.PutText(&resized, label, pt, gocv.FontHersheySimplex, 0.5, tint, 1); err != nil {
			return nil, fmt.Errorf("failed to draw text: %v", err)
		}
	}

	buf, err := gocv.IMEncode(".jpg", resized)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	annotated := make([]byte, len(buf.GetBytes()))
	copy(annotated, buf.GetBytes())

	return annotated, nil
}
