package models

// Detection represents a single recognized traffic sign in an analyzed image.
// Box coordinates are pixels in the resized (InputSize x InputSize) image.
type Detection struct {
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
	Confidence float32 `json:"confidence"`
	X1         float32 `json:"x1"`
	Y1         float32 `json:"y1"`
	X2         float32 `json:"x2"`
	Y2         float32 `json:"y2"`
}

// DetectionResult holds the ordered detections for one analyzed image.
// Aggregates are always recomputed from the slice so they cannot drift
// from the underlying detections.
type DetectionResult struct {
	Detections []Detection `json:"detections"`

	// Dimensions of the uploaded image before resizing.
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
}

// Count returns the number of detections.
func (r DetectionResult) Count() int {
	return len(r.Detections)
}

// Empty reports whether nothing was detected.
func (r DetectionResult) Empty() bool {
	return len(r.Detections) == 0
}

// MeanConfidence returns the average confidence, or 0 for an empty result.
func (r DetectionResult) MeanConfidence() float32 {
	if len(r.Detections) == 0 {
		return 0
	}
	var sum float32
	for _, d := range r.Detections {
		sum += d.Confidence
	}
	return sum / float32(len(r.Detections))
}

// UniqueClasses returns the number of distinct class ids, or 0 for an
// empty result.
func (r DetectionResult) UniqueClasses() int {
	seen := make(map[int]struct{}, len(r.Detections))
	for _, d := range r.Detections {
		seen[d.ClassID] = struct{}{}
	}
	return len(seen)
}
