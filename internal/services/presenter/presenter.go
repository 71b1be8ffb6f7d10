package presenter

import (
	"fmt"

	"signserver/internal/models"
)

// DetectionPanel is the render description of one detection: everything
// the page needs to draw an expandable panel with a confidence bar.
type DetectionPanel struct {
	Index        int     `json:"index"`
	Title        string  `json:"title"`
	ClassName    string  `json:"class_name"`
	Confidence   float32 `json:"confidence"`
	ConfidenceP  string  `json:"confidence_pct"`
	Tier         string  `json:"tier"`
	TierColor    string  `json:"tier_color"`
	BarWidthPct  float64 `json:"bar_width_pct"`
	Location     string  `json:"location"`
	X1           float32 `json:"x1"`
	Y1           float32 `json:"y1"`
	X2           float32 `json:"x2"`
	Y2           float32 `json:"y2"`
}

// Summary carries the three aggregate metrics shown under the panels.
type Summary struct {
	TotalDetections   int    `json:"total_detections"`
	AverageConfidence string `json:"average_confidence"`
	UniqueSignTypes   int    `json:"unique_sign_types"`
}

// PageView is the full render description for one analysis. It is a pure
// function of the DetectionResult, so re-rendering the page for the same
// result is idempotent.
type PageView struct {
	Panels  []DetectionPanel `json:"panels"`
	Summary Summary          `json:"summary"`
	Notice  string           `json:"notice,omitempty"`
}

// Present builds the page view. Panels keep the order detections were
// produced in; an empty result yields a notice instead of panels.
func Present(result models.DetectionResult) PageView {
	view := PageView{
		Panels: make([]DetectionPanel, 0, result.Count()),
		Summary: Summary{
			TotalDetections:   result.Count(),
			AverageConfidence: FormatPercent(result.MeanConfidence()),
			UniqueSignTypes:   result.UniqueClasses(),
		},
	}

	if result.Empty() {
		view.Notice = "No traffic signs detected in this image."
		return view
	}

	for i, d := range result.Detections {
		tier := models.TierFor(d.Confidence)
		view.Panels = append(view.Panels, DetectionPanel{
			Index:       i + 1,
			Title:       fmt.Sprintf("Detection %d: %s", i+1, d.ClassName),
			ClassName:   d.ClassName,
			Confidence:  d.Confidence,
			ConfidenceP: FormatPercent(d.Confidence),
			Tier:        string(tier),
			TierColor:   tier.Color(),
			BarWidthPct: float64(d.Confidence) * 100,
			Location:    fmt.Sprintf("X1: %.1f, Y1: %.1f\nX2: %.1f, Y2: %.1f", d.X1, d.Y1, d.X2, d.Y2),
			X1:          d.X1,
			Y1:          d.Y1,
			X2:          d.X2,
			Y2:          d.Y2,
		})
	}

	return view
}

// FormatPercent renders a [0,1] confidence as a percentage, e.g. "63.33%".
func FormatPercent(confidence float32) string {
	return fmt.Sprintf("%.2f%%", float64(confidence)*100)
}
