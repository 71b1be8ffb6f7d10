package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"signserver/internal/models"
	"signserver/internal/services/presenter"
)

// Filename is the fixed name the report is downloaded under.
const Filename = "detection_report.pdf"

// Build renders a one-page PDF: title, the annotated image, the three
// summary metrics and one line per detection. Everything happens in
// memory; concurrent exports never touch a shared file.
func Build(annotatedJPEG []byte, view presenter.PageView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Traffic Sign Detection Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("annotated", opts, bytes.NewReader(annotatedJPEG))
	// 120mm wide, centered on an A4 page (210mm, 10mm margins).
	pdf.ImageOptions("annotated", 45, pdf.GetY(), 120, 0, true, opts, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Detections: %d", view.Summary.TotalDetections), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Average Confidence: %s", view.Summary.AverageConfidence), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Unique Sign Types: %d", view.Summary.UniqueSignTypes), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Detections", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if len(view.Panels) == 0 {
		pdf.CellFormat(0, 7, view.Notice, "", 1, "L", false, 0, "")
	}
	for _, panel := range view.Panels {
		line := fmt.Sprintf("%d. %s - confidence %s [%.1f, %.1f, %.1f, %.1f]",
			panel.Index, panel.ClassName, panel.ConfidenceP,
			panel.X1, panel.Y1, panel.X2, panel.Y2)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExport, err)
	}
	return buf.Bytes(), nil
}
