package handlers

import (
	"fmt"
	"net/http"

	"signserver/internal/config"
	"signserver/internal/logger"
	"signserver/internal/models"
	"signserver/internal/services/ai"
	"signserver/internal/services/imaging"
	"signserver/internal/services/presenter"
	"signserver/internal/services/report"
)

// ReportHandler re-runs the pipeline for the uploaded image and answers
// with a downloadable PDF report. The endpoint does not exist unless the
// report feature is enabled in the config.
func ReportHandler(loader *ai.Loader, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.EnablePDFReport {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes)

		data, filename, err := readUpload(r, cfg)
		if err != nil {
			writeFailure(w, err, logger)
			return
		}

		img, _, err := imaging.Decode(data)
		if err != nil {
			writeFailure(w, err, logger)
			return
		}

		detector, err := loader.Get()
		if err != nil {
			writeFailure(w, err, logger)
			return
		}

		result, err := detector.DetectObjects(img)
		if err != nil {
			writeFailure(w, err, logger)
			return
		}

		annotated, err := imaging.Annotate(data, result.Detections, cfg.InputSize)
		if err != nil {
			writeFailure(w, fmt.Errorf("%w: %v", models.ErrExport, err), logger)
			return
		}

		pdfBytes, err := report.Build(annotated, presenter.Present(result))
		if err != nil {
			writeFailure(w, err, logger)
			return
		}

		logger.Info("Report generated for %s: %d detection(s), %d bytes", filename, result.Count(), len(pdfBytes))

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
		w.WriteHeader(http.StatusOK)
		w.Write(pdfBytes)
	}
}
