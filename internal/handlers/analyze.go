package handlers

import (
	"net/http"

	"signserver/internal/config"
	"signserver/internal/logger"
	"signserver/internal/services/ai"
	"signserver/internal/services/events"
	"signserver/internal/services/imaging"
	"signserver/internal/services/presenter"
)

// AnalyzeResponse is the payload the page renders after one analysis:
// both images inlined as data URIs plus the full render description.
type AnalyzeResponse struct {
	OriginalImage  string             `json:"original_image"`
	AnnotatedImage string             `json:"annotated_image,omitempty"`
	View           presenter.PageView `json:"view"`
}

// AnalyzeHandler accepts one uploaded image, runs the detection pipeline
// and returns the render description. Every failure is scoped to this
// request; the session continues.
func AnalyzeHandler(loader *ai.Loader, hub *events.HubService, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		hub.Publish(events.Event{Stage: "received", Detail: filename})

		img, format, err := imaging.Decode(data)
		if err != nil {
			writeFailure(w, err, logger)
			return
		}
		hub.Publish(events.Event{Stage: "decoded", Detail: format})

		detector, err := loader.Get()
		if err != nil {
			hub.Publish(events.Event{Stage: "failed"})
			writeFailure(w, err, logger)
			return
		}

		hub.Publish(events.Event{Stage: "detecting"})
		result, err := detector.DetectObjects(img)
		if err != nil {
			hub.Publish(events.Event{Stage: "failed"})
			writeFailure(w, err, logger)
			return
		}

		response := AnalyzeResponse{
			OriginalImage: dataURI(mimeForFormat(format), data),
			View:          presenter.Present(result),
		}

		// Annotation failure is not worth losing the results over.
		annotated, err := imaging.Annotate(data, result.Detections, cfg.InputSize)
		if err != nil {
			logger.Warning("Could not annotate image: %v", err)
		} else {
			response.AnnotatedImage = dataURI("image/jpeg", annotated)
		}

		hub.Publish(events.Event{Stage: "complete", Detections: result.Count()})
		logger.Info("Analyzed %s: %d detection(s)", filename, result.Count())

		writeJSON(w, http.StatusOK, response)
	}
}
