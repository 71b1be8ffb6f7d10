package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"signserver/internal/config"
	"signserver/internal/logger"
	"signserver/internal/models"
	"signserver/internal/services/imaging"
)

// errorResponse is the JSON body for every failed request. Messages are
// user-facing, never raw internals.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure maps the error taxonomy onto a status and a friendly
// message. Decode problems are the user's to fix; everything else is a
// server-side fault for this request only.
func writeFailure(w http.ResponseWriter, err error, logger *logger.Logger) {
	switch {
	case errors.Is(err, models.ErrDecode):
		logger.Warning("Rejected upload: %v", err)
		writeError(w, http.StatusBadRequest, "That file does not look like a valid JPG or PNG image. Please try another one.")
	case errors.Is(err, models.ErrExport):
		logger.Error("Report generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "The report could not be generated. Your on-screen results are unaffected.")
	default:
		logger.Error("Analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "The image could not be analyzed. Please try again with a new upload.")
	}
}

// readUpload extracts the uploaded image bytes from the multipart form.
// Extension filtering happens here; decoding is the caller's job.
func readUpload(r *http.Request, cfg *config.Config) ([]byte, string, error) {
	if err := r.ParseMultipartForm(cfg.MaxUploadBytes); err != nil {
		return nil, "", fmt.Errorf("%w: invalid upload form: %v", models.ErrDecode, err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", fmt.Errorf("%w: no image file provided", models.ErrDecode)
	}
	defer file.Close()

	if !imaging.SupportedExtension(header.Filename) {
		return nil, "", fmt.Errorf("%w: unsupported file type %q", models.ErrDecode, header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read upload: %v", models.ErrDecode, err)
	}

	return data, header.Filename, nil
}

// dataURI inlines image bytes for direct display on the page.
func dataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func mimeForFormat(format string) string {
	if format == "png" {
		return "image/png"
	}
	return "image/jpeg"
}
