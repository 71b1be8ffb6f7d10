package models

import "errors"

// Error taxonomy for a single analysis request. Handlers match these with
// errors.Is and turn them into non-fatal user-visible messages; none of
// them may take the process down.
var (
	// ErrDecode - the uploaded bytes are not a well-formed supported image.
	ErrDecode = errors.New("image decode failed")

	// ErrInference - the detection model could not be loaded or run.
	ErrInference = errors.New("inference failed")

	// ErrExport - the PDF report could not be generated.
	ErrExport = errors.New("report export failed")
)
