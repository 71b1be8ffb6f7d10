package ai

import (
	"fmt"
	"image"
	"os"
	"sync"

	"signserver/internal/config"
	"signserver/internal/logger"
	"signserver/internal/models"
)

// Detector runs the traffic sign model over a decoded image.
type Detector interface {
	DetectObjects(img image.Image) (models.DetectionResult, error)
	Labels() []string
}

// DetectorService is the ONNX-backed Detector. It holds one loaded model
// session for the lifetime of the process; the session's reused tensors
// make a run mutually exclusive, guarded by mu.
type DetectorService struct {
	session       *modelSession
	labels        []string
	inputSize     int
	confThreshold float32
	iouThreshold  float32
	logger        *logger.Logger
	mu            sync.Mutex
}

// NewDetectorService loads the model artifact and its class table.
// Loading is expensive; callers are expected to construct the service once
// and reuse it (see Loader).
func NewDetectorService(cfg *config.Config, logger *logger.Logger) (*DetectorService, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: model file not found: %s", models.ErrInference, cfg.ModelPath)
	}

	labels, err := loadLabels(cfg.ModelMetadataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInference, err)
	}

	session, err := newModelSession(cfg.ModelPath, cfg.InputSize, len(labels), cfg.OnnxRuntimePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInference, err)
	}

	logger.Info("Detection model loaded: %s (%d classes)", cfg.ModelPath, len(labels))

	return &DetectorService{
		session:       session,
		labels:        labels,
		inputSize:     cfg.InputSize,
		confThreshold: cfg.ConfidenceThreshold,
		iouThreshold:  cfg.IoUThreshold,
		logger:        logger,
	}, nil
}

// DetectObjects resizes the image, runs the model and returns the decoded
// detections. Zero detections is a normal outcome, not an error.
func (s *DetectorService) DetectObjects(img image.Image) (models.DetectionResult, error) {
	bounds := img.Bounds()
	input := prepareInput(img, s.inputSize)

	s.mu.Lock()
	copy(s.session.input.GetData(), input)
	if err := s.session.session.Run(); err != nil {
		s.mu.Unlock()
		return models.DetectionResult{}, fmt.Errorf("%w: %v", models.ErrInference, err)
	}
	output := make([]float32, len(s.session.output.GetData()))
	copy(output, s.session.output.GetData())
	s.mu.Unlock()

	detections := decodeOutput(output, s.labels, s.inputSize, s.confThreshold)
	detections = applyGreedyNMS(detections, s.iouThreshold)

	for _, d := range detections {
		s.logger.Info("Detected %s (%.2f)", d.ClassName, d.Confidence)
	}

	return models.DetectionResult{
		Detections:   detections,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}, nil
}

// Labels returns the model's class table.
func (s *DetectorService) Labels() []string {
	return s.labels
}

// Close releases the model session.
func (s *DetectorService) Close() {
	if s.session != nil {
		s.session.close()
	}
}
