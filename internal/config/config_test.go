package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, expected 8080", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.25 {
		t.Errorf("ConfidenceThreshold = %v, expected 0.25", cfg.ConfidenceThreshold)
	}
	if cfg.InputSize != 640 {
		t.Errorf("InputSize = %d, expected 640", cfg.InputSize)
	}
	if cfg.IoUThreshold != 0.7 {
		t.Errorf("IoUThreshold = %v, expected 0.7", cfg.IoUThreshold)
	}
	if cfg.EnablePDFReport {
		t.Error("EnablePDFReport should default to false")
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d, expected %d", cfg.MaxUploadBytes, 10<<20)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.5")
	t.Setenv("ENABLE_PDF_REPORT", "true")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("MODEL_PATH", "/opt/models/signs.onnx")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, expected 9000", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("ConfidenceThreshold = %v, expected 0.5", cfg.ConfidenceThreshold)
	}
	if !cfg.EnablePDFReport {
		t.Error("EnablePDFReport should be true")
	}
	if cfg.MaxUploadBytes != 25<<20 {
		t.Errorf("MaxUploadBytes = %d, expected %d", cfg.MaxUploadBytes, 25<<20)
	}
	if cfg.ModelPath != "/opt/models/signs.onnx" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("CONFIDENCE_THRESHOLD", "plenty")
	t.Setenv("ENABLE_PDF_REPORT", "sure")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, expected default 8080", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.25 {
		t.Errorf("ConfidenceThreshold = %v, expected default 0.25", cfg.ConfidenceThreshold)
	}
	if cfg.EnablePDFReport {
		t.Error("EnablePDFReport should fall back to false")
	}
}
