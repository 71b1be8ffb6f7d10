package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                int
	ModelPath           string
	ModelMetadataPath   string
	OnnxRuntimePath     string
	ConfidenceThreshold float32 // minimum score for the model to report a sign
	IoUThreshold        float32 // overlap threshold for duplicate suppression
	InputSize           int     // square resolution the image is resized to
	EnablePDFReport     bool
	MaxUploadBytes      int64
	StaticDir           string
	LogDirectory        string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	// Missing .env is fine, plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		Port:                getEnvAsInt("PORT", 8080),
		ModelPath:           getEnv("MODEL_PATH", filepath.Join(".", "models", "traffic_signs.onnx")),
		ModelMetadataPath:   getEnv("MODEL_METADATA_PATH", filepath.Join(".", "models", "traffic_signs.json")),
		OnnxRuntimePath:     getEnv("ONNX_RUNTIME_PATH", ""),
		ConfidenceThreshold: getEnvAsFloat32("CONFIDENCE_THRESHOLD", 0.25),
		IoUThreshold:        getEnvAsFloat32("IOU_THRESHOLD", 0.7),
		InputSize:           getEnvAsInt("INPUT_SIZE", 640),
		EnablePDFReport:     getEnvAsBool("ENABLE_PDF_REPORT", false),
		MaxUploadBytes:      getEnvAsInt64("MAX_UPLOAD_MB", 10) << 20,
		StaticDir:           getEnv("STATIC_DIR", "static"),
		LogDirectory:        getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatValue)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
