package ai

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes the model artifact: the class table and the square
// input resolution it was exported with.
type Metadata struct {
	InputSize int      `json:"input_size"`
	Classes   []string `json:"classes"`
}

// defaultLabels is the class table of the bundled traffic sign model.
// Index = class id; read-only for the lifetime of the loaded model.
var defaultLabels = []string{
	"green light",
	"red light",
	"speed limit 10",
	"speed limit 20",
	"speed limit 30",
	"speed limit 40",
	"speed limit 50",
	"speed limit 60",
	"speed limit 70",
	"speed limit 80",
	"speed limit 90",
	"speed limit 100",
	"speed limit 110",
	"speed limit 120",
	"stop",
}

// loadLabels reads the class table from the metadata file next to the model.
// A missing file falls back to the bundled table; a malformed one is an error.
func loadLabels(metadataPath string) ([]string, error) {
	data, err := os.ReadFile(metadataPath)
	if os.IsNotExist(err) {
		return defaultLabels, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	if len(meta.Classes) == 0 {
		return nil, fmt.Errorf("model metadata %s contains no classes", metadataPath)
	}
	return meta.Classes, nil
}

// labelFor resolves a class id, tolerating ids outside the table.
func labelFor(labels []string, classID int) string {
	if classID >= 0 && classID < len(labels) {
		return labels[classID]
	}
	return fmt.Sprintf("unknown_%d", classID)
}
