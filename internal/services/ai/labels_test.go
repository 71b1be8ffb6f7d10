package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLabels_MissingFileUsesDefaults(t *testing.T) {
	labels, err := loadLabels(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultLabels, labels)
}

func TestLoadLabels_FromMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	err := os.WriteFile(path, []byte(`{"input_size":640,"classes":["stop","yield"]}`), 0644)
	require.NoError(t, err)

	labels, err := loadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"stop", "yield"}, labels)
}

func TestLoadLabels_Malformed(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0644))
	_, err := loadLabels(broken)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"classes":[]}`), 0644))
	_, err = loadLabels(empty)
	assert.Error(t, err)
}

func TestLabelFor(t *testing.T) {
	labels := []string{"stop", "yield"}

	assert.Equal(t, "stop", labelFor(labels, 0))
	assert.Equal(t, "yield", labelFor(labels, 1))
	assert.Equal(t, "unknown_7", labelFor(labels, 7))
	assert.Equal(t, "unknown_-1", labelFor(labels, -1))
}

func TestAnchorCount(t *testing.T) {
	// 80*80 + 40*40 + 20*20 for the standard 640 input.
	assert.Equal(t, 8400, anchorCount(640))
	assert.Equal(t, 2100, anchorCount(320))
}
