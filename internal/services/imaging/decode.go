package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"signserver/internal/models"
)

// SupportedExtension reports whether the uploaded filename carries one of
// the accepted image extensions.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Decode parses uploaded bytes into a pixel image. Malformed or
// unsupported data wraps models.ErrDecode so callers can surface it as a
// recoverable user mistake rather than a server fault.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrDecode, err)
	}
	return img, format, nil
}
