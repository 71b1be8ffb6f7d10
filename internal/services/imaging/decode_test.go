package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signserver/internal/models"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecode_JPEG(t *testing.T) {
	img, format, err := Decode(encodeJPEG(t, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))))

	img, format, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestDecode_MalformedBytes(t *testing.T) {
	cases := map[string][]byte{
		"garbage":        []byte("definitely not an image"),
		"empty":          {},
		"truncated jpeg": encodeJPEG(t, 64, 64)[:20],
	}

	for name, data := range cases {
		_, _, err := Decode(data)
		assert.ErrorIs(t, err, models.ErrDecode, name)
	}
}

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"sign.jpg", true},
		{"sign.JPG", true},
		{"sign.jpeg", true},
		{"sign.png", true},
		{"sign.gif", false},
		{"sign.webp", false},
		{"sign", false},
		{"archive.jpg.zip", false},
	}

	for _, tt := range tests {
		if got := SupportedExtension(tt.filename); got != tt.expected {
			t.Errorf("SupportedExtension(%q) = %v, expected %v", tt.filename, got, tt.expected)
		}
	}
}
