package ai

import (
	"image"

	"github.com/nfnt/resize"
)

// prepareInput resizes the image to size x size and fills a CHW float32
// tensor with [0,1] RGB values. The resize is deterministic (Lanczos3) so
// a given image always produces the same tensor.
func prepareInput(img image.Image, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	stride := size * size
	input := make([]float32, 3*stride)

	idx := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			input[idx] = float32(r>>8) / 255.0
			input[idx+stride] = float32(g>>8) / 255.0
			input[idx+2*stride] = float32(b>>8) / 255.0
			idx++
		}
	}

	return input
}
