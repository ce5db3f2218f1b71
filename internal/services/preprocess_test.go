package services

import (
	"image"
	"image/color"
	"testing"
)

func checkerboardImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestNormalizeProducesGrayscale(t *testing.T) {
	p := NewPreprocessor(100)
	frame := &Frame{Image: solidImage(16, 16, color.RGBA{R: 200, G: 30, B: 90, A: 255}), Page: 3}

	out := p.Normalize(frame)
	if out == frame {
		t.Fatalf("expected a new frame")
	}
	if _, ok := out.Image.(*image.Gray); !ok {
		t.Fatalf("expected grayscale output, got %T", out.Image)
	}
	if out.Page != 3 {
		t.Fatalf("page number lost: got %d", out.Page)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	p := NewPreprocessor(100)
	src := solidImage(8, 8, color.RGBA{R: 10, G: 200, B: 10, A: 255})
	frame := &Frame{Image: src, Page: 0}

	p.Normalize(frame)

	if got := src.RGBAAt(4, 4); got != (color.RGBA{R: 10, G: 200, B: 10, A: 255}) {
		t.Fatalf("input image was mutated: %v", got)
	}
	if frame.LowQuality {
		t.Fatalf("input frame was mutated")
	}
}

func TestNormalizeFlagsBlurryFrame(t *testing.T) {
	p := NewPreprocessor(100)
	frame := &Frame{Image: solidImage(32, 32, color.Gray{Y: 128})}

	out := p.Normalize(frame)
	if !out.LowQuality {
		t.Fatalf("uniform frame should be flagged low quality")
	}
}

func TestNormalizeKeepsSharpFrame(t *testing.T) {
	p := NewPreprocessor(100)

	// A pixel checkerboard survives the median blur and has a large
	// Laplacian response everywhere.
	out := p.Normalize(&Frame{Image: checkerboardImage(32, 32)})
	if out.LowQuality {
		t.Fatalf("high-contrast frame should not be flagged")
	}
}

func TestNormalizeThresholdDisabled(t *testing.T) {
	p := NewPreprocessor(0)
	frame := &Frame{Image: solidImage(32, 32, color.Gray{Y: 128})}

	out := p.Normalize(frame)
	if out.LowQuality {
		t.Fatalf("gate should be disabled when threshold <= 0")
	}
}

func TestMedianBlurRemovesSpeckle(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	// Single dark speckle in a white field.
	src.SetGray(4, 4, color.Gray{Y: 0})

	out := medianBlur3(src)
	if got := out.GrayAt(4, 4).Y; got != 255 {
		t.Fatalf("speckle survived the median blur: %d", got)
	}
}

func TestLaplacianVarianceTinyImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	if v := laplacianVariance(src); v != 0 {
		t.Fatalf("expected 0 for images smaller than 3x3, got %v", v)
	}
}
