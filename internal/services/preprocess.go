package services

import (
	"image"
	"image/color"
	"sort"
)

// Preprocessor normalizes frames for OCR: grayscale conversion followed
// by a 3x3 median blur to suppress scan speckle. A sharpness gate flags
// frames whose variance-of-Laplacian focus measure falls below the
// threshold; the flag never aborts processing.
type Preprocessor struct {
	sharpnessThreshold float64
}

// NewPreprocessor creates a preprocessor. A threshold <= 0 disables the
// sharpness gate.
func NewPreprocessor(sharpnessThreshold float64) *Preprocessor {
	return &Preprocessor{sharpnessThreshold: sharpnessThreshold}
}

// Normalize returns a new normalized frame; the input frame is not modified.
func (p *Preprocessor) Normalize(frame *Frame) *Frame {
	gray := toGrayscale(frame.Image)
	blurred := medianBlur3(gray)

	out := &Frame{Image: blurred, Page: frame.Page}
	if p.sharpnessThreshold > 0 {
		out.LowQuality = laplacianVariance(blurred) < p.sharpnessThreshold
	}
	return out
}

// toGrayscale converts any image to a single-channel grayscale copy.
func toGrayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// medianBlur3 applies a 3x3 median filter. Edge pixels use a clamped
// neighborhood.
func medianBlur3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	window := make([]uint8, 0, 9)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			window = window[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := clamp(x+dx, bounds.Min.X, bounds.Max.X-1), clamp(y+dy, bounds.Min.Y, bounds.Max.Y-1)
					window = append(window, src.GrayAt(nx, ny).Y)
				}
			}
			sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
			dst.SetGray(x, y, color.Gray{Y: window[4]})
		}
	}
	return dst
}

// laplacianVariance computes the variance of the 4-neighbor Laplacian
// response over interior pixels. Low values indicate a blurry frame.
func laplacianVariance(img *image.Gray) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	var sum, sumSq float64
	n := 0
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := float64(img.GrayAt(x, y).Y)
			response := float64(img.GrayAt(x-1, y).Y) +
				float64(img.GrayAt(x+1, y).Y) +
				float64(img.GrayAt(x, y-1).Y) +
				float64(img.GrayAt(x, y+1).Y) -
				4*center
			sum += response
			sumSq += response * response
			n++
		}
	}

	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
