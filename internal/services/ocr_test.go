package services

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ensureTesseractAvailable checks that the tesseract binary is reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

// textImage renders a string in black on white and scales it up so the
// bitmap font is large enough for reliable recognition.
func textImage(text string, scale int) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, 20+len(text)*7, 40))
	draw.Draw(base, base.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  base,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 25),
	}
	d.DrawString(text)

	bounds := base.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	for y := 0; y < scaled.Bounds().Dy(); y++ {
		for x := 0; x < scaled.Bounds().Dx(); x++ {
			scaled.Set(x, y, base.At(x/scale, y/scale))
		}
	}
	return scaled
}

func TestOCRServiceRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	svc := NewOCRService("eng", 6)
	frame := &Frame{Image: textImage("HELLO WORLD", 4), Page: 0}

	text, err := svc.Recognize(context.Background(), frame)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	got := strings.ToLower(text)
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Fatalf("unexpected OCR output: %q", text)
	}
}

func TestOCRServiceContextCancelled(t *testing.T) {
	svc := NewOCRService("eng", 6)
	frame := &Frame{Image: solidImage(10, 10, color.White), Page: 0}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Recognize(ctx, frame); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
