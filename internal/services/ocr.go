package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer converts a normalized frame into text. The production
// implementation is Tesseract; tests substitute fakes.
type Recognizer interface {
	Recognize(ctx context.Context, frame *Frame) (string, error)
}

// OCRService recognizes text with Tesseract via gosseract, configured
// for a fixed language and page-segmentation mode. A fresh client is
// created per call: the service itself carries only read-only
// configuration and is safe for concurrent use, which a shared gosseract
// client is not.
type OCRService struct {
	language    string
	pageSegMode gosseract.PageSegMode
}

// NewOCRService creates an OCR service for the given language (e.g.
// "por") and Tesseract page-segmentation mode (6 = single uniform block).
func NewOCRService(language string, pageSegMode int) *OCRService {
	return &OCRService{
		language:    language,
		pageSegMode: gosseract.PageSegMode(pageSegMode),
	}
}

// Recognize runs Tesseract over one frame. Recognition is not cancellable
// mid-call; the context is only checked before work starts.
func (s *OCRService) Recognize(ctx context.Context, frame *Frame) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.language); err != nil {
		return "", fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(s.pageSegMode); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return strings.TrimSpace(text), nil
}
