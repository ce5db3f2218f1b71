package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	// Certificate scans arrive as JPEG or PNG uploads; PDF-embedded page
	// rasters may additionally be TIFF-encoded.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Pipeline error taxonomy. The first two are client errors, ErrOCREngine
// is a server-side failure. All of them abort the request.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDecode            = errors.New("failed to decode document")
	ErrOCREngine         = errors.New("ocr engine failure")
)

// PageError wraps an OCR engine failure with the zero-based page it
// occurred on. It matches ErrOCREngine under errors.Is.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("ocr engine failure on page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() []error {
	return []error{ErrOCREngine, e.Err}
}

// Frame is one decoded raster page of an uploaded document. Frames are
// owned by the pipeline invocation that created them and discarded once
// OCR on the frame completes.
type Frame struct {
	Image image.Image
	Page  int

	// LowQuality is set by the preprocessor when the frame's focus
	// measure falls below the configured threshold. Advisory only.
	LowQuality bool
}

var supportedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"pdf":  true,
}

// DocumentLoader turns an uploaded byte payload into raster frames.
type DocumentLoader struct{}

func NewDocumentLoader() *DocumentLoader {
	return &DocumentLoader{}
}

// Load decodes a payload into one frame per page. The extension gate runs
// before any decode attempt; a corrupt payload aborts the whole document.
func (l *DocumentLoader) Load(payload []byte, extension string) ([]*Frame, error) {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}

	if ext == "pdf" {
		return l.loadPDF(payload)
	}

	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return []*Frame{{Image: img, Page: 0}}, nil
}

// loadPDF pulls the scan raster embedded in each PDF page. Scanned
// certificates carry one full-page image per page; a born-digital PDF
// with no page images is rejected rather than yielding empty text.
func (l *DocumentLoader) loadPDF(payload []byte) ([]*Frame, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	pageImages, err := api.ExtractImagesRaw(bytes.NewReader(payload), nil, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var assets []pdfmodel.Image
	for _, page := range pageImages {
		for _, img := range page {
			assets = append(assets, img)
		}
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: pdf contains no page images", ErrDecode)
	}

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].PageNr != assets[j].PageNr {
			return assets[i].PageNr < assets[j].PageNr
		}
		return assets[i].ObjNr < assets[j].ObjNr
	})

	frames := make([]*Frame, 0, len(assets))
	for _, asset := range assets {
		data, err := io.ReadAll(asset)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDecode, asset.PageNr, err)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDecode, asset.PageNr, err)
		}
		// PageNr is 1-based; Frame.Page carries the document's real page
		// so failures are attributed correctly even when a page holds
		// more than one image.
		frames = append(frames, &Frame{Image: img, Page: asset.PageNr - 1})
	}

	return frames, nil
}
