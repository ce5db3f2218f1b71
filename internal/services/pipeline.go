package services

import (
	"context"
	"log"
	"strings"

	"github.com/talentbase/certscan/internal/models"
)

// Pipeline runs the five extraction stages in order: load, preprocess,
// recognize, correct, extract. All per-request state is local to the
// Process call; the pipeline itself only holds read-only collaborators
// and is safe for concurrent use.
type Pipeline struct {
	loader       *DocumentLoader
	preprocessor *Preprocessor
	recognizer   Recognizer
	corrector    *Corrector
	extractor    *FieldExtractor
}

func NewPipeline(recognizer Recognizer, dict Dictionary, sharpnessThreshold float64) *Pipeline {
	return &Pipeline{
		loader:       NewDocumentLoader(),
		preprocessor: NewPreprocessor(sharpnessThreshold),
		recognizer:   recognizer,
		corrector:    NewCorrector(dict),
		extractor:    NewFieldExtractor(),
	}
}

// Process runs one document through the whole pipeline. Load and OCR
// failures abort the request with no partial result; missing fields in
// an otherwise readable document are not errors.
func (p *Pipeline) Process(ctx context.Context, payload []byte, extension string) (*models.ExtractionResult, error) {
	frames, err := p.loader.Load(payload, extension)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	var lowQuality []int
	for i, frame := range frames {
		normalized := p.preprocessor.Normalize(frame)
		frames[i] = nil // frame is dropped once its page has been recognized

		if normalized.LowQuality {
			// Frames arrive in page order; a page with several images is
			// listed once.
			if len(lowQuality) == 0 || lowQuality[len(lowQuality)-1] != normalized.Page {
				lowQuality = append(lowQuality, normalized.Page)
				log.Printf("page %d flagged as low quality, recognition may be unreliable", normalized.Page)
			}
		}

		text, err := p.recognizer.Recognize(ctx, normalized)
		if err != nil {
			return nil, &PageError{Page: normalized.Page, Err: err}
		}

		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}

	corrected := p.corrector.Correct(sb.String())
	fields := p.extractor.Extract(corrected)

	return &models.ExtractionResult{
		ExtractedFields: fields,
		Text:            corrected,
		Words:           strings.Fields(corrected),
		LowQualityPages: lowQuality,
	}, nil
}
