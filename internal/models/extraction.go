package models

// ExtractedFields holds the structured fields pulled out of certificate
// text. All fields are optional; a nil field means no rule matched, not
// an error.
type ExtractedFields struct {
	CourseName *string `json:"course_name"`
	Date       *string `json:"date"`
	Duration   *string `json:"duration"`
}

// ExtractionResult is the output of a full pipeline run over one document.
type ExtractionResult struct {
	ExtractedFields

	// Text is the corrected single-line text recognized from all pages,
	// in page order.
	Text string `json:"extracted_text"`

	// Words is the per-word breakdown of Text for downstream display.
	Words []string `json:"words,omitempty"`

	// LowQualityPages lists zero-based page indexes whose focus measure
	// fell below the configured sharpness threshold. Advisory only.
	LowQualityPages []int `json:"low_quality_pages,omitempty"`
}
