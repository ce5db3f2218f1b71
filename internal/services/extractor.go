package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/talentbase/certscan/internal/models"
)

// workdayHours is the assumed daily load when synthesizing a duration
// from a date range.
const workdayHours = 8

// rule inspects corrected text and returns the extracted value, or nil
// when it doesn't apply.
type rule func(text string) *string

// FieldExtractor pulls course name, date and duration out of corrected
// certificate text. Each field has an ordered rule cascade; the first
// matching rule wins and a field with no matching rule stays nil.
type FieldExtractor struct {
	courseRules   []rule
	dateRules     []rule
	durationRules []rule
}

var (
	// Straight or curly double-quoted spans; course titles are quoted on
	// many certificates.
	quotedSpanPattern = regexp.MustCompile(`“([^“”]+)”|"([^"]+)"`)

	// A course keyword optionally followed by ordinals/numerals, then the
	// run of characters up to the next digit or quote.
	courseKeywordPattern = regexp.MustCompile(`(?i)(curso|treinamento|workshop|palestra|seminário|evento)\s*(?:“|")?[\dºª]*\s*[^0-9“"]+`)

	// Continuation clauses that conventionally follow a title without
	// being part of it.
	courseTrailerPattern = regexp.MustCompile(` -.*| promovido.*| patrocínio.*| apoio.*| realizado.*| com.*`)

	datePattern = regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{4}|\d{4}`)

	explicitDurationPattern = regexp.MustCompile(`(?i)\d+\s*(horas?|h|minutos?|m)`)

	dateRangePattern = regexp.MustCompile(`(\d{2}[/-]\d{2}[/-]\d{4})\s*[aà]\s*(\d{2}[/-]\d{2}[/-]\d{4})`)
)

func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{
		courseRules:   []rule{quotedCourseName, keywordCourseName},
		dateRules:     []rule{firstDate},
		durationRules: []rule{explicitDuration, calculatedDuration},
	}
}

// Extract runs every field's rule cascade over the text. Absent fields
// are nil, never an error.
func (e *FieldExtractor) Extract(text string) models.ExtractedFields {
	return models.ExtractedFields{
		CourseName: applyRules(e.courseRules, text),
		Date:       applyRules(e.dateRules, text),
		Duration:   applyRules(e.durationRules, text),
	}
}

// ExtractCourseName runs only the course-name cascade.
func (e *FieldExtractor) ExtractCourseName(text string) *string {
	return applyRules(e.courseRules, text)
}

// ExtractDate runs only the date cascade.
func (e *FieldExtractor) ExtractDate(text string) *string {
	return applyRules(e.dateRules, text)
}

// ExtractDuration runs only the duration cascade.
func (e *FieldExtractor) ExtractDuration(text string) *string {
	return applyRules(e.durationRules, text)
}

func applyRules(rules []rule, text string) *string {
	for _, r := range rules {
		if v := r(text); v != nil {
			return v
		}
	}
	return nil
}

// quotedCourseName returns the first quoted span containing more than one
// word.
func quotedCourseName(text string) *string {
	for _, match := range quotedSpanPattern.FindAllStringSubmatch(text, -1) {
		span := match[1]
		if span == "" {
			span = match[2]
		}
		span = strings.TrimSpace(span)
		if len(strings.Fields(span)) > 1 {
			return &span
		}
	}
	return nil
}

// keywordCourseName captures the text following a course keyword and
// strips trailing continuation clauses.
func keywordCourseName(text string) *string {
	match := courseKeywordPattern.FindString(text)
	if match == "" {
		return nil
	}
	name := strings.TrimSpace(courseTrailerPattern.ReplaceAllString(strings.TrimSpace(match), ""))
	if name == "" {
		return nil
	}
	return &name
}

// firstDate returns the first DD/DD/DDDD, DD-DD-DDDD or bare 4-digit
// year in document order.
func firstDate(text string) *string {
	if match := datePattern.FindString(text); match != "" {
		return &match
	}
	return nil
}

// explicitDuration returns a directly mentioned duration span verbatim.
func explicitDuration(text string) *string {
	if match := explicitDurationPattern.FindString(text); match != "" {
		return &match
	}
	return nil
}

// calculatedDuration derives a duration from a "<date> a <date>" range,
// assuming workdayHours per elapsed day, inclusive of both ends. A range
// whose dates don't parse as day/month/year degrades to no duration;
// the failure is logged but never surfaced.
func calculatedDuration(text string) *string {
	groups := dateRangePattern.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}

	start, err := parseDayMonthYear(groups[1])
	if err != nil {
		log.Printf("duration date range %q ignored: %v", groups[0], err)
		return nil
	}
	end, err := parseDayMonthYear(groups[2])
	if err != nil {
		log.Printf("duration date range %q ignored: %v", groups[0], err)
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	duration := fmt.Sprintf("%d horas (calculadas)", days*workdayHours)
	return &duration
}

func parseDayMonthYear(s string) (time.Time, error) {
	return time.Parse("02/01/2006", strings.ReplaceAll(s, "-", "/"))
}
