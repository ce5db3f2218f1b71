package services

import (
	"strings"
	"testing"
)

func TestExtractQuotedCourseNameWinsOverKeyword(t *testing.T) {
	e := NewFieldExtractor()
	text := `Certificamos que Maria Souza participou do curso "Gestão de Projetos Ágeis" promovido pela empresa`

	got := e.ExtractCourseName(text)
	if got == nil {
		t.Fatalf("expected a course name, got nil")
	}
	if *got != "Gestão de Projetos Ágeis" {
		t.Fatalf("expected quoted title, got %q", *got)
	}
}

func TestExtractCourseNameCurlyQuotes(t *testing.T) {
	e := NewFieldExtractor()
	text := `participou do evento “Semana de Segurança do Trabalho” em 2023`

	got := e.ExtractCourseName(text)
	if got == nil {
		t.Fatalf("expected a course name, got nil")
	}
	if *got != "Semana de Segurança do Trabalho" {
		t.Fatalf("expected curly-quoted title, got %q", *got)
	}
}

func TestExtractCourseNameSingleWordQuoteIgnored(t *testing.T) {
	e := NewFieldExtractor()
	// A one-word quoted span is not a title; the keyword rule applies instead.
	text := `o "melhor" treinamento de Logística Reversa oferecido pela instituição`

	got := e.ExtractCourseName(text)
	if got == nil {
		t.Fatalf("expected a course name, got nil")
	}
	if !strings.Contains(*got, "Logística") {
		t.Fatalf("expected keyword rule to capture the title, got %q", *got)
	}
}

func TestExtractCourseNameKeywordRule(t *testing.T) {
	e := NewFieldExtractor()
	text := "Certificamos que JOÃO concluiu o curso de Excel em 10/05/2023"

	got := e.ExtractCourseName(text)
	if got == nil {
		t.Fatalf("expected a course name, got nil")
	}
	if !strings.Contains(*got, "Excel") {
		t.Fatalf("expected title to contain Excel, got %q", *got)
	}
}

func TestExtractCourseNameStripsTrailer(t *testing.T) {
	e := NewFieldExtractor()
	text := "participou do treinamento de Primeiros Socorros promovido pelo SENAC"

	got := e.ExtractCourseName(text)
	if got == nil {
		t.Fatalf("expected a course name, got nil")
	}
	if strings.Contains(*got, "promovido") {
		t.Fatalf("trailer clause should be stripped, got %q", *got)
	}
}

func TestExtractCourseNameAbsent(t *testing.T) {
	e := NewFieldExtractor()
	if got := e.ExtractCourseName("texto sem nenhuma referência relevante"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestExtractDateFirstMatchWins(t *testing.T) {
	e := NewFieldExtractor()
	text := "realizado em 10/05/2023 e emitido em 12/06/2023"

	got := e.ExtractDate(text)
	if got == nil {
		t.Fatalf("expected a date, got nil")
	}
	if *got != "10/05/2023" {
		t.Fatalf("expected first date in document order, got %q", *got)
	}
}

func TestExtractDateBareYear(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDate("concluído no ano de 2022")
	if got == nil {
		t.Fatalf("expected a date, got nil")
	}
	if *got != "2022" {
		t.Fatalf("expected bare year, got %q", *got)
	}
}

func TestExtractDateDashSeparated(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDate("emitido em 10-05-2023")
	if got == nil {
		t.Fatalf("expected a date, got nil")
	}
	if *got != "10-05-2023" {
		t.Fatalf("expected dash-separated date, got %q", *got)
	}
}

func TestExtractDateAbsent(t *testing.T) {
	e := NewFieldExtractor()
	if got := e.ExtractDate("sem qualquer menção temporal"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestExtractDurationExplicit(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDuration("Carga horária: 40 horas")
	if got == nil {
		t.Fatalf("expected a duration, got nil")
	}
	if *got != "40 horas" {
		t.Fatalf("expected explicit duration verbatim, got %q", *got)
	}
}

func TestExtractDurationExplicitMinutes(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDuration("com 90 minutos de atividades")
	if got == nil {
		t.Fatalf("expected a duration, got nil")
	}
	if *got != "90 minutos" {
		t.Fatalf("expected minutes duration, got %q", *got)
	}
}

func TestExtractDurationCalculatedFromRange(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDuration("realizado no período de 01/03/2024 a 05/03/2024")
	if got == nil {
		t.Fatalf("expected a calculated duration, got nil")
	}
	if *got != "40 horas (calculadas)" {
		t.Fatalf("expected 5 days at 8 hours each, got %q", *got)
	}
}

func TestExtractDurationExplicitBeatsRange(t *testing.T) {
	e := NewFieldExtractor()
	got := e.ExtractDuration("de 01/03/2024 a 05/03/2024, carga de 16 horas")
	if got == nil {
		t.Fatalf("expected a duration, got nil")
	}
	if *got != "16 horas" {
		t.Fatalf("explicit mention should win over the range, got %q", *got)
	}
}

func TestExtractDurationInvalidRangeDegrades(t *testing.T) {
	e := NewFieldExtractor()
	// February 31st does not exist; the range must be silently discarded.
	if got := e.ExtractDuration("de 31/02/2024 a 05/03/2024"); got != nil {
		t.Fatalf("expected nil for unparseable range, got %q", *got)
	}
}

func TestExtractDurationAbsent(t *testing.T) {
	e := NewFieldExtractor()
	if got := e.ExtractDuration("certificado de participação"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestExtractAllFields(t *testing.T) {
	e := NewFieldExtractor()
	text := `Certificamos que Ana participou do curso "Análise de Dados" de 01/03/2024 a 05/03/2024`

	fields := e.Extract(text)
	if fields.CourseName == nil || *fields.CourseName != "Análise de Dados" {
		t.Fatalf("unexpected course name: %v", fields.CourseName)
	}
	if fields.Date == nil || *fields.Date != "01/03/2024" {
		t.Fatalf("unexpected date: %v", fields.Date)
	}
	if fields.Duration == nil || *fields.Duration != "40 horas (calculadas)" {
		t.Fatalf("unexpected duration: %v", fields.Duration)
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := NewFieldExtractor()
	fields := e.Extract("")
	if fields.CourseName != nil || fields.Date != nil || fields.Duration != nil {
		t.Fatalf("expected all fields nil for empty text, got %+v", fields)
	}
}
