package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWordList(t *testing.T) {
	d := testDictionary(t, "curso 100\n\nexcel 30\nCURSO 20")

	// Case folds into one entry, counts accumulate.
	if d.Len() != 2 {
		t.Fatalf("expected 2 distinct words, got %d", d.Len())
	}
	if !d.IsKnown("curso") || !d.IsKnown("Curso") || !d.IsKnown("CURSO") {
		t.Fatalf("lookup should be case-insensitive")
	}
	if d.IsKnown("word") {
		t.Fatalf("unexpected word reported as known")
	}
}

func TestParseWordListRejectsBadLines(t *testing.T) {
	if _, err := parseWordList(strings.NewReader("curso cem")); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
	if _, err := parseWordList(strings.NewReader("curso 100 extra")); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestNewDictionaryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("curso 100\nexcel 30\n"), 0o644); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}

	d, err := NewDictionaryFromFile(path)
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	if !d.IsKnown("excel") {
		t.Fatalf("expected excel to be known")
	}

	if _, err := NewDictionaryFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewDictionaryEmbedded(t *testing.T) {
	d := NewDictionary()
	if d.Len() == 0 {
		t.Fatalf("embedded word list is empty")
	}
	for _, w := range []string{"curso", "certificamos", "horas", "duração"} {
		if !d.IsKnown(w) {
			t.Fatalf("expected %q in the embedded list", w)
		}
	}
}

func TestCandidatesRankByFrequency(t *testing.T) {
	d := testDictionary(t, "casa 50\ncaso 100")

	got := d.Candidates("casx")
	if len(got) < 2 {
		t.Fatalf("expected both neighbors, got %v", got)
	}
	if got[0] != "caso" || got[1] != "casa" {
		t.Fatalf("expected frequency order [caso casa], got %v", got)
	}
}

func TestCandidatesTieBreakLexicographic(t *testing.T) {
	d := testDictionary(t, "casa 10\ncaso 10")

	got := d.Candidates("casx")
	if len(got) < 2 || got[0] != "casa" {
		t.Fatalf("expected lexicographic tie-break, got %v", got)
	}
}

func TestCandidatesEditDistanceTwoFallback(t *testing.T) {
	d := testDictionary(t, "sol 10")

	// "s" is two edits from "sol" with nothing closer.
	got := d.Candidates("s")
	if len(got) == 0 || got[0] != "sol" {
		t.Fatalf("expected distance-2 fallback to find sol, got %v", got)
	}
}

func TestCandidatesNoneFound(t *testing.T) {
	d := testDictionary(t, "curso 100")

	if got := d.Candidates("zzzzzzzzzz"); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestCandidatesAccentedEdits(t *testing.T) {
	d := testDictionary(t, "duração 100")

	// Accented replacement is one edit, not a multi-byte mangle.
	got := d.Candidates("duracão")
	if len(got) == 0 || got[0] != "duração" {
		t.Fatalf("expected duração, got %v", got)
	}
}
