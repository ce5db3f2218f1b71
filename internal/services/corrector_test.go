package services

import (
	"strings"
	"testing"
)

func testDictionary(t *testing.T, entries string) *FrequencyDictionary {
	t.Helper()
	d, err := parseWordList(strings.NewReader(entries))
	if err != nil {
		t.Fatalf("failed to parse test word list: %v", err)
	}
	return d
}

func TestCorrectCollapsesLineBreaks(t *testing.T) {
	dict := testDictionary(t, "linha 10\num 10\ndois 10\ntrês 10")
	c := NewCorrector(dict)

	got := c.Correct("linha um\nlinha dois\r\nlinha três")
	want := "linha um linha dois linha três"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCorrectFixesMisspelling(t *testing.T) {
	dict := testDictionary(t, "curso 100\nde 50\nexcel 30")
	c := NewCorrector(dict)

	got := c.Correct("cursa de excel")
	if got != "curso de excel" {
		t.Fatalf("got %q, want %q", got, "curso de excel")
	}
}

func TestCorrectPreservesCase(t *testing.T) {
	dict := testDictionary(t, "curso 100")
	c := NewCorrector(dict)

	if got := c.Correct("Cursa"); got != "Curso" {
		t.Fatalf("leading capital not preserved: got %q", got)
	}
	if got := c.Correct("CURSA"); got != "CURSO" {
		t.Fatalf("all caps not preserved: got %q", got)
	}
}

func TestCorrectLeavesNonLetterTokensAlone(t *testing.T) {
	dict := testDictionary(t, "em 10\nàs 5")
	c := NewCorrector(dict)

	got := c.Correct("em 10/05/2023 às 14h30")
	if !strings.Contains(got, "10/05/2023") {
		t.Fatalf("date token was altered: %q", got)
	}
	if !strings.Contains(got, "14h30") {
		t.Fatalf("mixed token was altered: %q", got)
	}
}

func TestCorrectLeavesUnfixableTokensAlone(t *testing.T) {
	dict := testDictionary(t, "curso 100")
	c := NewCorrector(dict)

	// No dictionary word within two edits; the token passes through.
	got := c.Correct("zzzzzzzzzz")
	if got != "zzzzzzzzzz" {
		t.Fatalf("unfixable token was altered: %q", got)
	}
}

func TestCorrectIsIdempotent(t *testing.T) {
	dict := testDictionary(t, "certificamos 100\nque 90\nparticipou 80\ndo 70\ncurso 60\nde 50\nexcel 40")
	c := NewCorrector(dict)

	once := c.Correct("Certificamos que participou\ndo cursa de excell")
	twice := c.Correct(once)
	if once != twice {
		t.Fatalf("correction not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestCorrectIsDeterministic(t *testing.T) {
	dict := testDictionary(t, "casa 10\ncaso 10")
	c := NewCorrector(dict)

	first := c.Correct("casx casx")
	for i := 0; i < 20; i++ {
		if got := c.Correct("casx casx"); got != first {
			t.Fatalf("run %d differed: got %q, want %q", i, got, first)
		}
	}
	// Equal frequencies resolve lexicographically, and identical tokens
	// get identical corrections.
	if first != "casa casa" {
		t.Fatalf("got %q, want %q", first, "casa casa")
	}
}

func TestCorrectWithEmbeddedDictionary(t *testing.T) {
	c := NewCorrector(NewDictionary())

	got := c.Correct("Certificamos que o aluno concluiu o curso")
	if got != "Certificamos que o aluno concluiu o curso" {
		t.Fatalf("well-formed text should pass through unchanged, got %q", got)
	}
}
