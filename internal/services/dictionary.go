package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	_ "embed"
)

// Dictionary is the spelling collaborator of the corrector: membership
// plus ranked correction candidates. Implementations must be safe for
// concurrent reads and rank deterministically.
type Dictionary interface {
	IsKnown(word string) bool
	Candidates(word string) []string
}

//go:embed words_pt.txt
var defaultWordList string

// spellAlphabet covers lowercase Portuguese letters for candidate
// generation.
var spellAlphabet = []rune("abcdefghijklmnopqrstuvwxyzáàâãçéêíóôõú")

// FrequencyDictionary ranks correction candidates within edit distance 2
// by corpus frequency, ties broken lexicographically so that ranking is
// stable across runs. Built once at startup and read-only afterwards.
type FrequencyDictionary struct {
	freq map[string]int64
}

// NewDictionary loads the bundled Portuguese word-frequency list.
func NewDictionary() *FrequencyDictionary {
	d, err := parseWordList(strings.NewReader(defaultWordList))
	if err != nil {
		// The embedded list is validated at build time; a parse failure
		// here means a broken binary.
		panic(fmt.Sprintf("embedded word list is invalid: %v", err))
	}
	return d
}

// NewDictionaryFromFile loads a "word count" frequency list from disk.
func NewDictionaryFromFile(path string) (*FrequencyDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return parseWordList(f)
}

func parseWordList(r io.Reader) (*FrequencyDictionary, error) {
	freq := make(map[string]int64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"word count\", got %q", line, scanner.Text())
		}
		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count %q: %w", line, fields[1], err)
		}
		freq[strings.ToLower(fields[0])] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return &FrequencyDictionary{freq: freq}, nil
}

// Len returns the number of distinct words loaded.
func (d *FrequencyDictionary) Len() int {
	return len(d.freq)
}

// IsKnown reports whether the word is in the dictionary. Lookup is
// case-insensitive.
func (d *FrequencyDictionary) IsKnown(word string) bool {
	_, ok := d.freq[strings.ToLower(word)]
	return ok
}

// Candidates returns known words within edit distance 1 of the input,
// falling back to distance 2 when none exist, best-first: highest corpus
// frequency wins, ties resolved lexicographically.
func (d *FrequencyDictionary) Candidates(word string) []string {
	word = strings.ToLower(word)

	once := edits1(word)
	if known := d.rank(once); len(known) > 0 {
		return known
	}

	twice := make(map[string]bool)
	for edit := range once {
		for e := range edits1(edit) {
			twice[e] = true
		}
	}
	return d.rank(twice)
}

func (d *FrequencyDictionary) rank(words map[string]bool) []string {
	known := make([]string, 0, 8)
	for w := range words {
		if _, ok := d.freq[w]; ok {
			known = append(known, w)
		}
	}
	sort.Slice(known, func(i, j int) bool {
		if d.freq[known[i]] != d.freq[known[j]] {
			return d.freq[known[i]] > d.freq[known[j]]
		}
		return known[i] < known[j]
	})
	return known
}

// edits1 generates every string one edit away from the word: deletions,
// transpositions, replacements and insertions.
func edits1(word string) map[string]bool {
	runes := []rune(word)
	edits := make(map[string]bool)

	for i := 0; i <= len(runes); i++ {
		left, right := runes[:i], runes[i:]

		if len(right) > 0 {
			edits[string(left)+string(right[1:])] = true
		}
		if len(right) > 1 {
			edits[string(left)+string(right[1])+string(right[0])+string(right[2:])] = true
		}
		for _, r := range spellAlphabet {
			if len(right) > 0 {
				edits[string(left)+string(r)+string(right[1:])] = true
			}
			edits[string(left)+string(r)+string(right)] = true
		}
	}

	delete(edits, word)
	return edits
}
