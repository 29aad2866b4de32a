package segment

import (
	"strings"
	"unicode"
)

// Segmenter splits a text span into an ordered sequence of sentences.
type Segmenter interface {
	Segment(text string) []string
}

// Abbreviations that end with a period without ending a sentence. Lowercased
// without the trailing period.
var abbreviations = map[string]struct{}{
	"mr":     {},
	"mrs":    {},
	"ms":     {},
	"dr":     {},
	"prof":   {},
	"sr":     {},
	"jr":     {},
	"st":     {},
	"vs":     {},
	"etc":    {},
	"e.g":    {},
	"i.e":    {},
	"approx": {},
}

// Rules is a deterministic rule-based segmenter splitting on terminal
// punctuation (. ? !) while keeping abbreviations, initials, and decimal
// numbers intact.
type Rules struct{}

// NewRules returns the default segmenter.
func NewRules() *Rules {
	return &Rules{}
}

// Segment splits text into sentences. Empty or whitespace-only input yields
// an empty slice.
func (r *Rules) Segment(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// Swallow runs of terminal punctuation ("?!", "...") and closing
		// quotes so they stay attached to the sentence.
		end := i
		for end+1 < len(runes) && (isTerminal(runes[end+1]) || isClosing(runes[end+1])) {
			end++
		}
		if !boundaryAt(runes, i, end) {
			i = end
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		i = end
		start = end + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']' || r == '”' || r == '’'
}

// boundaryAt reports whether the terminal punctuation at runes[i] (with the
// punctuation run ending at end) closes a sentence.
func boundaryAt(runes []rune, i, end int) bool {
	// End of text always closes.
	if end+1 >= len(runes) {
		return true
	}
	// A sentence boundary needs following whitespace and then something
	// that starts a new sentence.
	if !unicode.IsSpace(runes[end+1]) {
		return false
	}
	next := nextNonSpace(runes, end+1)
	if next < 0 {
		return true
	}
	if unicode.IsLower(runes[next]) {
		return false
	}
	if runes[i] != '.' {
		return true
	}
	// Decimal numbers: "3.14" never reaches here (no space), but "No. 5"
	// does; treat a known abbreviation before the period as non-terminal.
	if _, ok := abbreviations[strings.ToLower(wordBefore(runes, i))]; ok {
		return false
	}
	// Single-letter initials like "J. K. Rowling".
	if w := wordBefore(runes, i); len([]rune(w)) == 1 && unicode.IsUpper([]rune(w)[0]) {
		return false
	}
	return true
}

func nextNonSpace(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func wordBefore(runes []rune, i int) string {
	end := i
	start := end
	for start > 0 {
		r := runes[start-1]
		if unicode.IsLetter(r) || r == '.' {
			start--
			continue
		}
		break
	}
	return strings.TrimSuffix(string(runes[start:end]), ".")
}
