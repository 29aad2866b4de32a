package vocab

import (
	"sort"
	"strings"
)

// DefaultMarker wraps protected terms. The section sign survives machine
// translation unaltered in practice, which is the only property required.
const DefaultMarker = '§'

// Protector wraps and unwraps a fixed vocabulary of literal terms so a
// translation engine passes them through untouched.
type Protector struct {
	terms  []string
	marker rune
}

// NewProtector builds a protector over the given terms. Terms are matched
// longest-first so an overlapping shorter term can never corrupt a longer
// one ("React" inside "React Native"). Order among equal-length terms
// follows the caller's order. A zero marker selects DefaultMarker.
func NewProtector(terms []string, marker rune) *Protector {
	if marker == 0 {
		marker = DefaultMarker
	}
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.TrimSpace(term) != "" {
			cleaned = append(cleaned, term)
		}
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})
	return &Protector{terms: cleaned, marker: marker}
}

// Protect replaces every literal occurrence of each vocabulary term with a
// marker-delimited form. The text is scanned left to right and each
// position is claimed by at most one term (the longest match), so a term
// inside an already-protected span is never wrapped twice.
func (p *Protector) Protect(text string) string {
	if len(p.terms) == 0 {
		return text
	}
	marker := string(p.marker)
	var sb strings.Builder
	sb.Grow(len(text) + 16)
	for i := 0; i < len(text); {
		matched := ""
		for _, term := range p.terms {
			if strings.HasPrefix(text[i:], term) {
				matched = term
				break
			}
		}
		if matched == "" {
			sb.WriteByte(text[i])
			i++
			continue
		}
		sb.WriteString(marker)
		sb.WriteString(matched)
		sb.WriteString(marker)
		i += len(matched)
	}
	return sb.String()
}

// Unprotect strips all marker runes. Left inverse of Protect for any text
// not already containing the marker.
func (p *Protector) Unprotect(text string) string {
	return strings.ReplaceAll(text, string(p.marker), "")
}

// Terms returns the vocabulary in match order.
func (p *Protector) Terms() []string {
	out := make([]string, len(p.terms))
	copy(out, p.terms)
	return out
}
