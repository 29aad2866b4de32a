package wrap

import (
	"strings"
	"unicode/utf8"
)

const (
	// rebalanceMaxMoves bounds the word-shuffling pass so alternating
	// moves cannot flip-flop forever.
	rebalanceMaxMoves = 3
	// rebalanceThreshold is the line-length imbalance (in characters)
	// above which the rebalance pass kicks in.
	rebalanceThreshold = 10
)

// Balance reflows text into at most two display lines under budget
// characters per line. Lengths are measured in runes so accented text is
// not penalized for its UTF-8 encoding. Text that already fits comes back
// unchanged. The split point is chosen as close to the middle as possible,
// preferring a first line that is the same length or shorter than the
// second. When no word boundary satisfies the budget the widest
// word-bounded option is used; the budget is then best-effort, never a
// hard guarantee.
func Balance(text string, budget int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	if budget <= 0 || runeLen(text) <= budget {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	first, second, ok := splitDownFromMid(words, budget)
	if !ok {
		first, second, ok = splitUpFromMid(words, budget)
	}
	if !ok {
		// Word-count bisection as the last resort.
		mid := len(words) / 2
		first = strings.Join(words[:mid], " ")
		second = strings.Join(words[mid:], " ")
	}

	first, second = Rebalance(first, second)
	if runeLen(first)+runeLen(second)+1 <= budget {
		return first + " " + second
	}
	return first + "\n" + second
}

// splitDownFromMid searches from the midpoint word downward for the nearest
// split where both lines fit the budget. Searching down first keeps the
// first line the same length or shorter than the second.
func splitDownFromMid(words []string, budget int) (string, string, bool) {
	for i := len(words) / 2; i >= 1; i-- {
		first := strings.Join(words[:i], " ")
		if runeLen(first) > budget {
			continue
		}
		second := strings.Join(words[i:], " ")
		if runeLen(second) <= budget {
			return first, second, true
		}
	}
	return "", "", false
}

// splitUpFromMid scans upward for the first index where the first line
// overflows the budget and splits one word earlier.
func splitUpFromMid(words []string, budget int) (string, string, bool) {
	for i := len(words)/2 + 1; i < len(words); i++ {
		first := strings.Join(words[:i], " ")
		if runeLen(first) <= budget {
			continue
		}
		if i > 1 {
			return strings.Join(words[:i-1], " "), strings.Join(words[i-1:], " "), true
		}
		break
	}
	return "", "", false
}

// Rebalance moves one word at a time from the longer line to the shorter
// one while the length difference exceeds the threshold. A move that would
// raise the longer line beyond its pre-rebalance maximum is rejected, so
// rebalancing never makes the worst line worse.
func Rebalance(first, second string) (string, string) {
	for i := 0; i < rebalanceMaxMoves; i++ {
		len1, len2 := runeLen(first), runeLen(second)
		diff := len1 - len2
		if diff < 0 {
			diff = -diff
		}
		if diff <= rebalanceThreshold {
			break
		}
		maxBefore := max(len1, len2)

		var next1, next2 string
		if len1 > len2 {
			parts := strings.Fields(first)
			if len(parts) <= 1 {
				break
			}
			moved := parts[len(parts)-1]
			next1 = strings.Join(parts[:len(parts)-1], " ")
			next2 = moved + " " + second
		} else {
			parts := strings.Fields(second)
			if len(parts) <= 1 {
				break
			}
			moved := parts[0]
			next1 = first + " " + moved
			next2 = strings.Join(parts[1:], " ")
		}
		if max(runeLen(next1), runeLen(next2)) > maxBefore {
			break
		}
		first, second = next1, next2
	}
	return strings.TrimSpace(first), strings.TrimSpace(second)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
