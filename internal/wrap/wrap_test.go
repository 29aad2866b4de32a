package wrap

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBalanceShortTextUnchanged(t *testing.T) {
	tests := []string{
		"",
		"Hi.",
		"Fits comfortably on one line.",
	}
	for _, text := range tests {
		if got := Balance(text, 65); got != text {
			t.Errorf("Balance(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestBalanceNormalizesWhitespace(t *testing.T) {
	got := Balance("  spaced   out\ttext  ", 65)
	if got != "spaced out text" {
		t.Errorf("Balance() = %q", got)
	}
}

func TestBalanceSplitsLongText(t *testing.T) {
	text := "This sentence is clearly much too long to fit on a single subtitle line."
	got := Balance(text, 40)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Balance() produced %d lines, want 2: %q", len(lines), got)
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n > 40 {
			t.Errorf("line %d length %d exceeds budget: %q", i+1, n, line)
		}
	}
	if len(lines[0]) > len(lines[1])+rebalanceThreshold {
		t.Errorf("first line much longer than second: %q / %q", lines[0], lines[1])
	}
	rejoined := strings.ReplaceAll(got, "\n", " ")
	if rejoined != text {
		t.Errorf("wrap altered text: %q != %q", rejoined, text)
	}
}

// Accented text is measured in runes, not bytes: this line is 53 runes but
// 71 bytes, and must come back unchanged under a 65-character budget.
func TestBalanceAccentedTextWithinBudgetUnchanged(t *testing.T) {
	text := "Árvíztűrő tükörfúrógép és az őrült hűtőgép hűvös ügye"
	if n := utf8.RuneCountInString(text); n > 65 {
		t.Fatalf("fixture is %d runes, want at most 65", n)
	}
	if len(text) <= 65 {
		t.Fatalf("fixture is %d bytes, want more than 65", len(text))
	}
	if got := Balance(text, 65); got != text {
		t.Errorf("Balance() = %q, want unchanged", got)
	}
}

func TestBalanceSplitsAccentedTextOnRuneBudget(t *testing.T) {
	text := "Árvíztűrő tükörfúrógép és az őrült hűtőgép hűvös ügye megint előkerült a hétfői értekezleten"
	got := Balance(text, 50)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Balance() produced %d lines, want 2: %q", len(lines), got)
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n > 50 {
			t.Errorf("line %d is %d runes, exceeds budget: %q", i+1, n, line)
		}
	}
	if rejoined := strings.ReplaceAll(got, "\n", " "); rejoined != text {
		t.Errorf("wrap altered text: %q != %q", rejoined, text)
	}
}

func TestBalanceNeverMoreThanTwoLines(t *testing.T) {
	text := strings.Repeat("word ", 60)
	got := Balance(text, 30)
	if n := strings.Count(got, "\n"); n > 1 {
		t.Errorf("Balance() produced %d breaks, want at most 1", n)
	}
}

func TestBalanceUnsatisfiableBudget(t *testing.T) {
	// No word boundary keeps both lines under budget; the widest
	// word-bounded option is still a two-line split.
	text := "supercalifragilistic expialidocious"
	got := Balance(text, 10)
	if !strings.Contains(got, "\n") {
		t.Errorf("Balance() = %q, want a two-line split", got)
	}
}

func TestRebalanceReducesImbalance(t *testing.T) {
	first := "a noticeably much longer first line here"
	second := "short tail"
	before := max(len(first), len(second))
	got1, got2 := Rebalance(first, second)
	after := max(len(got1), len(got2))
	if after > before {
		t.Errorf("rebalance increased max line length: %d > %d", after, before)
	}
	diffBefore := len(first) - len(second)
	diffAfter := got1 != first || got2 != second
	if diffBefore > rebalanceThreshold && !diffAfter {
		t.Errorf("rebalance left %q / %q untouched", got1, got2)
	}
}

func TestRebalanceLeavesBalancedLines(t *testing.T) {
	first, second := "evenly sized line", "another even line"
	got1, got2 := Rebalance(first, second)
	if got1 != first || got2 != second {
		t.Errorf("Rebalance() = %q / %q, want unchanged", got1, got2)
	}
}

func TestRebalanceSingleWordLine(t *testing.T) {
	got1, got2 := Rebalance("incomprehensibilities", "a")
	if got1 == "" || got2 == "" {
		t.Errorf("Rebalance() emptied a line: %q / %q", got1, got2)
	}
}
