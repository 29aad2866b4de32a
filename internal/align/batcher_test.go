package align

import (
	"context"
	"errors"
	"strings"
	"testing"

	"subtran/internal/segment"
	"subtran/internal/vocab"
)

func newBatcher(tr Translator) *Batcher {
	return &Batcher{
		MaxSentences: 5,
		MaxChars:     512,
		Translator:   tr,
		Segmenter:    segment.NewRules(),
	}
}

func identity() Translator {
	return TranslatorFunc(func(_ context.Context, text string) (string, error) {
		return text, nil
	})
}

func TestBatcherEmptyInput(t *testing.T) {
	b := newBatcher(identity())
	out, stats, err := b.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no output, got %v", out)
	}
	if stats.TranslatorCalls != 0 {
		t.Fatalf("expected zero translator calls, got %d", stats.TranslatorCalls)
	}
}

func TestBatcherIdentityConsumesAll(t *testing.T) {
	sentences := []string{
		"First thing happened.",
		"Then another.",
		"After that a third.",
		"Almost done now.",
		"One more to go.",
		"Here is the sixth.",
		"And the last one.",
	}
	b := newBatcher(identity())
	out, stats, err := b.Run(context.Background(), sentences)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != len(sentences) {
		t.Fatalf("expected %d sentences, got %d: %v", len(sentences), len(out), out)
	}
	for i, s := range sentences {
		if out[i] != s {
			t.Errorf("sentence %d: got %q want %q", i, out[i], s)
		}
	}
	// 5 sentences in the first call, 2 in the second.
	if stats.TranslatorCalls != 2 {
		t.Errorf("expected 2 translator calls, got %d", stats.TranslatorCalls)
	}
	if stats.Mismatches != 0 {
		t.Errorf("expected no mismatches, got %d", stats.Mismatches)
	}
	if stats.SourceSentences != 7 || stats.TranslatedSentences != 7 {
		t.Errorf("stats counts wrong: %+v", stats)
	}
}

// A translator that always collapses its input to one sentence forces the
// batcher down to single-sentence calls, and the run must still finish.
func TestBatcherAlwaysMergingTranslatorTerminates(t *testing.T) {
	merge := TranslatorFunc(func(_ context.Context, _ string) (string, error) {
		return "Mind egyben.", nil
	})
	sentences := []string{"One here.", "Two here.", "Three here."}
	b := newBatcher(merge)
	out, stats, err := b.Run(context.Background(), sentences)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != len(sentences) {
		t.Fatalf("expected %d merged results, got %d: %v", len(sentences), len(out), out)
	}
	// Cursor 0 tries 3 then drops to 1, cursor 1 tries 2 then drops to 1,
	// cursor 2 goes straight to a matching single-sentence call.
	if stats.TranslatorCalls != 5 {
		t.Errorf("expected 5 translator calls, got %d", stats.TranslatorCalls)
	}
	if stats.Mismatches != 2 {
		t.Errorf("expected 2 mismatches, got %d", stats.Mismatches)
	}
}

// Drift on a single-sentence batch is accepted as-is, so the pool can end
// up longer or shorter than the source.
func TestBatcherAcceptsDriftAtSingleSentence(t *testing.T) {
	split := TranslatorFunc(func(_ context.Context, _ string) (string, error) {
		return "Első fele. Második fele.", nil
	})
	b := newBatcher(split)
	b.MaxSentences = 1
	out, stats, err := b.Run(context.Background(), []string{"Whole thing."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sentences, got %v", out)
	}
	if stats.Mismatches != 1 {
		t.Errorf("expected 1 mismatch, got %d", stats.Mismatches)
	}
}

func TestBatcherCharBudgetShrinksBatch(t *testing.T) {
	long := strings.Repeat("x", 40)
	sentences := []string{
		"Alpha " + long + ".",
		"Beta " + long + ".",
		"Gamma " + long + ".",
	}
	var sizes []int
	tr := TranslatorFunc(func(_ context.Context, text string) (string, error) {
		sizes = append(sizes, len(segment.NewRules().Segment(text)))
		return text, nil
	})
	b := newBatcher(tr)
	b.MaxChars = 100 // fits two sentences, not three
	out, _, err := b.Run(context.Background(), sentences)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 sentences, got %v", out)
	}
	for _, n := range sizes {
		if n > 2 {
			t.Errorf("batch of %d sentences exceeded the character budget", n)
		}
	}
}

// A sentence longer than the whole character budget still gets translated
// on its own rather than being skipped.
func TestBatcherOversizedSentenceStillTranslated(t *testing.T) {
	huge := "Word " + strings.Repeat("y", 200) + "."
	b := newBatcher(identity())
	b.MaxChars = 50
	out, stats, err := b.Run(context.Background(), []string{huge, "Short one."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sentences, got %v", out)
	}
	if stats.TranslatorCalls != 2 {
		t.Errorf("expected 2 translator calls, got %d", stats.TranslatorCalls)
	}
}

func TestBatcherTranslatorErrorAborts(t *testing.T) {
	boom := errors.New("engine unavailable")
	tr := TranslatorFunc(func(_ context.Context, _ string) (string, error) {
		return "", boom
	})
	b := newBatcher(tr)
	_, _, err := b.Run(context.Background(), []string{"Anything."})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped translator error, got %v", err)
	}
}

func TestBatcherProtectsTermsAcrossCall(t *testing.T) {
	var seen string
	tr := TranslatorFunc(func(_ context.Context, text string) (string, error) {
		seen = text
		return text, nil
	})
	b := newBatcher(tr)
	b.Protector = vocab.NewProtector([]string{"TypeScript"}, vocab.DefaultMarker)
	out, _, err := b.Run(context.Background(), []string{"We use TypeScript daily."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(seen, "§TypeScript§") {
		t.Errorf("term was not protected on the wire: %q", seen)
	}
	if len(out) != 1 || strings.ContainsRune(out[0], '§') {
		t.Errorf("marker leaked into output: %v", out)
	}
}
