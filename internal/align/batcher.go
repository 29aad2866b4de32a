package align

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"subtran/internal/segment"
	"subtran/internal/vocab"
)

// Translator produces a target-language rendering of a source-language span.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text string) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Stats records what the batcher did across one run.
type Stats struct {
	SourceSentences     int
	TranslatedSentences int
	TranslatorCalls     int
	Mismatches          int
}

// Batcher translates a sentence sequence while keeping the sentence count
// stable wherever the translator cooperates.
type Batcher struct {
	MaxSentences int
	MaxChars     int
	Translator   Translator
	Segmenter    segment.Segmenter
	Protector    *vocab.Protector
	Logger       *slog.Logger
}

// Run translates sentences in order and returns the full translated
// sequence. Batches start at MaxSentences; when the translated sentence
// count disagrees with the batch size the batch drops straight to a single
// sentence (intermediate sizes rarely recover alignment and each one costs
// a translator call). At batch size one the result is accepted whatever
// its count, so the cursor always advances and the run always terminates.
func (b *Batcher) Run(ctx context.Context, sentences []string) ([]string, Stats, error) {
	stats := Stats{SourceSentences: len(sentences)}
	if len(sentences) == 0 {
		return nil, stats, nil
	}
	if b.Translator == nil {
		return nil, stats, fmt.Errorf("run batcher: no translator configured")
	}
	if b.Segmenter == nil {
		return nil, stats, fmt.Errorf("run batcher: no segmenter configured")
	}
	maxSentences := b.MaxSentences
	if maxSentences < 1 {
		maxSentences = 1
	}

	log := b.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var out []string
	cursor := 0
	for cursor < len(sentences) {
		attempt := min(maxSentences, len(sentences)-cursor)
		for {
			batch := sentences[cursor : cursor+attempt]
			// A lone sentence is translated even when it blows the
			// character budget; there is nothing smaller to try.
			if attempt > 1 && b.MaxChars > 0 && totalChars(batch) > b.MaxChars {
				attempt--
				continue
			}
			got, err := b.translateBatch(ctx, batch)
			if err != nil {
				return nil, stats, err
			}
			stats.TranslatorCalls++
			if len(got) != attempt {
				stats.Mismatches++
				if attempt > 1 {
					log.Debug("sentence count mismatch, dropping to single sentences",
						"cursor", cursor, "batch", attempt, "got", len(got))
					attempt = 1
					continue
				}
				log.Warn("translation drifted on single sentence",
					"cursor", cursor, "got", len(got))
			}
			out = append(out, got...)
			cursor += attempt
			break
		}
	}
	stats.TranslatedSentences = len(out)
	return out, stats, nil
}

// translateBatch sends one batch through the translator and segments the
// result back into sentences. Protected terms are wrapped before the call
// and unwrapped afterwards.
func (b *Batcher) translateBatch(ctx context.Context, batch []string) ([]string, error) {
	text := strings.Join(batch, " ")
	if b.Protector != nil {
		text = b.Protector.Protect(text)
	}
	translated, err := b.Translator.Translate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("translate batch of %d: %w", len(batch), err)
	}
	if b.Protector != nil {
		translated = b.Protector.Unprotect(translated)
	}
	return b.Segmenter.Segment(translated), nil
}

func totalChars(batch []string) int {
	n := 0
	for _, s := range batch {
		n += len([]rune(s))
	}
	return n
}
