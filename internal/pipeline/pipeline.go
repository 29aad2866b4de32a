package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"subtran/internal/align"
	"subtran/internal/config"
	"subtran/internal/memory"
	"subtran/internal/segment"
	"subtran/internal/srt"
	"subtran/internal/vocab"
	"subtran/internal/wrap"
)

// Options collects pipeline dependencies.
type Options struct {
	Config     *config.Config
	Translator align.Translator
	Memory     *memory.Store
	Logger     *slog.Logger
}

// Summary reports what a run did. It is always produced on success so
// silent sentence drift stays visible.
type Summary struct {
	RunID               string
	InputPath           string
	OutputPath          string
	Blocks              int
	SourceSentences     int
	TranslatedSentences int
	TranslatorCalls     int
	Mismatches          int
	Shortfall           int
	MemoryHits          int
	Duration            time.Duration
	DryRun              bool
}

// Drift is the difference between translated and source sentence counts.
func (s *Summary) Drift() int {
	return s.TranslatedSentences - s.SourceSentences
}

// Pipeline runs subtitle re-translations.
type Pipeline struct {
	cfg        *config.Config
	translator align.Translator
	store      *memory.Store
	logger     *slog.Logger
	segmenter  segment.Segmenter
}

// New constructs a pipeline from options.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline requires config")
	}
	if opts.Translator == nil {
		return nil, errors.New("pipeline requires a translator")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		cfg:        opts.Config,
		translator: opts.Translator,
		store:      opts.Memory,
		logger:     logger,
		segmenter:  segment.NewRules(),
	}, nil
}

// Run translates the subtitle file at inputPath and writes the result to
// outputPath. With dryRun set, everything happens except the final write.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string, dryRun bool) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)

	summary := &Summary{
		RunID:      runID,
		InputPath:  inputPath,
		OutputPath: outputPath,
		DryRun:     dryRun,
	}

	blocks, err := srt.ParseFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("parse subtitle file: %w", err)
	}
	summary.Blocks = len(blocks)
	log.Info("parsed subtitle file",
		"input", inputPath,
		"blocks", len(blocks),
		"source", p.cfg.Languages.Source,
		"target", p.cfg.Languages.Target)

	sentences := make([]string, 0, len(blocks))
	for _, b := range blocks {
		sentences = append(sentences, p.segmenter.Segment(b.Text)...)
	}

	translator := p.translator
	var cache *cachedTranslator
	if p.store != nil {
		cache = newCachedTranslator(translator, p.store, p.cfg.Languages.Source, p.cfg.Languages.Target)
		translator = cache
	}

	batcher := &align.Batcher{
		MaxSentences: p.cfg.Batch.MaxSentences,
		MaxChars:     p.cfg.Batch.MaxChars,
		Translator:   translator,
		Segmenter:    p.segmenter,
		Protector:    vocab.NewProtector(p.cfg.Vocabulary.ProtectedTerms, markerRune(p.cfg.Vocabulary.Marker)),
		Logger:       log.With("component", "batcher"),
	}

	translated, stats, err := batcher.Run(ctx, sentences)
	if err != nil {
		return nil, err
	}
	summary.SourceSentences = stats.SourceSentences
	summary.TranslatedSentences = stats.TranslatedSentences
	summary.TranslatorCalls = stats.TranslatorCalls
	summary.Mismatches = stats.Mismatches
	if cache != nil {
		summary.MemoryHits = cache.Hits()
	}

	out, shortfall := align.Reassemble(blocks, p.segmenter, translated)
	summary.Shortfall = shortfall
	if shortfall > 0 {
		log.Warn("translated sentence pool ran dry during reassembly",
			"shortfall", shortfall)
	}

	if p.cfg.Format.Wrap {
		for i := range out {
			out[i].Text = wrap.Balance(out[i].Text, p.cfg.Format.MaxCharsPerLine)
		}
	}

	if !dryRun {
		if err := srt.WriteFile(outputPath, out); err != nil {
			return nil, fmt.Errorf("write subtitle file: %w", err)
		}
	}

	summary.Duration = time.Since(start)
	log.Info("run complete",
		"output", outputPath,
		"sentences", summary.SourceSentences,
		"translated", summary.TranslatedSentences,
		"calls", summary.TranslatorCalls,
		"mismatches", summary.Mismatches,
		"memory_hits", summary.MemoryHits,
		"duration", summary.Duration,
		"dry_run", dryRun)
	return summary, nil
}

func markerRune(marker string) rune {
	for _, r := range marker {
		return r
	}
	return vocab.DefaultMarker
}
