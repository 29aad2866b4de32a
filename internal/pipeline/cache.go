package pipeline

import (
	"context"
	"sync/atomic"

	"subtran/internal/align"
	"subtran/internal/memory"
)

// cachedTranslator consults the translation memory before calling the
// engine and records fresh results afterwards. Memory errors degrade to
// cache misses; only the engine call itself can fail the run.
type cachedTranslator struct {
	inner  align.Translator
	store  *memory.Store
	source string
	target string
	hits   atomic.Int64
}

func newCachedTranslator(inner align.Translator, store *memory.Store, source, target string) *cachedTranslator {
	return &cachedTranslator{inner: inner, store: store, source: source, target: target}
}

func (c *cachedTranslator) Translate(ctx context.Context, text string) (string, error) {
	if cached, found, err := c.store.Lookup(ctx, c.source, c.target, text); err == nil && found {
		c.hits.Add(1)
		return cached, nil
	}
	translated, err := c.inner.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	_ = c.store.Save(ctx, c.source, c.target, text, translated)
	return translated, nil
}

func (c *cachedTranslator) Hits() int {
	return int(c.hits.Load())
}
