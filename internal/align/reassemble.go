package align

import (
	"strings"

	"subtran/internal/segment"
	"subtran/internal/srt"
)

// Reassemble distributes translated sentences back across the original
// blocks. Each block takes as many sentences from the pool as the segmenter
// finds in its source text; index and time range are carried over untouched.
// The returned shortfall is the number of source sentences for which the
// pool ran dry. Surplus sentences left in the pool after the last block are
// dropped.
func Reassemble(blocks []srt.Block, seg segment.Segmenter, translated []string) ([]srt.Block, int) {
	out := make([]srt.Block, 0, len(blocks))
	shortfall := 0
	pool := translated
	for _, b := range blocks {
		want := len(seg.Segment(b.Text))
		take := want
		if take > len(pool) {
			shortfall += take - len(pool)
			take = len(pool)
		}
		// Blocks past the end of the pool come out empty; timing is
		// kept so the file stays structurally intact.
		text := strings.Join(pool[:take], " ")
		pool = pool[take:]
		out = append(out, srt.Block{Index: b.Index, TimeRange: b.TimeRange, Text: text})
	}
	return out, shortfall
}
