// Package align keeps translated sentence sequences aligned with the
// source subtitle structure.
//
// The Batcher translates the flat source-sentence sequence in
// sentence-count-stable batches, shrinking to single-sentence calls when a
// translation merges or splits sentences. The Reassembler redistributes the
// translated sentences back across the original block boundaries using the
// per-block source sentence counts. Count mismatches are tolerated and
// reported, never fatal.
package align
