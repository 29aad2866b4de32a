// Package segment splits text spans into ordered sentence sequences.
//
// The rule-based segmenter is deterministic: identical input always yields
// identical output, which the alignment layer relies on when it re-counts
// sentences per block.
package segment
