// Package pipeline drives a full subtitle re-translation run: parse,
// segment, translate in aligned batches, reassemble, wrap, and write.
//
// Each run gets a UUID so its log lines and summary can be correlated.
// Parsing and translator failures abort the run; sentence-count drift and
// reassembly shortfall are reported in the summary instead.
package pipeline
