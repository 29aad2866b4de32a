// Package language provides unified language code normalization and naming.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names)
// are consolidated here so config validation, the engine client, and run
// summaries agree on what a language code means.
package language
