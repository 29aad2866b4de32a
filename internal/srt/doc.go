// Package srt reads and writes SubRip subtitle files as ordered block
// sequences.
//
// Time-range lines are treated as opaque strings and round-trip
// byte-for-byte; only the block structure (index, time range, text) is
// interpreted. Malformed blocks with fewer than three content lines are
// skipped on read, matching common SRT tooling behavior.
package srt
