// Package memory persists translated sentences in a SQLite database so
// repeated runs over the same material skip the engine entirely.
//
// Entries are keyed by language pair and a SHA-256 digest of the source
// text. The cache is strictly an optimization; every operation degrades to
// a miss on error paths that do not threaten the database itself.
package memory
