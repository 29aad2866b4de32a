// Package vocab shields protected terms from translation by wrapping them
// in marker runes the translation engine treats as opaque.
package vocab
