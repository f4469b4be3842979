package buffer

import "unicode"

// isNonWordRune classifies whitespace and the sentence-punctuation set
// [\s,.;!?] as non-word for the DELETE_WORD_LEFT / DELETE_WORD_RIGHT word
// motions. Generalised from the teacher's isWordChar/isWhiteSpace helpers
// in core/cursor.go, which back its vim-style w/e/b motions.
func isNonWordRune(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', ';', '!', '?':
		return true
	}
	return false
}
