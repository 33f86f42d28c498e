package lexer

import "unicode/utf8"

// isDigit, isAsciiAlpha, isAlphanumeric operate on raw bytes and cover the
// ASCII fast path used by nearly every MIB in the wild.
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isAsciiAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isUpperAlpha(b byte) bool { return b >= 'A' && b <= 'Z' }
func isAlphanumeric(b byte) bool {
	return isAsciiAlpha(b) || isDigit(b)
}

// decodeLetter decodes the rune starting at source[pos] and reports whether
// it belongs to the grammar's LETTER fragment: ASCII letters, Latin-1
// supplement/extended-A letters (U+00C0-U+00FF, U+0100-U+1FFF), and a
// handful of CJK ranges used by vendor MIBs with localized descriptions
// bleeding into identifiers. Returns the rune and its width in bytes; width
// is always >= 1 so callers can always make progress.
func decodeLetter(source []byte, pos int) (r rune, width int, isLetter bool) {
	b := source[pos]
	if b < 0x80 {
		return rune(b), 1, isAsciiAlpha(b)
	}
	r, width = utf8.DecodeRune(source[pos:])
	if r == utf8.RuneError && width <= 1 {
		return r, 1, false
	}
	return r, width, isExtendedLetter(r)
}

// isExtendedLetter reports whether r falls in one of the non-ASCII LETTER
// ranges the grammar admits.
func isExtendedLetter(r rune) bool {
	switch {
	case r >= 0x00C0 && r <= 0x00FF: // Latin-1 Supplement letters
		return true
	case r >= 0x0100 && r <= 0x1FFF: // Latin Extended-A/B, IPA, Greek, Cyrillic, ...
		return true
	case r >= 0x3040 && r <= 0x30FF: // Hiragana, Katakana
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul Syllables
		return true
	default:
		return false
	}
}

// isExtendedAlphanumeric reports whether r may continue an identifier once
// started (letters, decimal digits, hyphen, underscore are handled by the
// caller; this only covers the extended-letter continuation case).
func isExtendedAlphanumeric(r rune) bool {
	return isExtendedLetter(r) || (r >= '0' && r <= '9')
}
