package util

import "unicode"

func IsNumber(r rune) bool {
	return r >= '0' && r <= '9'
}

func IsHexNumber(r rune) bool {
	return IsNumber(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func IsUnderScore(r rune) bool {
	return r == '_'
}

// IsLetter accepts any unicode letter, so macron spellings like "fīō" scan as one word.
func IsLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func IsLetterOrUnderscore(r rune) bool {
	return IsLetter(r) || IsUnderScore(r)
}

func IsLetterOrUnderscoreOrNumber(r rune) bool {
	return IsLetter(r) || IsUnderScore(r) || IsNumber(r)
}

func IsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v'
}
