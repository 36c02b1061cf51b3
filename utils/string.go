package utils

import "unicode/utf8"

// TruncateString cuts input to at most max bytes without splitting a rune.
func TruncateString(input *string, max *uint16) {
	if len(*input) <= int(*max) {
		return
	}
	cut := int(*max)
	for cut > 0 && !utf8.RuneStart((*input)[cut]) {
		cut--
	}
	*input = (*input)[0:cut]
}
