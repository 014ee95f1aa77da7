// Package utils provides common string helpers shared by the loader and normalizer.
package utils

import "strings"

const byteOrderMark = "\ufeff"

// TrimWhitespace removes leading and trailing whitespace.
func TrimWhitespace(str string) string {
	return strings.TrimSpace(str)
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims the ends.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TrimBOM strips a leading UTF-8 byte order mark.
func TrimBOM(str string) string {
	return strings.TrimPrefix(str, byteOrderMark)
}

// IsBlank reports whether str is empty or whitespace only.
func IsBlank(str string) bool {
	return strings.TrimSpace(str) == ""
}

// TruncateString truncates str to maxLength runes, appending "..." when cut.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
