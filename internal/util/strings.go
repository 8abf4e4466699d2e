package util

import "strings"

// CollapseWhitespace replaces every run of whitespace, newlines included,
// with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
