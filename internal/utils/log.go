package utils

import "strings"

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// CollapseSpaces folds every run of whitespace into a single space so
// multi-line documents render on one log line.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Preview is TruncateForLog applied to the collapsed text.
func Preview(s string, limit int) string {
	return TruncateForLog(CollapseSpaces(s), limit)
}
