package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	// Letters (any script), spaces, hyphens and apostrophes.
	personNameRe = regexp.MustCompile(`^[\p{L}][\p{L} '\-]*$`)
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
)

// EscapeSQLWildcards escapes LIKE wildcard characters. Queries using the result
// must declare ESCAPE '\' so SQLite honours the backslash the same way Postgres does.
func EscapeSQLWildcards(input string) string {
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery trims and escapes a search term, lowercases it and wraps
// it with % for a case-insensitive substring match against LOWER(column).
// Returns "" when nothing is left to search for. The term is never shortened.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	return "%" + EscapeSQLWildcards(strings.ToLower(input)) + "%"
}

// SanitizeHTML escapes HTML entities to prevent XSS
func SanitizeHTML(input string) string {
	return html.EscapeString(input)
}

// StripHTML removes all HTML tags from a string
func StripHTML(input string) string {
	return htmlTagRe.ReplaceAllString(input, "")
}

// ValidPersonName accepts letters, spaces, hyphens and apostrophes only.
func ValidPersonName(name string) bool {
	return personNameRe.MatchString(strings.TrimSpace(name))
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// ValidateUsername checks 3-30 characters of letters, digits, '_' or '-'.
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}
