package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9 -]+`)
	slugDashRe    = regexp.MustCompile(`[\s-]+`)
)

// GenerateSlug creates a URL-friendly slug from a string
func GenerateSlug(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = slugDashRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug derives a slug from input and appends -2, -3, ... until taken
// reports false. fallback is used when input has no sluggable characters.
func UniqueSlug(input, fallback string, taken func(string) (bool, error)) (string, error) {
	base := GenerateSlug(input)
	if base == "" {
		base = fallback
	}
	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
