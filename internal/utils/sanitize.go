package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-\s]+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// CleanFilename turns "first_light-take2.mp3" into "first light take2".
func CleanFilename(filename string) string {
	ext := filepath.Ext(filename)
	clean := strings.TrimSuffix(filename, ext)
	clean = strings.ReplaceAll(clean, "_", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	return strings.TrimSpace(clean)
}

// Sanitize keeps letters, digits and dashes, joining words with underscores.
func Sanitize(text, def string) string {
	clean := strings.TrimSpace(unsafeChars.ReplaceAllString(text, ""))
	if clean == "" {
		return def
	}
	return whitespace.ReplaceAllString(clean, "_")
}

// Slugify lowercases text and joins words with dashes: "Tidal Mind" -> "tidal-mind".
func Slugify(text, def string) string {
	clean := strings.TrimSpace(unsafeChars.ReplaceAllString(strings.ToLower(text), ""))
	if clean == "" {
		return def
	}
	return whitespace.ReplaceAllString(clean, "-")
}
