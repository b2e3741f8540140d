// Package sanitize post-processes raw model output into display-safe text.
// The system prompt already forbids dashes and markdown emphasis, but models
// drift, so the reply is scrubbed again on the way out.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	bold      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italic    = regexp.MustCompile(`\*([^*]+)\*`)
	underBold = regexp.MustCompile(`__([^_]+)__`)
	underItal = regexp.MustCompile(`_([^_]+)_`)
	dashRunes = strings.NewReplacer("—", "-", "–", "-")
)

// Clean normalizes em/en dashes to plain hyphens, strips paired emphasis
// markers while keeping the enclosed text, and trims surrounding whitespace.
// Idempotent. Asymmetric markers are left as literal text.
func Clean(text string) string {
	cleaned := dashRunes.Replace(text)

	// Double markers first; the patterns are disjoint from the single ones.
	cleaned = bold.ReplaceAllString(cleaned, "$1")
	cleaned = italic.ReplaceAllString(cleaned, "$1")
	cleaned = underBold.ReplaceAllString(cleaned, "$1")
	cleaned = underItal.ReplaceAllString(cleaned, "$1")

	return strings.TrimSpace(cleaned)
}
