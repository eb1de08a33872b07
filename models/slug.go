package models

import (
	"regexp"
	"strings"
)

var (
	slugStripRe  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`--+`)
)

// Slugify derives a URL-safe slug from a title: lowercased, punctuation
// stripped, whitespace runs collapsed to single hyphens, repeated hyphens
// collapsed, surrounding hyphens trimmed.
//
// It runs only at creation and only when no explicit slug was supplied;
// later title edits never recompute the slug. Uniqueness is intentionally
// not enforced anywhere: two posts may share a slug and lookups by slug
// return the first match.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
