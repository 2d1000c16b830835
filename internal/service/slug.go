package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
)

var (
	ErrSlugInvalid  = errors.New("slug is invalid")
	ErrSlugTaken    = errors.New("slug is already in use")
	ErrTitleMissing = errors.New("title is required")
)

var (
	slugDisallowed   = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRepeat = regexp.MustCompile(`-{2,}`)
)

// Slugify transliterates text (Cyrillic included) into a URL slug of at most
// maxLen bytes.
func Slugify(text string, maxLen int) string {
	ascii := strings.ToLower(unidecode.Unidecode(strings.TrimSpace(text)))
	ascii = strings.NewReplacer(" ", "-", "_", "-", "'", "").Replace(ascii)
	ascii = slugDisallowed.ReplaceAllString(ascii, "-")
	ascii = slugHyphenRepeat.ReplaceAllString(ascii, "-")
	ascii = strings.Trim(ascii, "-")

	if maxLen > 0 && len(ascii) > maxLen {
		ascii = strings.TrimRight(ascii[:maxLen], "-")
	}
	return ascii
}

// IsValidSlug reports whether s is lowercase [a-z0-9-] without leading,
// trailing or doubled hyphens.
func IsValidSlug(s string, maxLen int) bool {
	if s == "" || (maxLen > 0 && utf8.RuneCountInString(s) > maxLen) {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}

// resolveSlug returns the explicit slug when given, otherwise one generated
// from the English title and then the Ukrainian one.
func resolveSlug(explicit, titleEN, titleUK string, maxLen int) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(explicit))
	if slug == "" {
		slug = Slugify(titleEN, maxLen)
		if slug == "" {
			slug = Slugify(titleUK, maxLen)
		}
	}
	if !IsValidSlug(slug, maxLen) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}
