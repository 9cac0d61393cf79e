// Package seo holds slug and keyword list utilities.
package seo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// SlugOptions tunes SlugWith.
type SlugOptions struct {
	// Transliterate folds accented letters to their base letter ("café" ->
	// "cafe") before non-ASCII characters are dropped.
	Transliterate bool
	// Separator replaces the default hyphen.
	Separator string
}

// Slug lower-cases text, drops everything except word characters, whitespace
// and hyphens, and joins the remaining words with single hyphens. Any Unicode
// space, NBSP included, separates words.
func Slug(text string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, strings.ToLower(text))
	s = strings.TrimSpace(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugWith is Slug with options.
func SlugWith(text string, opts SlugOptions) string {
	if opts.Transliterate {
		text = Fold(text)
	}
	s := Slug(text)
	if opts.Separator != "" && opts.Separator != "-" {
		s = strings.ReplaceAll(s, "-", opts.Separator)
	}
	return s
}

// Fold strips combining marks after canonical decomposition.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
