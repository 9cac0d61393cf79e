// Package textstyle converts text between letter cases and decorative
// Unicode styles.
package textstyle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// ErrUnknownStyle is returned by Apply for an unregistered style name.
var ErrUnknownStyle = errors.New("unknown style")

// Style is a named, pure text transformation.
type Style struct {
	Name    string
	Summary string
	fn      func(string) string
}

// Transform applies the style to text.
func (s Style) Transform(text string) string {
	if s.fn == nil {
		return text
	}
	return s.fn(text)
}

// Substitute returns text with every rune found in m replaced.
func Substitute(text string, m CharMap) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if v, ok := m.Lookup(r); ok {
			b.WriteRune(v)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reverse returns text with its runes in reverse order.
func Reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Flip reverses text and then remaps it through m, so the result reads
// left to right once rendered.
func Flip(text string, m CharMap) string {
	return Substitute(Reverse(text), m)
}

// Overlay appends a combining mark after every rune, whitespace included.
func Overlay(text string, mark rune) string {
	var b strings.Builder
	b.Grow(len(text) * 3)
	for _, r := range text {
		b.WriteRune(r)
		b.WriteRune(mark)
	}
	return b.String()
}

// Upper converts text to upper case one rune at a time, so the length never
// changes ("ß" stays "ß").
func Upper(text string) string { return strings.Map(unicode.ToUpper, text) }

// Lower converts text to lower case one rune at a time.
func Lower(text string) string { return strings.Map(unicode.ToLower, text) }

// Title capitalizes every word except the small function words, which stay
// lower case unless they are the first word.
func Title(text string) string {
	n := 0
	return mapWords(Lower(text), func(word string) string {
		n++
		if n > 1 && smallWords[trimPunct(word)] {
			return word
		}
		return capitalizeFirst(word)
	})
}

// Capitalize capitalizes the first letter of every word.
func Capitalize(text string) string {
	return mapWords(Lower(text), capitalizeFirst)
}

// Sentence lower-cases text and capitalizes the first letter of the text and
// the first letter after any '.', '!' or '?' that is followed by whitespace.
func Sentence(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	capNext := true
	terminated := false
	for _, r := range Lower(text) {
		switch {
		case unicode.IsLetter(r):
			if capNext {
				r = unicode.ToUpper(r)
				capNext = false
			}
			terminated = false
		case r == '.' || r == '!' || r == '?':
			terminated = true
		case unicode.IsSpace(r):
			if terminated {
				capNext = true
			}
		default:
			terminated = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Alternating produces "aLtErNaTiNg" case, counting letters only.
func Alternating(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			if i%2 == 0 {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			i++
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Inverse swaps the case of every letter.
func Inverse(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, text)
}

// Fullwidth converts ASCII to the Halfwidth and Fullwidth Forms block.
func Fullwidth(text string) string {
	return width.Widen.String(text)
}

func substitution(m CharMap) func(string) string {
	return func(text string) string { return Substitute(text, m) }
}

func flipped(m CharMap) func(string) string {
	return func(text string) string { return Flip(text, m) }
}

func overlay(mark rune) func(string) string {
	return func(text string) string { return Overlay(text, mark) }
}

var registry = func() map[string]Style {
	styles := []Style{
		{"upper", "UPPER CASE", Upper},
		{"lower", "lower case", Lower},
		{"title", "Title Case with small words kept lower", Title},
		{"sentence", "Sentence case", Sentence},
		{"capitalize", "Capitalize Every Word", Capitalize},
		{"alternating", "aLtErNaTiNg case", Alternating},
		{"inverse", "iNVERSE cASE", Inverse},
		{"bold", "Mathematical bold", substitution(Bold)},
		{"italic", "Mathematical italic", substitution(Italic)},
		{"bold-italic", "Mathematical bold italic", substitution(BoldItalic)},
		{"cursive", "Mathematical script", substitution(Script)},
		{"bold-cursive", "Mathematical bold script", substitution(BoldScript)},
		{"fraktur", "Mathematical fraktur", substitution(Fraktur)},
		{"double-struck", "Mathematical double-struck", substitution(DoubleStruck)},
		{"sans-bold", "Mathematical sans-serif bold", substitution(SansBold)},
		{"monospace", "Mathematical monospace", substitution(Monospace)},
		{"small-caps", "Small capitals", substitution(SmallCaps)},
		{"upside-down", "Rotated 180 degrees", flipped(UpsideDown)},
		{"mirror", "Mirrored horizontally", flipped(Mirror)},
		{"strikethrough", "Combining long stroke overlay", overlay(MarkStrikethrough)},
		{"underline", "Combining low line", overlay(MarkUnderline)},
		{"double-underline", "Combining double low line", overlay(MarkDoubleUnderline)},
		{"fullwidth", "Fullwidth forms", Fullwidth},
	}
	m := make(map[string]Style, len(styles))
	for _, s := range styles {
		m[s.Name] = s
	}
	return m
}()

// Lookup returns the style registered under name.
func Lookup(name string) (Style, bool) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns every registered style name in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply transforms text with the named style.
func Apply(text, name string) (string, error) {
	s, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s.Transform(text), nil
}

// mapWords applies fn to each run of non-space runes, keeping the
// whitespace between them intact.
func mapWords(text string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(text))
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				b.WriteString(fn(text[start:i]))
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.WriteString(fn(text[start:]))
	}
	return b.String()
}

func capitalizeFirst(word string) string {
	for i, r := range word {
		if unicode.IsLetter(r) {
			return word[:i] + string(unicode.ToUpper(r)) + word[i+utf8.RuneLen(r):]
		}
	}
	return word
}

func trimPunct(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
