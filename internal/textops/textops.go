// Package textops provides the regex tester and the line-oriented text
// tools: find, replace, filter, deduplicate and sort.
package textops

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Errors returned for malformed patterns.
var (
	ErrInvalidPattern = errors.New("invalid regular expression")
	ErrInvalidFlag    = errors.New("invalid regex flag")
)

// Compile builds a regexp from pattern and a flag string drawn from
// "i" (case-insensitive), "m" (multi-line anchors), "s" (dot matches
// newline) and "g" (accepted for familiarity; every match is always
// returned).
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	var prefix strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(prefix.String(), f) {
				prefix.WriteRune(f)
			}
		case 'g', ' ':
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidFlag, f)
		}
	}
	expr := pattern
	if prefix.Len() > 0 {
		expr = "(?" + prefix.String() + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Match is one regex hit with its byte offset and capture groups.
type Match struct {
	Text   string   `json:"text"`
	Index  int      `json:"index"`
	Groups []string `json:"groups,omitempty"`
}

// FindMatches returns every non-overlapping match of pattern in input.
// An empty pattern matches nothing.
func FindMatches(input, pattern, flags string) ([]Match, error) {
	if pattern == "" {
		return []Match{}, nil
	}
	re, err := Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	out := []Match{}
	for _, loc := range re.FindAllStringSubmatchIndex(input, -1) {
		m := Match{Text: input[loc[0]:loc[1]], Index: loc[0]}
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, input[loc[g]:loc[g+1]])
		}
		out = append(out, m)
	}
	return out, nil
}

// ReplaceRegex replaces every match of pattern. The replacement may use
// $1 / ${name} group references and backslash escapes such as \n and \t.
func ReplaceRegex(input, pattern, replacement, flags string) (string, error) {
	if pattern == "" {
		return input, nil
	}
	re, err := Compile(pattern, flags)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(input, Unescape(replacement)), nil
}

// ReplaceText replaces every literal occurrence of old. Both arguments
// accept backslash escapes.
func ReplaceText(input, old, replacement string) string {
	if old == "" {
		return input
	}
	return strings.ReplaceAll(input, Unescape(old), Unescape(replacement))
}

// KeepLines keeps only the lines matching pattern.
func KeepLines(input, pattern, flags string) (string, error) {
	return filterLines(input, pattern, flags, true)
}

// RemoveLines drops the lines matching pattern.
func RemoveLines(input, pattern, flags string) (string, error) {
	return filterLines(input, pattern, flags, false)
}

func filterLines(input, pattern, flags string, keep bool) (string, error) {
	if pattern == "" {
		return input, nil
	}
	re, err := Compile(pattern, flags)
	if err != nil {
		return "", err
	}
	var out []string
	for _, line := range strings.Split(input, "\n") {
		if re.MatchString(line) == keep {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}

// DedupeLines removes repeated lines, keeping the first occurrence.
func DedupeLines(input string, ignoreCase bool) string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range strings.Split(input, "\n") {
		key := line
		if ignoreCase {
			key = strings.ToLower(line)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// SortOptions controls SortLines.
type SortOptions struct {
	Reverse    bool
	IgnoreCase bool
	// Numeric orders lines by their leading number; lines without one sort
	// after all numbered lines.
	Numeric bool
}

// SortLines sorts lines stably.
func SortLines(input string, opts SortOptions) string {
	lines := strings.Split(input, "\n")
	less := func(a, b string) bool {
		if opts.IgnoreCase {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return a < b
	}
	if opts.Numeric {
		less = func(a, b string) bool {
			na, okA := leadingNumber(a)
			nb, okB := leadingNumber(b)
			switch {
			case okA && okB:
				return na < nb
			case okA != okB:
				return okA
			}
			return a < b
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if opts.Reverse {
			return less(lines[j], lines[i])
		}
		return less(lines[i], lines[j])
	})
	return strings.Join(lines, "\n")
}

var numberPrefix = regexp.MustCompile(`^\s*[-+]?\d+(\.\d+)?`)

func leadingNumber(s string) (float64, bool) {
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	return n, err == nil
}

// TrimLines trims surrounding whitespace from every line.
func TrimLines(input string) string {
	return ApplyLines(input, func(line string) string {
		return strings.TrimFunc(line, unicode.IsSpace)
	})
}

// RemoveEmptyLines drops lines that are empty or whitespace-only.
func RemoveEmptyLines(input string) string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// AddAffixes wraps every line in prefix and suffix. Both accept backslash
// escapes.
func AddAffixes(input, prefix, suffix string) string {
	prefix, suffix = Unescape(prefix), Unescape(suffix)
	return ApplyLines(input, func(line string) string {
		return prefix + line + suffix
	})
}

// ApplyLines runs fn on each '\n'-separated line of input.
func ApplyLines(input string, fn func(string) string) string {
	if input == "" {
		return input
	}
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}
