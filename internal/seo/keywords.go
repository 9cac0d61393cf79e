package seo

import (
	"regexp"
	"slices"
	"strings"
)

var keywordSplit = regexp.MustCompile(`[,\n]`)

// CleanOptions selects the stricter keyword cleaning behaviour.
type CleanOptions struct {
	// Dedupe drops case-insensitive repeats, keeping the first spelling.
	Dedupe bool
	// Sort orders the list case-insensitively.
	Sort bool
}

// CleanKeywordList splits list on commas and newlines and returns the
// trimmed, non-empty entries.
func CleanKeywordList(list string, opts CleanOptions) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, part := range keywordSplit.Split(list, -1) {
		kw := strings.TrimSpace(part)
		if kw == "" {
			continue
		}
		if opts.Dedupe {
			key := strings.ToLower(kw)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, kw)
	}
	if opts.Sort {
		slices.SortStableFunc(out, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
	}
	return out
}

// CleanKeywords normalises a comma or newline separated list into a single
// ", " separated line.
func CleanKeywords(list string) string {
	return strings.Join(CleanKeywordList(list, CleanOptions{}), ", ")
}

// Prefixes are placed before the seed, in this order.
var Prefixes = []string{
	"how to",
	"best",
	"top",
	"guide to",
	"what is",
	"why",
	"tips for",
	"ideas for",
	"benefits of",
	"examples of",
	"free",
	"cheap",
	"easy",
	"online",
}

// Suffixes are placed after the seed when expansion is bidirectional.
var Suffixes = []string{
	"for beginners",
	"guide",
	"tips",
	"ideas",
	"examples",
	"tutorial",
	"checklist",
	"near me",
	"online",
	"free",
}

// LongTail combines seed with every prefix modifier, and with every suffix
// modifier when bidirectional is set. Order follows the modifier lists.
func LongTail(seed string, bidirectional bool) []string {
	seed = strings.Join(strings.Fields(seed), " ")
	if seed == "" {
		return []string{}
	}
	out := make([]string, 0, len(Prefixes)+len(Suffixes))
	for _, m := range Prefixes {
		out = append(out, m+" "+seed)
	}
	if bidirectional {
		for _, m := range Suffixes {
			out = append(out, seed+" "+m)
		}
	}
	return out
}
