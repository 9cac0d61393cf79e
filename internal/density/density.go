// Package density ranks keywords by frequency and measures keyword density.
package density

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textstats"
)

// MinTokenLength is the shortest token kept in rankings. Shorter tokens still
// count towards the total word count.
const MinTokenLength = 4

// Common ranking sizes used by the catalog.
const (
	InlineTop   = 8
	AnalyzerTop = 20
)

var tokenPattern = regexp.MustCompile(`\b\w+\b`)

// Entry is one ranked keyword.
type Entry struct {
	Token   string  `json:"token"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Report is the result of ranking a text.
type Report struct {
	TotalWords int     `json:"total_words"`
	Entries    []Entry `json:"entries"`
}

// Match is the density of a single keyword.
type Match struct {
	Keyword     string  `json:"keyword"`
	Count       int     `json:"count"`
	TotalTokens int     `json:"total_tokens"`
	Percent     float64 `json:"percent"`
}

// Tokens extracts lower-cased word tokens from text
func Tokens(text string) []string {
	found := tokenPattern.FindAllString(text, -1)
	for i, tok := range found {
		found[i] = strings.ToLower(tok)
	}
	return found
}

// Rank counts every token of at least MinTokenLength characters and returns
// them by descending count. Ties keep first-seen order. A limit <= 0 returns
// every entry.
func Rank(text string, limit int) Report {
	total := textstats.WordCount(text)
	report := Report{TotalWords: total, Entries: []Entry{}}
	if total == 0 {
		return report
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokens(text) {
		if len(tok) < MinTokenLength {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	entries := make([]Entry, 0, len(order))
	for _, tok := range order {
		entries = append(entries, Entry{
			Token:   tok,
			Count:   counts[tok],
			Percent: Percent(counts[tok], total),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	report.Entries = entries
	return report
}

// Lookup counts case-insensitive occurrences of keyword in text. A keyword of
// several words matches consecutive tokens.
func Lookup(text, keyword string) Match {
	tokens := Tokens(text)
	needle := Tokens(keyword)
	m := Match{Keyword: strings.TrimSpace(keyword), TotalTokens: len(tokens)}
	if len(needle) == 0 || len(tokens) == 0 {
		return m
	}

	for i := 0; i+len(needle) <= len(tokens); i++ {
		if matchAt(tokens, needle, i) {
			m.Count++
		}
	}
	m.Percent = Percent(m.Count, len(tokens))
	return m
}

// Percent returns count/total*100 rounded to two decimals; 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}

func matchAt(tokens, needle []string, at int) bool {
	for j, n := range needle {
		if tokens[at+j] != n {
			return false
		}
	}
	return true
}
