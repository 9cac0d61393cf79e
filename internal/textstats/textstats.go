// Package textstats counts words, characters, sentences and paragraphs.
package textstats

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	// ReadingWPM is the reading speed used for ReadingTimeMinutes.
	ReadingWPM = 200
	// SpeakingWPM is the speaking speed used for SpeakingTimeMinutes.
	SpeakingWPM = 130
)

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n{2,}`)
)

// Stats holds the counts derived from a single input string
type Stats struct {
	Words               int `json:"words"`
	Characters          int `json:"characters"`
	CharactersNoSpaces  int `json:"characters_no_spaces"`
	Sentences           int `json:"sentences"`
	Paragraphs          int `json:"paragraphs"`
	Lines               int `json:"lines"`
	ReadingTimeMinutes  int `json:"reading_time_minutes"`
	SpeakingTimeMinutes int `json:"speaking_time_minutes"`
}

// Calculate computes all statistics for text
func Calculate(text string) Stats {
	words := WordCount(text)
	return Stats{
		Words:               words,
		Characters:          CharCount(text),
		CharactersNoSpaces:  CharCount(stripSpace(text)),
		Sentences:           countSegments(sentenceSplit.Split(text, -1)),
		Paragraphs:          countSegments(paragraphSplit.Split(text, -1)),
		Lines:               LineCount(text),
		ReadingTimeMinutes:  Minutes(words, ReadingWPM),
		SpeakingTimeMinutes: Minutes(words, SpeakingWPM),
	}
}

// WordCount returns the number of whitespace separated words
func WordCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// CharCount returns the length of text in UTF-16 code units, which is what
// browsers report as the length of a string.
func CharCount(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// LineCount returns the number of newline separated lines. Empty input is one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Minutes converts a word count to whole minutes at the given words per minute.
func Minutes(words, wpm int) int {
	if words <= 0 || wpm <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wpm)))
}

func stripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

func countSegments(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
