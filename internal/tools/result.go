package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/convert"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/density"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/markup"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textdiff"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textops"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textstats"
)

// Result is the output of a tool. Each variant reports its Kind so callers
// can switch on the concrete type, and renders itself as plain Text.
type Result interface {
	Kind() string
	Text() string
}

// StatResult holds text statistics.
type StatResult struct {
	textstats.Stats
}

func (StatResult) Kind() string { return "stats" }

func (r StatResult) Text() string {
	return fmt.Sprintf("words: %d\ncharacters: %d\ncharacters (no spaces): %d\nsentences: %d\nparagraphs: %d\nlines: %d\nreading time: %d min\nspeaking time: %d min",
		r.Words, r.Characters, r.CharactersNoSpaces, r.Sentences, r.Paragraphs, r.Lines, r.ReadingTimeMinutes, r.SpeakingTimeMinutes)
}

// DensityResult holds a keyword ranking, or a single keyword lookup when
// Match is set.
type DensityResult struct {
	Report *density.Report `json:"report,omitempty"`
	Match  *density.Match  `json:"match,omitempty"`
}

func (DensityResult) Kind() string { return "density" }

func (r DensityResult) Text() string {
	if r.Match != nil {
		return fmt.Sprintf("%s: %d of %d (%.2f%%)", r.Match.Keyword, r.Match.Count, r.Match.TotalTokens, r.Match.Percent)
	}
	if r.Report == nil {
		return ""
	}
	lines := make([]string, 0, len(r.Report.Entries))
	for _, e := range r.Report.Entries {
		lines = append(lines, fmt.Sprintf("%s\t%d\t%.2f%%", e.Token, e.Count, e.Percent))
	}
	return strings.Join(lines, "\n")
}

// DiffResult holds either a positional line diff or sequence runs.
type DiffResult struct {
	Mode    string           `json:"mode"`
	Lines   []textdiff.Line  `json:"lines,omitempty"`
	Runs    []textdiff.Run   `json:"runs,omitempty"`
	Summary textdiff.Summary `json:"summary"`
}

func (DiffResult) Kind() string { return "diff" }

var diffMarks = map[textdiff.Op]string{
	textdiff.Unchanged: " ",
	textdiff.Added:     "+",
	textdiff.Removed:   "-",
}

func (r DiffResult) Text() string {
	var b strings.Builder
	if r.Mode == "lines" {
		for i, l := range r.Lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(diffMarks[l.Op] + " " + l.Content)
		}
		return b.String()
	}
	for _, run := range r.Runs {
		switch run.Op {
		case textdiff.Added:
			b.WriteString("{+" + run.Text + "+}")
		case textdiff.Removed:
			b.WriteString("[-" + run.Text + "-]")
		default:
			b.WriteString(run.Text)
		}
	}
	return b.String()
}

// ConversionResult holds transformed text.
type ConversionResult struct {
	Output string `json:"output"`
}

func (ConversionResult) Kind() string { return "conversion" }

func (r ConversionResult) Text() string { return r.Output }

// ListResult holds an ordered list of strings.
type ListResult struct {
	Items []string `json:"items"`
}

func (ListResult) Kind() string { return "list" }

func (r ListResult) Text() string { return strings.Join(r.Items, "\n") }

// UserAgentResult holds a parsed User-Agent.
type UserAgentResult struct {
	convert.UserAgent
}

func (UserAgentResult) Kind() string { return "user_agent" }

func (r UserAgentResult) Text() string {
	browser := r.Browser
	if r.BrowserVersion != "" {
		browser += " " + r.BrowserVersion
	}
	return fmt.Sprintf("browser: %s\nos: %s\ndevice: %s\nengine: %s", browser, r.OS, r.Device, r.Engine)
}

// MatchResult holds regex matches.
type MatchResult struct {
	Matches []textops.Match `json:"matches"`
}

func (MatchResult) Kind() string { return "matches" }

func (r MatchResult) Text() string {
	lines := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		lines[i] = m.Text
	}
	return strings.Join(lines, "\n")
}

// LinkResult holds extracted links.
type LinkResult struct {
	Links    []markup.Link `json:"links"`
	Template string        `json:"template,omitempty"`
}

func (LinkResult) Kind() string { return "links" }

func (r LinkResult) Text() string { return markup.FormatLinks(r.Links, r.Template) }

// MetaResult holds an on-page SEO report.
type MetaResult struct {
	markup.MetaReport
}

func (MetaResult) Kind() string { return "meta" }

func (r MetaResult) Text() string {
	lines := []string{
		fmt.Sprintf("title (%d): %s", r.TitleLength, r.Title),
		fmt.Sprintf("description (%d): %s", r.DescriptionLen, r.Description),
		"canonical: " + r.Canonical,
		"robots: " + r.Robots,
		fmt.Sprintf("h1: %d, h2: %d", len(r.H1), r.H2Count),
		fmt.Sprintf("images: %d (%d without alt)", r.Images, r.ImagesMissingAlt),
	}
	return strings.Join(lines, "\n")
}

// ArticleResult holds extracted article content.
type ArticleResult struct {
	markup.Article
}

func (ArticleResult) Kind() string { return "article" }

func (r ArticleResult) Text() string {
	if r.Title == "" {
		return r.Content
	}
	return r.Title + "\n\n" + r.Content
}

// Envelope is the tagged wire form of a Result.
type Envelope struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// Wrap encodes r into an Envelope.
func Wrap(r Result) (Envelope, error) {
	value, err := json.Marshal(r)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: r.Kind(), Value: value}, nil
}

// Decode turns an Envelope back into its concrete Result.
func (e Envelope) Decode() (Result, error) {
	var r Result
	switch e.Kind {
	case "stats":
		r = &StatResult{}
	case "density":
		r = &DensityResult{}
	case "diff":
		r = &DiffResult{}
	case "conversion":
		r = &ConversionResult{}
	case "list":
		r = &ListResult{}
	case "user_agent":
		r = &UserAgentResult{}
	case "matches":
		r = &MatchResult{}
	case "links":
		r = &LinkResult{}
	case "meta":
		r = &MetaResult{}
	case "article":
		r = &ArticleResult{}
	default:
		return nil, fmt.Errorf("unknown result kind %q", e.Kind)
	}
	if err := json.Unmarshal(e.Value, r); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", e.Kind, err)
	}
	return r, nil
}
