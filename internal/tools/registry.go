// Package tools is the catalog of text tools: it maps tool names to the
// text-processing packages and wraps their output in tagged results.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/convert"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/density"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textdiff"
)

// Param documents one option a tool accepts.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Default  string `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
	Summary  string `json:"summary"`
}

// Tool is one catalog entry.
type Tool struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Summary  string  `json:"summary"`
	Params   []Param `json:"params,omitempty"`
	// NeedsOther marks tools that compare Input against Other.
	NeedsOther bool `json:"needs_other,omitempty"`
	// LineWise tools accept line_based=true to run once per input line.
	LineWise bool `json:"line_wise,omitempty"`

	Run func(Request) (Result, error) `json:"-"`
}

// param returns the declared Param called name.
func (t Tool) param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

type settings struct {
	densityTop   int
	diffMaxCells int
	uaRules      convert.UserAgentRules
}

// Option configures a Registry.
type Option func(*settings)

// WithDensityTop sets how many keywords keyword-density returns by default.
func WithDensityTop(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.densityTop = n
		}
	}
}

// WithDiffMaxCells bounds the LCS table of word and character diffs.
func WithDiffMaxCells(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.diffMaxCells = n
		}
	}
}

// WithUserAgentRules replaces the User-Agent priority lists.
func WithUserAgentRules(rules convert.UserAgentRules) Option {
	return func(s *settings) {
		s.uaRules = rules
	}
}

// Registry holds the tool catalog. It is immutable after construction and
// safe for concurrent use.
type Registry struct {
	tools map[string]Tool
	names []string
}

// NewRegistry builds the registry with every built-in tool.
func NewRegistry(opts ...Option) *Registry {
	s := settings{
		densityTop:   density.AnalyzerTop,
		diffMaxCells: textdiff.DefaultMaxCells,
		uaRules:      convert.DefaultUserAgentRules(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range builtinTools(s) {
		if _, dup := r.tools[t.Name]; dup {
			panic("tools: duplicate tool " + t.Name)
		}
		r.tools[t.Name] = t
		r.names = append(r.names, t.Name)
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns every tool name in alphabetical order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// List returns the tools ordered by category, then name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// Describe returns the tool or an UnsupportedError with suggestions.
func (r *Registry) Describe(name string) (Tool, error) {
	if t, ok := r.Lookup(name); ok {
		return t, nil
	}
	return Tool{}, &UnsupportedError{Tool: name, Suggestions: r.Suggest(name, 3)}
}

// Suggest returns up to limit tool names close to name: fuzzy subsequence
// matches first, then names within a small edit distance.
func (r *Registry) Suggest(name string, limit int) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(name, r.names)
	sort.Sort(ranks)
	var out []string
	seen := make(map[string]bool)
	for _, rk := range ranks {
		if len(out) == limit {
			return out
		}
		out = append(out, rk.Target)
		seen[rk.Target] = true
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	for _, n := range r.names {
		if seen[n] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(name, n); d <= 3 {
			nearby = append(nearby, near{n, d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, c := range nearby {
		if len(out) == limit {
			break
		}
		out = append(out, c.name)
	}
	return out
}

// Run validates req against the tool's declared parameters and runs it.
// Empty input is valid for every tool. Tool failures come back as
// *ToolError.
func (r *Registry) Run(req Request) (Result, error) {
	t, err := r.Describe(req.Tool)
	if err != nil {
		return nil, err
	}

	lineBased := false
	for key := range req.Options {
		if key == "line_based" && t.LineWise {
			if lineBased, err = req.Bool(key, false); err != nil {
				return nil, err
			}
			continue
		}
		if _, ok := t.param(key); !ok {
			return nil, fmt.Errorf("%w: %s does not take %q", ErrInvalidOption, t.Name, key)
		}
	}
	for _, p := range t.Params {
		if p.Required && strings.TrimSpace(req.Str(p.Name, "")) == "" {
			return nil, fmt.Errorf("%w: %s needs option %q", ErrMissingInput, t.Name, p.Name)
		}
	}

	var res Result
	if lineBased {
		res, err = runLines(t, req)
	} else {
		res, err = t.Run(req)
	}
	if err != nil {
		if Classify(err) == CodeUnsupported {
			return nil, err
		}
		return nil, &ToolError{Tool: t.Name, Err: err}
	}
	return res, nil
}

// runLines runs t once per input line and joins the text outputs.
func runLines(t Tool, req Request) (Result, error) {
	lines := strings.Split(req.Input, "\n")
	for i, line := range lines {
		lineReq := req
		lineReq.Input = line
		res, err := t.Run(lineReq)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = res.Text()
	}
	return ConversionResult{Output: strings.Join(lines, "\n")}, nil
}
