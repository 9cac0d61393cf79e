// Package textdiff compares two texts.
//
// Lines is a positional comparison: line i of the left text is compared with
// line i of the right text, so an insertion shifts every following line out of
// alignment. Words and Chars compute a real longest-common-subsequence diff.
// The two are intentionally different algorithms.
package textdiff

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Op classifies a line or run.
type Op int

const (
	Unchanged Op = iota
	Added
	Removed
)

func (o Op) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	switch string(b) {
	case "added":
		*o = Added
	case "removed":
		*o = Removed
	case "unchanged":
		*o = Unchanged
	default:
		return fmt.Errorf("unknown diff op %q", b)
	}
	return nil
}

// Line is one entry of a positional line diff.
type Line struct {
	Op      Op     `json:"op"`
	Content string `json:"content"`
}

// Run is a maximal stretch of tokens sharing the same Op.
type Run struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Summary counts entries per Op.
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// ErrTooLarge is returned when a sequence diff would exceed the cell budget.
var ErrTooLarge = errors.New("input too large to diff")

// DefaultMaxCells bounds the LCS table used by Words and Chars.
const DefaultMaxCells = 4_000_000

// Lines compares a and b line by line at equal indexes. Missing lines on the
// shorter side compare as empty strings, and empty sides of a changed pair are
// not emitted.
func Lines(a, b string) []Line {
	out := []Line{}
	if a == "" && b == "" {
		return out
	}
	left := strings.Split(a, "\n")
	right := strings.Split(b, "\n")
	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		l, r := at(left, i), at(right, i)
		if l == r {
			out = append(out, Line{Op: Unchanged, Content: l})
			continue
		}
		if l != "" {
			out = append(out, Line{Op: Removed, Content: l})
		}
		if r != "" {
			out = append(out, Line{Op: Added, Content: r})
		}
	}
	return out
}

// SummarizeLines counts the lines of a positional diff.
func SummarizeLines(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		s.add(l.Op, 1)
	}
	return s
}

// SummarizeRuns counts the runs of a sequence diff.
func SummarizeRuns(runs []Run) Summary {
	var s Summary
	for _, r := range runs {
		s.add(r.Op, 1)
	}
	return s
}

func (s *Summary) add(op Op, n int) {
	switch op {
	case Added:
		s.Added += n
	case Removed:
		s.Removed += n
	default:
		s.Unchanged += n
	}
}

// Differ computes sequence diffs within a cell budget.
type Differ struct {
	MaxCells int
}

// Words diffs a and b at word granularity. Whitespace runs are tokens of
// their own so the runs concatenate back to the inputs.
func (d Differ) Words(a, b string) ([]Run, error) {
	return d.diff(splitWords(a), splitWords(b))
}

// Chars diffs a and b rune by rune.
func (d Differ) Chars(a, b string) ([]Run, error) {
	return d.diff(splitChars(a), splitChars(b))
}

// Words diffs with the default budget.
func Words(a, b string) ([]Run, error) { return Differ{}.Words(a, b) }

// Chars diffs with the default budget.
func Chars(a, b string) ([]Run, error) { return Differ{}.Chars(a, b) }

func (d Differ) diff(a, b []string) ([]Run, error) {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	var runs runBuilder
	for _, tok := range a[:prefix] {
		runs.push(Unchanged, tok)
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]
	limit := d.MaxCells
	if limit <= 0 {
		limit = DefaultMaxCells
	}
	if cells := (len(midA) + 1) * (len(midB) + 1); cells > limit {
		return nil, fmt.Errorf("%w: %d cells exceeds %d", ErrTooLarge, cells, limit)
	}
	for _, e := range lcs(midA, midB) {
		runs.push(e.op, e.tok)
	}

	for _, tok := range a[len(a)-suffix:] {
		runs.push(Unchanged, tok)
	}
	return runs.done(), nil
}

type edit struct {
	op  Op
	tok string
}

// lcs returns the edit script turning a into b. Inside a change, removals are
// ordered before additions.
func lcs(a, b []string) []edit {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil
	}
	width := m + 1
	table := make([]int32, (n+1)*width)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i*width+j] = table[(i+1)*width+j+1] + 1
			} else {
				table[i*width+j] = max(table[(i+1)*width+j], table[i*width+j+1])
			}
		}
	}

	out := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			out = append(out, edit{Unchanged, a[i]})
			i++
			j++
		case table[(i+1)*width+j] >= table[i*width+j+1]:
			out = append(out, edit{Removed, a[i]})
			i++
		default:
			out = append(out, edit{Added, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		out = append(out, edit{Removed, a[i]})
	}
	for ; j < m; j++ {
		out = append(out, edit{Added, b[j]})
	}
	return out
}

// runBuilder merges consecutive tokens with the same op.
type runBuilder struct {
	runs []Run
	sb   strings.Builder
	op   Op
	open bool
}

func (rb *runBuilder) push(op Op, tok string) {
	if rb.open && op != rb.op {
		rb.flush()
	}
	rb.op = op
	rb.open = true
	rb.sb.WriteString(tok)
}

func (rb *runBuilder) flush() {
	if rb.open && rb.sb.Len() > 0 {
		rb.runs = append(rb.runs, Run{Op: rb.op, Text: rb.sb.String()})
	}
	rb.sb.Reset()
	rb.open = false
}

func (rb *runBuilder) done() []Run {
	rb.flush()
	if rb.runs == nil {
		return []Run{}
	}
	return rb.runs
}

func splitWords(s string) []string {
	var out []string
	start := 0
	prevSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > start && space != prevSpace {
			out = append(out, s[start:i])
			start = i
		}
		prevSpace = space
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
