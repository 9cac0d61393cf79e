package textdiff

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLinesIdentical(t *testing.T) {
	text := "one\ntwo\n\nthree"
	lines := Lines(text, text)
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if l.Op != Unchanged {
			t.Errorf("Line %d: expected unchanged, got %s", i, l.Op)
		}
	}
}

func TestLinesDisjoint(t *testing.T) {
	lines := Lines("a\nb\nc", "x\ny\nz")
	expected := []Line{
		{Removed, "a"}, {Added, "x"},
		{Removed, "b"}, {Added, "y"},
		{Removed, "c"}, {Added, "z"},
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("Expected %v, got %v", expected, lines)
	}
}

func TestLinesPositional(t *testing.T) {
	// An inserted line misaligns every line after it.
	lines := Lines("a\nb\nc", "a\nnew\nb\nc")
	expected := []Line{
		{Unchanged, "a"},
		{Removed, "b"}, {Added, "new"},
		{Removed, "c"}, {Added, "b"},
		{Added, "c"},
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("Expected %v, got %v", expected, lines)
	}

	s := SummarizeLines(lines)
	if s != (Summary{Added: 3, Removed: 2, Unchanged: 1}) {
		t.Errorf("Unexpected summary %+v", s)
	}
}

func TestLinesEmpty(t *testing.T) {
	if got := Lines("", ""); len(got) != 0 {
		t.Errorf("Expected empty diff, got %v", got)
	}
	got := Lines("", "added")
	if !reflect.DeepEqual(got, []Line{{Added, "added"}}) {
		t.Errorf("Unexpected diff %v", got)
	}
}

func TestWords(t *testing.T) {
	runs, err := Words("the quick fox", "the slow fox")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []Run{
		{Unchanged, "the "},
		{Removed, "quick"},
		{Added, "slow"},
		{Unchanged, " fox"},
	}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("Expected %v, got %v", expected, runs)
	}
}

func TestWordsInsertionStaysAligned(t *testing.T) {
	runs, err := Words("alpha beta gamma", "alpha new beta gamma")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []Run{
		{Unchanged, "alpha "},
		{Added, "new "},
		{Unchanged, "beta gamma"},
	}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("Expected %v, got %v", expected, runs)
	}
}

func TestCharsReconstruct(t *testing.T) {
	a, b := "kitten", "sitting"
	runs, err := Chars(a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var left, right strings.Builder
	for _, r := range runs {
		if r.Op != Added {
			left.WriteString(r.Text)
		}
		if r.Op != Removed {
			right.WriteString(r.Text)
		}
	}
	if left.String() != a || right.String() != b {
		t.Errorf("Runs do not reconstruct inputs: %q / %q", left.String(), right.String())
	}
}

func TestDifferBudget(t *testing.T) {
	d := Differ{MaxCells: 10}
	_, err := d.Chars("abcdefgh", "zyxwvuts")
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestOpJSON(t *testing.T) {
	data, err := json.Marshal(Line{Op: Removed, Content: "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"op":"removed","content":"x"}` {
		t.Errorf("Unexpected JSON %s", data)
	}
}
