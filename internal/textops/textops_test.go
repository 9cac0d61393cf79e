package textops

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`a\nb`, "a\nb"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
		{`\x41é\U0001F600`, "Aé😀"},
		{`\xZZ`, `\xZZ`},
		{`\q`, `\q`},
		{`trailing\`, `trailing\`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.input); got != tt.expected {
			t.Errorf("Unescape(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestCompileFlags(t *testing.T) {
	re, err := Compile("^b.c$", "ims")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !re.MatchString("a\nB\nC") {
		t.Error("Expected case-insensitive multi-line dot-all match")
	}
	if _, err := Compile("x", "gi"); err != nil {
		t.Errorf("Expected g flag to be accepted, got %v", err)
	}
	if _, err := Compile("x", "z"); !errors.Is(err, ErrInvalidFlag) {
		t.Errorf("Expected ErrInvalidFlag, got %v", err)
	}
	if _, err := Compile("(unclosed", ""); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern, got %v", err)
	}
}

func TestFindMatches(t *testing.T) {
	got, err := FindMatches("id=12, id=7, x=", `id=(\d+)`, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []Match{
		{Text: "id=12", Index: 0, Groups: []string{"12"}},
		{Text: "id=7", Index: 7, Groups: []string{"7"}},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	none, err := FindMatches("abc", "z", "")
	if err != nil || len(none) != 0 {
		t.Errorf("Expected empty match list, got %v (%v)", none, err)
	}
	empty, err := FindMatches("abc", "", "")
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty pattern to match nothing, got %v (%v)", empty, err)
	}
}

func TestReplaceRegex(t *testing.T) {
	got, err := ReplaceRegex("John Smith", `(\w+) (\w+)`, `$2,\t$1`, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "Smith,\tJohn" {
		t.Errorf("Unexpected result %q", got)
	}
	if _, err := ReplaceRegex("x", "[", "", ""); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern, got %v", err)
	}
}

func TestReplaceText(t *testing.T) {
	if got := ReplaceText("a,b,c", ",", `\n`); got != "a\nb\nc" {
		t.Errorf("Unexpected result %q", got)
	}
	if got := ReplaceText("abc", "", "x"); got != "abc" {
		t.Errorf("Expected unchanged input, got %q", got)
	}
}

func TestFilterLines(t *testing.T) {
	input := "apple\nBanana\ncherry\navocado"

	kept, err := KeepLines(input, "^a", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if kept != "apple\navocado" {
		t.Errorf("Unexpected kept lines %q", kept)
	}

	removed, err := RemoveLines(input, "^b", "i")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if removed != "apple\ncherry\navocado" {
		t.Errorf("Unexpected remaining lines %q", removed)
	}
}

func TestDedupeLines(t *testing.T) {
	if got := DedupeLines("a\nb\na\nB\nb", false); got != "a\nb\nB" {
		t.Errorf("Unexpected result %q", got)
	}
	if got := DedupeLines("a\nb\na\nB\nb", true); got != "a\nb" {
		t.Errorf("Unexpected case-insensitive result %q", got)
	}
}

func TestSortLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     SortOptions
		expected string
	}{
		{"plain", "b\nC\na", SortOptions{}, "C\na\nb"},
		{"ignore case", "b\nC\na", SortOptions{IgnoreCase: true}, "a\nb\nC"},
		{"reverse", "b\nc\na", SortOptions{Reverse: true}, "c\nb\na"},
		{"numeric", "10 x\n9 y\nz\n-1 w", SortOptions{Numeric: true}, "-1 w\n9 y\n10 x\nz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SortLines(tt.input, tt.opts); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLineHelpers(t *testing.T) {
	if got := TrimLines("  a \n\tb\t"); got != "a\nb" {
		t.Errorf("Unexpected trim %q", got)
	}
	if got := RemoveEmptyLines("a\n\n  \nb"); got != "a\nb" {
		t.Errorf("Unexpected result %q", got)
	}
	if got := AddAffixes("a\nb", "- ", `;`); got != "- a;\n- b;" {
		t.Errorf("Unexpected affixes %q", got)
	}
	if got := ApplyLines("", func(s string) string { return "x" }); got != "" {
		t.Errorf("Expected empty input to stay empty, got %q", got)
	}
}

func TestCharacterSlices(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"left", Left("héllo", 2), "hé"},
		{"left longer than text", Left("ab", 5), "ab"},
		{"left zero", Left("ab", 0), ""},
		{"right", Right("héllo", 4), "éllo"},
		{"right longer than text", Right("ab", 9), "ab"},
		{"mid", Mid("abcdef", 1, 3), "bcd"},
		{"mid past end", Mid("abc", 5, 1), ""},
		{"mid clipped", Mid("abc", 1, 10), "bc"},
		{"surround", Surround("x", `\t`, "!"), "\tx!"},
		{"remove affixes", RemoveAffixes("[x]", "[", "]"), "x"},
		{"remove absent affixes", RemoveAffixes("x", "[", "]"), "x"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr     string
		expected float64
	}{
		{"6 + 5", 11},
		{"5 * 55 + 3", 278},
		{"-10 + 5.5", -4.5},
		{"2 - -3", 5},
		{"(1 + 2) * 3", 9},
		{"10 / 4", 2.5},
		{"8 - 2 - 1", 5},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expr)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.expr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.expr, tt.expected, got)
		}
	}

	if _, err := Evaluate("1 / 0"); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero, got %v", err)
	}
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	for _, bad := range []string{"", "1 +", "(1 + 2", "2 x 3", deep, strings.Repeat("-", 1000) + "1"} {
		if _, err := Evaluate(bad); !errors.Is(err, ErrBadExpression) {
			t.Errorf("%q: expected ErrBadExpression, got %v", bad, err)
		}
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Item 1 = 6 + 5", "Item 1 = 11"},
		{"0.1 + 0.2", "0.3"},
		{"7 / 2 apples", "3.5 apples"},
		{"keep 1 / 0 as is", "keep 1 / 0 as is"},
		{"no math here 42", "no math here 42"},
	}
	for _, tt := range tests {
		if got := Calculate(tt.input); got != tt.expected {
			t.Errorf("Calculate(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		11:         "11",
		-4.5:       "-4.5",
		1.0 / 3:    "0.3333333333",
		-0.0000001: "-0.0000001",
	}
	for v, expected := range tests {
		if got := FormatNumber(v); got != expected {
			t.Errorf("FormatNumber(%v): expected %q, got %q", v, expected, got)
		}
	}
}
