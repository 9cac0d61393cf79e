package textstyle

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestCaseStyles(t *testing.T) {
	tests := []struct {
		style, input, expected string
	}{
		{"upper", "Hello World", "HELLO WORLD"},
		{"lower", "Hello World", "hello world"},
		{"title", "the lord OF the rings", "The Lord of the Rings"},
		{"title", "a tale of two cities", "A Tale of Two Cities"},
		{"title", "war  and\npeace", "War  and\nPeace"},
		{"sentence", "hello WORLD. this is it!  yes? no", "Hello world. This is it!  Yes? No"},
		{"sentence", "version 1.2 is out", "Version 1.2 is out"},
		{"sentence", "  leading space", "  Leading space"},
		{"capitalize", "the lord of the rings", "The Lord Of The Rings"},
		{"alternating", "hello world", "hElLo WoRlD"},
		{"inverse", "Hello World", "hELLO wORLD"},
	}

	for _, test := range tests {
		t.Run(test.style+"/"+test.input, func(t *testing.T) {
			got, err := Apply(test.input, test.style)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, got)
			}
		})
	}
}

func TestBoldMapsLettersAndDigits(t *testing.T) {
	got, err := Apply("Hi 7!", "bold")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "\U0001D407\U0001D422 \U0001D7D5!"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestScriptHoles(t *testing.T) {
	got := Substitute("Be", Script)
	if got != "ℬℯ" {
		t.Errorf("Expected letterlike script glyphs, got %q", got)
	}
	if got := Substitute("h", Italic); got != "ℎ" {
		t.Errorf("Expected planck constant for italic h, got %q", got)
	}
}

func TestUnmappedPassThrough(t *testing.T) {
	input := "Привет, 世界!"
	for _, name := range []string{"bold", "italic", "cursive", "small-caps", "monospace"} {
		got, _ := Apply(input, name)
		if got != input {
			t.Errorf("%s: expected non-Latin input unchanged, got %q", name, got)
		}
	}
}

func TestRuneCountPreserved(t *testing.T) {
	inputs := []string{"Quick brown fox, 42 jumps!", "Straße groß, ﬁne Ǆ"}
	for _, input := range inputs {
		for _, name := range Names() {
			got, _ := Apply(input, name)
			want := utf8.RuneCountInString(input)
			switch name {
			case "strikethrough", "underline", "double-underline":
				want *= 2
			}
			if n := utf8.RuneCountInString(got); n != want {
				t.Errorf("%s(%q): expected %d runes, got %d (%q)", name, input, want, n, got)
			}
		}
	}
}

func TestCaseKeepsSharpS(t *testing.T) {
	tests := []struct {
		style    string
		expected string
	}{
		{"upper", "STRAßE"},
		{"lower", "straße"},
		{"capitalize", "Straße"},
	}
	for _, tt := range tests {
		got, _ := Apply("straße", tt.style)
		if got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.style, tt.expected, got)
		}
	}
}

func TestUpsideDownReversesBeforeMapping(t *testing.T) {
	got, _ := Apply("hello!", "upside-down")
	if got != "¡ollǝɥ" {
		t.Errorf("Unexpected upside-down output %q", got)
	}
	if got, _ := Apply("ab", "upside-down"); got != "qɐ" {
		t.Errorf("Expected %q, got %q", "qɐ", got)
	}
}

func TestMirror(t *testing.T) {
	got, _ := Apply("bd(", "mirror")
	if got != ")bd" {
		t.Errorf("Expected %q, got %q", ")bd", got)
	}
}

func TestOverlayIncludesWhitespace(t *testing.T) {
	got, _ := Apply("a b", "strikethrough")
	expected := "a\u0336 \u0336b\u0336"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestFullwidth(t *testing.T) {
	if got := Fullwidth("Go1"); got != "Ｇｏ１" {
		t.Errorf("Expected fullwidth text, got %q", got)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, name := range Names() {
		got, err := Apply("", name)
		if err != nil || got != "" {
			t.Errorf("%s: expected empty output, got %q (%v)", name, got, err)
		}
	}
}

func TestUnknownStyle(t *testing.T) {
	_, err := Apply("text", "sparkly")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Expected ErrUnknownStyle, got %v", err)
	}
}
