package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func compact(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, s)
	}
	return buf.String()
}

// ============================================================================
// CSV / JSON
// ============================================================================

func TestCSVToJSON(t *testing.T) {
	got, err := CSVToJSON("name,age\nJohn,30\nJane,25")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `[{"name":"John","age":"30"},{"name":"Jane","age":"25"}]`
	if c := compact(t, got); c != expected {
		t.Errorf("Expected %s, got %s", expected, c)
	}
	if !strings.Contains(got, "\n  {") {
		t.Errorf("Expected two-space indented output, got %q", got)
	}
}

func TestCSVToJSONShortRowsAndBlankLines(t *testing.T) {
	got, err := CSVToJSON("a, b ,c\r\n\r\n1,2\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `[{"a":"1","b":"2","c":""}]`
	if c := compact(t, got); c != expected {
		t.Errorf("Expected %s, got %s", expected, c)
	}
}

func TestCSVToJSONNaiveSplitsQuotedCommas(t *testing.T) {
	got, err := CSVToJSON("name,city\n\"Doe, J\",Paris")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `[{"name":"\"Doe","city":"J\""}]`
	if c := compact(t, got); c != expected {
		t.Errorf("Expected %s, got %s", expected, c)
	}
}

func TestCSVToJSONQuoted(t *testing.T) {
	got, err := CSVToJSONWith("name,bio\n\"Doe, J\",\"said \"\"hi\"\"\"", CSVOptions{Quoted: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `[{"name":"Doe, J","bio":"said \"hi\""}]`
	if c := compact(t, got); c != expected {
		t.Errorf("Expected %s, got %s", expected, c)
	}

	if _, err := CSVToJSONWith("a\n\"open", CSVOptions{Quoted: true}); err == nil {
		t.Error("Expected error for unterminated quote")
	}
}

func TestCSVToJSONEmpty(t *testing.T) {
	if _, err := CSVToJSON(" \n\n"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestJSONToCSV(t *testing.T) {
	got, err := JSONToCSV(`[{"name":"John","age":30},{"age":25,"name":"Jane","extra":true}]`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "name,age\nJohn,30\nJane,25"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestJSONToCSVQuoting(t *testing.T) {
	got, err := JSONToCSV(`[{"a":"x,y","b":"say \"hi\"","c":1,"d":null,"e":{"k":[1,2]}}]`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "a,b,c,d,e\n\"x,y\",\"say \"\"hi\"\"\",1,,\"{\"\"k\"\":[1,2]}\""
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestJSONToCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "  ", ErrEmptyInput},
		{"object", `{"a":1}`, ErrNotArray},
		{"empty array", `[]`, ErrEmptyArray},
		{"scalar element", `[{"a":1}, 2]`, ErrNotObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONToCSV(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	for _, bad := range []string{`[{"a":1}`, `[{"a":1}] junk`, `not json`} {
		if _, err := JSONToCSV(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	inputs := []string{
		"name,age\nJohn,30\nJane,25",
		"id,title,score\n1,Intro,9.5\n2,Setup,7",
		"only\nvalue",
	}
	for _, in := range inputs {
		j, err := CSVToJSON(in)
		if err != nil {
			t.Fatalf("CSVToJSON(%q) failed: %v", in, err)
		}
		back, err := JSONToCSV(j)
		if err != nil {
			t.Fatalf("JSONToCSV failed: %v", err)
		}
		if back != in {
			t.Errorf("Round trip mismatch: %q -> %q", in, back)
		}
	}
}

// ============================================================================
// YAML
// ============================================================================

func TestJSONToYAMLKeepsOrder(t *testing.T) {
	got, err := JSONToYAML(`{"b":1,"a":"x","zip":"01234"}`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "b: 1\na: x\n") {
		t.Errorf("Expected keys in input order, got %q", got)
	}
	if !strings.Contains(got, `zip: "01234"`) {
		t.Errorf("Expected numeric-looking string to stay quoted, got %q", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	in := `{"name":"John","age":30,"tags":["a","b"],"ok":true,"none":null}`
	y, err := JSONToYAML(in)
	if err != nil {
		t.Fatalf("JSONToYAML failed: %v", err)
	}
	back, err := YAMLToJSON(y)
	if err != nil {
		t.Fatalf("YAMLToJSON failed: %v", err)
	}
	if c := compact(t, back); c != in {
		t.Errorf("Expected %s, got %s", in, c)
	}
}

func TestYAMLErrors(t *testing.T) {
	if _, err := JSONToYAML(`{"a":`); err == nil {
		t.Error("Expected error for invalid JSON")
	}
	if _, err := YAMLToJSON("a: [1, 2"); err == nil {
		t.Error("Expected error for invalid YAML")
	}
	if _, err := YAMLToJSON(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestYAMLToJSONAliases(t *testing.T) {
	in := "base: &b\n  x: 1\ncopy: *b\nlist: [*b, 2]\n"
	got, err := YAMLToJSON(in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `{"base":{"x":1},"copy":{"x":1},"list":[{"x":1},2]}`
	if c := compact(t, got); c != expected {
		t.Errorf("Expected %s, got %s", expected, c)
	}
}

func TestYAMLToJSONRejectsRecursiveAlias(t *testing.T) {
	tests := []string{
		"a: &x [*x]\n",
		"a: &x\n  b: *x\n",
	}
	for _, in := range tests {
		_, err := YAMLToJSON(in)
		if err == nil || !strings.Contains(err.Error(), "recursive alias") {
			t.Errorf("%q: expected recursive alias error, got %v", in, err)
		}
	}
}

func TestYAMLToJSONLimitsAliasExpansion(t *testing.T) {
	refs := func(name string) string {
		return "[" + strings.TrimSuffix(strings.Repeat("*"+name+", ", 10), ", ") + "]"
	}
	in := "a: &a [x, x, x, x, x, x, x, x, x, x]\n" +
		"b: &b " + refs("a") + "\n" +
		"c: &c " + refs("b") + "\n" +
		"d: &d " + refs("c") + "\n" +
		"e: " + refs("d") + "\n"

	_, err := YAMLToJSON(in)
	if err == nil || !strings.Contains(err.Error(), "alias expansions") {
		t.Errorf("Expected alias expansion limit error, got %v", err)
	}
}

func TestSelectJSON(t *testing.T) {
	doc := `{"b": 1, "items": [{"name": "a", "tags": ["x"]}, {"name": "b"}], "none": null}` + "\n"
	tests := []struct {
		path     string
		expected string
	}{
		{"items.0.name", "a"},
		{"items[1].name", "b"},
		{"items[0]", "{\n  \"name\": \"a\",\n  \"tags\": [\n    \"x\"\n  ]\n}"},
		{"b", "1"},
		{"none", "null"},
		{"", "{\n  \"b\": 1,\n  \"items\": [\n    {\n      \"name\": \"a\",\n      \"tags\": [\n        \"x\"\n      ]\n    },\n    {\n      \"name\": \"b\"\n    }\n  ],\n  \"none\": null\n}"},
	}
	for _, tt := range tests {
		got, err := SelectJSON(doc, tt.path)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.path, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.path, tt.expected, got)
		}
	}

	for _, path := range []string{"missing", "items.5", "items.x", "b.c"} {
		_, err := SelectJSON(doc, path)
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("%q: expected ErrPathNotFound, got %v", path, err)
		}
	}
	if _, err := SelectJSON("{", "a"); err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("Expected invalid JSON error, got %v", err)
	}
	if _, err := SelectJSON(" ", ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

// ============================================================================
// JSX
// ============================================================================

func TestHTMLToJSX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"class and for",
			`<label class="box" for="x">Hi</label>`,
			`<label className="box" htmlFor="x">Hi</label>`,
		},
		{
			"void elements",
			`<img src="a.png" alt="A"><br>`,
			`<img src="a.png" alt="A" /><br />`,
		},
		{
			"boolean and table attributes",
			`<input type="checkbox" checked disabled tabindex="1" maxlength="4">`,
			`<input type="checkbox" checked disabled tabIndex="1" maxLength="4" />`,
		},
		{
			"inline style",
			`<div style="color: red; font-size: 12px; -webkit-transition: all 1s">x</div>`,
			`<div style={{color: 'red', fontSize: '12px', WebkitTransition: 'all 1s'}}>x</div>`,
		},
		{
			"style with quoted semicolon",
			`<p style="background: url('a;b.png'); color: blue"></p>`,
			`<p style={{background: 'url(\'a;b.png\')', color: 'blue'}}></p>`,
		},
		{
			"events",
			`<button onclick="handleClick()" ondblclick="zoom()">Go</button>`,
			`<button onClick={handleClick()} onDoubleClick={zoom()}>Go</button>`,
		},
		{
			"empty event handler dropped",
			`<button onclick="" type="button">Go</button>`,
			`<button type="button">Go</button>`,
		},
		{
			"lone dash style key",
			`<div style="-: red">x</div>`,
			`<div style={{'-': 'red'}}>x</div>`,
		},
		{
			"hyphenated attributes",
			`<form accept-charset="utf-8" data-id="1" aria-label="f"></form>`,
			`<form acceptCharset="utf-8" data-id="1" aria-label="f"></form>`,
		},
		{
			"comment and doctype",
			`<!DOCTYPE html><!-- note --><p>a</p>`,
			`{/* note */}<p>a</p>`,
		},
		{
			"braces in text",
			`<p>{x}</p>`,
			`<p>{'{'}x{'}'}</p>`,
		},
		{
			"case preserved",
			`<svg viewBox="0 0 1 1"></svg>`,
			`<svg viewBox="0 0 1 1"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLToJSX(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHTMLToJSXEmpty(t *testing.T) {
	if _, err := HTMLToJSX("   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestStyleObject(t *testing.T) {
	tests := []struct {
		css      string
		expected string
	}{
		{"-ms-transform: none;;margin-top:0;broken", "msTransform: 'none', marginTop: '0'"},
		{"-: red", "'-': 'red'"},
		{"--: 1; -moz-box: 2", "'--': '1', MozBox: '2'"},
		{"--main-color: #fff", "'--main-color': '#fff'"},
	}

	for _, tt := range tests {
		if got := StyleObject(tt.css); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.css, tt.expected, got)
		}
	}
}

// ============================================================================
// User-Agent
// ============================================================================

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected UserAgent
	}{
		{
			"chrome windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			UserAgent{Browser: "Chrome", BrowserVersion: "120.0.0.0", OS: "Windows", Device: "Desktop", Engine: "Blink"},
		},
		{
			"edge",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			UserAgent{Browser: "Edge", BrowserVersion: "120.0.2210.91", OS: "Windows", Device: "Desktop", Engine: "Blink"},
		},
		{
			"firefox linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			UserAgent{Browser: "Firefox", BrowserVersion: "121.0", OS: "Linux", Device: "Desktop", Engine: "Gecko"},
		},
		{
			"safari iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			UserAgent{Browser: "Safari", BrowserVersion: "17.1", OS: "iOS", Device: "Mobile", Engine: "WebKit"},
		},
		{
			"internet explorer 11",
			"Mozilla/5.0 (Windows NT 10.0; WOW64; Trident/7.0; rv:11.0) like Gecko",
			UserAgent{Browser: "Internet Explorer", BrowserVersion: "7.0", OS: "Windows", Device: "Desktop", Engine: "Trident"},
		},
		{
			"crawler",
			"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			UserAgent{Browser: Unknown, OS: Unknown, Device: "Bot", Engine: Unknown},
		},
		{
			"empty",
			"",
			UserAgent{Browser: Unknown, OS: Unknown, Device: Unknown, Engine: Unknown},
		},
	}

	rules := DefaultUserAgentRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUserAgent(tt.ua, rules)
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestParseUserAgentCustomRules(t *testing.T) {
	rules := UserAgentRules{
		Browser: []Rule{
			{Label: "First", Any: []string{"Shared"}},
			{Label: "Second", Any: []string{"Shared"}},
		},
	}
	got := ParseUserAgent("Shared/2.5", rules)
	if got.Browser != "First" {
		t.Errorf("Expected first matching rule to win, got %q", got.Browser)
	}
	if got.BrowserVersion != "2.5" {
		t.Errorf("Expected version from matched token, got %q", got.BrowserVersion)
	}
	if got.OS != Unknown || got.Device != Unknown || got.Engine != Unknown {
		t.Errorf("Expected Unknown for empty rule lists, got %+v", got)
	}
}
