package tools

import (
	"fmt"
	"strings"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/convert"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/density"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/encode"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/format"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/markup"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/seo"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textdiff"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textops"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textstats"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textstyle"
)

// Categories in catalog order.
const (
	CategoryText    = "text"
	CategorySEO     = "seo"
	CategoryDiff    = "diff"
	CategoryConvert = "convert"
	CategoryFormat  = "format"
	CategoryEncode  = "encode"
	CategoryHTML    = "html"
	CategoryLines   = "lines"
)

// optReader reads typed options and keeps the first error.
type optReader struct {
	req Request
	err error
}

func (o *optReader) str(key, def string) string {
	return o.req.Str(key, def)
}

func (o *optReader) bool(key string, def bool) bool {
	v, err := o.req.Bool(key, def)
	if err != nil && o.err == nil {
		o.err = err
	}
	return v
}

func (o *optReader) int(key string, def int) int {
	v, err := o.req.Int(key, def)
	if err != nil && o.err == nil {
		o.err = err
	}
	return v
}

func strParam(name, def, summary string) Param {
	return Param{Name: name, Type: "string", Default: def, Summary: summary}
}

func requiredParam(name, summary string) Param {
	return Param{Name: name, Type: "string", Required: true, Summary: summary}
}

func boolParam(name string, def bool, summary string) Param {
	return Param{Name: name, Type: "bool", Default: fmt.Sprint(def), Summary: summary}
}

func intParam(name string, def int, summary string) Param {
	return Param{Name: name, Type: "int", Default: fmt.Sprint(def), Summary: summary}
}

func textTool(fn func(string) string) func(Request) (Result, error) {
	return func(req Request) (Result, error) {
		return ConversionResult{Output: fn(req.Input)}, nil
	}
}

func convertTool(fn func(string) (string, error)) func(Request) (Result, error) {
	return func(req Request) (Result, error) {
		out, err := fn(req.Input)
		if err != nil {
			return nil, err
		}
		return ConversionResult{Output: out}, nil
	}
}

func builtinTools(s settings) []Tool {
	var all []Tool
	all = append(all, textTools(s)...)
	all = append(all, seoTools()...)
	all = append(all, diffTools(s)...)
	all = append(all, convertTools(s)...)
	all = append(all, formatTools()...)
	all = append(all, encodeTools()...)
	all = append(all, htmlTools()...)
	all = append(all, lineTools()...)
	return all
}

var caseStyles = []string{"upper", "lower", "title", "sentence", "capitalize", "alternating", "inverse"}

func textTools(s settings) []Tool {
	tools := []Tool{
		{
			Name:     "word-counter",
			Category: CategoryText,
			Summary:  "Count words, characters, sentences, paragraphs and lines",
			Params:   []Param{boolParam("html", false, "strip HTML markup before counting")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				in := req.Input
				if o.bool("html", false) {
					in = markup.StripTags(in)
				}
				if o.err != nil {
					return nil, o.err
				}
				return StatResult{textstats.Calculate(in)}, nil
			},
		},
		{
			Name:     "keyword-density",
			Category: CategoryText,
			Summary:  "Rank keywords by frequency, or measure the density of one keyword",
			Params: []Param{
				strParam("keyword", "", "keyword or phrase to measure instead of ranking"),
				intParam("top", s.densityTop, "number of ranked keywords, 0 for all"),
				boolParam("html", false, "strip HTML markup first"),
			},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				keyword := o.str("keyword", "")
				top := o.int("top", s.densityTop)
				in := req.Input
				if o.bool("html", false) {
					in = markup.StripTags(in)
				}
				if o.err != nil {
					return nil, o.err
				}
				if strings.TrimSpace(keyword) != "" {
					m := density.Lookup(in, keyword)
					return DensityResult{Match: &m}, nil
				}
				report := density.Rank(in, top)
				return DensityResult{Report: &report}, nil
			},
		},
		{
			Name:     "text-style",
			Category: CategoryText,
			Summary:  "Restyle text with a case rule or a Unicode letter style",
			Params:   []Param{requiredParam("style", "style name, see text-styles")},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				out, err := textstyle.Apply(req.Input, req.Str("style", ""))
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "text-styles",
			Category: CategoryText,
			Summary:  "List the styles text-style accepts",
			Run: func(req Request) (Result, error) {
				return ListResult{Items: textstyle.Names()}, nil
			},
		},
	}

	for _, name := range caseStyles {
		style, _ := textstyle.Lookup(name)
		tools = append(tools, Tool{
			Name:     name + "-case",
			Category: CategoryText,
			Summary:  "Convert to " + style.Summary,
			LineWise: true,
			Run:      textTool(style.Transform),
		})
	}
	return tools
}

func seoTools() []Tool {
	return []Tool{
		{
			Name:     "slug",
			Category: CategorySEO,
			Summary:  "Make a URL slug",
			Params: []Param{
				boolParam("transliterate", false, "fold accented letters to ASCII first"),
				strParam("separator", "-", "word separator"),
			},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				opts := seo.SlugOptions{
					Transliterate: o.bool("transliterate", false),
					Separator:     o.str("separator", "-"),
				}
				if o.err != nil {
					return nil, o.err
				}
				return ConversionResult{Output: seo.SlugWith(req.Input, opts)}, nil
			},
		},
		{
			Name:     "clean-keywords",
			Category: CategorySEO,
			Summary:  "Tidy a comma or newline separated keyword list",
			Params: []Param{
				boolParam("dedupe", false, "drop case-insensitive duplicates"),
				boolParam("sort", false, "sort alphabetically"),
			},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				opts := seo.CleanOptions{Dedupe: o.bool("dedupe", false), Sort: o.bool("sort", false)}
				if o.err != nil {
					return nil, o.err
				}
				return ConversionResult{Output: strings.Join(seo.CleanKeywordList(req.Input, opts), ", ")}, nil
			},
		},
		{
			Name:     "long-tail-keywords",
			Category: CategorySEO,
			Summary:  "Expand a seed keyword with common modifiers",
			Params:   []Param{boolParam("bidirectional", false, "also append modifiers after the seed")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				both := o.bool("bidirectional", false)
				if o.err != nil {
					return nil, o.err
				}
				return ListResult{Items: seo.LongTail(req.Input, both)}, nil
			},
		},
		{
			Name:     "meta-analyzer",
			Category: CategorySEO,
			Summary:  "Report title, description, headings and Open Graph tags of a page",
			Run: func(req Request) (Result, error) {
				r, err := markup.Meta(req.Input)
				if err != nil {
					return nil, err
				}
				return MetaResult{r}, nil
			},
		},
	}
}

func diffTools(s settings) []Tool {
	differ := textdiff.Differ{MaxCells: s.diffMaxCells}
	return []Tool{
		{
			Name:       "text-diff",
			Category:   CategoryDiff,
			Summary:    "Compare input with other: positional lines, or word and character runs",
			Params:     []Param{strParam("mode", "lines", "lines, words or chars")},
			NeedsOther: true,
			Run: func(req Request) (Result, error) {
				mode := strings.ToLower(req.Str("mode", "lines"))
				var runs []textdiff.Run
				var err error
				switch mode {
				case "lines":
					lines := textdiff.Lines(req.Input, req.Other)
					return DiffResult{Mode: mode, Lines: lines, Summary: textdiff.SummarizeLines(lines)}, nil
				case "words":
					runs, err = differ.Words(req.Input, req.Other)
				case "chars":
					runs, err = differ.Chars(req.Input, req.Other)
				default:
					return nil, fmt.Errorf("%w: mode must be lines, words or chars, got %q", ErrInvalidOption, mode)
				}
				if err != nil {
					return nil, err
				}
				return DiffResult{Mode: mode, Runs: runs, Summary: textdiff.SummarizeRuns(runs)}, nil
			},
		},
	}
}

func convertTools(s settings) []Tool {
	return []Tool{
		{
			Name:     "csv-to-json",
			Category: CategoryConvert,
			Summary:  "Convert CSV with a header row to a JSON array of objects",
			Params:   []Param{boolParam("quoted", false, "honour RFC 4180 quoting instead of splitting on every comma")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				opts := convert.CSVOptions{Quoted: o.bool("quoted", false)}
				if o.err != nil {
					return nil, o.err
				}
				out, err := convert.CSVToJSONWith(req.Input, opts)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "json-to-csv",
			Category: CategoryConvert,
			Summary:  "Convert a JSON array of objects to CSV",
			Run:      convertTool(convert.JSONToCSV),
		},
		{
			Name:     "json-to-yaml",
			Category: CategoryConvert,
			Summary:  "Convert JSON to YAML keeping key order",
			Run:      convertTool(convert.JSONToYAML),
		},
		{
			Name:     "yaml-to-json",
			Category: CategoryConvert,
			Summary:  "Convert YAML to JSON keeping key order",
			Run:      convertTool(convert.YAMLToJSON),
		},
		{
			Name:     "json-select",
			Category: CategoryConvert,
			Summary:  "Pick a value out of JSON by dot path (items.0.name)",
			Params:   []Param{strParam("path", "", "dot path; empty pretty-prints the document")},
			Run: func(req Request) (Result, error) {
				out, err := convert.SelectJSON(req.Input, req.Str("path", ""))
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "html-to-jsx",
			Category: CategoryConvert,
			Summary:  "Rewrite HTML as JSX",
			Run:      convertTool(convert.HTMLToJSX),
		},
		{
			Name:     "user-agent-parser",
			Category: CategoryConvert,
			Summary:  "Identify browser, operating system, device and engine of a User-Agent",
			Run: func(req Request) (Result, error) {
				return UserAgentResult{convert.ParseUserAgent(strings.TrimSpace(req.Input), s.uaRules)}, nil
			},
		},
	}
}

func formatTools() []Tool {
	tools := []Tool{
		{
			Name:     "code-formatter",
			Category: CategoryFormat,
			Summary:  "Pretty-print code; languages: " + strings.Join(format.Kinds(), ", "),
			Params:   []Param{requiredParam("language", "formatter to use")},
			Run: func(req Request) (Result, error) {
				out, err := format.Format(req.Str("language", ""), req.Input)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
	}
	for _, kind := range format.Kinds() {
		name := kind + "-formatter"
		if kind == "json-minify" {
			name = "json-minifier"
		}
		tools = append(tools, Tool{
			Name:     name,
			Category: CategoryFormat,
			Summary:  "Format " + strings.ToUpper(strings.TrimSuffix(kind, "-minify")),
			Run: convertTool(func(in string) (string, error) {
				return format.Format(kind, in)
			}),
		})
	}
	return tools
}

func encodeTools() []Tool {
	urlParam := boolParam("url", false, "use the URL-safe alphabet")
	return []Tool{
		{
			Name:     "base64-encode",
			Category: CategoryEncode,
			Summary:  "Encode text as Base64",
			Params:   []Param{urlParam},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				urlSafe := o.bool("url", false)
				if o.err != nil {
					return nil, o.err
				}
				return ConversionResult{Output: encode.Base64Encode(req.Input, urlSafe)}, nil
			},
		},
		{
			Name:     "base64-decode",
			Category: CategoryEncode,
			Summary:  "Decode Base64 text",
			Params:   []Param{urlParam},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				urlSafe := o.bool("url", false)
				if o.err != nil {
					return nil, o.err
				}
				out, err := encode.Base64Decode(req.Input, urlSafe)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "url-encode",
			Category: CategoryEncode,
			Summary:  "Percent-encode text",
			LineWise: true,
			Run:      textTool(encode.URLEncode),
		},
		{
			Name:     "url-decode",
			Category: CategoryEncode,
			Summary:  "Decode percent-encoded text",
			LineWise: true,
			Run:      convertTool(encode.URLDecode),
		},
		{
			Name:     "html-encode",
			Category: CategoryEncode,
			Summary:  "Escape HTML special characters",
			LineWise: true,
			Run:      textTool(encode.HTMLEncode),
		},
		{
			Name:     "html-decode",
			Category: CategoryEncode,
			Summary:  "Unescape HTML entities",
			LineWise: true,
			Run:      textTool(encode.HTMLDecode),
		},
		{
			Name:     "hash",
			Category: CategoryEncode,
			Summary:  "Hex digest; algorithms: " + strings.Join(encode.Algorithms(), ", "),
			Params:   []Param{strParam("algorithm", "sha256", "digest algorithm")},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				out, err := encode.Hash(req.Str("algorithm", "sha256"), req.Input)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "uuid-generator",
			Category: CategoryEncode,
			Summary:  "Generate random version 4 UUIDs",
			Params:   []Param{intParam("count", 1, "how many to generate")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				n := o.int("count", 1)
				if o.err != nil {
					return nil, o.err
				}
				ids, err := encode.UUIDs(n)
				if err != nil {
					return nil, err
				}
				return ListResult{Items: ids}, nil
			},
		},
		{
			Name:     "password-generator",
			Category: CategoryEncode,
			Summary:  "Generate random passwords",
			Params: []Param{
				intParam("length", 16, "password length"),
				intParam("count", 1, "how many to generate"),
				boolParam("upper", true, "include upper-case letters"),
				boolParam("lower", true, "include lower-case letters"),
				boolParam("digits", true, "include digits"),
				boolParam("symbols", true, "include symbols"),
			},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				opts := encode.PasswordOptions{
					Length:  o.int("length", 16),
					Upper:   o.bool("upper", true),
					Lower:   o.bool("lower", true),
					Digits:  o.bool("digits", true),
					Symbols: o.bool("symbols", true),
				}
				count := o.int("count", 1)
				if o.err != nil {
					return nil, o.err
				}
				if count < 1 || count > 100 {
					return nil, fmt.Errorf("%w: count must be between 1 and 100, got %d", ErrInvalidOption, count)
				}
				out := make([]string, count)
				for i := range out {
					p, err := encode.Password(opts)
					if err != nil {
						return nil, err
					}
					out[i] = p
				}
				return ListResult{Items: out}, nil
			},
		},
		{
			Name:     "bcrypt",
			Category: CategoryEncode,
			Summary:  "Hash the input with bcrypt",
			Params:   []Param{intParam("cost", 10, "bcrypt cost")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				cost := o.int("cost", 10)
				if o.err != nil {
					return nil, o.err
				}
				out, err := encode.Bcrypt(req.Input, cost)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
	}
}

func htmlTools() []Tool {
	return []Tool{
		{
			Name:     "strip-tags",
			Category: CategoryHTML,
			Summary:  "Remove HTML tags, scripts and styles",
			Run:      textTool(markup.StripTags),
		},
		{
			Name:     "extract-links",
			Category: CategoryHTML,
			Summary:  "List the links of an HTML document",
			Params:   []Param{strParam("template", "", "line template with {text} and {href}")},
			Run: func(req Request) (Result, error) {
				links, err := markup.Links(req.Input)
				if err != nil {
					return nil, err
				}
				return LinkResult{Links: links, Template: textops.Unescape(req.Str("template", ""))}, nil
			},
		},
		{
			Name:     "html-select",
			Category: CategoryHTML,
			Summary:  "Select elements with a CSS selector",
			Params: []Param{
				requiredParam("selector", "CSS selector"),
				strParam("output", "text", "text, inner, outer or attr:<name>, several joined with |"),
			},
			Run: func(req Request) (Result, error) {
				outputs := strings.Split(req.Str("output", "text"), "|")
				items, err := markup.Select(req.Input, req.Str("selector", ""), outputs)
				if err != nil {
					return nil, err
				}
				return ListResult{Items: items}, nil
			},
		},
		{
			Name:     "readability",
			Category: CategoryHTML,
			Summary:  "Extract the readable article text of a page",
			Params:   []Param{strParam("url", "", "page URL used to resolve relative links")},
			Run: func(req Request) (Result, error) {
				a, err := markup.Readable(req.Input, req.Str("url", ""))
				if err != nil {
					return nil, err
				}
				return ArticleResult{a}, nil
			},
		},
	}
}

// nonNegative reads an integer option that must not be negative.
func nonNegative(req Request, key string, def int) (int, error) {
	n, err := req.Int(key, def)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidOption, key, n)
	}
	return n, nil
}

func lineTools() []Tool {
	flags := strParam("flags", "", "regex flags: i, m, s")
	countParam := Param{Name: "count", Type: "int", Required: true, Summary: "number of characters"}
	return []Tool{
		{
			Name:     "regex-tester",
			Category: CategoryLines,
			Summary:  "List every match of a regular expression",
			Params:   []Param{requiredParam("pattern", "regular expression"), flags},
			Run: func(req Request) (Result, error) {
				matches, err := textops.FindMatches(req.Input, req.Str("pattern", ""), req.Str("flags", ""))
				if err != nil {
					return nil, err
				}
				return MatchResult{Matches: matches}, nil
			},
		},
		{
			Name:     "regex-replace",
			Category: CategoryLines,
			Summary:  "Replace regular expression matches; $1 refers to groups",
			Params: []Param{
				requiredParam("pattern", "regular expression"),
				strParam("replacement", "", "replacement text"),
				flags,
			},
			Run: func(req Request) (Result, error) {
				out, err := textops.ReplaceRegex(req.Input, req.Str("pattern", ""), req.Str("replacement", ""), req.Str("flags", ""))
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "find-replace",
			Category: CategoryLines,
			Summary:  "Replace literal text; \\n and \\t escapes are expanded",
			Params: []Param{
				requiredParam("find", "text to find"),
				strParam("replace", "", "replacement text"),
			},
			Run: func(req Request) (Result, error) {
				return ConversionResult{Output: textops.ReplaceText(req.Input, req.Str("find", ""), req.Str("replace", ""))}, nil
			},
		},
		{
			Name:     "keep-lines",
			Category: CategoryLines,
			Summary:  "Keep lines matching a regular expression",
			Params:   []Param{requiredParam("pattern", "regular expression"), flags},
			Run: func(req Request) (Result, error) {
				out, err := textops.KeepLines(req.Input, req.Str("pattern", ""), req.Str("flags", ""))
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "remove-lines",
			Category: CategoryLines,
			Summary:  "Remove lines matching a regular expression",
			Params:   []Param{requiredParam("pattern", "regular expression"), flags},
			Run: func(req Request) (Result, error) {
				out, err := textops.RemoveLines(req.Input, req.Str("pattern", ""), req.Str("flags", ""))
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: out}, nil
			},
		},
		{
			Name:     "dedupe-lines",
			Category: CategoryLines,
			Summary:  "Remove duplicate lines",
			Params:   []Param{boolParam("ignore_case", false, "compare lines case-insensitively")},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				ignore := o.bool("ignore_case", false)
				if o.err != nil {
					return nil, o.err
				}
				return ConversionResult{Output: textops.DedupeLines(req.Input, ignore)}, nil
			},
		},
		{
			Name:     "sort-lines",
			Category: CategoryLines,
			Summary:  "Sort lines",
			Params: []Param{
				boolParam("reverse", false, "descending order"),
				boolParam("ignore_case", false, "compare case-insensitively"),
				boolParam("numeric", false, "order by leading number"),
			},
			Run: func(req Request) (Result, error) {
				o := optReader{req: req}
				opts := textops.SortOptions{
					Reverse:    o.bool("reverse", false),
					IgnoreCase: o.bool("ignore_case", false),
					Numeric:    o.bool("numeric", false),
				}
				if o.err != nil {
					return nil, o.err
				}
				return ConversionResult{Output: textops.SortLines(req.Input, opts)}, nil
			},
		},
		{
			Name:     "trim-lines",
			Category: CategoryLines,
			Summary:  "Trim whitespace around every line",
			Run:      textTool(textops.TrimLines),
		},
		{
			Name:     "remove-empty-lines",
			Category: CategoryLines,
			Summary:  "Drop blank lines",
			Run:      textTool(textops.RemoveEmptyLines),
		},
		{
			Name:     "left-chars",
			Category: CategoryLines,
			Summary:  "Keep the first characters",
			Params:   []Param{countParam},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				n, err := nonNegative(req, "count", 0)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: textops.Left(req.Input, n)}, nil
			},
		},
		{
			Name:     "right-chars",
			Category: CategoryLines,
			Summary:  "Keep the last characters",
			Params:   []Param{countParam},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				n, err := nonNegative(req, "count", 0)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: textops.Right(req.Input, n)}, nil
			},
		},
		{
			Name:     "mid-chars",
			Category: CategoryLines,
			Summary:  "Keep characters from a start offset",
			Params:   []Param{intParam("start", 0, "zero-based start offset"), countParam},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				start, err := nonNegative(req, "start", 0)
				if err != nil {
					return nil, err
				}
				n, err := nonNegative(req, "count", 0)
				if err != nil {
					return nil, err
				}
				return ConversionResult{Output: textops.Mid(req.Input, start, n)}, nil
			},
		},
		{
			Name:     "surround",
			Category: CategoryLines,
			Summary:  "Wrap the whole text in a prefix and suffix",
			Params: []Param{
				strParam("prefix", "", "text before"),
				strParam("suffix", "", "text after"),
			},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				return ConversionResult{Output: textops.Surround(req.Input, req.Str("prefix", ""), req.Str("suffix", ""))}, nil
			},
		},
		{
			Name:     "remove-prefix-suffix",
			Category: CategoryLines,
			Summary:  "Strip a prefix and suffix when present",
			Params: []Param{
				strParam("prefix", "", "text to strip from the start"),
				strParam("suffix", "", "text to strip from the end"),
			},
			LineWise: true,
			Run: func(req Request) (Result, error) {
				return ConversionResult{Output: textops.RemoveAffixes(req.Input, req.Str("prefix", ""), req.Str("suffix", ""))}, nil
			},
		},
		{
			Name:     "calculate",
			Category: CategoryLines,
			Summary:  "Replace arithmetic such as 6 + 5 * 2 with its result",
			LineWise: true,
			Run:      textTool(textops.Calculate),
		},
		{
			Name:     "add-prefix-suffix",
			Category: CategoryLines,
			Summary:  "Wrap every line in a prefix and suffix",
			Params: []Param{
				strParam("prefix", "", "text before each line"),
				strParam("suffix", "", "text after each line"),
			},
			Run: func(req Request) (Result, error) {
				return ConversionResult{Output: textops.AddAffixes(req.Input, req.Str("prefix", ""), req.Str("suffix", ""))}, nil
			},
		},
	}
}
