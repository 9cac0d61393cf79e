// Package format pretty-prints code by delegating to a formatter chosen by
// identifier.
package format

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/convert"
)

// ErrUnsupportedFormat is returned for identifiers with no delegate.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formatter rewrites source text into its canonical layout.
type Formatter func(input string) (string, error)

var formatters = map[string]Formatter{
	"json":        JSON,
	"json-minify": MinifyJSON,
	"xml":         XML,
	"yaml":        convert.FormatYAML,
	"html":        HTML,
}

// Kinds lists the supported identifiers in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(formatters))
	for k := range formatters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Format runs the formatter registered under kind.
func Format(kind, input string) (string, error) {
	f, ok := formatters[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
	return f(input)
}

// JSON indents a JSON document with two spaces.
func JSON(input string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(input)), "", "  "); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// MinifyJSON removes insignificant whitespace from a JSON document.
func MinifyJSON(input string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(input))); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// XML re-indents an XML document with two spaces. Whitespace-only text
// between elements is dropped; namespace prefixes are kept as written.
func XML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", convert.ErrEmptyInput
	}
	dec := xml.NewDecoder(strings.NewReader(input))
	dec.Strict = true

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("invalid XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			tok = xml.CharData(bytes.TrimSpace(t))
		case xml.StartElement:
			t.Name = flatName(t.Name)
			attrs := make([]xml.Attr, len(t.Attr))
			for i, a := range t.Attr {
				attrs[i] = xml.Attr{Name: flatName(a.Name), Value: a.Value}
			}
			t.Attr = attrs
			tok = t
		case xml.EndElement:
			t.Name = flatName(t.Name)
			tok = t
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", fmt.Errorf("invalid XML: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// flatName folds a raw prefix into the local name so the encoder writes it
// back unchanged instead of declaring a namespace.
func flatName(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}
