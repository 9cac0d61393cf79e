package convert

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// jsxAttributes maps lower-case HTML attribute names to their JSX spelling.
var jsxAttributes = map[string]string{
	"class":           "className",
	"for":             "htmlFor",
	"tabindex":        "tabIndex",
	"readonly":        "readOnly",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"colspan":         "colSpan",
	"rowspan":         "rowSpan",
	"cellpadding":     "cellPadding",
	"cellspacing":     "cellSpacing",
	"contenteditable": "contentEditable",
	"crossorigin":     "crossOrigin",
	"autocomplete":    "autoComplete",
	"autofocus":       "autoFocus",
	"autoplay":        "autoPlay",
	"enctype":         "encType",
	"formaction":      "formAction",
	"frameborder":     "frameBorder",
	"srcset":          "srcSet",
	"usemap":          "useMap",
	"novalidate":      "noValidate",
	"spellcheck":      "spellCheck",
	"datetime":        "dateTime",
	"accesskey":       "accessKey",
	"allowfullscreen": "allowFullScreen",
	"charset":         "charSet",
	"playsinline":     "playsInline",
	"referrerpolicy":  "referrerPolicy",
	"viewbox":         "viewBox",
	"xlink:href":      "xlinkHref",
	"xml:lang":        "xmlLang",
	"xml:space":       "xmlSpace",
}

// jsxEvents covers event names whose JSX spelling is not a plain
// capitalization of the HTML one.
var jsxEvents = map[string]string{
	"ondblclick":    "onDoubleClick",
	"onmousedown":   "onMouseDown",
	"onmouseup":     "onMouseUp",
	"onmouseover":   "onMouseOver",
	"onmouseout":    "onMouseOut",
	"onmousemove":   "onMouseMove",
	"onmouseenter":  "onMouseEnter",
	"onmouseleave":  "onMouseLeave",
	"onkeydown":     "onKeyDown",
	"onkeyup":       "onKeyUp",
	"onkeypress":    "onKeyPress",
	"oncontextmenu": "onContextMenu",
	"ontouchstart":  "onTouchStart",
	"ontouchend":    "onTouchEnd",
	"ontouchmove":   "onTouchMove",
	"ondragstart":   "onDragStart",
	"ondragend":     "onDragEnd",
	"ondragover":    "onDragOver",
}

var jsxText = strings.NewReplacer("{", "{'{'}", "}", "{'}'}", "<", "{'<'}", ">", "{'>'}")

// attr is one attribute as written in the source tag.
type attr struct {
	Name     string
	Value    string
	HasValue bool
}

// tag is a start tag parsed from its raw source.
type tag struct {
	Name        string
	Attrs       []attr
	SelfClosing bool
}

// HTMLToJSX rewrites HTML markup as JSX: attribute names are converted,
// inline styles become object literals, event handler strings become
// expressions, void elements self-close and comments become JSX comments.
func HTMLToJSX(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}

	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	rawText := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return b.String(), nil
			}
			return "", z.Err()
		case html.TextToken:
			text := string(z.Raw())
			if rawText == "script" || rawText == "style" {
				if strings.TrimSpace(text) != "" {
					b.WriteString("{`" + strings.NewReplacer("`", "\\`", "${", "\\${").Replace(text) + "`}")
				}
			} else {
				b.WriteString(jsxText.Replace(text))
			}
		case html.CommentToken:
			b.WriteString("{/*" + strings.ReplaceAll(string(z.Text()), "*/", "* /") + "*/}")
		case html.DoctypeToken:
		case html.StartTagToken, html.SelfClosingTagToken:
			t := parseTag(string(z.Raw()))
			t.SelfClosing = t.SelfClosing || tt == html.SelfClosingTagToken
			lower := strings.ToLower(t.Name)
			if voidElements[lower] {
				t.SelfClosing = true
			}
			if !t.SelfClosing && (lower == "script" || lower == "style") {
				rawText = lower
			}
			b.WriteString(renderTag(t))
		case html.EndTagToken:
			name := endTagName(string(z.Raw()))
			rawText = ""
			if voidElements[strings.ToLower(name)] {
				continue
			}
			b.WriteString("</" + name + ">")
		}
	}
}

// parseTag reads the tag name and attributes from raw start-tag source,
// keeping the original spelling of names.
func parseTag(raw string) tag {
	s := strings.TrimPrefix(raw, "<")
	s = strings.TrimSuffix(s, ">")
	var t tag
	if strings.HasSuffix(s, "/") {
		t.SelfClosing = true
		s = strings.TrimSuffix(s, "/")
	}

	i := 0
	for i < len(s) && !isTagSpace(s[i]) && s[i] != '/' {
		i++
	}
	t.Name = s[:i]

	for i < len(s) {
		for i < len(s) && (isTagSpace(s[i]) || s[i] == '/') {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		for i < len(s) && !isTagSpace(s[i]) && s[i] != '=' && s[i] != '/' {
			i++
		}
		a := attr{Name: s[start:i]}
		j := i
		for j < len(s) && isTagSpace(s[j]) {
			j++
		}
		if j < len(s) && s[j] == '=' {
			a.HasValue = true
			j++
			for j < len(s) && isTagSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '"' || s[j] == '\'') {
				q := s[j]
				end := strings.IndexByte(s[j+1:], q)
				if end < 0 {
					a.Value = s[j+1:]
					j = len(s)
				} else {
					a.Value = s[j+1 : j+1+end]
					j += end + 2
				}
			} else {
				vs := j
				for j < len(s) && !isTagSpace(s[j]) {
					j++
				}
				a.Value = s[vs:j]
			}
			i = j
		}
		if a.Name != "" {
			t.Attrs = append(t.Attrs, a)
		}
	}
	return t
}

func endTagName(raw string) string {
	s := strings.TrimPrefix(raw, "</")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimSpace(s)
}

func renderTag(t tag) string {
	var b strings.Builder
	b.WriteString("<" + t.Name)
	for _, a := range t.Attrs {
		if rendered := renderAttr(a); rendered != "" {
			b.WriteByte(' ')
			b.WriteString(rendered)
		}
	}
	if t.SelfClosing {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
	}
	return b.String()
}

// renderAttr returns the JSX form of a, or "" when a is dropped.
func renderAttr(a attr) string {
	lower := strings.ToLower(a.Name)
	switch {
	case lower == "style" && a.HasValue:
		return "style={{" + StyleObject(a.Value) + "}}"
	case isEventAttr(lower) && a.HasValue:
		code := strings.TrimSpace(a.Value)
		if code == "" {
			return ""
		}
		return eventName(lower) + "={" + code + "}"
	}

	name := jsxAttrName(a.Name)
	if !a.HasValue {
		return name
	}
	if strings.ContainsRune(a.Value, '"') {
		return name + "={" + strconv.Quote(a.Value) + "}"
	}
	return name + `="` + a.Value + `"`
}

func jsxAttrName(name string) string {
	lower := strings.ToLower(name)
	if mapped, ok := jsxAttributes[lower]; ok {
		return mapped
	}
	if strings.HasPrefix(lower, "data-") || strings.HasPrefix(lower, "aria-") {
		return name
	}
	if strings.Contains(name, "-") {
		return camelCase(lower)
	}
	return name
}

func isEventAttr(lower string) bool {
	if len(lower) <= 2 || !strings.HasPrefix(lower, "on") {
		return false
	}
	for _, r := range lower[2:] {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func eventName(lower string) string {
	if mapped, ok := jsxEvents[lower]; ok {
		return mapped
	}
	return "on" + strings.ToUpper(lower[2:3]) + lower[3:]
}

// StyleObject converts an inline CSS declaration list into the body of a
// JavaScript object literal with camelCase keys and single-quoted values.
func StyleObject(css string) string {
	var parts []string
	for _, decl := range splitDeclarations(css) {
		colon := strings.IndexByte(decl, ':')
		if colon < 0 {
			continue
		}
		prop := strings.TrimSpace(decl[:colon])
		value := strings.TrimSpace(decl[colon+1:])
		if prop == "" || value == "" {
			continue
		}
		parts = append(parts, styleKey(prop)+": "+jsString(value))
	}
	return strings.Join(parts, ", ")
}

// splitDeclarations splits on ';' outside quotes and parentheses.
func splitDeclarations(css string) []string {
	var out []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(css); i++ {
		c := css[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			out = append(out, css[start:i])
			start = i + 1
		}
	}
	if start < len(css) {
		out = append(out, css[start:])
	}
	return out
}

func styleKey(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return jsString(prop)
	}
	prop = strings.ToLower(prop)
	if strings.HasPrefix(prop, "-ms-") {
		return camelCase(prop[1:])
	}
	if strings.HasPrefix(prop, "-") {
		c := camelCase(prop[1:])
		if c == "" {
			return jsString(prop)
		}
		return strings.ToUpper(c[:1]) + c[1:]
	}
	if c := camelCase(prop); c != "" {
		return c
	}
	return jsString(prop)
}

// camelCase turns "font-size" into "fontSize" and "xlink:href" into "xlinkHref".
func camelCase(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' || r == ':' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func jsString(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s) + "'"
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
