package textops

import (
	"strconv"
	"strings"
)

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'f':  '\f',
	'v':  '\v',
	'b':  '\b',
	'a':  '\a',
	'\\': '\\',
}

// hexEscapes maps an escape letter to the number of hex digits it takes.
var hexEscapes = map[rune]int{'x': 2, 'u': 4, 'U': 8}

// Unescape expands \n, \r, \t, \f, \v, \b, \a, \\, \xHH, \uHHHH and
// \UHHHHHHHH. Anything else, including malformed hex escapes, is kept
// as written.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		next := runes[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteRune(r)
			i++
			continue
		}
		if n, ok := hexEscapes[next]; ok && i+1+n < len(runes) {
			if v, err := strconv.ParseUint(string(runes[i+2:i+2+n]), 16, 32); err == nil {
				b.WriteRune(rune(v))
				i += 1 + n
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
