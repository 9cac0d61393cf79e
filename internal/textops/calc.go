package textops

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by Evaluate.
var (
	ErrBadExpression  = errors.New("invalid expression")
	ErrDivisionByZero = errors.New("division by zero")
)

// arithmetic finds runs like "6 + 5" or "-10 * 2.5 / 4" inside prose.
var arithmetic = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:\s*[+\-*/]\s*-?\d+(?:\.\d+)?)+`)

// Calculate replaces every arithmetic expression in text with its value.
// Expressions that cannot be evaluated, such as a division by zero, are
// left as written.
func Calculate(text string) string {
	return arithmetic.ReplaceAllStringFunc(text, func(expr string) string {
		v, err := Evaluate(expr)
		if err != nil {
			return expr
		}
		return FormatNumber(v)
	})
}

// Evaluate computes an expression of numbers, + - * /, unary minus and
// parentheses with the usual precedence.
func Evaluate(expr string) (float64, error) {
	p := &exprParser{src: strings.TrimSpace(expr)}
	if p.src == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadExpression)
	}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrBadExpression, p.src[p.pos:])
	}
	return v, nil
}

// FormatNumber prints v without trailing zeros, rounded to 10 decimals.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	s := strconv.FormatFloat(v, 'f', 10, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// maxNesting bounds parentheses and repeated unary minus.
const maxNesting = 256

type exprParser struct {
	src   string
	pos   int
	depth int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next non-space byte, or 0 at the end.
func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) sum() (float64, error) {
	left, err := p.product()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.product()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) product() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
}

func (p *exprParser) unary() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return 0, fmt.Errorf("%w: nested more than %d deep", ErrBadExpression, maxNesting)
	}
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("%w: missing )", ErrBadExpression)
		}
		p.pos++
		return v, nil
	}
	return p.number()
}

func (p *exprParser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		if p.pos >= len(p.src) {
			return 0, fmt.Errorf("%w: expected a number at the end", ErrBadExpression)
		}
		return 0, fmt.Errorf("%w: expected a number at %q", ErrBadExpression, p.src[p.pos:])
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrBadExpression, p.src[start:p.pos])
	}
	return v, nil
}
