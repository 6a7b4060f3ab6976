// Package arith evaluates small arithmetic expressions for the demo
// evaluate tool. It supports + - * /, parentheses, unary minus, and
// float literals. It is deliberately a toy: no variables, no functions.
package arith

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wagiedev/dyntools-go/internal/errs"
)

// Eval parses and evaluates expr.
func Eval(expr string) (float64, error) {
	p := &parser{input: expr}

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	p.skipSpace()

	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", errs.ErrInvalidExpression, p.rest(), p.pos)
	}

	return v, nil
}

// Format renders an evaluation result the way the demo tool presents it:
// no exponent, no trailing zeros, so 8/2 prints as "4".
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parser is a recursive-descent parser with the usual precedence:
// expr := term (('+'|'-') term)*
// term := factor (('*'|'/') factor)*
// factor := number | '(' expr ')' | '-' factor
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()

		switch {
		case p.accept('+'):
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}

			v += rhs
		case p.accept('-'):
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}

			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()

		switch {
		case p.accept('*'):
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}

			v *= rhs
		case p.accept('/'):
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}

			if rhs == 0 {
				return 0, errs.ErrDivideByZero
			}

			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	p.skipSpace()

	switch {
	case p.accept('-'):
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}

		return -v, nil
	case p.accept('('):
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}

		p.skipSpace()

		if !p.accept(')') {
			return 0, fmt.Errorf("%w: missing closing parenthesis", errs.ErrInvalidExpression)
		}

		return v, nil
	default:
		return p.parseNumber()
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos

	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsDigit(c) && c != '.' {
			break
		}

		p.pos++
	}

	if start == p.pos {
		return 0, fmt.Errorf("%w: expected number at offset %d", errs.ErrInvalidExpression, start)
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", errs.ErrInvalidExpression, p.input[start:p.pos])
	}

	return v, nil
}

func (p *parser) accept(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++

		return true
	}

	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) rest() string {
	return strings.TrimSpace(p.input[p.pos:])
}
