// ABOUTME: Grammar-driven arithmetic expression evaluator over a fixed function table
// ABOUTME: No identifier resolves outside the table; there is no ambient environment

package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Evaluate parses and evaluates an arithmetic expression.
//
// Grammar (precedence low to high):
//
//	expr    = term   { ("+" | "-") term }
//	term    = unary  { ("*" | "/" | "//" | "%") unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ "**" unary ]
//	primary = number | ident [ "(" [expr {"," expr}] ")" ] | "(" expr ")"
//
// Identifiers resolve only against the fixed constant and function tables
// below. Anything else is an error.
func Evaluate(expr string) (float64, error) {
	p := &parser{input: expr}
	if err := p.next(); err != nil {
		return 0, err
	}

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q", p.tok.text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("math domain error")
	}
	return v, nil
}

// numericValue renders an evaluation result the way the calculator reports
// it: integral values become ints, everything else stays a float.
func numericValue(v float64) (any, string) {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v), "int"
	}
	return v, "float"
}

// constants is the full set of resolvable names that are not functions.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// functions is the full callable table. Each entry validates its own arity.
var functions = map[string]func(args []float64) (float64, error){
	"abs":   unaryFn("abs", math.Abs),
	"sqrt":  unaryFn("sqrt", math.Sqrt),
	"sin":   unaryFn("sin", math.Sin),
	"cos":   unaryFn("cos", math.Cos),
	"tan":   unaryFn("tan", math.Tan),
	"log10": unaryFn("log10", math.Log10),
	"exp":   unaryFn("exp", math.Exp),
	"floor": unaryFn("floor", math.Floor),
	"ceil":  unaryFn("ceil", math.Ceil),
	"log": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Log(args[0]), nil
		case 2:
			return math.Log(args[0]) / math.Log(args[1]), nil
		}
		return 0, fmt.Errorf("log expects 1 or 2 arguments, got %d", len(args))
	},
	"pow": func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(args[0], args[1]), nil
	},
	"round": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Round(args[0]), nil
		case 2:
			if args[1] != math.Trunc(args[1]) {
				return 0, fmt.Errorf("round digits must be an integer")
			}
			shift := math.Pow(10, args[1])
			return math.Round(args[0]*shift) / shift, nil
		}
		return 0, fmt.Errorf("round expects 1 or 2 arguments, got %d", len(args))
	},
	"min": reduceFn("min", math.Min),
	"max": reduceFn("max", math.Max),
	"sum": func(args []float64) (float64, error) {
		total := 0.0
		for _, a := range args {
			total += a
		}
		return total, nil
	},
}

func unaryFn(name string, fn func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		return fn(args[0]), nil
	}
}

func reduceFn(name string, fn func(float64, float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, fmt.Errorf("%s expects at least 1 argument", name)
		}
		acc := args[0]
		for _, a := range args[1:] {
			acc = fn(acc, a)
		}
		return acc, nil
	}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type parser struct {
	input string
	pos   int
	tok   token
}

// next advances to the following token.
func (p *parser) next() error {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.input) {
		p.tok = token{kind: tokEOF}
		return nil
	}

	c := p.input[p.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		return p.lexNumber()
	case isIdentStart(c):
		start := p.pos
		for p.pos < len(p.input) && isIdentPart(p.input[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tokIdent, text: p.input[start:p.pos]}
		return nil
	case strings.HasPrefix(p.input[p.pos:], "**"), strings.HasPrefix(p.input[p.pos:], "//"):
		p.tok = token{kind: tokOp, text: p.input[p.pos : p.pos+2]}
		p.pos += 2
		return nil
	case strings.ContainsRune("+-*/%(),", rune(c)):
		p.tok = token{kind: tokOp, text: string(c)}
		p.pos++
		return nil
	}
	return fmt.Errorf("unexpected character %q", string(c))
}

func (p *parser) lexNumber() error {
	start := p.pos
	seenDot, seenExp := false, false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp && p.pos > start:
			seenExp = true
			if p.pos+1 < len(p.input) && (p.input[p.pos+1] == '+' || p.input[p.pos+1] == '-') {
				p.pos++
			}
		default:
			goto done
		}
		p.pos++
	}
done:
	text := p.input[start:p.pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	p.tok = token{kind: tokNumber, text: text, num: num}
	return nil
}

func (p *parser) acceptOp(op string) (bool, error) {
	if p.tok.kind == tokOp && p.tok.text == op {
		return true, p.next()
	}
	return false, nil
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		if err := p.next(); err != nil {
			return 0, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/" || p.tok.text == "//" || p.tok.text == "%") {
		op := p.tok.text
		if err := p.next(); err != nil {
			return 0, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case "//":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left = math.Floor(left / right)
		case "%":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left = math.Mod(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (float64, error) {
	if neg, err := p.acceptOp("-"); err != nil {
		return 0, err
	} else if neg {
		v, err := p.parseUnary()
		return -v, err
	}
	if pos, err := p.acceptOp("+"); err != nil {
		return 0, err
	} else if pos {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if pow, err := p.acceptOp("**"); err != nil {
		return 0, err
	} else if pow {
		// Right-associative; the exponent may carry its own unary sign.
		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (float64, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		return v, p.next()

	case tokIdent:
		name := p.tok.text
		if err := p.next(); err != nil {
			return 0, err
		}

		if open, err := p.acceptOp("("); err != nil {
			return 0, err
		} else if open {
			fn, ok := functions[name]
			if !ok {
				return 0, fmt.Errorf("unknown function %q", name)
			}
			args, err := p.parseArgs()
			if err != nil {
				return 0, err
			}
			return fn(args)
		}

		if v, ok := constants[name]; ok {
			return v, nil
		}
		return 0, fmt.Errorf("name %q is not defined", name)

	case tokOp:
		if p.tok.text == "(" {
			if err := p.next(); err != nil {
				return 0, err
			}
			v, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			if closed, err := p.acceptOp(")"); err != nil {
				return 0, err
			} else if !closed {
				return 0, fmt.Errorf("missing closing parenthesis")
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("unexpected %q", p.tok.text)
}

// parseArgs parses a parenthesized argument list; the opening paren has
// already been consumed.
func (p *parser) parseArgs() ([]float64, error) {
	if closed, err := p.acceptOp(")"); err != nil {
		return nil, err
	} else if closed {
		return nil, nil
	}

	var args []float64
	for {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, v)

		if comma, err := p.acceptOp(","); err != nil {
			return nil, err
		} else if comma {
			continue
		}
		if closed, err := p.acceptOp(")"); err != nil {
			return nil, err
		} else if closed {
			return args, nil
		}
		return nil, fmt.Errorf("unexpected %q in argument list", p.tok.text)
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
