// Package parser builds unit-formula expression trees from tokens.
//
// Grammar, resolved left to right:
//
//	formula := factor (('*' | '/' | juxtaposition) factor)*
//	factor  := (ident | '1' | '(' formula ')') ('^' '-'? int)?
//
// Juxtaposition is multiplication, with one twist: after a '/',
// juxtaposed factors keep dividing until an explicit '*' switches the
// chain back to multiplication. A parenthesized group divided by is
// distributed as a whole, so kg/(m s) divides by both atoms.
package parser

import (
	"fmt"
	"strconv"

	"dims/internal/ast"
	"dims/internal/diag"
	"dims/internal/lexer"
	"dims/internal/source"
	"dims/internal/token"
)

// Parser consumes one formula from a lexer.
type Parser struct {
	lx       *lexer.Lexer
	reporter diag.Reporter
	errored  bool
}

// New constructs a parser over the given file.
func New(file *source.File, reporter diag.Reporter) *Parser {
	return &Parser{
		lx:       lexer.New(file, lexer.Options{Reporter: reporter}),
		reporter: reporter,
	}
}

// Parse parses a whole file as a single formula. The returned
// expression may be non-nil even when ok is false, to let callers
// render partial trees in debug output.
func Parse(file *source.File, reporter diag.Reporter) (ast.Expr, bool) {
	p := New(file, reporter)
	expr := p.parseFormula(token.EOF)

	if tok := p.lx.Peek(); tok.Kind != token.EOF && !p.errored {
		p.errorf(diag.SynTrailingInput, tok.Span, "unexpected %s after formula", tok.Kind)
	}
	return expr, expr != nil && !p.errored
}

// parseFormula parses factors until EOF or the given closing token.
func (p *Parser) parseFormula(closer token.Kind) ast.Expr {
	first := p.lx.Peek()
	if first.Kind == token.Slash {
		p.errorf(diag.SynMissingDividend, first.Span, "division needs a left-hand operand")
		return nil
	}
	if !first.StartsFactor() {
		p.errorf(diag.SynExpectFactor, first.Span, "expected a unit name, `1`, or `(`")
		return nil
	}

	expr := p.parseFactor()
	if expr == nil {
		return nil
	}

	// dividing tracks the sign state: true between a '/' and the next
	// explicit '*'.
	dividing := false

	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.Star:
			p.lx.Next()
			dividing = false
		case tok.Kind == token.Slash:
			p.lx.Next()
			dividing = true
		case tok.StartsFactor():
			// juxtaposition: keep the current sign state
		case tok.Kind == closer:
			return expr
		default:
			// Let the caller decide whether the leftover token is an
			// error; EOF and a foreign closer both end the formula.
			return expr
		}

		next := p.lx.Peek()
		if !next.StartsFactor() {
			p.errorf(diag.SynExpectFactor, next.Span, "expected a unit name, `1`, or `(` after %s", tok.Kind)
			return expr
		}

		f := p.parseFactor()
		if f == nil {
			return expr
		}
		if dividing {
			expr = &ast.Div{X: expr, Y: f}
		} else {
			expr = &ast.Mul{X: expr, Y: f}
		}
	}
}

// parseFactor parses one multiplicative factor and its optional
// exponent.
func (p *Parser) parseFactor() ast.Expr {
	tok := p.lx.Next()

	var base ast.Expr
	switch tok.Kind {
	case token.Ident:
		base = &ast.Atom{Name: tok.Text, Sp: tok.Span}

	case token.IntLit:
		if tok.Text != "1" {
			p.errorf(diag.SynUnexpectedToken, tok.Span, "`%s` is not a unit; only the dimensionless literal `1` may appear here", tok.Text)
			return nil
		}
		base = &ast.One{Sp: tok.Span}

	case token.LParen:
		inner := p.parseFormula(token.RParen)
		if inner == nil {
			return nil
		}
		closing := p.lx.Next()
		if closing.Kind != token.RParen {
			p.errorf(diag.SynUnclosedParen, tok.Span, "unclosed `(` in unit formula")
			return nil
		}
		base = &ast.Group{Inner: inner, Sp: tok.Span.Cover(closing.Span)}

	default:
		p.errorf(diag.SynExpectFactor, tok.Span, "expected a unit name, `1`, or `(`")
		return nil
	}

	if p.lx.Peek().Kind != token.Caret {
		return base
	}
	p.lx.Next() // '^'

	exp, expSpan, ok := p.parseExponent()
	if !ok {
		return base
	}
	return &ast.Pow{Base: base, Exp: exp, Sp: base.Span().Cover(expSpan)}
}

// parseExponent parses the integer after '^', with an optional
// leading minus.
func (p *Parser) parseExponent() (int32, source.Span, bool) {
	neg := false
	tok := p.lx.Next()
	span := tok.Span

	if tok.Kind == token.Minus {
		neg = true
		tok = p.lx.Next()
		span = span.Cover(tok.Span)
	}

	if tok.Kind != token.IntLit {
		p.errorf(diag.SynExpectExponent, span, "expected an integer exponent after `^`")
		return 0, span, false
	}

	v, err := strconv.ParseInt(tok.Text, 10, 32)
	if err != nil {
		p.errorf(diag.SynExpectExponent, span, "exponent %s does not fit in 32 bits", tok.Text)
		return 0, span, false
	}
	exp := int32(v)
	if neg {
		exp = -exp
	}
	return exp, span, true
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	p.errored = true
	if p.reporter != nil {
		p.reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
	}
}
