package lang

import (
	"log/slog"
	"strconv"
)

// Expression parsing is precedence climbing with explicit tiers, lowest
// binding first: comparison, additive, multiplicative, postfix property
// access, primary term. Every binary tier is built by iterative
// left-recursion, so all operators are strictly left-associative.

// parseExpr parses a complete expression.
func (p *parser) parseExpr() (*ValueExpr, *Error) {
	return p.parseComparison()
}

var comparisonOps = map[TokenKind]BinaryOperator{
	TokenLess:         OpLt,
	TokenLessEqual:    OpLe,
	TokenGreater:      OpGt,
	TokenGreaterEqual: OpGe,
	TokenEqualEqual:   OpEq,
	TokenBangEqual:    OpNe,
}

var additiveOps = map[TokenKind]BinaryOperator{
	TokenPlus:  OpAdd,
	TokenMinus: OpSub,
}

var multiplicativeOps = map[TokenKind]BinaryOperator{
	TokenStar:  OpMul,
	TokenSlash: OpDiv,
}

// parseComparison parses: add (("<"|"<="|">"|">="|"=="|"!=") add)*.
// All six operators share one tier; a < b < c is (a < b) < c, never a
// chained relational test.
func (p *parser) parseComparison() (*ValueExpr, *Error) {
	return p.parseBinaryTier(comparisonOps, (*parser).parseAdditive)
}

// parseAdditive parses: mul (("+"|"-") mul)*.
func (p *parser) parseAdditive() (*ValueExpr, *Error) {
	return p.parseBinaryTier(additiveOps, (*parser).parseMultiplicative)
}

// parseMultiplicative parses: prop (("*"|"/") prop)*.
func (p *parser) parseMultiplicative() (*ValueExpr, *Error) {
	return p.parseBinaryTier(multiplicativeOps, (*parser).parseProperty)
}

// parseBinaryTier builds one left-associative operator tier over the next
// tighter tier.
func (p *parser) parseBinaryTier(
	ops map[TokenKind]BinaryOperator,
	next func(*parser) (*ValueExpr, *Error),
) (*ValueExpr, *Error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.tok.Kind]
		if !ok {
			return left, nil
		}

		if err := p.bump(); err != nil {
			return nil, err
		}

		right, err := next(p)
		if err != nil {
			return nil, err
		}

		left = &ValueExpr{
			Kind:  ExprBinary,
			Slice: NewSourceSlice(left.Slice.Start, right.Slice.End),
			Op:    op,
			LHS:   left,
			RHS:   right,
		}
	}
}

// parseProperty parses: term ("." IDENT)*. A chain of accessors flattens
// into a single PropertyOf node wrapping the base term.
func (p *parser) parseProperty() (*ValueExpr, *Error) {
	owner, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	var accessors []SourceSlice

	for p.tok.Kind == TokenDot {
		if err := p.bump(); err != nil {
			return nil, err
		}

		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err.Expecting("property name")
		}

		accessors = append(accessors, name.Slice)
	}

	if len(accessors) == 0 {
		return owner, nil
	}

	return &ValueExpr{
		Kind:      ExprProperty,
		Slice:     NewSourceSlice(owner.Slice.Start, accessors[len(accessors)-1].End),
		Owner:     owner,
		Accessors: accessors,
	}, nil
}

// parseTerm parses a primary term.
func (p *parser) parseTerm() (*ValueExpr, *Error) {
	switch p.tok.Kind {
	case TokenFloat:
		return p.parseFloatLiteral()

	case TokenString:
		tok := p.tok
		if err := p.bump(); err != nil {
			return nil, err
		}

		return &ValueExpr{Kind: ExprString, Slice: tok.Slice}, nil

	case TokenColor:
		return p.parseColorLiteral()

	case TokenLeftBrace:
		return p.parseDictionary()

	case TokenIdent:
		ident := p.tok
		if err := p.bump(); err != nil {
			return nil, err
		}

		if p.tok.Kind == TokenLeftParen {
			call, err := p.parseCallArgs(ident)
			if err != nil {
				return nil, err
			}

			return &ValueExpr{
				Kind:  ExprCall,
				Slice: call.Slice,
				Call:  call,
			}, nil
		}

		return &ValueExpr{Kind: ExprVar, Slice: ident.Slice}, nil

	case TokenLeftParen:
		// Grouping is transparent: no node of its own.
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		if err := p.bump(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}

		return expr, nil

	case TokenMinus:
		return p.parseNegation()

	default:
		return nil, ErrSyntax.
			At(p.tok.Slice).
			Expecting("expression").
			With(slog.String("found", p.tok.Kind.String()))
	}
}

// parseFloatLiteral converts the float token's text. The lexical pattern
// normally prevents malformed text, but conversion failure is still a
// distinct fatal error.
func (p *parser) parseFloatLiteral() (*ValueExpr, *Error) {
	tok := p.tok
	if err := p.bump(); err != nil {
		return nil, err
	}

	value, err := strconv.ParseFloat(tok.Text(p.source), 32)
	if err != nil {
		return nil, ErrInvalidNumber.
			At(tok.Slice).
			Wrap(err).
			With(slog.String("literal", tok.Text(p.source)))
	}

	return &ValueExpr{
		Kind:  ExprFloat,
		Slice: tok.Slice,
		Float: float32(value),
	}, nil
}

// parseColorLiteral eagerly converts a #RRGGBB or #RRGGBBAA literal from
// packed sRGB bytes into a linear-space color. A six-digit literal gets
// an implicit 0xFF alpha.
func (p *parser) parseColorLiteral() (*ValueExpr, *Error) {
	tok := p.tok
	if err := p.bump(); err != nil {
		return nil, err
	}

	digits := tok.Text(p.source)[1:] // strip '#'

	packed, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, ErrInvalidNumber.
			At(tok.Slice).
			Wrap(err).
			With(slog.String("literal", tok.Text(p.source)))
	}

	if len(digits) == 6 {
		packed = packed<<8 | 0xff
	}

	return &ValueExpr{
		Kind:  ExprColor,
		Slice: tok.Slice,
		Color: SrgbFromPacked(uint32(packed)).Linear(),
	}, nil
}

// parseDictionary parses: "{" STRING ":" expr ("," STRING ":" expr)* "}".
// At least one pair is required; duplicate keys pass through in order.
func (p *parser) parseDictionary() (*ValueExpr, *Error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open := p.tok
	if err := p.bump(); err != nil {
		return nil, err
	}

	entries := []KeyValuePair{}

	for {
		key, err := p.expect(TokenString)
		if err != nil {
			return nil, err.Expecting("dictionary key")
		}

		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		entries = append(entries, KeyValuePair{Key: key.Slice, Value: value})

		more, err := p.accept(TokenComma)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	closing, err := p.expect(TokenRightBrace)
	if err != nil {
		return nil, err
	}

	return &ValueExpr{
		Kind:    ExprDict,
		Slice:   NewSourceSlice(open.Slice.Start, closing.Slice.End),
		Entries: entries,
	}, nil
}

// parseNegation parses: "-" "(" expr ")". Negation is not a node kind of
// its own: it desugars into a call whose function slice covers only the
// "-" token, so the interpreter resolves it through the same builtin
// dispatch table as ordinary calls.
func (p *parser) parseNegation() (*ValueExpr, *Error) {
	minus := p.tok
	if err := p.bump(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	call := &FunctionCallExpr{
		Slice:    NewSourceSlice(minus.Slice.Start, closing.Slice.End),
		Function: minus.Slice,
		Args:     []*ValueExpr{inner},
	}

	return &ValueExpr{Kind: ExprCall, Slice: call.Slice, Call: call}, nil
}

// parseCallArgs parses the parenthesized argument list of a call whose
// name token has already been consumed. The argument list may be empty.
func (p *parser) parseCallArgs(ident Token) (*FunctionCallExpr, *Error) {
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	args := []*ValueExpr{}

	if p.tok.Kind != TokenRightParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			more, err := p.accept(TokenComma)
			if err != nil {
				return nil, err
			}

			if !more {
				break
			}
		}
	}

	closing, err := p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	return &FunctionCallExpr{
		Slice:    NewSourceSlice(ident.Slice.Start, closing.Slice.End),
		Function: ident.Slice,
		Args:     args,
	}, nil
}
