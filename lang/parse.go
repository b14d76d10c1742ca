package lang

import (
	"context"
	"log/slog"

	"github.com/decden/demoengine/log"
)

// DefaultMaxDepth is the default maximum nesting depth for blocks,
// parenthesized expressions, and dictionary literals.
const DefaultMaxDepth = 100

// options holds parser configuration.
type options struct {
	maxDepth int
	logger   log.Logger
}

// Option configures parsing behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth before parsing aborts.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// ParseString parses a complete script and returns its [Program].
//
// The returned error is a [*ParseError] carrying the failure location, a
// source snippet, and the expected-token list. On failure no program is
// returned; the tree is never partial.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	p := newParser(source, opts...)

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(source)),
	)

	prog, perr := p.parseProgram(ctx)
	if perr != nil {
		return nil, &ParseError{Err: perr, Source: source}
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("function_count", len(prog.Functions)),
		slog.Int("render_target_count", len(prog.RenderTargets)),
	)

	return prog, nil
}

// parser holds the state of a single parse: the on-demand lexer and one
// token of lookahead. Each invocation is independent; no state survives
// across parses.
type parser struct {
	source string
	lex    lexer
	tok    Token
	logger log.Logger

	depth    int
	maxDepth int
}

func newParser(source string, opts ...Option) *parser {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	return &parser{
		source:   source,
		lex:      lexer{source: source},
		logger:   o.logger,
		maxDepth: o.maxDepth,
	}
}

// bump replaces the lookahead with the next token.
func (p *parser) bump() *Error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

// expect consumes a token of the given kind or fails.
func (p *parser) expect(kind TokenKind) (Token, *Error) {
	if p.tok.Kind != kind {
		return Token{}, ErrSyntax.
			At(p.tok.Slice).
			Expecting(kind.String()).
			With(slog.String("found", p.tok.Kind.String()))
	}

	tok := p.tok
	if err := p.bump(); err != nil {
		return Token{}, err
	}

	return tok, nil
}

// accept consumes a token of the given kind if it is next.
func (p *parser) accept(kind TokenKind) (bool, *Error) {
	if p.tok.Kind != kind {
		return false, nil
	}

	return true, p.bump()
}

// enter guards recursion depth for nested blocks, parentheses, and
// dictionaries. Callers pair it with leave.
func (p *parser) enter() *Error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrSyntax.
			At(p.tok.Slice).
			With(slog.String("reason", "maximum nesting depth exceeded")).
			With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

// parseProgram drives the declaration parser: top-level declarations in
// any order, appended to the matching list strictly in source order.
func (p *parser) parseProgram(ctx context.Context) (*Program, *Error) {
	prog := &Program{
		Functions:     []*Function{},
		RenderTargets: []*RenderTargetDef{},
		source:        p.source,
	}

	if err := p.bump(); err != nil {
		return nil, err
	}

	for p.tok.Kind != TokenEOF {
		switch p.tok.Kind {
		case TokenFn:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}

			prog.Functions = append(prog.Functions, fn)

			p.logger.TraceContext(ctx, "function parsed",
				slog.String("name", fn.Name.Text(p.source)),
				slog.Int("param_count", len(fn.Params)),
			)

		case TokenDefineRT, TokenDefineRTWithDepth:
			rt, err := p.parseRenderTarget()
			if err != nil {
				return nil, err
			}

			prog.RenderTargets = append(prog.RenderTargets, rt)

			p.logger.TraceContext(ctx, "render target parsed",
				slog.String("name", rt.Name.Text(p.source)),
				slog.Int("attachment_count", len(rt.Attachments)),
				slog.Bool("has_depth", rt.HasDepth),
			)

		default:
			return nil, ErrSyntax.
				At(p.tok.Slice).
				Expecting(
					TokenFn.String(),
					TokenDefineRT.String(),
					TokenDefineRTWithDepth.String(),
				).
				With(slog.String("found", p.tok.Kind.String()))
		}
	}

	return prog, nil
}

// parseFunction parses: "fn" IDENT "(" params? ")" ("->" type)? block.
func (p *parser) parseFunction() (*Function, *Error) {
	if _, err := p.expect(TokenFn); err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err.Expecting("function name")
	}

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	params := []Parameter{}

	if p.tok.Kind != TokenRightParen {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}

			params = append(params, param)

			more, err := p.accept(TokenComma)
			if err != nil {
				return nil, err
			}

			if !more {
				break
			}
		}
	}

	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	var returnType *Type

	arrow, err := p.accept(TokenArrow)
	if err != nil {
		return nil, err
	}

	if arrow {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}

		returnType = &t
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &Function{
		Name:       name.Slice,
		Params:     params,
		Body:       body,
		ReturnType: returnType,
	}, nil
}

// parseParameter parses: IDENT ":" type.
func (p *parser) parseParameter() (Parameter, *Error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return Parameter{}, err.Expecting("parameter name")
	}

	if _, err := p.expect(TokenColon); err != nil {
		return Parameter{}, err
	}

	t, err := p.parseType()
	if err != nil {
		return Parameter{}, err
	}

	return Parameter{Name: name.Slice, Type: t}, nil
}

// parseType parses the (currently single-member) type production.
func (p *parser) parseType() (Type, *Error) {
	if _, err := p.expect(TokenF32); err != nil {
		return TypeFloat32, err
	}

	return TypeFloat32, nil
}

// parseRenderTarget parses a define_rt or define_rt_with_depth
// declaration, through the terminating semicolon.
func (p *parser) parseRenderTarget() (*RenderTargetDef, *Error) {
	start := p.tok.Slice.Start
	hasDepth := p.tok.Kind == TokenDefineRTWithDepth

	if err := p.bump(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	name, err := p.expect(TokenString)
	if err != nil {
		return nil, err.Expecting("render target name")
	}

	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}

	width, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}

	height, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}

	attachments, err := p.parseAttachments()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	semi, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &RenderTargetDef{
		Slice:       NewSourceSlice(start, semi.Slice.End),
		Name:        name.Slice,
		Width:       width,
		Height:      height,
		Attachments: attachments,
		HasDepth:    hasDepth,
	}, nil
}

// parseAttachments parses: "{" attach ("," attach)* "}" with at least one
// attachment required.
func (p *parser) parseAttachments() ([]Attachment, *Error) {
	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	attachments := []Attachment{}

	for {
		name, err := p.expect(TokenString)
		if err != nil {
			return nil, err.Expecting("attachment name")
		}

		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		format, err := p.parseFormat()
		if err != nil {
			return nil, err
		}

		attachments = append(attachments, Attachment{
			Name:   name.Slice,
			Format: format,
		})

		more, err := p.accept(TokenComma)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return attachments, nil
}

// parseFormat resolves a format keyword. A plain identifier here is a
// misspelled format; the error suggests the closest keyword.
func (p *parser) parseFormat() (RenderTargetFormat, *Error) {
	if p.tok.Kind == TokenIdent {
		err := ErrUnknownFormat.
			At(p.tok.Slice).
			With(slog.String("name", p.tok.Text(p.source)))

		if hint := suggestFormat(p.tok.Text(p.source)); hint != "" {
			err = err.With(slog.String("did_you_mean", hint))
		}

		return 0, err
	}

	tok, err := p.expect(TokenFormat)
	if err != nil {
		return 0, err
	}

	return renderTargetFormats[tok.Text(p.source)], nil
}

// parseBlock parses: "{" stmt* "}". The block may be empty.
func (p *parser) parseBlock() ([]*Stmt, *Error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	stmts := []*Stmt{}

	for p.tok.Kind != TokenRightBrace {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if err := p.bump(); err != nil { // consume "}"
		return nil, err
	}

	return stmts, nil
}

// parseStmt parses a single statement: a call, a return, or a
// conditional.
func (p *parser) parseStmt() (*Stmt, *Error) {
	switch p.tok.Kind {
	case TokenReturn:
		if err := p.bump(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}

		return &Stmt{Kind: StmtReturn, Expr: expr}, nil

	case TokenIf:
		return p.parseConditional()

	case TokenIdent:
		ident := p.tok
		if err := p.bump(); err != nil {
			return nil, err
		}

		call, err := p.parseCallArgs(ident)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}

		return &Stmt{Kind: StmtCall, Call: call}, nil

	default:
		return nil, ErrSyntax.
			At(p.tok.Slice).
			Expecting(
				TokenIdent.String(),
				TokenReturn.String(),
				TokenIf.String(),
				TokenRightBrace.String(),
			).
			With(slog.String("found", p.tok.Kind.String()))
	}
}

// parseConditional parses: "if" expr block ("else" block)?.
func (p *parser) parseConditional() (*Stmt, *Error) {
	if err := p.bump(); err != nil { // consume "if"
		return nil, err
	}

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock []*Stmt

	hasElse, err := p.accept(TokenElse)
	if err != nil {
		return nil, err
	}

	if hasElse {
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &Stmt{
		Kind:      StmtConditional,
		Condition: condition,
		Then:      thenBlock,
		Else:      elseBlock,
	}, nil
}
