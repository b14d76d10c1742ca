package lang

import "strings"

// Builder provides a programmatic API for constructing programs without
// parsing source text. This is useful for generating scripts and for
// testing the formatter.
//
// Every name and literal passed to the builder is interned into a
// synthetic source buffer, so the resulting tree resolves its slices the
// same way a parsed tree does. Interning happens in call order, which
// keeps declaration order stable when the tree is formatted.
//
// Example:
//
//	b := lang.NewBuilder()
//	prog := b.Program(
//	    b.RenderTarget("main", b.Float(1920), b.Float(1080), false,
//	        b.Attachment("color", lang.FormatRgba8),
//	    ),
//	    b.Function("main", nil, nil,
//	        b.CallStmt("clear", b.ColorSrgb(0x000000FF)),
//	    ),
//	)
type Builder struct {
	src strings.Builder
}

// NewBuilder creates a new program builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// intern appends text to the synthetic source and returns its slice.
func (b *Builder) intern(text string) SourceSlice {
	start := b.src.Len()
	b.src.WriteString(text)

	return NewSourceSlice(start, b.src.Len())
}

// Var creates a variable reference.
func (b *Builder) Var(name string) *ValueExpr {
	return &ValueExpr{Kind: ExprVar, Slice: b.intern(name)}
}

// Float creates a numeric literal.
func (b *Builder) Float(v float32) *ValueExpr {
	return &ValueExpr{
		Kind:  ExprFloat,
		Slice: b.intern(formatFloat(v)),
		Float: v,
	}
}

// String creates a string literal.
func (b *Builder) String(s string) *ValueExpr {
	return &ValueExpr{Kind: ExprString, Slice: b.intern(s)}
}

// Color creates a color literal from linear components.
func (b *Builder) Color(c LinearRGBA) *ValueExpr {
	return &ValueExpr{
		Kind:  ExprColor,
		Slice: b.intern(colorString(c)),
		Color: c,
	}
}

// ColorSrgb creates a color literal from a packed 0xRRGGBBAA sRGB value,
// converting to linear space the way the parser does.
func (b *Builder) ColorSrgb(packed uint32) *ValueExpr {
	return b.Color(SrgbFromPacked(packed).Linear())
}

// Entry creates one dictionary entry.
func (b *Builder) Entry(key string, value *ValueExpr) KeyValuePair {
	return KeyValuePair{Key: b.intern(key), Value: value}
}

// Dict creates a dictionary literal. The grammar requires at least one
// entry; the builder does not enforce this.
func (b *Builder) Dict(entries ...KeyValuePair) *ValueExpr {
	return &ValueExpr{Kind: ExprDict, Entries: entries}
}

// Property wraps owner in a flattened accessor chain.
func (b *Builder) Property(owner *ValueExpr, accessors ...string) *ValueExpr {
	slices := make([]SourceSlice, len(accessors))
	for i, accessor := range accessors {
		slices[i] = b.intern(accessor)
	}

	return &ValueExpr{
		Kind:      ExprProperty,
		Slice:     NewSourceSlice(owner.Slice.Start, b.src.Len()),
		Owner:     owner,
		Accessors: slices,
	}
}

// Call creates a function-call expression.
func (b *Builder) Call(name string, args ...*ValueExpr) *ValueExpr {
	call := b.call(name, args)

	return &ValueExpr{Kind: ExprCall, Slice: call.Slice, Call: call}
}

// Negate creates the desugared form of negation: a call whose function
// name is "-".
func (b *Builder) Negate(arg *ValueExpr) *ValueExpr {
	return b.Call("-", arg)
}

// Binary creates a binary operation.
func (b *Builder) Binary(op BinaryOperator, lhs, rhs *ValueExpr) *ValueExpr {
	return &ValueExpr{
		Kind:  ExprBinary,
		Slice: NewSourceSlice(lhs.Slice.Start, rhs.Slice.End),
		Op:    op,
		LHS:   lhs,
		RHS:   rhs,
	}
}

// CallStmt creates a function-call statement.
func (b *Builder) CallStmt(name string, args ...*ValueExpr) *Stmt {
	return &Stmt{Kind: StmtCall, Call: b.call(name, args)}
}

// Return creates a return statement.
func (b *Builder) Return(expr *ValueExpr) *Stmt {
	return &Stmt{Kind: StmtReturn, Expr: expr}
}

// If creates a one-armed conditional.
func (b *Builder) If(condition *ValueExpr, then ...*Stmt) *Stmt {
	return &Stmt{Kind: StmtConditional, Condition: condition, Then: then}
}

// IfElse creates a two-armed conditional.
func (b *Builder) IfElse(condition *ValueExpr, then, otherwise []*Stmt) *Stmt {
	if otherwise == nil {
		otherwise = []*Stmt{}
	}

	return &Stmt{
		Kind:      StmtConditional,
		Condition: condition,
		Then:      then,
		Else:      otherwise,
	}
}

// Param creates a function parameter of the f32 type.
func (b *Builder) Param(name string) Parameter {
	return Parameter{Name: b.intern(name), Type: TypeFloat32}
}

// F32 returns the f32 type tag for a function's return clause.
func (b *Builder) F32() *Type {
	t := TypeFloat32

	return &t
}

// Function creates a top-level function definition.
func (b *Builder) Function(
	name string,
	params []Parameter,
	returns *Type,
	body ...*Stmt,
) *Function {
	return &Function{
		Name:       b.intern(name),
		Params:     params,
		Body:       body,
		ReturnType: returns,
	}
}

// Attachment creates one render-target attachment.
func (b *Builder) Attachment(name string, format RenderTargetFormat) Attachment {
	return Attachment{Name: b.intern(name), Format: format}
}

// RenderTarget creates a top-level render-target declaration.
func (b *Builder) RenderTarget(
	name string,
	width, height *ValueExpr,
	hasDepth bool,
	attachments ...Attachment,
) *RenderTargetDef {
	slice := b.intern(name)

	return &RenderTargetDef{
		Slice:       slice,
		Name:        slice,
		Width:       width,
		Height:      height,
		Attachments: attachments,
		HasDepth:    hasDepth,
	}
}

// Program assembles the given declarations into a [Program] backed by the
// builder's synthetic source. Declarations keep the order given.
func (b *Builder) Program(decls ...Node) *Program {
	prog := &Program{
		Functions:     []*Function{},
		RenderTargets: []*RenderTargetDef{},
		source:        b.src.String(),
	}

	for _, decl := range decls {
		switch d := decl.(type) {
		case *Function:
			prog.Functions = append(prog.Functions, d)
		case *RenderTargetDef:
			prog.RenderTargets = append(prog.RenderTargets, d)
		}
	}

	return prog
}

// call interns the name and builds the call node.
func (b *Builder) call(name string, args []*ValueExpr) *FunctionCallExpr {
	slice := b.intern(name)

	end := slice.End
	if len(args) > 0 {
		end = args[len(args)-1].Slice.End
		if end < slice.End {
			end = slice.End
		}
	}

	return &FunctionCallExpr{
		Slice:    NewSourceSlice(slice.Start, end),
		Function: slice,
		Args:     args,
	}
}
