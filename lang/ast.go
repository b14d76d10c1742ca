package lang

// SourceSlice is a half-open byte-offset range [Start, End) into the
// original source text. Slices do not hold a reference to the source; they
// are resolved against it only when a diagnostic or a literal's text is
// needed.
type SourceSlice struct {
	Start int
	End   int
}

// NewSourceSlice creates a slice covering [start, end).
func NewSourceSlice(start, end int) SourceSlice {
	return SourceSlice{Start: start, End: end}
}

// Text returns the source text covered by the slice.
func (s SourceSlice) Text(source string) string {
	return source[s.Start:s.End]
}

// Len returns the number of bytes covered by the slice.
func (s SourceSlice) Len() int { return s.End - s.Start }

// Contains reports whether other is a sub-range of s.
func (s SourceSlice) Contains(other SourceSlice) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Node is implemented by every AST node that records a source location.
type Node interface {
	SourceSlice() SourceSlice
}

// SourceSlice implements [Node] for a bare slice.
func (s SourceSlice) SourceSlice() SourceSlice { return s }

// ExprKind discriminates the variants of [ValueExpr].
type ExprKind int

const (
	// ExprVar is a reference to a variable or parameter.
	ExprVar ExprKind = iota

	// ExprFloat is a numeric literal.
	ExprFloat

	// ExprString is a string literal; its slice excludes the quotes.
	ExprString

	// ExprColor is a color literal, already converted to linear space.
	ExprColor

	// ExprDict is a dictionary literal of ordered key/value pairs.
	ExprDict

	// ExprProperty is a flattened property accessor chain.
	ExprProperty

	// ExprCall is a function-call expression.
	ExprCall

	// ExprBinary is a binary operation.
	ExprBinary
)

// String returns the variant name.
func (k ExprKind) String() string {
	switch k {
	case ExprVar:
		return "Var"
	case ExprFloat:
		return "FloatLiteral"
	case ExprString:
		return "StringLiteral"
	case ExprColor:
		return "ColorLiteral"
	case ExprDict:
		return "Dictionary"
	case ExprProperty:
		return "PropertyOf"
	case ExprCall:
		return "FunctionCall"
	case ExprBinary:
		return "BinaryOp"
	default:
		return "Unknown"
	}
}

// ValueExpr is a tagged variant holding any value expression.
// Exactly the fields implied by Kind are set.
type ValueExpr struct {
	Kind  ExprKind
	Slice SourceSlice

	// ExprFloat
	Float float32

	// ExprColor; linear-space components, converted once at parse time.
	Color LinearRGBA

	// ExprDict
	Entries []KeyValuePair

	// ExprProperty: Owner is the base value, Accessors the ordered,
	// non-empty list of dotted names. A chain a.b.c is one node with
	// accessor list [b, c], never nested nodes.
	Owner     *ValueExpr
	Accessors []SourceSlice

	// ExprCall
	Call *FunctionCallExpr

	// ExprBinary
	Op  BinaryOperator
	LHS *ValueExpr
	RHS *ValueExpr
}

// SourceSlice implements [Node].
func (e *ValueExpr) SourceSlice() SourceSlice { return e.Slice }

// KeyValuePair is one ordered entry of a dictionary literal. Duplicate keys
// are preserved; deduplication is the consumer's concern.
type KeyValuePair struct {
	Key   SourceSlice // excludes the quotes
	Value *ValueExpr
}

// FunctionCallExpr is a call expression. The argument list may be empty.
//
// Negation of a parenthesized expression produces a call whose Function
// slice covers exactly the "-" token, so operator-minus resolves through
// the same builtin dispatch table as ordinary calls.
type FunctionCallExpr struct {
	Slice    SourceSlice
	Function SourceSlice
	Args     []*ValueExpr
}

// SourceSlice implements [Node].
func (f *FunctionCallExpr) SourceSlice() SourceSlice { return f.Slice }

// BinaryOperator enumerates the binary operators. All are left-associative
// and none has a unary form.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv

	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

var binaryOperatorNames = map[BinaryOperator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpEq:  "==",
	OpNe:  "!=",
}

// String returns the operator's source spelling.
func (op BinaryOperator) String() string {
	if name, ok := binaryOperatorNames[op]; ok {
		return name
	}

	return "?"
}

// StmtKind discriminates the variants of [Stmt].
type StmtKind int

const (
	// StmtCall is a bare function-call statement.
	StmtCall StmtKind = iota

	// StmtReturn is a return statement.
	StmtReturn

	// StmtConditional is a one- or two-armed conditional.
	StmtConditional
)

// Stmt is a tagged variant holding one statement. Statements carry no span
// of their own; their constituent expressions do.
type Stmt struct {
	Kind StmtKind

	// StmtCall
	Call *FunctionCallExpr

	// StmtReturn
	Expr *ValueExpr

	// StmtConditional. Else is nil for a one-armed conditional; an empty
	// (non-nil) slice means an explicit empty else block.
	Condition *ValueExpr
	Then      []*Stmt
	Else      []*Stmt
}

// Type is the declared type tag of a parameter or return value. It is a
// single-member enumeration reserved for future extension.
type Type int

const (
	// TypeFloat32 is the f32 scalar type.
	TypeFloat32 Type = iota
)

// String returns the type's source spelling.
func (t Type) String() string {
	switch t {
	case TypeFloat32:
		return "f32"
	default:
		return "?"
	}
}

// Parameter is one name/type pair of a function signature.
type Parameter struct {
	Name SourceSlice
	Type Type
}

// Function is a top-level function definition.
type Function struct {
	Name       SourceSlice
	Params     []Parameter
	Body       []*Stmt
	ReturnType *Type // nil when no "->" clause is present
}

// RenderTargetFormat enumerates the texture formats a render-target
// attachment may declare.
type RenderTargetFormat int

const (
	// sRGB formats
	FormatSrgb8 RenderTargetFormat = iota
	FormatSrgba8

	// linear formats (8 bit)
	FormatR8
	FormatRgb8
	FormatRgba8

	// linear formats (16 bit)
	FormatR16
	FormatR16F
	FormatRgb16
	FormatRgb16F
	FormatRgba16
	FormatRgba16F

	// linear formats (32 bit)
	FormatR32F
	FormatRgb32F
	FormatRgba32F
)

// renderTargetFormats maps format keywords to their enumerated values.
var renderTargetFormats = map[string]RenderTargetFormat{
	"SRGB8":   FormatSrgb8,
	"SRGBA8":  FormatSrgba8,
	"R8":      FormatR8,
	"RGB8":    FormatRgb8,
	"RGBA8":   FormatRgba8,
	"R16":     FormatR16,
	"R16F":    FormatR16F,
	"RGB16":   FormatRgb16,
	"RGB16F":  FormatRgb16F,
	"RGBA16":  FormatRgba16,
	"RGBA16F": FormatRgba16F,
	"R32F":    FormatR32F,
	"RGB32F":  FormatRgb32F,
	"RGBA32F": FormatRgba32F,
}

var renderTargetFormatNames = map[RenderTargetFormat]string{
	FormatSrgb8:   "SRGB8",
	FormatSrgba8:  "SRGBA8",
	FormatR8:      "R8",
	FormatRgb8:    "RGB8",
	FormatRgba8:   "RGBA8",
	FormatR16:     "R16",
	FormatR16F:    "R16F",
	FormatRgb16:   "RGB16",
	FormatRgb16F:  "RGB16F",
	FormatRgba16:  "RGBA16",
	FormatRgba16F: "RGBA16F",
	FormatR32F:    "R32F",
	FormatRgb32F:  "RGB32F",
	FormatRgba32F: "RGBA32F",
}

// String returns the format's keyword spelling.
func (f RenderTargetFormat) String() string {
	if name, ok := renderTargetFormatNames[f]; ok {
		return name
	}

	return "?"
}

// Attachment is one named, typed color attachment of a render target.
type Attachment struct {
	Name   SourceSlice // excludes the quotes
	Format RenderTargetFormat
}

// RenderTargetDef is a top-level render-target declaration. Attachments is
// always non-empty; width and height are arbitrary expressions evaluated by
// the interpreter.
type RenderTargetDef struct {
	Slice       SourceSlice
	Name        SourceSlice // excludes the quotes
	Width       *ValueExpr
	Height      *ValueExpr
	Attachments []Attachment
	HasDepth    bool
}

// SourceSlice implements [Node].
func (rt *RenderTargetDef) SourceSlice() SourceSlice { return rt.Slice }

// Program is the root of a parsed script: two lists of declarations, each
// in strict source order. No deduplication or name resolution happens here;
// duplicate names pass through for the consumer to reject if it chooses.
type Program struct {
	Functions     []*Function
	RenderTargets []*RenderTargetDef

	source string
}

// Source returns the source text the program was parsed from. All
// [SourceSlice] values in the tree index into it.
func (prog *Program) Source() string { return prog.source }

// Text resolves a slice against the program's source.
func (prog *Program) Text(s SourceSlice) string { return s.Text(prog.source) }
