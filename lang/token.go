package lang

// TokenKind identifies a terminal recognized by the lexer.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota

	// Literals
	TokenIdent
	TokenFloat
	TokenString
	TokenColor

	// Keywords
	TokenTrue
	TokenFalse
	TokenIf
	TokenElse
	TokenReturn
	TokenFn
	TokenDefineRT
	TokenDefineRTWithDepth
	TokenF32
	TokenFormat

	// Punctuation
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenComma        // ,
	TokenColon        // :
	TokenSemicolon    // ;
	TokenDot          // .
	TokenArrow        // ->
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenEqualEqual   // ==
	TokenBangEqual    // !=
)

var tokenNames = map[TokenKind]string{
	TokenEOF:               "end of input",
	TokenIdent:             "identifier",
	TokenFloat:             "float literal",
	TokenString:            "string literal",
	TokenColor:             "color literal",
	TokenTrue:              "true",
	TokenFalse:             "false",
	TokenIf:                "if",
	TokenElse:              "else",
	TokenReturn:            "return",
	TokenFn:                "fn",
	TokenDefineRT:          "define_rt",
	TokenDefineRTWithDepth: "define_rt_with_depth",
	TokenF32:               "f32",
	TokenFormat:            "format keyword",
	TokenLeftBrace:         "{",
	TokenRightBrace:        "}",
	TokenLeftParen:         "(",
	TokenRightParen:        ")",
	TokenComma:             ",",
	TokenColon:             ":",
	TokenSemicolon:         ";",
	TokenDot:               ".",
	TokenArrow:             "->",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenSlash:             "/",
	TokenLess:              "<",
	TokenLessEqual:         "<=",
	TokenGreater:           ">",
	TokenGreaterEqual:      ">=",
	TokenEqualEqual:        "==",
	TokenBangEqual:         "!=",
}

// String returns a human-readable name for the token kind, used in
// diagnostics and expected-token lists.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}

	return "unknown token"
}

// keywords maps reserved words to their token kinds. Reserved words are
// recognized before identifiers, so none of them can be used as a name.
var keywords = map[string]TokenKind{
	"true":                 TokenTrue,
	"false":                TokenFalse,
	"if":                   TokenIf,
	"else":                 TokenElse,
	"return":               TokenReturn,
	"fn":                   TokenFn,
	"define_rt":            TokenDefineRT,
	"define_rt_with_depth": TokenDefineRTWithDepth,
	"f32":                  TokenF32,
}

// Token is a single terminal with its source location.
//
// For string literals the slice excludes the delimiting quotes; for every
// other kind it covers the matched text exactly.
type Token struct {
	Kind  TokenKind
	Slice SourceSlice
}

// Text returns the token's source text.
func (t Token) Text(source string) string {
	return t.Slice.Text(source)
}
