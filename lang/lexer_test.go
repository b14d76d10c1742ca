package lang

import (
	"testing"
)

// lexAll tokenizes the input and returns all tokens before EOF.
func lexAll(t *testing.T, input string) []Token {
	t.Helper()

	l := lexer{source: input}

	var toks []Token

	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}

		if tok.Kind == TokenEOF {
			return toks
		}

		toks = append(toks, tok)
	}
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}

	return out
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "keywords",
			input: "fn if else return true false f32",
			want: []TokenKind{
				TokenFn, TokenIf, TokenElse, TokenReturn,
				TokenTrue, TokenFalse, TokenF32,
			},
		},
		{
			name:  "render target keywords",
			input: "define_rt define_rt_with_depth",
			want:  []TokenKind{TokenDefineRT, TokenDefineRTWithDepth},
		},
		{
			name:  "identifiers",
			input: "foo bar_ baz_2 fnord iffy",
			want: []TokenKind{
				TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent,
			},
		},
		{
			name:  "format keyword",
			input: "RGBA8 SRGB8 R32F",
			want:  []TokenKind{TokenFormat, TokenFormat, TokenFormat},
		},
		{
			name:  "punctuation",
			input: "{ } ( ) , : ; . + * /",
			want: []TokenKind{
				TokenLeftBrace, TokenRightBrace,
				TokenLeftParen, TokenRightParen,
				TokenComma, TokenColon, TokenSemicolon, TokenDot,
				TokenPlus, TokenStar, TokenSlash,
			},
		},
		{
			name:  "comparison operators",
			input: "< <= > >= == !=",
			want: []TokenKind{
				TokenLess, TokenLessEqual,
				TokenGreater, TokenGreaterEqual,
				TokenEqualEqual, TokenBangEqual,
			},
		},
		{
			name:  "arrow",
			input: "->",
			want:  []TokenKind{TokenArrow},
		},
		{
			name:  "minus followed by space",
			input: "- 1",
			want:  []TokenKind{TokenMinus, TokenFloat},
		},
		{
			name:  "minus fuses with digit",
			input: "-1",
			want:  []TokenKind{TokenFloat},
		},
		{
			name:  "minus before paren",
			input: "-(x)",
			want: []TokenKind{
				TokenMinus, TokenLeftParen, TokenIdent, TokenRightParen,
			},
		},
		{
			name:  "subtraction needs spacing",
			input: "a -1",
			want:  []TokenKind{TokenIdent, TokenFloat},
		},
		{
			name:  "floats",
			input: "0 3.14 10. -2.5",
			want:  []TokenKind{TokenFloat, TokenFloat, TokenFloat, TokenFloat},
		},
		{
			name:  "comment skipped to end of line",
			input: "a // b c d\ne",
			want:  []TokenKind{TokenIdent, TokenIdent},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \t\r\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.input)

			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.want), len(got), got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestLexer_Slices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // text of the first token's slice
	}{
		{
			name:  "identifier text",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "negative float includes sign",
			input: "-12.5",
			want:  "-12.5",
		},
		{
			name:  "string slice excludes quotes",
			input: `"main"`,
			want:  "main",
		},
		{
			name:  "color literal includes hash",
			input: "#FF00FF",
			want:  "#FF00FF",
		},
		{
			name:  "eight digit color",
			input: "#FF00FF80",
			want:  "#FF00FF80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			if len(toks) == 0 {
				t.Fatal("expected at least one token")
			}

			if got := toks[0].Text(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLexer_ColorDigitCount(t *testing.T) {
	// Eight hex digits win over six by longest match.
	toks := lexAll(t, "#AABBCCDD")
	if len(toks) != 1 || toks[0].Kind != TokenColor {
		t.Fatalf("expected single color token, got %v", kinds(toks))
	}

	// Six digits followed by a non-hex word character: color then ident.
	toks = lexAll(t, "#AABBCCzz")
	if len(toks) != 2 || toks[0].Kind != TokenColor || toks[1].Kind != TokenIdent {
		t.Fatalf("expected color then ident, got %v", kinds(toks))
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unterminated string",
			input: `"no closing quote`,
		},
		{
			name:  "short color literal",
			input: "#AB",
		},
		{
			name:  "unrecognized character",
			input: "@",
		},
		{
			name:  "bang without equals",
			input: "!x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lexer{source: tt.input}

			for {
				tok, err := l.next()
				if err != nil {
					return // got the expected failure
				}

				if tok.Kind == TokenEOF {
					t.Fatal("expected a lex error, got EOF")
				}
			}
		})
	}
}
