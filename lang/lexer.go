package lang

import "log/slog"

// lexer produces tokens on demand as the parser consumes them. No token
// list is materialized; the parser holds a single token of lookahead.
type lexer struct {
	source string
	pos    int
}

// next returns the next terminal, skipping whitespace and line comments.
// At each position the longest match wins; ties break in favor of
// keywords and punctuation over identifiers and literals.
func (l *lexer) next() (Token, *Error) {
	l.skip()

	if l.pos >= len(l.source) {
		return Token{Kind: TokenEOF, Slice: NewSourceSlice(l.pos, l.pos)}, nil
	}

	start := l.pos
	ch := l.source[l.pos]

	switch {
	case isLetter(ch):
		return l.word(start), nil

	case isDigit(ch):
		return l.float(start), nil

	case ch == '-':
		// Longest match: "-" fuses with an immediately following digit
		// into a negative float literal, and with ">" into the arrow.
		// Anything else leaves a bare minus.
		switch {
		case l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]):
			l.pos++

			return l.float(start), nil

		case l.pos+1 < len(l.source) && l.source[l.pos+1] == '>':
			l.pos += 2

			return Token{Kind: TokenArrow, Slice: NewSourceSlice(start, l.pos)}, nil

		default:
			l.pos++

			return Token{Kind: TokenMinus, Slice: NewSourceSlice(start, l.pos)}, nil
		}

	case ch == '"':
		return l.str(start)

	case ch == '#':
		return l.color(start)

	default:
		return l.punct(start)
	}
}

// skip advances past whitespace and line comments.
func (l *lexer) skip() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.pos++

		case ch == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/':
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}

		default:
			return
		}
	}
}

// word scans an identifier and resolves reserved words and format
// keywords.
func (l *lexer) word(start int) Token {
	for l.pos < len(l.source) && isWordChar(l.source[l.pos]) {
		l.pos++
	}

	slice := NewSourceSlice(start, l.pos)
	text := slice.Text(l.source)

	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Slice: slice}
	}

	if _, ok := renderTargetFormats[text]; ok {
		return Token{Kind: TokenFormat, Slice: slice}
	}

	return Token{Kind: TokenIdent, Slice: slice}
}

// float scans [0-9]+(\.[0-9]*)? with any leading "-" already consumed.
func (l *lexer) float(start int) Token {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}

	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}

	return Token{Kind: TokenFloat, Slice: NewSourceSlice(start, l.pos)}
}

// str scans a string literal. There are no escape sequences; the literal
// runs to the next quote. The token slice excludes both quotes.
func (l *lexer) str(start int) (Token, *Error) {
	l.pos++ // opening quote

	content := l.pos
	for l.pos < len(l.source) && l.source[l.pos] != '"' {
		l.pos++
	}

	if l.pos >= len(l.source) {
		return Token{}, ErrLex.
			At(NewSourceSlice(start, l.pos)).
			With(slog.String("reason", "unterminated string literal"))
	}

	slice := NewSourceSlice(content, l.pos)
	l.pos++ // closing quote

	return Token{Kind: TokenString, Slice: slice}, nil
}

// color scans a #RRGGBB or #RRGGBBAA literal. Eight hex digits win over
// six by longest match.
func (l *lexer) color(start int) (Token, *Error) {
	l.pos++ // '#'

	digits := 0
	for l.pos+digits < len(l.source) && isHexDigit(l.source[l.pos+digits]) {
		digits++
	}

	switch {
	case digits >= 8:
		l.pos += 8
	case digits >= 6:
		l.pos += 6
	default:
		end := l.pos + digits

		return Token{}, ErrLex.
			At(NewSourceSlice(start, end)).
			With(slog.String("reason", "color literal needs 6 or 8 hex digits"))
	}

	return Token{Kind: TokenColor, Slice: NewSourceSlice(start, l.pos)}, nil
}

// punct scans punctuation, preferring two-character operators.
func (l *lexer) punct(start int) (Token, *Error) {
	two := ""
	if l.pos+2 <= len(l.source) {
		two = l.source[l.pos : l.pos+2]
	}

	if kind, ok := punct2[two]; ok {
		l.pos += 2

		return Token{Kind: kind, Slice: NewSourceSlice(start, l.pos)}, nil
	}

	if kind, ok := punct1[l.source[l.pos]]; ok {
		l.pos++

		return Token{Kind: kind, Slice: NewSourceSlice(start, l.pos)}, nil
	}

	return Token{}, ErrLex.
		At(NewSourceSlice(start, start+1)).
		With(slog.String("input", l.source[start:start+1]))
}

var punct2 = map[string]TokenKind{
	"<=": TokenLessEqual,
	">=": TokenGreaterEqual,
	"==": TokenEqualEqual,
	"!=": TokenBangEqual,
	"->": TokenArrow,
}

var punct1 = map[byte]TokenKind{
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'(': TokenLeftParen,
	')': TokenRightParen,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
	'.': TokenDot,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'<': TokenLess,
	'>': TokenGreater,
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
