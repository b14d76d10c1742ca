package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Predefined errors (sentinel values).
var (
	ErrLex           = NewError("unrecognized input")
	ErrSyntax        = NewError("unexpected token")
	ErrInvalidNumber = NewError("invalid number literal")
	ErrUnknownFormat = NewError("unknown render target format")
	ErrReadInput     = NewError("failed to read input")
)

// Error represents a parse failure with optional structured logging
// attributes and the source location at which it occurred.
// It implements both error and slog.LogValuer.
type Error struct {
	msg      string
	err      error       // wrapped error (for errors.Unwrap)
	attrs    []slog.Attr // attributes for structured logging
	expected []string    // token names that would have been accepted
	slice    SourceSlice
	located  bool
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
// The With, Wrap, At, and Expecting methods clone their receiver, so
// derived errors match their sentinel by message rather than identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.located {
		attrs = append(attrs,
			slog.Int("start", e.slice.Start),
			slog.Int("end", e.slice.End),
		)
	}

	if len(e.expected) > 0 {
		attrs = append(attrs,
			slog.String("expected", strings.Join(e.expected, ", ")),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.err = err

	return &clone
}

// With adds attributes to the error for structured logging.
// A new Error instance is created to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	clone := *e
	clone.attrs = append(append([]slog.Attr{}, e.attrs...), attrs...)

	return &clone
}

// At attaches the source location at which the failure occurred.
func (e *Error) At(slice SourceSlice) *Error {
	clone := *e
	clone.slice = slice
	clone.located = true

	return &clone
}

// Expecting records the token names that would have been accepted at the
// failure position.
func (e *Error) Expecting(names ...string) *Error {
	clone := *e
	clone.expected = append(append([]string{}, e.expected...), names...)

	return &clone
}

// Slice returns the failure location, if one was attached.
func (e *Error) Slice() (SourceSlice, bool) { return e.slice, e.located }

// Expected returns the recorded expected-token list.
func (e *Error) Expected() []string { return e.expected }

// ParseError pairs a parse failure with the source it occurred in, so the
// error message can include line/column information and a source snippet
// with a caret marker.
type ParseError struct {
	Err    *Error
	Source string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse error"
	}

	slice, ok := e.Err.Slice()
	if !ok || e.Source == "" {
		return e.Err.Error()
	}

	line, col := lineColumn(e.Source, slice.Start)

	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(": ")
	buf.WriteString(e.Err.Error())
	buf.WriteString("\n")
	buf.WriteString(Snippet(e.Source, slice))

	if expected := e.Err.Expected(); len(expected) > 0 {
		buf.WriteString("\texpected: ")
		buf.WriteString(strings.Join(expected, ", "))
		buf.WriteString("\n")
	}

	return buf.String()
}

// Unwrap exposes the inner Error to errors.Is/As.
func (e *ParseError) Unwrap() error { return e.Err }

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}

	line, col = 1, 1

	for _, ch := range source[:offset] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

// Snippet renders the source lines covered by slice with line numbers,
// underlining the covered range. A zero-length slice produces a single
// caret marker at the failure position.
func Snippet(source string, slice SourceSlice) string {
	loLine, loCol := lineColumn(source, slice.Start)
	hiLine, hiCol := lineColumn(source, slice.End)

	lines := strings.Split(source, "\n")

	var buf strings.Builder

	caret := loCol - 1

	for n := loLine; n <= hiLine && n <= len(lines); n++ {
		text := lines[n-1]

		// "%03d: " prefix, matching the runtime's console reporting.
		num := strconv.Itoa(n)
		for pad := 3 - len(num); pad > 0; pad-- {
			buf.WriteByte('0')
		}

		buf.WriteString(num)
		buf.WriteString(": ")
		buf.WriteString(text)
		buf.WriteByte('\n')

		width := len(text) - caret
		if n == hiLine {
			width = (hiCol - 1) - caret
		}

		buf.WriteString(strings.Repeat(" ", caret+5))

		if width <= 0 {
			buf.WriteString("^")
		} else {
			buf.WriteString(strings.Repeat("~", width))
		}

		buf.WriteByte('\n')

		caret = 0
	}

	return buf.String()
}

// suggestFormat returns the closest format keyword for a misspelled
// attachment format, or "" when nothing ranks close enough.
func suggestFormat(word string) string {
	names := make([]string, 0, len(renderTargetFormats))
	for name := range renderTargetFormats {
		names = append(names, name)
	}

	// Deterministic candidate order keeps suggestions stable.
	slices.Sort(names)

	matches := fuzzy.Find(strings.ToUpper(word), names)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
