package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Sentinels(t *testing.T) {
	derived := ErrSyntax.
		At(NewSourceSlice(3, 5)).
		Expecting("identifier")

	if !errors.Is(derived, ErrSyntax) {
		t.Error("derived error should match its sentinel")
	}

	if errors.Is(derived, ErrLex) {
		t.Error("derived error should not match an unrelated sentinel")
	}

	slice, ok := derived.Slice()
	if !ok || slice.Start != 3 || slice.End != 5 {
		t.Errorf("expected location [3, 5), got %v %v", slice, ok)
	}

	// The sentinel itself is untouched.
	if _, ok := ErrSyntax.Slice(); ok {
		t.Error("sentinel must not carry a location")
	}

	if len(ErrSyntax.Expected()) != 0 {
		t.Error("sentinel must not carry expectations")
	}
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("boom")

	err := ErrReadInput.Wrap(cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable")
	}

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestLineColumn(t *testing.T) {
	source := "abc\ndef\nghi"

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{offset: 0, line: 1, col: 1},
		{offset: 2, line: 1, col: 3},
		{offset: 4, line: 2, col: 1},
		{offset: 9, line: 3, col: 2},
		{offset: 99, line: 3, col: 4}, // clamped to end
	}

	for _, tt := range tests {
		line, col := lineColumn(source, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d",
				tt.offset, tt.line, tt.col, line, col)
		}
	}
}

func TestSnippet(t *testing.T) {
	source := "fn main() {\n\tclear(#000000);\n}"

	t.Run("underlines the covered range", func(t *testing.T) {
		// Cover "main".
		got := Snippet(source, NewSourceSlice(3, 7))

		if !strings.Contains(got, "001: fn main() {") {
			t.Errorf("expected numbered source line, got:\n%s", got)
		}

		if !strings.Contains(got, "~~~~") {
			t.Errorf("expected underline, got:\n%s", got)
		}
	})

	t.Run("zero width becomes caret", func(t *testing.T) {
		got := Snippet(source, NewSourceSlice(3, 3))

		if !strings.Contains(got, "^") {
			t.Errorf("expected caret, got:\n%s", got)
		}
	})
}

func TestSuggestFormat(t *testing.T) {
	t.Run("exact name wins", func(t *testing.T) {
		if got := suggestFormat("rgb16f"); got != "RGB16F" {
			t.Errorf("expected RGB16F, got %q", got)
		}
	})

	t.Run("close misspelling suggests a real format", func(t *testing.T) {
		got := suggestFormat("RGBA")
		if _, ok := renderTargetFormats[got]; !ok {
			t.Errorf("expected a known format, got %q", got)
		}
	})

	t.Run("garbage yields no suggestion", func(t *testing.T) {
		if got := suggestFormat("zzzz"); got != "" {
			t.Errorf("expected no suggestion, got %q", got)
		}
	})
}
