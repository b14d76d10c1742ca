package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBuilder_Program(t *testing.T) {
	b := NewBuilder()

	prog := b.Program(
		b.RenderTarget("main", b.Float(1920), b.Float(1080), false,
			b.Attachment("color", FormatRgba8),
		),
		b.Function("main", nil, nil,
			b.CallStmt("clear", b.ColorSrgb(0x000000FF)),
		),
	)

	if len(prog.RenderTargets) != 1 || len(prog.Functions) != 1 {
		t.Fatalf("expected 1 render target and 1 function, got %d and %d",
			len(prog.RenderTargets), len(prog.Functions))
	}

	rt := prog.RenderTargets[0]
	if got := prog.Text(rt.Name); got != "main" {
		t.Errorf("expected render target name main, got %q", got)
	}

	fn := prog.Functions[0]
	if got := prog.Text(fn.Body[0].Call.Function); got != "clear" {
		t.Errorf("expected call clear, got %q", got)
	}
}

func TestBuilder_FormatsLikeParsedSource(t *testing.T) {
	b := NewBuilder()

	prog := b.Program(
		b.Function("half",
			[]Parameter{b.Param("x")},
			b.F32(),
			b.Return(b.Binary(OpDiv, b.Var("x"), b.Float(2))),
		),
	)

	var buf bytes.Buffer

	if err := prog.Format(context.Background(), &buf, 4); err != nil {
		t.Fatalf("format error: %v", err)
	}

	got := buf.String()

	want := "fn half(x: f32) -> f32"
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in output:\n%s", want, got)
	}

	// Built trees format to parseable source.
	if _, err := ParseString(context.Background(), got); err != nil {
		t.Errorf("formatted output does not parse: %v", err)
	}
}

func TestBuilder_Expressions(t *testing.T) {
	b := NewBuilder()

	t.Run("negation", func(t *testing.T) {
		expr := b.Negate(b.Var("x"))
		if expr.Kind != ExprCall || len(expr.Call.Args) != 1 {
			t.Fatalf("expected unary call, got %+v", expr)
		}
	})

	t.Run("property chain", func(t *testing.T) {
		expr := b.Property(b.Var("scene"), "camera", "fov")
		if expr.Kind != ExprProperty || len(expr.Accessors) != 2 {
			t.Fatalf("expected flattened chain, got %+v", expr)
		}
	})

	t.Run("dictionary", func(t *testing.T) {
		expr := b.Dict(
			b.Entry("intensity", b.Float(0.8)),
		)
		if expr.Kind != ExprDict || len(expr.Entries) != 1 {
			t.Fatalf("expected dictionary, got %+v", expr)
		}
	})

	t.Run("srgb conversion", func(t *testing.T) {
		expr := b.ColorSrgb(0xFFFFFFFF)

		want := LinearRGBA{R: 1, G: 1, B: 1, A: 1}
		if expr.Color != want {
			t.Errorf("expected %+v, got %+v", want, expr.Color)
		}
	})
}
