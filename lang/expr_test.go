package lang

import (
	"testing"
)

// parseExprString parses a standalone expression for testing.
func parseExprString(t *testing.T, input string) *ValueExpr {
	t.Helper()

	p := newParser(input)
	if err := p.bump(); err != nil {
		t.Fatalf("lex error: %v", err)
	}

	expr, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if p.tok.Kind != TokenEOF {
		t.Fatalf("trailing input after expression: %v", p.tok.Kind)
	}

	return expr
}

func TestParseExpr_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		op    BinaryOperator // root operator
		lhs   ExprKind
		rhs   ExprKind
	}{
		{
			name:  "multiplication binds tighter than addition",
			input: "a + b * c",
			op:    OpAdd,
			lhs:   ExprVar,
			rhs:   ExprBinary,
		},
		{
			name:  "division binds tighter than subtraction",
			input: "a - b / c",
			op:    OpSub,
			lhs:   ExprVar,
			rhs:   ExprBinary,
		},
		{
			name:  "comparison binds loosest",
			input: "a + b < c * d",
			op:    OpLt,
			lhs:   ExprBinary,
			rhs:   ExprBinary,
		},
		{
			name:  "grouping overrides precedence",
			input: "(a + b) * c",
			op:    OpMul,
			lhs:   ExprBinary,
			rhs:   ExprVar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExprString(t, tt.input)

			if expr.Kind != ExprBinary {
				t.Fatalf("expected binary root, got %v", expr.Kind)
			}

			if expr.Op != tt.op {
				t.Errorf("expected root op %v, got %v", tt.op, expr.Op)
			}

			if expr.LHS.Kind != tt.lhs {
				t.Errorf("expected lhs %v, got %v", tt.lhs, expr.LHS.Kind)
			}

			if expr.RHS.Kind != tt.rhs {
				t.Errorf("expected rhs %v, got %v", tt.rhs, expr.RHS.Kind)
			}
		})
	}
}

func TestParseExpr_LeftAssociative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		rootOp  BinaryOperator
		innerOp BinaryOperator
	}{
		{
			name:    "subtraction chain",
			input:   "a - b - c",
			rootOp:  OpSub,
			innerOp: OpSub,
		},
		{
			name:    "division chain",
			input:   "a / b / c",
			rootOp:  OpDiv,
			innerOp: OpDiv,
		},
		{
			name:    "comparison chain",
			input:   "a < b < c",
			rootOp:  OpLt,
			innerOp: OpLt,
		},
		{
			name:    "mixed same tier",
			input:   "a + b - c",
			rootOp:  OpSub,
			innerOp: OpAdd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExprString(t, tt.input)

			// Left associativity: ((a op b) op c), so the LHS is the
			// nested operation and the RHS is the final operand.
			if expr.Kind != ExprBinary || expr.Op != tt.rootOp {
				t.Fatalf("expected root %v, got %v %v", tt.rootOp, expr.Kind, expr.Op)
			}

			if expr.LHS.Kind != ExprBinary || expr.LHS.Op != tt.innerOp {
				t.Fatalf("expected nested lhs %v, got %v", tt.innerOp, expr.LHS.Kind)
			}

			if expr.RHS.Kind != ExprVar {
				t.Errorf("expected var rhs, got %v", expr.RHS.Kind)
			}
		})
	}
}

func TestParseExpr_PropertyChain(t *testing.T) {
	input := "scene.camera.fov"

	expr := parseExprString(t, input)
	if expr.Kind != ExprProperty {
		t.Fatalf("expected property node, got %v", expr.Kind)
	}

	// A chain flattens into one node with an accessor list.
	if len(expr.Accessors) != 2 {
		t.Fatalf("expected 2 accessors, got %d", len(expr.Accessors))
	}

	if got := expr.Accessors[0].Text(input); got != "camera" {
		t.Errorf("expected accessor camera, got %q", got)
	}

	if got := expr.Accessors[1].Text(input); got != "fov" {
		t.Errorf("expected accessor fov, got %q", got)
	}

	if expr.Owner.Kind != ExprVar {
		t.Errorf("expected var owner, got %v", expr.Owner.Kind)
	}

	if got := expr.Slice.Text(input); got != input {
		t.Errorf("expected span to cover %q, got %q", input, got)
	}
}

func TestParseExpr_PropertyBindsTighterThanMul(t *testing.T) {
	expr := parseExprString(t, "a.x * b.y")

	if expr.Kind != ExprBinary || expr.Op != OpMul {
		t.Fatalf("expected multiplication root, got %v", expr.Kind)
	}

	if expr.LHS.Kind != ExprProperty || expr.RHS.Kind != ExprProperty {
		t.Errorf("expected property operands, got %v and %v",
			expr.LHS.Kind, expr.RHS.Kind)
	}
}

func TestParseExpr_Negation(t *testing.T) {
	input := "-(x + 1)"

	expr := parseExprString(t, input)
	if expr.Kind != ExprCall {
		t.Fatalf("expected call node, got %v", expr.Kind)
	}

	// Negation desugars into a call named "-".
	if got := expr.Call.Function.Text(input); got != "-" {
		t.Errorf("expected function slice \"-\", got %q", got)
	}

	if len(expr.Call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(expr.Call.Args))
	}

	if expr.Call.Args[0].Kind != ExprBinary {
		t.Errorf("expected binary argument, got %v", expr.Call.Args[0].Kind)
	}

	// The call span covers minus through closing paren.
	if got := expr.Slice.Text(input); got != input {
		t.Errorf("expected span %q, got %q", input, got)
	}
}

func TestParseExpr_BareNegationRejected(t *testing.T) {
	p := newParser("-x")
	if err := p.bump(); err != nil {
		t.Fatalf("lex error: %v", err)
	}

	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected error for unparenthesized negation")
	}
}

func TestParseExpr_Literals(t *testing.T) {
	t.Run("float value", func(t *testing.T) {
		expr := parseExprString(t, "3.5")
		if expr.Kind != ExprFloat || expr.Float != 3.5 {
			t.Errorf("expected float 3.5, got %v %v", expr.Kind, expr.Float)
		}
	})

	t.Run("negative float value", func(t *testing.T) {
		expr := parseExprString(t, "-2.25")
		if expr.Kind != ExprFloat || expr.Float != -2.25 {
			t.Errorf("expected float -2.25, got %v %v", expr.Kind, expr.Float)
		}
	})

	t.Run("string literal", func(t *testing.T) {
		input := `"bloom"`

		expr := parseExprString(t, input)
		if expr.Kind != ExprString {
			t.Fatalf("expected string, got %v", expr.Kind)
		}

		if got := expr.Slice.Text(input); got != "bloom" {
			t.Errorf("expected slice text bloom, got %q", got)
		}
	})

	t.Run("call with arguments", func(t *testing.T) {
		input := "mix(a, b, 0.5)"

		expr := parseExprString(t, input)
		if expr.Kind != ExprCall {
			t.Fatalf("expected call, got %v", expr.Kind)
		}

		if got := expr.Call.Function.Text(input); got != "mix" {
			t.Errorf("expected function mix, got %q", got)
		}

		if len(expr.Call.Args) != 3 {
			t.Errorf("expected 3 arguments, got %d", len(expr.Call.Args))
		}
	})

	t.Run("call with no arguments", func(t *testing.T) {
		expr := parseExprString(t, "time()")
		if expr.Kind != ExprCall || len(expr.Call.Args) != 0 {
			t.Errorf("expected empty call, got %v", expr.Kind)
		}
	})

	t.Run("nested calls", func(t *testing.T) {
		expr := parseExprString(t, "outer(inner(1), 2)")
		if expr.Kind != ExprCall || len(expr.Call.Args) != 2 {
			t.Fatalf("expected call with 2 args, got %v", expr.Kind)
		}

		if expr.Call.Args[0].Kind != ExprCall {
			t.Errorf("expected nested call argument, got %v", expr.Call.Args[0].Kind)
		}
	})
}

func TestParseExpr_Dictionary(t *testing.T) {
	input := `{"intensity": 0.8, "tint": #FF8800}`

	expr := parseExprString(t, input)
	if expr.Kind != ExprDict {
		t.Fatalf("expected dictionary, got %v", expr.Kind)
	}

	if len(expr.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(expr.Entries))
	}

	if got := expr.Entries[0].Key.Text(input); got != "intensity" {
		t.Errorf("expected key intensity, got %q", got)
	}

	if expr.Entries[1].Value.Kind != ExprColor {
		t.Errorf("expected color value, got %v", expr.Entries[1].Value.Kind)
	}

	// The span includes both braces.
	if got := expr.Slice.Text(input); got != input {
		t.Errorf("expected span %q, got %q", input, got)
	}
}

func TestParseExpr_DictionaryRequiresEntry(t *testing.T) {
	p := newParser("{}")
	if err := p.bump(); err != nil {
		t.Fatalf("lex error: %v", err)
	}

	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected error for empty dictionary")
	}
}

func TestParseExpr_DuplicateDictKeysPreserved(t *testing.T) {
	input := `{"k": 1, "k": 2}`

	expr := parseExprString(t, input)
	if len(expr.Entries) != 2 {
		t.Fatalf("expected duplicate keys preserved, got %d entries", len(expr.Entries))
	}
}

func TestParseExpr_Spans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // text covered by the root node's span
	}{
		{
			name:  "binary spans operands",
			input: "a + b",
			want:  "a + b",
		},
		{
			name:  "grouping is transparent",
			input: "(a + b)",
			want:  "a + b",
		},
		{
			name:  "call span includes parens",
			input: "f(1, 2)",
			want:  "f(1, 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExprString(t, tt.input)

			if got := expr.Slice.Text(tt.input); got != tt.want {
				t.Errorf("expected span %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseExpr_SpanContainment(t *testing.T) {
	input := "a * (b + c.d)"

	expr := parseExprString(t, input)
	if expr.Kind != ExprBinary {
		t.Fatalf("expected binary root, got %v", expr.Kind)
	}

	var walk func(e *ValueExpr)

	walk = func(e *ValueExpr) {
		switch e.Kind {
		case ExprBinary:
			for _, child := range []*ValueExpr{e.LHS, e.RHS} {
				if !e.Slice.Contains(child.Slice) {
					t.Errorf("span %v does not contain child %v", e.Slice, child.Slice)
				}

				walk(child)
			}

		case ExprProperty:
			if !e.Slice.Contains(e.Owner.Slice) {
				t.Errorf("span %v does not contain owner %v", e.Slice, e.Owner.Slice)
			}

			walk(e.Owner)
		}
	}

	walk(expr)
}

func TestParseExpr_MaxDepth(t *testing.T) {
	deep := ""
	for range 200 {
		deep += "("
	}

	deep += "1"
	for range 200 {
		deep += ")"
	}

	p := newParser(deep)
	if err := p.bump(); err != nil {
		t.Fatalf("lex error: %v", err)
	}

	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected max depth error")
	}
}
