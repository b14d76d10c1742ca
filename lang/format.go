package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program back out in native script syntax. Declarations
// keep their source order; indent is the number of spaces per nesting
// level (0 renders function bodies on single lines).
func (prog *Program) Format(_ context.Context, w io.Writer, indent int) error {
	for i, decl := range prog.declsInOrder() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		var err error

		switch d := decl.(type) {
		case *RenderTargetDef:
			err = prog.formatRenderTarget(d, w)
		case *Function:
			err = prog.formatFunction(d, w, indent)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program as JSON to the writer.
func (prog *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(prog, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(prog)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (prog *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, prog.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// Print writes an indented dump of the tree, one node per line with its
// kind and source span. Intended for debugging and the fmt command's ast
// output mode.
func (prog *Program) Print(_ context.Context, w io.Writer) error {
	for _, decl := range prog.declsInOrder() {
		switch d := decl.(type) {
		case *RenderTargetDef:
			prog.printRenderTarget(d, w)
		case *Function:
			prog.printFunction(d, w)
		}
	}

	return nil
}

// declsInOrder merges the two declaration lists back into source order.
func (prog *Program) declsInOrder() []Node {
	decls := make([]Node, 0, len(prog.Functions)+len(prog.RenderTargets))

	for _, fn := range prog.Functions {
		decls = append(decls, fn)
	}

	for _, rt := range prog.RenderTargets {
		decls = append(decls, rt)
	}

	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].SourceSlice().Start < decls[j].SourceSlice().Start
	})

	return decls
}

// SourceSlice implements [Node]. A function's span is anchored at its name.
func (fn *Function) SourceSlice() SourceSlice { return fn.Name }

func (prog *Program) formatRenderTarget(rt *RenderTargetDef, w io.Writer) error {
	keyword := "define_rt"
	if rt.HasDepth {
		keyword = "define_rt_with_depth"
	}

	if _, err := fmt.Fprintf(w, "%s(%s, %s, %s, {",
		keyword,
		quote(prog.Text(rt.Name)),
		prog.exprString(rt.Width),
		prog.exprString(rt.Height),
	); err != nil {
		return err
	}

	for i, att := range rt.Attachments {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "%s: %s", quote(prog.Text(att.Name)), att.Format); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "});")

	return err
}

func (prog *Program) formatFunction(fn *Function, w io.Writer, indent int) error {
	if _, err := fmt.Fprintf(w, "fn %s(", prog.Text(fn.Name)); err != nil {
		return err
	}

	for i, param := range fn.Params {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "%s: %s", prog.Text(param.Name), param.Type); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, ")"); err != nil {
		return err
	}

	if fn.ReturnType != nil {
		if _, err := fmt.Fprintf(w, " -> %s", *fn.ReturnType); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, " "); err != nil {
		return err
	}

	if err := prog.formatBlock(fn.Body, w, indent, 0); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)

	return err
}

func (prog *Program) formatBlock(stmts []*Stmt, w io.Writer, indent, depth int) error {
	if len(stmts) == 0 {
		_, err := fmt.Fprint(w, "{}")

		return err
	}

	if _, err := fmt.Fprint(w, "{"); err != nil {
		return err
	}

	for _, stmt := range stmts {
		if indent > 0 {
			if _, err := fmt.Fprint(w, "\n", strings.Repeat(" ", (depth+1)*indent)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}

		if err := prog.formatStmt(stmt, w, indent, depth+1); err != nil {
			return err
		}
	}

	if indent > 0 {
		if _, err := fmt.Fprint(w, "\n", strings.Repeat(" ", depth*indent)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(w, " "); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "}")

	return err
}

func (prog *Program) formatStmt(stmt *Stmt, w io.Writer, indent, depth int) error {
	switch stmt.Kind {
	case StmtCall:
		_, err := fmt.Fprintf(w, "%s;", prog.callString(stmt.Call))

		return err

	case StmtReturn:
		_, err := fmt.Fprintf(w, "return %s;", prog.exprString(stmt.Expr))

		return err

	case StmtConditional:
		if _, err := fmt.Fprintf(w, "if %s ", prog.exprString(stmt.Condition)); err != nil {
			return err
		}

		if err := prog.formatBlock(stmt.Then, w, indent, depth); err != nil {
			return err
		}

		if stmt.Else == nil {
			return nil
		}

		if _, err := fmt.Fprint(w, " else "); err != nil {
			return err
		}

		return prog.formatBlock(stmt.Else, w, indent, depth)

	default:
		_, err := fmt.Fprint(w, "<unknown>")

		return err
	}
}

// operator precedence tiers, tighter binds higher
func opPrecedence(op BinaryOperator) int {
	switch op {
	case OpMul, OpDiv:
		return 3
	case OpAdd, OpSub:
		return 2
	default:
		return 1
	}
}

// exprString renders an expression back to source syntax, inserting
// parentheses only where the strict left-associative grammar requires
// them to preserve the tree shape.
func (prog *Program) exprString(e *ValueExpr) string {
	switch e.Kind {
	case ExprVar:
		return prog.Text(e.Slice)

	case ExprFloat:
		return formatFloat(e.Float)

	case ExprString:
		return quote(prog.Text(e.Slice))

	case ExprColor:
		return colorString(e.Color)

	case ExprDict:
		var buf strings.Builder

		buf.WriteString("{")

		for i, entry := range e.Entries {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(quote(prog.Text(entry.Key)))
			buf.WriteString(": ")
			buf.WriteString(prog.exprString(entry.Value))
		}

		buf.WriteString("}")

		return buf.String()

	case ExprProperty:
		var buf strings.Builder

		buf.WriteString(prog.exprString(e.Owner))

		for _, accessor := range e.Accessors {
			buf.WriteString(".")
			buf.WriteString(prog.Text(accessor))
		}

		return buf.String()

	case ExprCall:
		return prog.callString(e.Call)

	case ExprBinary:
		lhs := prog.exprString(e.LHS)
		rhs := prog.exprString(e.RHS)

		prec := opPrecedence(e.Op)

		if e.LHS.Kind == ExprBinary && opPrecedence(e.LHS.Op) < prec {
			lhs = "(" + lhs + ")"
		}

		// Equal precedence on the right re-associates, so it needs parens.
		if e.RHS.Kind == ExprBinary && opPrecedence(e.RHS.Op) <= prec {
			rhs = "(" + rhs + ")"
		}

		return lhs + " " + e.Op.String() + " " + rhs

	default:
		return "<unknown>"
	}
}

func (prog *Program) callString(call *FunctionCallExpr) string {
	name := prog.Text(call.Function)

	// Desugared negation renders back as -(expr).
	if name == "-" && len(call.Args) == 1 {
		return "-(" + prog.exprString(call.Args[0]) + ")"
	}

	var buf strings.Builder

	buf.WriteString(name)
	buf.WriteString("(")

	for i, arg := range call.Args {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.WriteString(prog.exprString(arg))
	}

	buf.WriteString(")")

	return buf.String()
}

// quote wraps a string literal in its delimiting quotes verbatim. The
// grammar has no escape sequences, and a parsed string can never contain
// a quote, so escaping would change the literal on reparse.
func quote(s string) string { return `"` + s + `"` }

// formatFloat renders a float literal with the shortest round-tripping
// decimal form.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// colorString re-encodes a linear color as its sRGB hex literal. Alpha of
// exactly 0xFF renders in the short six-digit form.
func colorString(c LinearRGBA) string {
	packed := c.Srgb().Packed()

	if packed&0xff == 0xff {
		return fmt.Sprintf("#%06X", packed>>8)
	}

	return fmt.Sprintf("#%08X", packed)
}

func (prog *Program) printRenderTarget(rt *RenderTargetDef, w io.Writer) {
	kind := "RenderTarget"
	if rt.HasDepth {
		kind = "RenderTargetWithDepth"
	}

	fmt.Fprintf(w, "%s %q %s\n", kind, prog.Text(rt.Name), spanString(rt.Slice))
	fmt.Fprint(w, "  Width: ")
	prog.printExpr(rt.Width, w, 2)
	fmt.Fprint(w, "  Height: ")
	prog.printExpr(rt.Height, w, 2)

	for _, att := range rt.Attachments {
		fmt.Fprintf(w, "  Attachment %q %s\n", prog.Text(att.Name), att.Format)
	}
}

func (prog *Program) printFunction(fn *Function, w io.Writer) {
	fmt.Fprintf(w, "Function %q %s\n", prog.Text(fn.Name), spanString(fn.Name))

	for _, param := range fn.Params {
		fmt.Fprintf(w, "  Param %q %s\n", prog.Text(param.Name), param.Type)
	}

	if fn.ReturnType != nil {
		fmt.Fprintf(w, "  Returns %s\n", *fn.ReturnType)
	}

	prog.printStmts(fn.Body, w, 1)
}

func (prog *Program) printStmts(stmts []*Stmt, w io.Writer, depth int) {
	pad := strings.Repeat("  ", depth)

	for _, stmt := range stmts {
		switch stmt.Kind {
		case StmtCall:
			fmt.Fprintf(w, "%sCall %s\n", pad, spanString(stmt.Call.Slice))
			prog.printCall(stmt.Call, w, depth+1)

		case StmtReturn:
			fmt.Fprintf(w, "%sReturn\n", pad)
			fmt.Fprint(w, pad, "  ")
			prog.printExpr(stmt.Expr, w, depth+1)

		case StmtConditional:
			fmt.Fprintf(w, "%sIf\n", pad)
			fmt.Fprint(w, pad, "  ")
			prog.printExpr(stmt.Condition, w, depth+1)
			fmt.Fprintf(w, "%sThen\n", pad)
			prog.printStmts(stmt.Then, w, depth+1)

			if stmt.Else != nil {
				fmt.Fprintf(w, "%sElse\n", pad)
				prog.printStmts(stmt.Else, w, depth+1)
			}
		}
	}
}

func (prog *Program) printExpr(e *ValueExpr, w io.Writer, depth int) {
	pad := strings.Repeat("  ", depth)

	switch e.Kind {
	case ExprVar:
		fmt.Fprintf(w, "%s %q %s\n", e.Kind, prog.Text(e.Slice), spanString(e.Slice))

	case ExprFloat:
		fmt.Fprintf(w, "%s %s %s\n", e.Kind, formatFloat(e.Float), spanString(e.Slice))

	case ExprString:
		fmt.Fprintf(w, "%s %q %s\n", e.Kind, prog.Text(e.Slice), spanString(e.Slice))

	case ExprColor:
		fmt.Fprintf(w, "%s %s %s\n", e.Kind, colorString(e.Color), spanString(e.Slice))

	case ExprDict:
		fmt.Fprintf(w, "%s %s\n", e.Kind, spanString(e.Slice))

		for _, entry := range e.Entries {
			fmt.Fprintf(w, "%s  %q:\n", pad, prog.Text(entry.Key))
			fmt.Fprint(w, pad, "    ")
			prog.printExpr(entry.Value, w, depth+2)
		}

	case ExprProperty:
		names := make([]string, len(e.Accessors))
		for i, accessor := range e.Accessors {
			names[i] = prog.Text(accessor)
		}

		fmt.Fprintf(w, "%s .%s %s\n", e.Kind, strings.Join(names, "."), spanString(e.Slice))
		fmt.Fprint(w, pad, "  ")
		prog.printExpr(e.Owner, w, depth+1)

	case ExprCall:
		fmt.Fprintf(w, "%s %q %s\n", e.Kind, prog.Text(e.Call.Function), spanString(e.Slice))
		prog.printCall(e.Call, w, depth+1)

	case ExprBinary:
		fmt.Fprintf(w, "%s %s %s\n", e.Kind, e.Op, spanString(e.Slice))
		fmt.Fprint(w, pad, "  ")
		prog.printExpr(e.LHS, w, depth+1)
		fmt.Fprint(w, pad, "  ")
		prog.printExpr(e.RHS, w, depth+1)
	}
}

func (prog *Program) printCall(call *FunctionCallExpr, w io.Writer, depth int) {
	pad := strings.Repeat("  ", depth)

	for _, arg := range call.Args {
		fmt.Fprint(w, pad)
		prog.printExpr(arg, w, depth)
	}
}

func spanString(s SourceSlice) string {
	return "[" + strconv.Itoa(s.Start) + ".." + strconv.Itoa(s.End) + ")"
}
