package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Program.
func (prog *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(prog.ToMap())
}

// ToMap converts the program to a native Go map structure suitable for the
// JSON and YAML encoders. Slices resolve to their source text; colors carry
// their linear components.
func (prog *Program) ToMap() map[string]any {
	targets := make([]any, len(prog.RenderTargets))
	for i, rt := range prog.RenderTargets {
		targets[i] = prog.renderTargetToNative(rt)
	}

	functions := make([]any, len(prog.Functions))
	for i, fn := range prog.Functions {
		functions[i] = prog.functionToNative(fn)
	}

	return map[string]any{
		"render_targets": targets,
		"functions":      functions,
	}
}

func (prog *Program) renderTargetToNative(rt *RenderTargetDef) map[string]any {
	attachments := make([]any, len(rt.Attachments))
	for i, att := range rt.Attachments {
		attachments[i] = map[string]any{
			"name":   prog.Text(att.Name),
			"format": att.Format.String(),
		}
	}

	return map[string]any{
		"name":        prog.Text(rt.Name),
		"width":       prog.exprToNative(rt.Width),
		"height":      prog.exprToNative(rt.Height),
		"attachments": attachments,
		"has_depth":   rt.HasDepth,
	}
}

func (prog *Program) functionToNative(fn *Function) map[string]any {
	params := make([]any, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = map[string]any{
			"name": prog.Text(param.Name),
			"type": param.Type.String(),
		}
	}

	result := map[string]any{
		"name":       prog.Text(fn.Name),
		"parameters": params,
		"body":       prog.stmtsToNative(fn.Body),
	}

	if fn.ReturnType != nil {
		result["returns"] = fn.ReturnType.String()
	}

	return result
}

func (prog *Program) stmtsToNative(stmts []*Stmt) []any {
	result := make([]any, len(stmts))

	for i, stmt := range stmts {
		switch stmt.Kind {
		case StmtCall:
			result[i] = map[string]any{
				"call": prog.callToNative(stmt.Call),
			}

		case StmtReturn:
			result[i] = map[string]any{
				"return": prog.exprToNative(stmt.Expr),
			}

		case StmtConditional:
			cond := map[string]any{
				"condition": prog.exprToNative(stmt.Condition),
				"then":      prog.stmtsToNative(stmt.Then),
			}

			if stmt.Else != nil {
				cond["else"] = prog.stmtsToNative(stmt.Else)
			}

			result[i] = map[string]any{"if": cond}
		}
	}

	return result
}

func (prog *Program) callToNative(call *FunctionCallExpr) map[string]any {
	args := make([]any, len(call.Args))
	for i, arg := range call.Args {
		args[i] = prog.exprToNative(arg)
	}

	return map[string]any{
		"function":  prog.Text(call.Function),
		"arguments": args,
	}
}

func (prog *Program) exprToNative(e *ValueExpr) any {
	switch e.Kind {
	case ExprVar:
		return map[string]any{"var": prog.Text(e.Slice)}

	case ExprFloat:
		return e.Float

	case ExprString:
		return prog.Text(e.Slice)

	case ExprColor:
		return map[string]any{
			"color": map[string]any{
				"r": e.Color.R,
				"g": e.Color.G,
				"b": e.Color.B,
				"a": e.Color.A,
			},
		}

	case ExprDict:
		entries := make(map[string]any, len(e.Entries))
		for _, entry := range e.Entries {
			entries[prog.Text(entry.Key)] = prog.exprToNative(entry.Value)
		}

		return entries

	case ExprProperty:
		accessors := make([]any, len(e.Accessors))
		for i, accessor := range e.Accessors {
			accessors[i] = prog.Text(accessor)
		}

		return map[string]any{
			"property": map[string]any{
				"owner":     prog.exprToNative(e.Owner),
				"accessors": accessors,
			},
		}

	case ExprCall:
		return map[string]any{"call": prog.callToNative(e.Call)}

	case ExprBinary:
		return map[string]any{
			"binary": map[string]any{
				"op":  e.Op.String(),
				"lhs": prog.exprToNative(e.LHS),
				"rhs": prog.exprToNative(e.RHS),
			},
		}

	default:
		return nil
	}
}
