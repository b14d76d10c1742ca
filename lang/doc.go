// Package lang implements the front end of the demoengine scripting
// language: a small DSL that describes a real-time rendering pipeline as
// render-target declarations and shader-driving functions.
//
// The package covers lexical analysis, parsing, and construction of a
// span-annotated abstract syntax tree. It performs no semantic validation,
// no constant folding, and no code generation; the runtime interpreter
// consumes the finished [Program] tree.
//
// # Grammar
//
// Informal EBNF:
//
//	program      := (comment | function | render_target)*
//	function     := "fn" IDENT "(" params? ")" ("->" type)? block
//	params       := param ("," param)*
//	param        := IDENT ":" type
//	type         := "f32"
//	render_target:= ("define_rt" | "define_rt_with_depth")
//	                "(" STRING "," expr "," expr "," "{" attachments "}" ")" ";"
//	attachments  := attach ("," attach)*
//	attach       := STRING ":" FORMAT_KEYWORD
//	block        := "{" stmt* "}"
//	stmt         := call ";" | "return" expr ";"
//	              | "if" expr block ("else" block)?
//	call         := IDENT "(" args? ")"
//	args         := expr ("," expr)*
//	expr         := cmp
//	cmp          := add (("<"|"<="|">"|">="|"=="|"!=") add)*
//	add          := mul (("+"|"-") mul)*
//	mul          := prop (("*"|"/") prop)*
//	prop         := term ("." IDENT)*
//	term         := FLOAT | STRING | COLOR6 | COLOR8 | dict
//	              | IDENT | "(" expr ")" | call | "-" "(" expr ")"
//	dict         := "{" (STRING ":" expr) ("," STRING ":" expr)* "}"
//
// Line comments run from "//" to end of line and may appear anywhere a
// declaration or statement may; they never produce AST nodes.
//
// All binary operator tiers are strictly left-associative, so a < b < c
// parses as (a < b) < c. Negation of a parenthesized expression, -(x),
// is not a dedicated node kind: it desugars into a [FunctionCall] whose
// name slice covers only the "-" token, sharing the interpreter's builtin
// dispatch path with ordinary calls. A bare -x is a syntax error; the "-"
// fuses with a numeric literal only when a digit immediately follows it.
//
// # Spans
//
// Every AST node records a [SourceSlice], a half-open byte range into the
// original source. Spans exist only for diagnostics: a child node's span is
// always contained in its parent's, and string-literal spans exclude the
// delimiting quotes.
//
// Parsing is single-threaded, stateless across invocations, and fail-fast:
// the first lexical, syntax, or literal-conversion failure aborts the parse
// and no partial tree is returned. Each call produces a fresh immutable
// tree, which makes hot-reload re-parsing by an external watcher safe.
package lang
