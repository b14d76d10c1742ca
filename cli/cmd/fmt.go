package cmd

import (
	"bufio"
	"context"
	"log/slog"

	"github.com/decden/demoengine/lang"
	"github.com/decden/demoengine/log"
)

// Fmt reads a demo script, parses it, and writes it back out in the
// chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native script syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// Native formats input as native script syntax.
type Native struct {
	Indent int `default:"4" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	return prog.Format(ctx, stdoutFrom(ctx), f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	return prog.FormatJSON(ctx, stdoutFrom(ctx), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	return prog.FormatYAML(ctx, stdoutFrom(ctx), y.Indent)
}

// AST formats input as an abstract syntax tree dump.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	return prog.Print(ctx, stdoutFrom(ctx))
}

// parseSource opens and parses one source argument.
func parseSource(
	ctx context.Context,
	source, format string,
) (*lang.Program, error) {
	r, closeSource, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	prog, err := lang.ParseReader(
		ctx,
		bufio.NewReader(r),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return prog, nil
}
