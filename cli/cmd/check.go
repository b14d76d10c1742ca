package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/decden/demoengine/lang"
	"github.com/decden/demoengine/log"
)

// Check parses demo scripts and reports syntax errors with source
// locations. All named sources are checked even when an earlier one
// fails.
type Check struct {
	Sources []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	stdout := stdoutFrom(ctx)

	var errs []error

	for _, source := range c.Sources {
		prog, err := checkSource(ctx, source)
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", source, err)

			errs = append(errs, err)

			continue
		}

		log.InfoContext(ctx, "check passed",
			slog.String("source", source),
			slog.Int("functions", len(prog.Functions)),
			slog.Int("render_targets", len(prog.RenderTargets)),
		)

		fmt.Fprintf(stdout, "%s: ok (%d functions, %d render targets)\n",
			source, len(prog.Functions), len(prog.RenderTargets))
	}

	return errors.Join(errs...)
}

func checkSource(ctx context.Context, source string) (*lang.Program, error) {
	r, closeSource, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	return lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
}
