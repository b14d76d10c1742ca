package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestZeroValueLogger(t *testing.T) {
	var l Logger

	// Must not panic and must report defaults.
	l.Info("discarded")
	l.TraceContext(context.Background(), "discarded")

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format, got %v", l.Format())
	}
}

func TestMake_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelInfo),
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout(""),
	)

	l.Debug("hidden")
	l.Trace("hidden")
	l.Info("shown")

	got := buf.String()

	if strings.Contains(got, "hidden") {
		t.Errorf("expected filtered output, got %q", got)
	}

	if !strings.Contains(got, "shown") {
		t.Errorf("expected info message, got %q", got)
	}
}

func TestMake_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout(""),
	)

	l.Trace("tracing", slog.Int("n", 1))

	got := buf.String()

	if !strings.Contains(got, "TRACE") {
		t.Errorf("expected TRACE label, got %q", got)
	}

	if !strings.Contains(got, "tracing") {
		t.Errorf("expected message, got %q", got)
	}
}

func TestMake_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout(""))

	l.Info("hello", slog.String("k", "v"))

	got := buf.String()

	if !strings.Contains(got, `"msg":"hello"`) {
		t.Errorf("expected JSON message, got %q", got)
	}

	if !strings.Contains(got, `"k":"v"`) {
		t.Errorf("expected JSON attribute, got %q", got)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout(""),
	).With(slog.String("component", "parser"))

	l.Info("message")

	if !strings.Contains(buf.String(), "component=parser") {
		t.Errorf("expected bound attribute, got %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))

	wrapped := l.Wrap(WithLevel(LevelDebug))

	if l.Level() != LevelError {
		t.Errorf("original logger changed: %v", l.Level())
	}

	if wrapped.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", wrapped.Level())
	}
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout(""),
	)

	l.Info("styled", slog.Bool("ok", true))

	got := buf.String()

	if !strings.Contains(got, "\033[") {
		t.Errorf("expected ANSI colors, got %q", got)
	}

	if !strings.Contains(got, "styled") {
		t.Errorf("expected message, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "trace", want: LevelTrace},
		{input: "TRACE", want: LevelTrace},
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "WARN", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "bogus", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "json", want: FormatJSON},
		{input: " TEXT ", want: FormatText},
		{input: "bogus", want: DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var names []string
	for name := range Levels() {
		names = append(names, name)
	}

	if len(names) != 5 {
		t.Errorf("expected 5 levels, got %v", names)
	}
}
