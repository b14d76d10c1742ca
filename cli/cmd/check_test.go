package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/decden/demoengine/lang"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	return path
}

func TestCheck_Run(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid script",
			content: `fn main() { clear(#000000); }`,
			wantErr: false,
		},
		{
			name:    "valid render target",
			content: `define_rt("main", 1920, 1080, {"color": RGBA8});`,
			wantErr: false,
		},
		{
			name:    "syntax error",
			content: `fn main( {}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, "scene.demo", tt.content)

			check := Check{Sources: []string{path}}

			err := check.Run(context.Background())
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheck_Run_MissingFile(t *testing.T) {
	check := Check{Sources: []string{filepath.Join(t.TempDir(), "nope.demo")}}

	err := check.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestCheck_Run_ContinuesPastFailures(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	bad := writeScript(t, "bad.demo", "fn (")
	good := writeScript(t, "good.demo", "fn main() {}")

	check := Check{Sources: []string{bad, good}}

	// The bad script fails, but the good one is still checked and the
	// joined error reflects only the failure.
	err := check.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from bad script")
	}

	if !errors.Is(err, lang.ErrSyntax) {
		t.Errorf("expected syntax error, got %v", err)
	}
}
