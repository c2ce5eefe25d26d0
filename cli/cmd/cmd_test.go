package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/manifest/manifest"
)

const testManifest = `[package]
name = "demo"
version = "1.2.3"

[dependencies]
serde = "1.0.0"
tokio = { version = "1.28.0", features = ["full"] }
`

// testContext returns a context carrying a kong context whose stdout is the
// returned buffer.
func testContext(t *testing.T, vars kong.Vars) (context.Context, *bytes.Buffer) {
	t.Helper()

	var (
		out bytes.Buffer
		cli struct{}
	)

	parser, err := kong.New(&cli, vars, kong.Writers(&out, io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(t.Context(), ktx), &out
}

// writeFile writes content to a new file in a temporary directory.
func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr []error
	}{
		{
			name: "ok",
			path: func(t *testing.T) string { return writeFile(t, testManifest) },
		},
		{
			name: "missing_file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.toml")
			},
			wantErr: []error{ErrOpenFile, os.ErrNotExist},
		},
		{
			name:    "syntax_error",
			path:    func(t *testing.T) string { return writeFile(t, "[package]\nversion = \"1.0.0\"\n") },
			wantErr: []error{ErrLoad, manifest.ErrSyntax},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := load(t.Context(), tt.path(t))

			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("load() error = %v", err)
				}

				if m.Len() != 2 {
					t.Errorf("load() sections = %d, want 2", m.Len())
				}

				return
			}

			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("load() error = %v, want match for %v", err, want)
				}
			}
		})
	}
}

func TestLoadOptions(t *testing.T) {
	path := writeFile(t, "[invalid]\nkey = \"value\"\n")

	if _, err := load(t.Context(), path); err != nil {
		t.Fatalf("load() without options error = %v", err)
	}

	ctx := WithOptions(t.Context(), manifest.WithStrictSections(true))

	if _, err := load(ctx, path); !errors.Is(err, manifest.ErrSyntax) {
		t.Errorf("load() strict error = %v, want %v", err, manifest.ErrSyntax)
	}
}

func TestStdoutFallback(t *testing.T) {
	if got := stdout(t.Context()); got != os.Stdout {
		t.Errorf("stdout() = %v, want os.Stdout", got)
	}

	ctx, out := testContext(t, kong.Vars{})
	if got := stdout(ctx); got != out {
		t.Errorf("stdout() = %v, want kong stdout", got)
	}
}
