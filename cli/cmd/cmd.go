package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/manifest/manifest"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type optionsKey struct{}

// WithOptions returns a new context.Context carrying the parse options used
// by every command that loads a manifest.
func WithOptions(ctx context.Context, opts ...manifest.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFrom(ctx context.Context) []manifest.Option {
	opts, _ := ctx.Value(optionsKey{}).([]manifest.Option)

	return opts
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// load parses the manifest at path, or stdin if path is "-".
func load(ctx context.Context, path string) (*manifest.Manifest, error) {
	var r io.Reader = os.Stdin

	if path != stdinSource {
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrOpenFile.
				With(slog.String("file", path)).
				Wrap(err)
		}
		defer file.Close()

		r = file
	}

	m, err := manifest.ParseReader(ctx, r, optionsFrom(ctx)...)
	if err != nil {
		return nil, ErrLoad.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return m, nil
}
