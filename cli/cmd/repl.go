package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/manifest/cli/cmd/repl"
	"github.com/ardnew/manifest/log"
)

// Repl starts an interactive query session.
type Repl struct {
	File string `arg:"" help:"Manifest file or '-' for stdin" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	file := os.Stdin

	if r.File != stdinSource {
		var err error

		file, err = os.Open(r.File)
		if err != nil {
			return ErrOpenFile.
				With(slog.String("file", r.File)).
				Wrap(err)
		}
		defer file.Close()
	}

	return repl.Run(ctx, file, cacheDir, log.Default(), optionsFrom(ctx)...)
}
