package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/manifest/manifest"
)

// Query evaluates an expression against a manifest and prints the result.
//
// Sections are variables and keys are their members, so
// "package.version" prints the package version. Sections whose names are
// not identifiers are reachable through $env, as in
// $env["dev-dependencies"].
type Query struct {
	File       string `arg:"" help:"Manifest file or '-' for stdin" type:"existingfile"`
	Expression string `arg:"" help:"Expression to evaluate"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	m, err := load(ctx, q.File)
	if err != nil {
		return err
	}

	result, err := m.Evaluate(ctx, q.Expression)
	if err != nil {
		return ErrQuery.
			With(slog.String("expression", q.Expression)).
			Wrap(err)
	}

	_, err = fmt.Fprintln(stdout(ctx), manifest.FormatResult(result))

	return err
}
