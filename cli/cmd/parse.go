package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/ardnew/manifest/manifest"
)

// Parse parses a manifest and prints its sections.
type Parse struct {
	File   string `arg:"" help:"Manifest file or '-' for stdin" type:"existingfile"`
	Format string `default:"sections" enum:"sections,text,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2" help:"Indentation width for json and yaml; 0 for compact output."`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	m, err := load(ctx, p.File)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	switch p.Format {
	case "text":
		err = m.FormatText(ctx, w)
	case "json":
		err = m.FormatJSON(ctx, w, p.Indent)
	case "yaml":
		err = m.FormatYAML(ctx, w, p.Indent)
	default:
		err = writeSections(w, m)
	}

	if err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}

// writeSections prints the list of section names, sorted.
func writeSections(w io.Writer, m *manifest.Manifest) error {
	if _, err := fmt.Fprintln(w, "Parsed manifest sections:"); err != nil {
		return err
	}

	for _, name := range slices.Sorted(m.Sections()) {
		if _, err := fmt.Fprintf(w, "- %s\n", name); err != nil {
			return err
		}
	}

	return nil
}
