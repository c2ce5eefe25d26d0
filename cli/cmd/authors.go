package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/manifest/pkg"
)

// Authors prints information about the authors.
type Authors struct{}

// Run executes the authors command.
func (Authors) Run(ctx context.Context) error {
	var b strings.Builder

	b.WriteString("Manifest Parser\n")

	for _, a := range pkg.Author {
		fmt.Fprintf(&b, "Created by %s", a.Name)

		if a.Email != "" {
			fmt.Fprintf(&b, " <%s>", a.Email)
		}

		b.WriteString("\n")

		if a.URL != "" {
			fmt.Fprintf(&b, "GitHub: %s\n", a.URL)
		}
	}

	_, err := fmt.Fprint(stdout(ctx), b.String())

	return err
}
