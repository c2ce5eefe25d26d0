package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/manifest/manifest"
)

// Get prints the value of one key.
type Get struct {
	File    string `arg:"" help:"Manifest file or '-' for stdin" type:"existingfile"`
	Section string `arg:"" help:"Section to search in"`
	Key     string `arg:"" help:"Key to look up"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	m, err := load(ctx, g.File)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	value, err := m.GetByKey(g.Section, g.Key)
	if err != nil {
		return lookupFailed(w, m, err)
	}

	_, err = fmt.Fprintf(w, "%s = %s\n", g.Key, value)

	return err
}

// Section prints every key/value pair of one section.
type Section struct {
	File    string `arg:"" help:"Manifest file or '-' for stdin" type:"existingfile"`
	Section string `arg:"" help:"Section to display"`
}

// Run executes the section command.
func (s *Section) Run(ctx context.Context) error {
	m, err := load(ctx, s.File)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	section, err := m.GetBySection(s.Section)
	if err != nil {
		return lookupFailed(w, m, err)
	}

	if _, err := fmt.Fprintf(w, "Values in section [%s]:\n", s.Section); err != nil {
		return err
	}

	return section.FormatText(w)
}

// lookupFailed reports err on w, with a suggestion when a similar section or
// key exists, and returns err wrapped as [ErrLookup].
func lookupFailed(w io.Writer, m *manifest.Manifest, err error) error {
	fmt.Fprintf(w, "Error: %s\n", err)

	if s, ok := suggest(m, err); ok {
		fmt.Fprintf(w, "Did you mean %s?\n", strconv.Quote(s))
	}

	return ErrLookup.Wrap(err)
}

// suggest returns the section or key of m closest to the missing name
// reported by err.
func suggest(m *manifest.Manifest, err error) (string, bool) {
	var (
		sectionErr *manifest.SectionError
		keyErr     *manifest.KeyError
	)

	switch {
	case errors.As(err, &sectionErr):
		return closest(sectionErr.Section, m.SortedSections())

	case errors.As(err, &keyErr):
		section, lookupErr := m.GetBySection(keyErr.Section)
		if lookupErr != nil {
			return "", false
		}

		return closest(keyErr.Key, section.Keys())
	}

	return "", false
}

// closest returns the best fuzzy match for name among candidates. If name
// itself matches nothing, ever shorter prefixes of it are tried, so a typo
// late in the name still finds the intended candidate.
func closest(name string, candidates []string) (string, bool) {
	runes := []rune(name)

	for n := len(runes); n > 0; n-- {
		matches := fuzzy.Find(string(runes[:n]), candidates)
		if len(matches) > 0 {
			return matches[0].Str, true
		}
	}

	return "", false
}
