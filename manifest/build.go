package manifest

import (
	"fmt"
	"strings"

	"github.com/ardnew/manifest/grammar"
)

// Reserved section names.
const (
	PackageSection         = "package"
	DependenciesSection    = "dependencies"
	DevDependenciesSection = "dev-dependencies"
)

// Parse parses text as a manifest and builds its model.
//
// A syntax failure is returned as an error matching [ErrSyntax] that wraps
// the [*grammar.SyntaxError].
func Parse(text string, opts ...Option) (*Manifest, error) {
	return parse(text, makeOptions(opts...))
}

func parse(text string, o options) (*Manifest, error) {
	tree, err := grammar.Parse(grammar.RuleManifest, text, o.grammar()...)
	if err != nil {
		return nil, ErrSyntax.Wrap(err)
	}

	return Build(tree), nil
}

// cursor is the accumulator threaded through [Build].
type cursor struct {
	sections map[string]map[string]string
	current  string
	active   bool // false until the first generic header
}

// Build folds the nodes of tree, in order, into a [Manifest].
//
//   - A section header selects its section, creating it if absent.
//   - A key/value is stored in the selected section, or dropped if no
//     header has been seen.
//   - A package construct replaces the "package" section.
//   - A dependencies construct replaces "dependencies" the first time and
//     "dev-dependencies" every time after.
func Build(tree *grammar.Tree) *Manifest {
	acc := cursor{sections: make(map[string]map[string]string)}
	for _, n := range tree.Nodes {
		acc = step(acc, n)
	}

	return &Manifest{sections: acc.sections}
}

func step(acc cursor, n grammar.Node) cursor {
	switch n := n.(type) {
	case *grammar.SectionHeader:
		if _, ok := acc.sections[n.Name]; !ok {
			acc.sections[n.Name] = make(map[string]string)
		}

		acc.current, acc.active = n.Name, true

	case *grammar.KeyValue:
		if acc.active {
			acc.sections[acc.current][n.Key] = value(n.Raw)
		}

	case *grammar.PackageConstruct:
		acc.sections[PackageSection] = collect(n.Entries)

	case *grammar.DependenciesConstruct:
		name := DependenciesSection
		if _, ok := acc.sections[name]; ok {
			name = DevDependenciesSection
		}

		acc.sections[name] = collect(n.Entries)

	case *grammar.Other:

	default:
		panic(fmt.Sprintf("manifest: unhandled node type %T", n))
	}

	return acc
}

func collect(entries []grammar.KeyValue) map[string]string {
	m := make(map[string]string, len(entries))
	for _, kv := range entries {
		m[kv.Key] = value(kv.Raw)
	}

	return m
}

// value trims surrounding whitespace from raw and strips one layer of
// double quotes. Escape sequences are left as written.
func value(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}

	return v
}
