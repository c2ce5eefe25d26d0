package manifest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/manifest/grammar"
)

// semverFunction compares two version strings: semver(a, b) is -1, 0 or +1
// as a has lower, equal or higher precedence than b.
var semverFunction = expr.Function(
	"semver",
	func(params ...any) (any, error) {
		var vs [2]grammar.Version

		for i := range vs {
			s, ok := params[i].(string)
			if !ok {
				return nil, errors.New("semver: arguments must be strings")
			}

			v, err := grammar.ParseVersion(s)
			if err != nil {
				return nil, err
			}

			vs[i] = v
		}

		return vs[0].Compare(vs[1]), nil
	},
	new(func(string, string) int),
)

// Env returns the query environment of m: one variable per section, each a
// map of that section's keys to values. Section names that are not valid
// identifiers, such as "dev-dependencies", are reachable as
// $env["dev-dependencies"].
func (m *Manifest) Env() map[string]any {
	env := make(map[string]any, len(m.sections))
	for name, entries := range m.ToMap() {
		env[name] = entries
	}

	return env
}

// Evaluate compiles source as an expr-lang expression against [Manifest.Env]
// and runs it.
//
// Besides the expr-lang builtins, the function semver(a, b string) int
// compares two version strings by semantic version precedence.
func (m *Manifest) Evaluate(ctx context.Context, source string) (any, error) {
	env := m.Env()

	program, err := expr.Compile(source, expr.Env(env), semverFunction)
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("source", source))
	}

	if err := context.Cause(ctx); err != nil {
		return nil, ErrQueryEvaluate.Wrap(err)
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}
