package manifest

import (
	"context"
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	m := mustParse(t, sample)

	tests := []struct {
		name  string
		query string
		want  any
	}{
		{"package name", `package.name`, "test"},
		{"concatenation", `package.name + "@" + package.version`, "test@1.0.0"},
		{"index syntax", `lib["path"]`, "src/lib.rs"},
		{"hyphenated section", `$env["dev-dependencies"].criterion`, "0.5.1"},
		{"section size", `len(dependencies)`, 2},
		{"membership", `"serde" in dependencies`, true},
		{"semver lower", `semver(dependencies.serde, "1.0.100")`, -1},
		{"semver equal", `semver(package.version, "1.0.0+build")`, 0},
		{"semver higher", `semver("2.0.0", "2.0.0-rc.1")`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Evaluate(t.Context(), tt.query)
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Evaluate(%s) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	m := mustParse(t, sample)

	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"syntax", `package.name +`, ErrQueryCompile},
		{"unknown section", `workspace.members`, ErrQueryCompile},
		{"semver arity", `semver("1.0.0")`, ErrQueryCompile},
		{"semver invalid", `semver("1.0", "1.0.0")`, ErrQueryEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Evaluate(t.Context(), tt.query)
			if !errors.Is(err, tt.want) {
				t.Errorf("Evaluate(%s) error = %v, want %v", tt.query, err, tt.want)
			}
		})
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	m := mustParse(t, sample)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := m.Evaluate(ctx, `package.name`); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEnv(t *testing.T) {
	m := mustParse(t, sample)
	env := m.Env()

	pkg, ok := env["package"].(map[string]string)
	if !ok {
		t.Fatalf("env[package] is %T", env["package"])
	}

	pkg["name"] = "changed"

	if got, _ := m.GetByKey("package", "name"); got != "test" {
		t.Errorf("model mutated through Env: %q", got)
	}
}
