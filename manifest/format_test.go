package manifest

import (
	"bytes"
	"maps"
	"testing"

	"github.com/goccy/go-yaml"
)

const small = "[package]\nname = \"p\"\nversion = \"1.0.0\"\n[lib]\npath = \"x\"\n"

func TestManifest_FormatText(t *testing.T) {
	m := mustParse(t, small)

	var buf bytes.Buffer
	if err := m.FormatText(t.Context(), &buf); err != nil {
		t.Fatalf("FormatText error: %v", err)
	}

	want := "[lib]\npath = x\n\n[package]\nname = p\nversion = 1.0.0\n"
	if buf.String() != want {
		t.Errorf("FormatText =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestManifest_FormatJSON(t *testing.T) {
	m := mustParse(t, small)

	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{
			name:   "compact",
			indent: 0,
			want:   `{"lib":{"path":"x"},"package":{"name":"p","version":"1.0.0"}}` + "\n",
		},
		{
			name:   "indented",
			indent: 2,
			want: "{\n" +
				"  \"lib\": {\n" +
				"    \"path\": \"x\"\n" +
				"  },\n" +
				"  \"package\": {\n" +
				"    \"name\": \"p\",\n" +
				"    \"version\": \"1.0.0\"\n" +
				"  }\n" +
				"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := m.FormatJSON(t.Context(), &buf, tt.indent); err != nil {
				t.Fatalf("FormatJSON error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("FormatJSON =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestManifest_FormatYAML(t *testing.T) {
	m := mustParse(t, small)

	for _, indent := range []int{0, 2, 4} {
		var buf bytes.Buffer
		if err := m.FormatYAML(t.Context(), &buf, indent); err != nil {
			t.Fatalf("FormatYAML(%d) error: %v", indent, err)
		}

		var got map[string]map[string]string
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("FormatYAML(%d) produced invalid YAML: %v\n%s", indent, err, buf.String())
		}

		equal := func(x, y map[string]string) bool { return maps.Equal(x, y) }
		if !maps.EqualFunc(got, m.ToMap(), equal) {
			t.Errorf("FormatYAML(%d) = %v, want %v", indent, got, m.ToMap())
		}
	}
}

func TestManifest_FormatDeterministic(t *testing.T) {
	m := mustParse(t, sample)

	var first bytes.Buffer
	if err := m.FormatYAML(t.Context(), &first, 2); err != nil {
		t.Fatalf("FormatYAML error: %v", err)
	}

	for range 10 {
		var buf bytes.Buffer
		if err := m.FormatYAML(t.Context(), &buf, 2); err != nil {
			t.Fatalf("FormatYAML error: %v", err)
		}

		if buf.String() != first.String() {
			t.Fatalf("output changed between calls:\n%s\n%s", first.String(), buf.String())
		}
	}
}

func TestSection_FormatText(t *testing.T) {
	m := mustParse(t, small)

	s, err := m.GetBySection("package")
	if err != nil {
		t.Fatalf("GetBySection error: %v", err)
	}

	var buf bytes.Buffer
	if err := s.FormatText(&buf); err != nil {
		t.Fatalf("FormatText error: %v", err)
	}

	if want := "name = p\nversion = 1.0.0\n"; buf.String() != want {
		t.Errorf("FormatText = %q, want %q", buf.String(), want)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "nil"},
		{"string", "serde", "serde"},
		{"int", -1, "-1"},
		{"bool", true, "true"},
		{"map", map[string]string{"b": "2", "a": "1"}, `{a: "1", b: "2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.in); got != tt.want {
				t.Errorf("FormatResult(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
