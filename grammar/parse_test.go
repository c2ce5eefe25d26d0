package grammar

import (
	"errors"
	"strings"
	"testing"
)

const cargoManifest = `# A typical manifest.
[package]
name = "demo"
version = "0.3.1-beta.2+build.7"
edition = "2021"   # trailing comment

[dependencies]
serde = "1.0.0"
tokio = { version = "1.0.0", features = ["full", "rt"], optional = true }

[[bin]]
name = "demo-cli"
path = "src/main.rs"

[profile]
opt-level = 2
debug = true
`

func TestParse_Manifest(t *testing.T) {
	tree, err := Parse(RuleManifest, cargoManifest)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	kinds := make([]string, 0, len(tree.Nodes))
	for _, n := range tree.Nodes {
		switch n := n.(type) {
		case *SectionHeader:
			kinds = append(kinds, "header:"+n.Name)
		case *KeyValue:
			kinds = append(kinds, "kv:"+n.Key)
		case *PackageConstruct:
			kinds = append(kinds, "package")
		case *DependenciesConstruct:
			kinds = append(kinds, "dependencies")
		case *Other:
			kinds = append(kinds, "other")
		}
	}

	want := []string{
		"package",
		"dependencies",
		"header:bin", "kv:name", "kv:path",
		"header:profile", "kv:opt-level", "kv:debug",
	}

	if strings.Join(kinds, " ") != strings.Join(want, " ") {
		t.Errorf("nodes = %v, want %v", kinds, want)
	}

	if tree.Rule != RuleManifest {
		t.Errorf("rule = %v, want %v", tree.Rule, RuleManifest)
	}
}

func TestParse_PackageConstruct(t *testing.T) {
	tree, err := Parse(RuleManifest, cargoManifest)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	pkg, ok := tree.Nodes[0].(*PackageConstruct)
	if !ok {
		t.Fatalf("first node is %T, want *PackageConstruct", tree.Nodes[0])
	}

	if got := pkg.Name().Raw; got != `"demo"` {
		t.Errorf("name = %s, want %q", got, `"demo"`)
	}

	if got := pkg.Version().Raw; got != `"0.3.1-beta.2+build.7"` {
		t.Errorf("version = %s", got)
	}

	if len(pkg.Entries) != 3 || pkg.Entries[2].Key != "edition" {
		t.Errorf("entries = %+v, want name, version, edition", pkg.Entries)
	}

	if pkg.Span.Start.Line != 2 || pkg.Span.Start.Column != 1 {
		t.Errorf("start = %v, want 2:1", pkg.Span.Start)
	}

	// The construct ends after the edition value, before the comment.
	if got := pkg.Span.Text(tree.Source); !strings.HasSuffix(got, `edition = "2021"`) {
		t.Errorf("span text = %q", got)
	}
}

func TestParse_DependenciesConstruct(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty",
			input: "[dependencies]",
			want:  map[string]string{},
		},
		{
			name:  "version",
			input: "[dependencies]\nserde = \"1.0.0\"",
			want:  map[string]string{"serde": `"1.0.0"`},
		},
		{
			name: "inline table",
			input: "[dependencies]\n\tserde = \"1.0.0\"\n" +
				"\ttokio = { version = \"1.0.0\", features = [\"full\"], optional = true }",
			want: map[string]string{
				"serde": `"1.0.0"`,
				"tokio": `{ version = "1.0.0", features = ["full"], optional = true }`,
			},
		},
		{
			name:  "nested table",
			input: `[dependencies] a = { b = { c = ["}", "]"] }, d = [] }`,
			want:  map[string]string{"a": `{ b = { c = ["}", "]"] }, d = [] }`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(RuleDependenciesSection, tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			deps, ok := tree.Nodes[0].(*DependenciesConstruct)
			if !ok {
				t.Fatalf("node is %T, want *DependenciesConstruct", tree.Nodes[0])
			}

			if len(deps.Entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(deps.Entries), len(tt.want))
			}

			for _, kv := range deps.Entries {
				if kv.Raw != tt.want[kv.Key] {
					t.Errorf("%s = %s, want %s", kv.Key, kv.Raw, tt.want[kv.Key])
				}
			}
		})
	}
}

func TestParse_Section(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header string
		double bool
	}{
		{
			name:   "single bracket",
			input:  "[lib]\nname = \"mylib\"\npath = \"src/lib.rs\"",
			header: "lib",
		},
		{
			name:   "double bracket",
			input:  "[[bin]]\nname = \"mycli\"\npath = \"src/main.rs\"",
			header: "bin",
			double: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(RuleSection, tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if len(tree.Nodes) != 3 {
				t.Fatalf("got %d nodes, want 3", len(tree.Nodes))
			}

			h, ok := tree.Nodes[0].(*SectionHeader)
			if !ok {
				t.Fatalf("first node is %T, want *SectionHeader", tree.Nodes[0])
			}

			if h.Name != tt.header || h.Double != tt.double {
				t.Errorf("header = %q (double %v), want %q (double %v)",
					h.Name, h.Double, tt.header, tt.double)
			}

			if kv := tree.Nodes[1].(*KeyValue); kv.Key != "name" {
				t.Errorf("first key = %q, want name", kv.Key)
			}
		})
	}
}

func TestParse_KeyValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		raw   string
	}{
		{"string", `name = "x"`, "name", `"x"`},
		{"padded", `name    =    "x"`, "name", `"x"`},
		{"escaped quote", `desc = "say \"hi\""`, "desc", `"say \"hi\""`},
		{"number", `opt-level = 3`, "opt-level", `3`},
		{"float", `ratio = -0.5`, "ratio", `-0.5`},
		{"boolean", `debug = false`, "debug", `false`},
		{"date", `released = 1979-05-27T07:32:00Z`, "released", `1979-05-27T07:32:00Z`},
		{"array", `features = ["a", "b"]`, "features", `["a", "b"]`},
		{"empty array", `features = []`, "features", `[]`},
		{"table", `x = { a = 1 }`, "x", `{ a = 1 }`},
		{"version", `version = "1.2.3"`, "version", `"1.2.3"`},
		{"multiline array", "xs = [\n  1, # one\n  2,\n]", "xs", "[\n  1, # one\n  2,\n]"},
		{"bracketed ident", `default = [std]`, "default", `[std]`},
		{"nested arrays", `m = [[a], [b]]`, "m", `[[a], [b]]`},
		{"digit key", `2d = true`, "2d", `true`},
		{"digit key hyphen", `3d-engine = "x"`, "3d-engine", `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(RuleKeyValue, tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			kv, ok := tree.Nodes[0].(*KeyValue)
			if !ok {
				t.Fatalf("node is %T, want *KeyValue", tree.Nodes[0])
			}

			if kv.Key != tt.key {
				t.Errorf("key = %q, want %q", kv.Key, tt.key)
			}

			if kv.Raw != tt.raw {
				t.Errorf("raw = %q, want %q", kv.Raw, tt.raw)
			}

			if got := kv.Span.Text(tt.input); got != tt.input {
				t.Errorf("span text = %q, want whole input", got)
			}
		})
	}
}

func TestParse_Span(t *testing.T) {
	input := "[lib]\n  name = \"x\""

	tree, err := Parse(RuleSection, input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	kv := tree.Nodes[1].(*KeyValue)

	want := Span{
		Start: Position{Offset: 8, Line: 2, Column: 3},
		End:   Position{Offset: 18, Line: 2, Column: 13},
	}

	if kv.Span != want {
		t.Errorf("span = %+v, want %+v", kv.Span, want)
	}
}

func TestParse_Comments(t *testing.T) {
	input := "# leading\n[lib]\n# between\nname = \"x\" # trailing\n#last"

	tree, err := Parse(RuleManifest, input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(tree.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(tree.Nodes))
	}
}

func TestParse_RootEntry(t *testing.T) {
	tree, err := Parse(RuleManifest, "orphan = \"x\"\n[lib]\nname = \"y\"")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if kv, ok := tree.Nodes[0].(*KeyValue); !ok || kv.Key != "orphan" {
		t.Errorf("first node = %+v, want orphan key/value", tree.Nodes[0])
	}
}

func TestParse_ArrayValues(t *testing.T) {
	input := "top = [true]\n" +
		"[features]\ndefault = [std] # comment\nfull = [ \"a\", [b] ]\n" +
		"[2d]\n[dependencies]\n3d = \"1.0.0\"\n"

	tree, err := Parse(RuleManifest, input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var (
		headers []string
		raws    []string
	)

	for _, n := range tree.Nodes {
		switch n := n.(type) {
		case *SectionHeader:
			headers = append(headers, n.Name)
		case *KeyValue:
			raws = append(raws, n.Key+"="+n.Raw)
		case *DependenciesConstruct:
			for _, kv := range n.Entries {
				raws = append(raws, kv.Key+"="+kv.Raw)
			}
		}
	}

	if got, want := strings.Join(headers, ","), "features,2d"; got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}

	want := `top=[true],default=[std],full=[ "a", [b] ],3d="1.0.0"`
	if got := strings.Join(raws, ","); got != want {
		t.Errorf("entries = %q, want %q", got, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
	}{
		{"empty", RuleManifest, ""},
		{"only whitespace", RuleManifest, " \n\t\n"},
		{"only comments", RuleManifest, "# one\n# two\n"},
		{"package missing version", RuleManifest, "[package]\nname = \"test\""},
		{"package version first", RuleManifest, "[package]\nversion = \"1.0.0\"\nname = \"test\""},
		{"package loose version", RuleManifest, "[package]\nname = \"test\"\nversion = \"1.0\""},
		{"malformed header", RuleManifest, "[dependencies\nserde = \"1.0\""},
		{"dependency loose version", RuleManifest, "[dependencies]\nserde = \"1.0\""},
		{"dependency bare value", RuleManifest, "[dependencies]\nserde = 1"},
		{"unescaped quote", RuleManifest, "[lib]\nname = \"a\"b\""},
		{"unterminated string", RuleManifest, "[lib]\nname = \"abc"},
		{"unclosed table", RuleManifest, "[lib]\nx = { a = 1"},
		{"missing value", RuleManifest, "[lib]\nname ="},
		{"trailing input", RuleKeyValue, "a = 1\nb = 2"},
		{"section without header", RuleSection, "name = \"x\""},
		{"version bare", RuleVersion, "1.0.0"},
		{"numeric key", RuleManifest, "[lib]\n1.5 = \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rule, tt.input)
			if err == nil {
				t.Fatalf("expected syntax error for %q", tt.input)
			}

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SyntaxError", err)
			}
		})
	}
}

func TestParse_UnknownRule(t *testing.T) {
	_, err := Parse(Rule(99), "x")

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not *SyntaxError", err)
	}

	if !strings.Contains(se.Message, "Rule(99)") {
		t.Errorf("message = %q", se.Message)
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"stray punctuation", "[lib]\nname = \"x\"\n= oops", 3, 1},
		{"invalid character", "[lib]\nname = 'x'", 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(RuleManifest, tt.input)

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is not *SyntaxError", err)
			}

			if se.Pos.Line != tt.line || se.Pos.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d",
					se.Pos.Line, se.Pos.Column, tt.line, tt.column)
			}

			if !strings.HasPrefix(se.Error(), "syntax error at line ") {
				t.Errorf("error = %q", se.Error())
			}
		})
	}
}

func TestParse_StrictSections(t *testing.T) {
	input := "[lib]\nname = \"x\"\n[invalid]\nkey = \"value\""

	if _, err := Parse(RuleManifest, input); err != nil {
		t.Fatalf("lenient parse error: %v", err)
	}

	_, err := Parse(RuleManifest, input, WithStrictSections(true))

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("strict parse error = %v, want *SyntaxError", err)
	}

	if se.Pos.Line != 3 || se.Pos.Column != 1 {
		t.Errorf("position = %v, want 3:1", se.Pos)
	}

	if !strings.Contains(se.Message, `"invalid"`) {
		t.Errorf("message = %q", se.Message)
	}

	valid := "[package]\nname = \"x\"\nversion = \"1.0.0\"\n" +
		"[dependencies]\n[[bin]]\n[dev-dependencies]\n[features]\n"
	if _, err := Parse(RuleManifest, valid, WithStrictSections(true)); err != nil {
		t.Errorf("strict parse of known sections: %v", err)
	}
}

func TestSyntaxError_Snippet(t *testing.T) {
	tests := []struct {
		name string
		err  SyntaxError
		want string
	}{
		{
			name: "column",
			err:  SyntaxError{Source: "a\nbcd", Pos: Position{Line: 2, Column: 3}},
			want: "  2 | bcd\n        ^",
		},
		{
			name: "tab",
			err:  SyntaxError{Source: "\tx", Pos: Position{Line: 1, Column: 2}},
			want: "  1 | \tx\n      \t^",
		},
		{
			name: "unknown line",
			err:  SyntaxError{Source: "a", Pos: Position{}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Snippet(); got != tt.want {
				t.Errorf("snippet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyntaxError_Error(t *testing.T) {
	err := &SyntaxError{
		Message: "unexpected token",
		Source:  "x",
		Pos:     Position{Line: 1, Column: 1},
	}

	want := "syntax error at line 1, column 1: unexpected token\n  1 | x\n      ^"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &SyntaxError{Message: "bad"}
	if got := bare.Error(); got != "syntax error: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRule_String(t *testing.T) {
	if got := RuleDependenciesSection.String(); got != "dependencies_section" {
		t.Errorf("String() = %q", got)
	}
}
