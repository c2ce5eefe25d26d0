package grammar

//go:generate go tool stringer --linecomment --type Rule --output rule_string.go

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Rule selects the production that must match the whole input.
type Rule int

// Rules accepted by [Parse].
const (
	RuleManifest            Rule = iota // manifest
	RuleSection                         // section
	RulePackageSection                  // package_section
	RuleDependenciesSection             // dependencies_section
	RuleKeyValue                        // key_value
	RuleVersion                         // version
)

// Option configures a call to [Parse].
type Option func(*config)

type config struct {
	strict bool
}

// WithStrictSections rejects generic section headers whose name is not a
// known Cargo manifest table.
func WithStrictSections(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// knownSections are the generic table names accepted in strict mode.
var knownSections = map[string]struct{}{
	"lib":                {},
	"bin":                {},
	"example":            {},
	"test":               {},
	"bench":              {},
	"build-dependencies": {},
	"dev-dependencies":   {},
	"target":             {},
	"badges":             {},
	"features":           {},
	"lints":              {},
	"patch":              {},
	"replace":            {},
	"profile":            {},
	"workspace":          {},
}

// IsKnownSection reports whether name is accepted by a generic header when
// strict sections are enabled.
func IsKnownSection(name string) bool {
	_, ok := knownSections[name]

	return ok
}

func build[T any]() *participle.Parser[T] {
	return participle.MustBuild[T](
		participle.Lexer(Lexer),
		participle.Elide(TokenWhitespace, TokenNewline, TokenComment),
	)
}

var (
	manifestParser     = build[file]()
	sectionParser      = build[section]()
	packageParser      = build[packageSection]()
	dependenciesParser = build[dependenciesSection]()
	keyValueParser     = build[entry]()
	versionParser      = build[versionLiteral]()
)

// Parse matches text against rule and returns the flattened tree.
//
// The rule must consume all of text. Any failure is returned as a
// [*SyntaxError]; no partial tree is produced.
func Parse(rule Rule, text string, opts ...Option) (*Tree, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &flattener{source: text}

	var err error

	switch rule {
	case RuleManifest:
		err = run(manifestParser, text, f.file)
	case RuleSection:
		err = run(sectionParser, text, f.section)
	case RulePackageSection:
		err = run(packageParser, text, f.packageSection)
	case RuleDependenciesSection:
		err = run(dependenciesParser, text, f.dependenciesSection)
	case RuleKeyValue:
		err = run(keyValueParser, text, func(e *entry) {
			kv := f.keyValue(e)
			f.emit(&kv)
		})
	case RuleVersion:
		err = run(versionParser, text, f.version)
	default:
		return nil, &SyntaxError{
			Message: "unknown rule " + rule.String(),
			Source:  text,
		}
	}

	if err != nil {
		return nil, err
	}

	if cfg.strict {
		if err := checkSections(f.nodes, text); err != nil {
			return nil, err
		}
	}

	return &Tree{Source: text, Nodes: f.nodes, Rule: rule}, nil
}

func run[T any](p *participle.Parser[T], text string, emit func(*T)) error {
	ast, err := p.ParseString("", text)
	if err != nil {
		return newSyntaxError(err, text)
	}

	emit(ast)

	return nil
}

func checkSections(nodes []Node, source string) error {
	for _, n := range nodes {
		h, ok := n.(*SectionHeader)
		if !ok || IsKnownSection(h.Name) {
			continue
		}

		return &SyntaxError{
			Pos:     h.Span.Start,
			Message: "unknown section " + strconv.Quote(h.Name),
			Source:  source,
		}
	}

	return nil
}

// flattener converts a participle parse result into [Node] values.
type flattener struct {
	source string
	nodes  []Node
	last   Position
}

func (f *flattener) emit(n Node) { f.nodes = append(f.nodes, n) }

// at returns the position of byte offset off.
func (f *flattener) at(off int) Position {
	f.last = positionAt(f.source, f.last, off)

	return f.last
}

func (f *flattener) span(start, end int) Span {
	return Span{Start: f.at(start), End: f.at(end)}
}

func (f *flattener) file(ast *file) {
	for _, it := range ast.Items {
		switch {
		case it.Package != nil:
			f.packageSection(it.Package)
		case it.Dependencies != nil:
			f.dependenciesSection(it.Dependencies)
		case it.Section != nil:
			f.section(it.Section)
		case it.Entry != nil:
			kv := f.keyValue(it.Entry)
			f.emit(&kv)
		}
	}
}

func (f *flattener) section(s *section) {
	end := s.Pos.Offset + len(s.Header)
	h := &SectionHeader{
		Span:   f.span(s.Pos.Offset, end),
		Name:   strings.Trim(s.Header, "[]"),
		Double: strings.HasPrefix(s.Header, "[["),
	}
	f.emit(h)

	for _, e := range s.Entries {
		kv := f.keyValue(e)
		f.emit(&kv)
	}
}

func (f *flattener) packageSection(s *packageSection) {
	entries := make([]KeyValue, 0, len(s.Entries)+2)

	nameEnd := s.Name.Value.Pos.Offset + len(s.Name.Value.Token)
	entries = append(entries, KeyValue{
		Span: f.span(s.Name.Pos.Offset, nameEnd),
		Key:  s.Name.Key,
		Raw:  s.Name.Value.Token,
	})

	versionEnd := s.Version.Value.Pos.Offset + len(s.Version.Value.Token)
	entries = append(entries, KeyValue{
		Span: f.span(s.Version.Pos.Offset, versionEnd),
		Key:  s.Version.Key,
		Raw:  s.Version.Value.Token,
	})

	for _, e := range s.Entries {
		entries = append(entries, f.keyValue(e))
	}

	f.emit(&PackageConstruct{
		Span:    Span{Start: position(s.Pos), End: entries[len(entries)-1].Span.End},
		Entries: entries,
	})
}

func (f *flattener) dependenciesSection(s *dependenciesSection) {
	start := position(s.Pos)
	end := f.at(s.Pos.Offset + len(s.Header))
	entries := make([]KeyValue, 0, len(s.Dependencies))

	for _, d := range s.Dependencies {
		var off int

		switch {
		case d.Version != nil:
			off = d.Version.Pos.Offset
		case d.Table != nil:
			off = d.Table.Pos.Offset
		}

		raw := d.Version.token()
		if d.Table != nil {
			raw = f.source[off:closing(f.source, off)]
		}

		kv := KeyValue{
			Span: f.span(d.Pos.Offset, off+len(raw)),
			Key:  string(d.Crate),
			Raw:  raw,
		}
		entries = append(entries, kv)
		end = kv.Span.End
	}

	f.emit(&DependenciesConstruct{
		Span:    Span{Start: start, End: end},
		Entries: entries,
	})
}

func (f *flattener) keyValue(e *entry) KeyValue {
	v := e.Value
	end := v.Pos.Offset

	switch {
	case v.Scalar != nil:
		end += len(*v.Scalar)
	default:
		end = closing(f.source, v.Pos.Offset)
	}

	return KeyValue{
		Span: f.span(e.Pos.Offset, end),
		Key:  string(e.Key),
		Raw:  f.source[v.Pos.Offset:end],
	}
}

func (f *flattener) version(v *versionLiteral) {
	f.emit(&Other{
		Span: f.span(v.Pos.Offset, v.Pos.Offset+len(v.Token)),
		Rule: RuleVersion,
		Text: v.Token,
	})
}

// closing returns the offset just past the bracket that closes the one at
// source[off]. Quoted strings and comments are skipped. If the bracket is
// never closed, closing returns len(source).
func closing(source string, off int) int {
	depth := 0

	for i := off; i < len(source); i++ {
		switch source[i] {
		case '"':
			for i++; i < len(source) && source[i] != '"'; i++ {
				if source[i] == '\\' {
					i++
				}
			}
		case '#':
			for i < len(source) && source[i] != '\n' {
				i++
			}
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return len(source)
}
