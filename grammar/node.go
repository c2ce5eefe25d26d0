package grammar

import (
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position identifies a location in source text.
//
// Offset is a byte offset. Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Span is the half-open source range [Start, End) matched by a node.
type Span struct {
	Start Position
	End   Position
}

// Text returns the source text covered by s.
func (s Span) Text(source string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(source) ||
		s.Start.Offset > s.End.Offset {
		return ""
	}

	return source[s.Start.Offset:s.End.Offset]
}

// Node is one element of a flattened [Tree].
//
// The set of implementations is closed: [SectionHeader], [KeyValue],
// [PackageConstruct], [DependenciesConstruct] and [Other].
type Node interface {
	Range() Span
	node()
}

// SectionHeader is a generic "[name]" or "[[name]]" header.
type SectionHeader struct {
	Span Span
	Name string // brackets stripped
	// Double reports whether the header was spelled "[[name]]".
	Double bool
}

// KeyValue is a "key = value" entry.
//
// Raw holds the value exactly as matched: quotes, braces and brackets
// included.
type KeyValue struct {
	Span Span
	Key  string
	Raw  string
}

// PackageConstruct is a "[package]" header with its mandatory name and
// version entries followed by any additional entries.
//
// Entries is in source order, so Entries[0] is the name entry and
// Entries[1] is the version entry.
type PackageConstruct struct {
	Span    Span
	Entries []KeyValue
}

// Name returns the mandatory name entry.
func (n *PackageConstruct) Name() KeyValue { return n.Entries[0] }

// Version returns the mandatory version entry.
func (n *PackageConstruct) Version() KeyValue { return n.Entries[1] }

// DependenciesConstruct is a "[dependencies]" header with its crate entries.
type DependenciesConstruct struct {
	Span    Span
	Entries []KeyValue
}

// Other is any node not covered by the remaining kinds, such as the single
// node produced by [RuleVersion].
type Other struct {
	Span Span
	Rule Rule
	Text string
}

func (n *SectionHeader) Range() Span         { return n.Span }
func (n *KeyValue) Range() Span              { return n.Span }
func (n *PackageConstruct) Range() Span      { return n.Span }
func (n *DependenciesConstruct) Range() Span { return n.Span }
func (n *Other) Range() Span                 { return n.Span }

func (*SectionHeader) node()         {}
func (*KeyValue) node()              {}
func (*PackageConstruct) node()      {}
func (*DependenciesConstruct) node() {}
func (*Other) node()                 {}

// Tree is the flattened result of a successful [Parse].
//
// Nodes appear in document order. A generic section contributes its
// [SectionHeader] followed by one [KeyValue] per entry; constructs carry
// their entries as children instead.
type Tree struct {
	Source string
	Nodes  []Node
	Rule   Rule
}

// position converts a lexer position to a [Position].
func position(p lexer.Position) Position {
	return Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// positionAt returns the [Position] of byte offset off in source, given a
// known earlier position from. Scanning starts at from to keep conversions
// of nearby offsets cheap.
func positionAt(source string, from Position, off int) Position {
	p := from
	if off < p.Offset || p.Line == 0 {
		p = Position{Line: 1, Column: 1}
	}

	for p.Offset < off && p.Offset < len(source) {
		r, size := utf8.DecodeRuneInString(source[p.Offset:])
		p.Offset += size

		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}

	return p
}
