package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Token type names emitted by [Lexer].
const (
	TokenWhitespace         = "Whitespace"
	TokenNewline            = "Newline"
	TokenComment            = "Comment"
	TokenPackageHeader      = "PackageHeader"
	TokenDependenciesHeader = "DependenciesHeader"
	TokenHeader             = "Header"
	TokenVersion            = "Version"
	TokenString             = "String"
	TokenNumber             = "Number"
	TokenIdent              = "Ident"
	TokenPunct              = "Punct"
	TokenOpen               = "Open"
	TokenClose              = "Close"
)

// versionPattern matches a quoted SemVer 2.0.0 literal.
//
// Numeric parts and numeric prerelease identifiers reject leading zeros.
// Build metadata identifiers accept them.
const versionPattern = `"` +
	`(?:0|[1-9][0-9]*)\.(?:0|[1-9][0-9]*)\.(?:0|[1-9][0-9]*)` +
	`(?:-` + prereleaseIdent + `(?:\.` + prereleaseIdent + `)*)?` +
	`(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?` +
	`"`

const prereleaseIdent = `(?:0|[1-9][0-9]*|[0-9]*[A-Za-z-][0-9A-Za-z-]*)`

const (
	namePattern   = `[A-Za-z0-9_][A-Za-z0-9_-]*`
	identPattern  = `[A-Za-z_][A-Za-z0-9_-]*`
	stringPattern = `"(?:\\.|[^"\\\n])*"`
	numberPattern = `[+-]?[0-9][0-9A-Za-z_.:+-]*`
)

// Lexer tokenizes manifest text.
//
// The Root state recognizes headers and top-level values. An equals sign
// pushes the Value state, which lasts for the rest of the line: there an
// opening bracket always starts an array, never a header. An opening brace
// or bracket pushes the Nested state, where brackets are plain punctuation
// and line breaks are insignificant, until the matching close pops it.
//
// A rule name shared between states must use the same pattern.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: TokenWhitespace, Pattern: `[ \t]+`},
		{Name: TokenNewline, Pattern: `[\r\n]+`},
		{Name: TokenComment, Pattern: `#[^\n]*`},
		{Name: TokenPackageHeader, Pattern: `\[package\]`},
		{Name: TokenDependenciesHeader, Pattern: `\[dependencies\]`},
		{Name: TokenHeader, Pattern: `\[\[` + namePattern + `\]\]|\[` + namePattern + `\]`},
		lexer.Include("Scalar"),
		{Name: TokenPunct, Pattern: `[=,]`, Action: lexer.Push("Value")},
		{Name: TokenOpen, Pattern: `[{\[]`, Action: lexer.Push("Nested")},
	},
	"Value": {
		{Name: TokenWhitespace, Pattern: `[ \t]+`},
		{Name: TokenOpen, Pattern: `[{\[]`, Action: lexer.Push("Nested")},
		lexer.Return(),
	},
	"Nested": {
		{Name: TokenWhitespace, Pattern: `[ \t]+`},
		{Name: TokenNewline, Pattern: `[\r\n]+`},
		{Name: TokenComment, Pattern: `#[^\n]*`},
		lexer.Include("Scalar"),
		{Name: TokenPunct, Pattern: `[=,]`},
		{Name: TokenOpen, Pattern: `[{\[]`, Action: lexer.Push("Nested")},
		{Name: TokenClose, Pattern: `[}\]]`, Action: lexer.Pop()},
	},
	"Scalar": {
		{Name: TokenVersion, Pattern: versionPattern},
		{Name: TokenString, Pattern: stringPattern},
		{Name: TokenNumber, Pattern: numberPattern},
		{Name: TokenIdent, Pattern: identPattern},
	},
})
