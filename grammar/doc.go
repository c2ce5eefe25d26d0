// Package grammar defines the syntax of manifest files.
//
// The rule set is declared as participle struct-tag productions over a
// stateful regular-expression lexer ([Lexer]). [Parse] matches an input
// against one [Rule] and, on success, returns a [Tree]: the flattened
// sequence of typed [Node] values in document order.
//
// # Grammar
//
// Informal EBNF:
//
//	Manifest     → Item+ EOF
//	Item         → Package | Dependencies | Section | Entry
//	Package      → "[package]" "name" "=" String "version" "=" Version Entry*
//	Dependencies → "[dependencies]" (Ident "=" (Version | Table))*
//	Section      → ("[" Ident "]" | "[[" Ident "]]") Entry*
//	Entry        → Ident "=" Value
//	Value        → Version | String | Number | Ident | Table | Array
//	Table        → "{" (Field ("," Field)* ","?)? "}"
//	Field        → (Ident | String) "=" Value
//	Array        → "[" (Value ("," Value)* ","?)? "]"
//	Version      → '"' MAJOR "." MINOR "." PATCH ("-" PRE)? ("+" BUILD)? '"'
//
// Comments run from "#" to the end of the line. Comments and whitespace,
// line breaks included, may appear between any two tokens.
//
// Version literals follow SemVer 2.0.0: numeric components and numeric
// prerelease identifiers have no leading zeros, and "-" or "+" must be
// followed by at least one identifier.
//
// # Errors
//
// Every failure is a [*SyntaxError] carrying the position of the offending
// token and the source text, so that callers can render a snippet.
package grammar
