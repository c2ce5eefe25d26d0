package grammar

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// The types in this file are the rule set. Each struct tag is a participle
// production; Pos fields receive the position of the first matched token.

// file : item+ EOF.
type file struct {
	Pos   lexer.Position
	Items []*item `@@+`
}

// item : packageSection | dependenciesSection | section | entry.
//
// A bare entry is only reachable before the first header, since every
// section production consumes all entries that follow it.
type item struct {
	Package      *packageSection      `  @@`
	Dependencies *dependenciesSection `| @@`
	Section      *section             `| @@`
	Entry        *entry               `| @@`
}

// section : Header entry*.
type section struct {
	Pos     lexer.Position
	Header  string   `@Header`
	Entries []*entry `@@*`
}

// packageSection : "[package]" nameEntry versionEntry entry*.
type packageSection struct {
	Pos     lexer.Position
	Header  string        `@PackageHeader`
	Name    *nameEntry    `@@`
	Version *versionEntry `@@`
	Entries []*entry      `@@*`
}

// nameEntry : "name" "=" text.
type nameEntry struct {
	Pos   lexer.Position
	Key   string `@"name" "="`
	Value *text  `@@`
}

// versionEntry : "version" "=" versionLiteral.
type versionEntry struct {
	Pos   lexer.Position
	Key   string          `@"version" "="`
	Value *versionLiteral `@@`
}

// dependenciesSection : "[dependencies]" dependency*.
type dependenciesSection struct {
	Pos          lexer.Position
	Header       string        `@DependenciesHeader`
	Dependencies []*dependency `@@*`
}

// dependency : keyName "=" (version | table).
type dependency struct {
	Pos     lexer.Position
	Crate   keyName         `@(Ident | Number) "="`
	Version *versionLiteral `(  @@`
	Table   *table          ` | @@ )`
}

// entry : keyName "=" value.
type entry struct {
	Pos   lexer.Position
	Key   keyName `@(Ident | Number) "="`
	Value *value   `@@`
}

// value : scalar | table | array.
type value struct {
	Pos    lexer.Position
	Scalar *string `  @(Version | String | Number | Ident)`
	Table  *table  `| @@`
	Array  *array  `| @@`
}

// table : "{" (field ("," field)* ","?)? "}".
type table struct {
	Pos    lexer.Position
	Fields []*field `"{" ( @@ ( "," @@ )* ","? )? "}"`
}

// field : (Ident | Number | String) "=" value.
type field struct {
	Key   string `@(Ident | Number | String) "="`
	Value *value `@@`
}

// array : "[" (value ("," value)* ","?)? "]".
type array struct {
	Pos    lexer.Position
	Values []*value `"[" ( @@ ( "," @@ )* ","? )? "]"`
}

// text : String | Version.
type text struct {
	Pos   lexer.Position
	Token string `@(String | Version)`
}

// versionLiteral : Version.
type versionLiteral struct {
	Pos   lexer.Position
	Token string `@Version`
}

func (v *versionLiteral) token() string {
	if v == nil {
		return ""
	}

	return v.Token
}

var nameRegexp = regexp.MustCompile(`^` + namePattern + `$`)

// keyName is a key or crate name. A name may begin with a digit, so it is
// lexed as either Ident or Number; Capture rejects numbers such as "1.5"
// that are not names.
type keyName string

func (n *keyName) Capture(values []string) error {
	if len(values) != 1 || !nameRegexp.MatchString(values[0]) {
		return errors.New("invalid name " + strconv.Quote(strings.Join(values, "")))
	}

	*n = keyName(values[0])

	return nil
}
