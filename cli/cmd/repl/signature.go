package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// signature is the parameter list of a callable shown while the cursor is
// inside its argument list.
type signature struct {
	params   []string
	variadic bool // last parameter repeats
}

// signatures covers the query functions most useful on manifest values.
// Names without an entry get no hint.
var signatures = map[string]signature{
	"semver":      {params: []string{"a", "b"}},
	"len":         {params: []string{"v"}},
	"keys":        {params: []string{"map"}},
	"values":      {params: []string{"map"}},
	"all":         {params: []string{"array", "predicate"}},
	"any":         {params: []string{"array", "predicate"}},
	"none":        {params: []string{"array", "predicate"}},
	"filter":      {params: []string{"array", "predicate"}},
	"map":         {params: []string{"array", "mapper"}},
	"count":       {params: []string{"array", "predicate"}},
	"sort":        {params: []string{"array", "order"}},
	"join":        {params: []string{"array", "separator"}},
	"split":       {params: []string{"string", "separator"}},
	"replace":     {params: []string{"string", "old", "new"}},
	"hasPrefix":   {params: []string{"string", "prefix"}},
	"hasSuffix":   {params: []string{"string", "suffix"}},
	"trim":        {params: []string{"string", "chars"}},
	"upper":       {params: []string{"string"}},
	"lower":       {params: []string{"string"}},
	"int":         {params: []string{"v"}},
	"float":       {params: []string{"v"}},
	"string":      {params: []string{"v"}},
	"type":        {params: []string{"v"}},
	"toJSON":      {params: []string{"v"}},
	"fromJSON":    {params: []string{"string"}},
	"max":         {params: []string{"v"}, variadic: true},
	"min":         {params: []string{"v"}, variadic: true},
	"concat":      {params: []string{"array"}, variadic: true},
	"indexOf":     {params: []string{"string", "substring"}},
	"lastIndexOf": {params: []string{"string", "substring"}},
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the innermost call whose argument list contains the
// cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based
	inCall   bool
}

// detectFunctionCall finds the unclosed '(' nearest before cursor and returns
// the identifier in front of it along with the index of the argument being
// typed. String literals are skipped when counting parentheses and commas.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	var (
		opens []int // offsets of unclosed '('
		args  []int // comma count per open paren
		quote byte
	)

	for i := 0; i < cursor; i++ {
		c := input[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{':
			opens = append(opens, i)
			args = append(args, 0)
		case ')', ']', '}':
			if n := len(opens); n > 0 {
				opens, args = opens[:n-1], args[:n-1]
			}
		case ',':
			if n := len(args); n > 0 {
				args[n-1]++
			}
		}
	}

	n := len(opens)
	if n == 0 || input[opens[n-1]] != '(' {
		return functionCall{}
	}

	open := opens[n-1]
	start := open

	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	return functionCall{name: name, argIndex: args[n-1], inCall: true}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// renderSignatureHint renders name(params...) with the parameter at argIndex
// highlighted. It returns "" if name has no known signature.
func renderSignatureHint(name string, argIndex int) string {
	sig, ok := signatures[name]
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	last := len(sig.params) - 1

	for i, param := range sig.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		current := i == argIndex || (sig.variadic && i == last && argIndex > last)
		if sig.variadic && i == last {
			param = "..." + param
		}

		if current {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
