package grammar

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// SyntaxError reports input that does not match the requested rule.
type SyntaxError struct {
	Message string
	Source  string // the complete input
	Pos     Position
}

func newSyntaxError(err error, source string) *SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{
			Pos:     position(perr.Position()),
			Message: perr.Message(),
			Source:  source,
		}
	}

	return &SyntaxError{Message: err.Error(), Source: source}
}

// Error implements the error interface.
//
// The message is followed by the offending source line and a caret under
// the reported column, when the position is known.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("syntax error")

	if e.Pos.Line > 0 {
		buf.WriteString(" at line ")
		buf.WriteString(strconv.Itoa(e.Pos.Line))
		buf.WriteString(", column ")
		buf.WriteString(strconv.Itoa(e.Pos.Column))
	}

	buf.WriteString(": ")
	buf.WriteString(e.Message)

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteRune('\n')
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet returns the source line containing the error with a caret marker
// beneath the error column, or the empty string if the line is unknown.
func (e *SyntaxError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[e.Pos.Line-1], "\r")
	num := strconv.Itoa(e.Pos.Line)

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	src.WriteString(strings.Repeat(" ", len(num)+5))

	col := 1
	for _, r := range line {
		if col >= e.Pos.Column {
			break
		}

		if r == '\t' {
			src.WriteRune('\t')
		} else {
			src.WriteRune(' ')
		}

		col++
	}

	src.WriteRune('^')

	return src.String()
}
