package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/manifest/manifest"
)

// commands are the names accepted after the ':' command prefix.
var commands = []string{"help", "list", "show", "edit", "clear", "quit"}

// envName is the expr-lang variable holding the whole environment. Sections
// whose names are not identifiers can only be reached through it.
const envName = "$env"

// keywords are expr-lang reserved words that cannot be used as variables.
var keywords = []string{
	"and", "or", "not", "in", "matches", "contains", "startsWith",
	"endsWith", "let", "if", "else", "nil", "true", "false",
}

// isWordBoundary reports whether r ends a completion word. Hyphens are
// boundaries because expr-lang reads them as subtraction.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '"', '\'':
		return true
	}

	return false
}

// isIdentifier reports whether name can be written as a bare expr-lang
// variable or member name.
func isIdentifier(name string) bool {
	if name == "" || slices.Contains(keywords, name) {
		return false
	}

	for i := range len(name) {
		c := name[i]
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			continue
		}

		if i > 0 && '0' <= c && c <= '9' {
			continue
		}

		return false
	}

	return true
}

// wordBounds returns the word around cursor and its byte boundaries within
// input. The word is empty when cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain in front of the word starting at
// wordStart. For "x + package.ver" with the word "ver" it is "package".
// It returns "" for a word that is not preceded by a dot.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimSuffix(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// candidates returns the completions valid after parent.
//
// At the top level these are the sections usable as variables, $env, and the
// query functions. After $env every section is offered; after a section its
// keys are offered.
func candidates(m *manifest.Manifest, parent string) []string {
	switch parent {
	case "":
		names := make([]string, 0, m.Len()+len(builtin.Names)+2)

		for _, name := range m.SortedSections() {
			if isIdentifier(name) {
				names = append(names, name)
			}
		}

		names = append(names, envName, "semver")

		return append(names, builtin.Names...)

	case envName:
		return m.SortedSections()
	}

	section, err := m.GetBySection(strings.TrimPrefix(parent, envName+"."))
	if err != nil {
		return nil
	}

	keys := make([]string, 0, section.Len())

	for _, key := range section.Keys() {
		if isIdentifier(key) {
			keys = append(keys, key)
		}
	}

	return keys
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best first, together with the word boundaries.
//
// An empty word yields no matches at the top level, so the input hint stays
// visible, and every candidate after a dot.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.cursor())

	var list []string

	if strings.HasPrefix(input, commandPrefix) {
		if wordStart != len(commandPrefix) || word == "" {
			return nil, wordStart, wordEnd
		}

		list = commands
	} else {
		parent := parentPath(input, wordStart)
		list = candidates(m.manifest, parent)

		if word == "" {
			if parent == "" {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(list))
			for i, c := range list {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(list) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, list), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, cut off with an
// ellipsis at width. The candidate at selected is highlighted.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters in bold.
// Functions are suffixed with "()".
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	next := 0

	for i, r := range match.Str {
		if next < len(match.MatchedIndexes) && match.MatchedIndexes[next] == i {
			b.WriteString(highlight.Render(string(r)))

			next++

			continue
		}

		b.WriteString(base.Render(string(r)))
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is a callable query function.
func isFunction(name string) bool {
	if name == "semver" {
		return true
	}

	_, ok := builtin.Index[name]

	return ok
}
