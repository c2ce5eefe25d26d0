package grammar

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a decomposed semantic version literal.
type Version struct {
	Prerelease []string // dot-separated identifiers after "-"
	Build      []string // dot-separated identifiers after "+"
	Major      uint64
	Minor      uint64
	Patch      uint64
}

// ParseVersion matches text against [RuleVersion] and decomposes it.
//
// The surrounding double quotes required by the rule may be omitted.
func ParseVersion(text string) (Version, error) {
	lit, quoted := text, strings.HasPrefix(text, `"`)
	if !quoted {
		lit = `"` + text + `"`
	}

	tree, err := Parse(RuleVersion, lit)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok && !quoted {
			se.Source = text
			se.Pos.Offset = max(se.Pos.Offset-1, 0)
			se.Pos.Column = max(se.Pos.Column-1, 1)
		}

		return Version{}, err
	}

	node := tree.Nodes[0].(*Other)
	s := node.Text[1 : len(node.Text)-1]

	var v Version

	s, build, hasBuild := strings.Cut(s, "+")
	if hasBuild {
		v.Build = strings.Split(build, ".")
	}

	s, pre, hasPre := strings.Cut(s, "-")
	if hasPre {
		v.Prerelease = strings.Split(pre, ".")
	}

	core := strings.SplitN(s, ".", 3)
	for i, dst := range []*uint64{&v.Major, &v.Minor, &v.Patch} {
		if *dst, err = strconv.ParseUint(core[i], 10, 64); err != nil {
			return Version{}, &SyntaxError{
				Pos:     node.Span.Start,
				Message: "version component " + strconv.Quote(core[i]) + " out of range",
				Source:  text,
			}
		}
	}

	return v, nil
}

// String returns v in canonical "MAJOR.MINOR.PATCH[-PRE][+BUILD]" form,
// without quotes.
func (v Version) String() string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteRune('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteRune('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))

	if len(v.Prerelease) > 0 {
		b.WriteRune('-')
		b.WriteString(strings.Join(v.Prerelease, "."))
	}

	if len(v.Build) > 0 {
		b.WriteRune('+')
		b.WriteString(strings.Join(v.Build, "."))
	}

	return b.String()
}

// Compare returns -1, 0 or +1 as v has lower, equal or higher precedence
// than w. Build metadata does not affect precedence.
func (v Version) Compare(w Version) int {
	return semver.Compare("v"+v.String(), "v"+w.String())
}
