// Package pkg holds build metadata for the manifest command.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, without a "v" prefix.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories.
	Name = "manifest"
	// Description is the one-line summary shown in help output.
	Description = "Parse and query package manifest files"
)

// AuthorInfo identifies one author.
type AuthorInfo struct {
	Name  string
	Email string
	URL   string
}

// Author lists the authors of the project.
var Author = []AuthorInfo{
	{Name: "ardnew", Email: "andrew@ardnew.com", URL: "https://github.com/ardnew"},
}
