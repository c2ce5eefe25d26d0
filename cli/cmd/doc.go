// Package cmd implements the manifest subcommands.
//
// Each command is a kong command struct with a Run method. Commands read the
// parsed [kong.Context] and parse options from the [context.Context] built
// by the cli package, see [WithContext] and [WithOptions].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
