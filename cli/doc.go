// Package cli contains the command line interface for manifest.
//
// # Usage
//
//	manifest parse Cargo.toml
//	manifest get Cargo.toml package version
//	manifest query Cargo.toml 'semver(package.version, "1.0.0")'
//	manifest repl Cargo.toml
//
// # Configuration
//
// Flags may also be set in a configuration file written in manifest
// syntax, located under the user configuration directory. The init command
// writes one holding the current values:
//
//	[log]
//	level = "info"
//	pretty = true
//
//	[manifest]
//	strict = false
//
// A JSON file of the same name with a ".json" suffix is also read.
// Command-line flags take precedence over both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir, which defaults to a directory in
// the user cache directory.
package cli
