package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/manifest/cli/cmd"
	"github.com/ardnew/manifest/log"
	"github.com/ardnew/manifest/manifest"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in manifest syntax.
//
// Flags are looked up by [cmd.ConfigKey], so
//
//	[log]
//	level = "debug"
//	pretty = false
//
//	[manifest]
//	strict = true
//
// has the effect of --log-level=debug --no-log-pretty --strict. Keys may
// spell hyphens as underscores. A file that does not parse resolves
// nothing; command-line flags override any value it sets.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		m, err := manifest.ParseReader(ctx, r)
		if err != nil {
			log.DebugContext(ctx, "ignoring configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		return config{manifest: m}, nil
	}
}

// config implements [kong.Resolver] over a parsed configuration manifest.
type config struct {
	manifest *manifest.Manifest
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
// Values are returned as strings for kong to decode with the flag's mapper.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if c.manifest == nil {
		return nil, nil
	}

	section, key := cmd.ConfigKey(flag.Name)

	for _, k := range []string{key, strings.ReplaceAll(key, "-", "_")} {
		if value, err := c.manifest.GetByKey(section, k); err == nil {
			return unescape(value), nil
		}
	}

	return nil, nil
}

// unescape interprets the escape sequences of a quoted value, as written by
// the init command. Values that are not valid Go string contents are
// returned unchanged.
func unescape(value string) string {
	if s, err := strconv.Unquote(`"` + value + `"`); err == nil {
		return s
	}

	return value
}
