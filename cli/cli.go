package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/manifest/cli/cmd"
	"github.com/ardnew/manifest/log"
	"github.com/ardnew/manifest/manifest"
	"github.com/ardnew/manifest/pkg"
)

// CLI is the top-level command-line interface for manifest.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Strict  bool             `help:"Reject unknown section names." negatable:""`
	Version kong.VersionFlag `help:"Print version and exit."       short:"V"`

	Parse   cmd.Parse   `aliases:"p" cmd:"" help:"Parse a manifest and print its sections."`
	Get     cmd.Get     `            cmd:"" help:"Print one key of a section."`
	Section cmd.Section `            cmd:"" help:"Print every key of a section."`
	Query   cmd.Query   `            cmd:"" help:"Evaluate an expression against a manifest."`
	Repl    cmd.Repl    `            cmd:"" help:"Start an interactive query session."`
	Init    cmd.Init    `            cmd:"" help:"Initialize configuration file."`
	Authors cmd.Authors `aliases:"a" cmd:"" help:"Print author information."`
}

// Run executes the manifest CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that configuration loading
	// already logs at the requested level.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	ctx = cmd.WithOptions(ctx,
		manifest.WithStrictSections(cli.Strict),
		manifest.WithLogger(log.Default()),
	)

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
