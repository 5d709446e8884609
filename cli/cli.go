package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/bmk/cli/cmd"
	"github.com/ardnew/bmk/log"
	"github.com/ardnew/bmk/pkg"
)

// CLI is the top-level command-line interface for bmk.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	File       string   `default:"${defaultFile}" help:"Build description to read."                            placeholder:"FILE" short:"f"`
	Workdir    string   `                         help:"Change to directory before reading anything."            placeholder:"DIR"  short:"D"`
	IncludeDir []string `                         help:"Search directory for !include, before ${pathVar}."      placeholder:"DIR"  short:"I"`
	Output     string   `default:"native"         help:"Output format."                         enum:"${outputEnum}"                   short:"o"`
	Indent     int      `default:"2"              help:"Indent width of command lines and structured output."`
	Verbose    bool     `                         help:"Log phase transitions and directory changes."                              short:"v"`
	ParseDebug bool     `                         help:"Trace parsing and resolution."`

	Version kong.VersionFlag `help:"Print version and exit."`

	Resolve cmd.Resolve `cmd:"" default:"withargs" help:"Parse and resolve, then print the retained items (default)."`
	Parse   cmd.Parse   `cmd:""                    help:"Parse only, then print every item unresolved."`
	Vars    cmd.Vars    `cmd:""                    help:"Parse and resolve, then print the variable table."`
	Init    cmd.Init    `cmd:""                    help:"Write the current flag values to the configuration file."`
}

// Run executes the bmk CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, for example after printing help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, env{
		exit:      exit,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		configDir: configDir(),
	}, args...)
}

// env holds the process resources a run uses.
type env struct {
	exit           func(code int)
	stdout, stderr io.Writer
	configDir      string
}

func run(ctx context.Context, e env, args ...string) error {
	var cli CLI

	configFilePath := configPath(e.configDir, baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		"defaultFile":        pkg.DefaultFile,
		"pathVar":            pkg.PathVar,
		"outputEnum":         strings.Join(cmd.Outputs(), ","),
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that errors reported while parsing the
	// command line and configuration use the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(e.exit),
		kong.Writers(e.stdout, e.stderr),
		kong.ExplicitGroups(groups(cli.Log.group(), cli.Pprof.group())),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, configFilePath), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)
	cli.raiseLogLevel()

	if cli.Workdir != "" {
		restore, err := chdir(ctx, cli.Workdir)
		if err != nil {
			return err
		}
		defer restore()
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithInput(ctx, cmd.Input{
		File:        cli.File,
		IncludeDirs: cli.IncludeDir,
		Output:      cmd.Output(cli.Output),
		Indent:      cli.Indent,
		Logger:      log.Default(),
		Stdout:      ktx.Stdout,
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// raiseLogLevel lowers the log threshold as requested by --verbose and
// --parse-debug. It never hides messages the log level already shows.
func (c *CLI) raiseLogLevel() {
	level := log.Default().Level()

	switch {
	case c.ParseDebug:
		level = min(level, log.LevelTrace)
	case c.Verbose:
		level = min(level, log.LevelInfo)
	default:
		return
	}

	log.Config(log.WithLevel(level))
}

// groups returns the non-empty groups.
func groups(gs ...kong.Group) []kong.Group {
	out := make([]kong.Group, 0, len(gs))

	for _, g := range gs {
		if g.Key != "" {
			out = append(out, g)
		}
	}

	return out
}
