// Package main is the entry point for linewatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/dshills/linewatch/internal/app"
	"github.com/dshills/linewatch/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage reports bad arguments; usage has already been printed.
var errUsage = errors.New("invalid arguments")

// options holds the command line.
type options struct {
	configPath          string
	logLevel            string
	providers           []string
	base                string
	normalizer          string
	ignoreTrailingSpace bool
	watch               bool
	showVersion         bool
	showHelp            bool

	command string
	args    []string

	// set records the flags given explicitly.
	set map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}
	if opts.showHelp {
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "linewatch %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if err := execute(ctx, opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("linewatch", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringSliceVarP(&opts.providers, "provider", "p", nil, "Base version provider in lookup order (git, file); repeatable")
	fs.StringVar(&opts.base, "base", "", "File to use as the base version")
	fs.StringVar(&opts.normalizer, "normalizer", "", "Lua script defining normalize(line)")
	fs.BoolVar(&opts.ignoreTrailingSpace, "ignore-trailing-space", false, "Compare lines without trailing white space")
	fs.BoolVarP(&opts.watch, "watch", "w", true, "Reload the view when the file changes")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Show help message")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "linewatch - line change tracker\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  linewatch [flags] status FILE      Print the file with change signs\n")
		fmt.Fprintf(stderr, "  linewatch [flags] old FILE LINE    Print the base text of the change at LINE\n")
		fmt.Fprintf(stderr, "  linewatch [flags] watch FILE       Print a summary after every save\n")
		fmt.Fprintf(stderr, "  linewatch [flags] view FILE        Show the file with its gutter\n")
		fmt.Fprintf(stderr, "\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			opts.showHelp = true
			return opts, nil
		}
		return nil, err
	}
	if opts.showHelp {
		fs.Usage()
		return opts, nil
	}
	if opts.showVersion {
		return opts, nil
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) { opts.set[f.Name] = true })

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return nil, errUsage
	}
	opts.command, opts.args = rest[0], rest[1:]

	want := 1
	switch opts.command {
	case "status", "watch", "view":
	case "old":
		want = 2
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", opts.command)
		fs.Usage()
		return nil, errUsage
	}
	if len(opts.args) != want {
		fmt.Fprintf(stderr, "%s: expected %d argument(s), got %d\n\n", opts.command, want, len(opts.args))
		fs.Usage()
		return nil, errUsage
	}
	return opts, nil
}

// loadConfig applies, in order, the defaults or the config file, the
// environment, and the flags given on the command line.
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(config.EnvPrefix); err != nil {
		return cfg, err
	}

	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.set["provider"] {
		cfg.Versioning.Providers = opts.providers
	}
	if opts.set["normalizer"] {
		cfg.Diff.Normalizer = opts.normalizer
	}
	if opts.set["ignore-trailing-space"] {
		cfg.Diff.IgnoreTrailingSpace = opts.ignoreTrailingSpace
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func execute(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := app.Open(ctx, opts.args[0], app.Options{
		Config:   cfg,
		Logger:   logger,
		BaseFile: opts.base,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	switch opts.command {
	case "status":
		return s.Status(stdout)

	case "old":
		line, err := strconv.Atoi(opts.args[1])
		if err != nil {
			return fmt.Errorf("line %q: %w", opts.args[1], err)
		}
		return s.Old(stdout, line)

	case "watch":
		return s.Watch(ctx, stdout)

	case "view":
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		return s.View(ctx, screen, opts.watch)
	}
	return nil
}
