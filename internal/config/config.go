package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"
)

// Provider names accepted in versioning.providers.
const (
	ProviderGit  = "git"
	ProviderFile = "file"
)

// Log levels accepted in logging.level.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the complete linewatch configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Versioning VersioningConfig `toml:"versioning" yaml:"versioning"`
	Diff       DiffConfig       `toml:"diff" yaml:"diff"`
	Watch      WatchConfig      `toml:"watch" yaml:"watch"`
	View       ViewConfig       `toml:"view" yaml:"view"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// VersioningConfig selects where base versions come from.
type VersioningConfig struct {
	// Providers are tried in order; the first with a base version wins.
	Providers []string `toml:"providers" yaml:"providers"`

	// Revision is the git revision used as base.
	Revision string `toml:"revision" yaml:"revision"`

	// BaseDir and BaseSuffix locate base files for the file provider:
	// BaseDir/<name><BaseSuffix>, or next to the file when BaseDir is empty.
	BaseDir    string `toml:"baseDir" yaml:"baseDir"`
	BaseSuffix string `toml:"baseSuffix" yaml:"baseSuffix"`
}

// DiffConfig controls how lines are compared.
type DiffConfig struct {
	// Normalizer is the path of a Lua script defining normalize(line).
	Normalizer string `toml:"normalizer" yaml:"normalizer"`

	// IgnoreTrailingSpace compares lines without trailing white space.
	// It applies before the normalizer.
	IgnoreTrailingSpace bool `toml:"ignoreTrailingSpace" yaml:"ignoreTrailingSpace"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is the quiet period after a file change.
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// ViewConfig configures gutter output.
type ViewConfig struct {
	// Signs holds the glyphs for none, added, modified, deleted, unsaved.
	Signs string `toml:"signs" yaml:"signs"`

	// LineNumbers shows line numbers next to the signs.
	LineNumbers bool `toml:"lineNumbers" yaml:"lineNumbers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "warn"},
		Versioning: VersioningConfig{
			Providers:  []string{ProviderGit, ProviderFile},
			Revision:   "HEAD",
			BaseSuffix: ".orig",
		},
		Watch: WatchConfig{Debounce: Duration(100 * time.Millisecond)},
		View: ViewConfig{
			Signs:       " +~_*",
			LineNumbers: true,
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	add := func(path string, value any, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Message: fmt.Sprintf(format, args...)})
	}

	if !slices.Contains(logLevels, c.Logging.Level) {
		add("logging.level", c.Logging.Level, "must be one of %v", logLevels)
	}

	seen := make(map[string]bool)
	for _, p := range c.Versioning.Providers {
		switch p {
		case ProviderGit, ProviderFile:
		default:
			add("versioning.providers", p, "unknown provider, want %q or %q", ProviderGit, ProviderFile)
		}
		if seen[p] {
			add("versioning.providers", p, "listed twice")
		}
		seen[p] = true
	}
	if seen[ProviderFile] && c.Versioning.BaseDir == "" && c.Versioning.BaseSuffix == "" {
		add("versioning.baseSuffix", c.Versioning.BaseSuffix, "required by the file provider when baseDir is empty")
	}
	if seen[ProviderGit] && c.Versioning.Revision == "" {
		add("versioning.revision", c.Versioning.Revision, "required by the git provider")
	}

	if c.Watch.Debounce < 0 {
		add("watch.debounce", c.Watch.Debounce, "must not be negative")
	}
	if n := utf8.RuneCountInString(c.View.Signs); n != 5 {
		add("view.signs", c.View.Signs, "want 5 signs, got %d", n)
	}

	return errors.Join(errs...)
}

// Duration is a time.Duration written as a string like "250ms" in config
// files.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
