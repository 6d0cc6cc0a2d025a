package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix of the environment variables read by ApplyEnv.
const EnvPrefix = "LINEWATCH_"

// envSetters maps variable names without prefix to the setting they
// override.
var envSetters = map[string]func(*Config, string) error{
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = strings.ToLower(v)
		return nil
	},
	"PROVIDERS": func(c *Config, v string) error {
		c.Versioning.Providers = splitList(v)
		return nil
	},
	"REVISION": func(c *Config, v string) error {
		c.Versioning.Revision = v
		return nil
	},
	"BASE_DIR": func(c *Config, v string) error {
		c.Versioning.BaseDir = v
		return nil
	},
	"BASE_SUFFIX": func(c *Config, v string) error {
		c.Versioning.BaseSuffix = v
		return nil
	},
	"NORMALIZER": func(c *Config, v string) error {
		c.Diff.Normalizer = v
		return nil
	},
	"IGNORE_TRAILING_SPACE": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.Diff.IgnoreTrailingSpace = b
		return err
	},
	"DEBOUNCE": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.Watch.Debounce = Duration(d)
		return err
	},
	"SIGNS": func(c *Config, v string) error {
		c.View.Signs = v
		return nil
	},
}

// ApplyEnv overrides settings from prefixed environment variables, e.g.
// LINEWATCH_LOG_LEVEL. Set but empty variables are applied as well.
func (c *Config) ApplyEnv(prefix string) error {
	return c.applyEnv(prefix, os.LookupEnv)
}

func (c *Config) applyEnv(prefix string, lookup func(string) (string, bool)) error {
	var errs []error
	for name, set := range envSetters {
		v, ok := lookup(prefix + name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", prefix, name, err))
		}
	}
	return errors.Join(errs...)
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
