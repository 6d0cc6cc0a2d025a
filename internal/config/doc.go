// Package config provides configuration for linewatch.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension (Load)
//  3. LINEWATCH_* environment variables (ApplyEnv)
//
// Command line flags are applied on top by the caller.
//
// # File Format
//
// TOML example:
//
//	[logging]
//	level = "debug"
//
//	[versioning]
//	providers = ["git", "file"]
//	baseSuffix = ".orig"
//
//	[diff]
//	ignoreTrailingSpace = true
//
//	[watch]
//	debounce = "250ms"
//
//	[view]
//	signs = " +~_*"
//
// The same keys are used in YAML. Unknown keys are rejected.
package config
