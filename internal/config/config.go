// Package config loads runtime configuration for next-codemod.
//
// Configuration merges three layers, lowest precedence first: built-in
// defaults, an optional YAML file in the working directory, and
// NEXT_CODEMOD__-prefixed environment variables. The tool itself never
// writes configuration; these are read-only runtime knobs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = ".next-codemod.yaml"

// envPrefix and envDelim define the environment override scheme, e.g.
// NEXT_CODEMOD__TRANSFORM_DIR maps to the transform_dir key.
const (
	envPrefix = "NEXT_CODEMOD__"
	envDelim  = "__"
)

// Config represents next-codemod configuration options.
type Config struct {
	// JscodeshiftPath overrides engine binary resolution. Empty means
	// "node_modules/.bin/jscodeshift if present, else PATH".
	JscodeshiftPath string `koanf:"jscodeshift_path"`

	// TransformDir is the directory holding transform scripts. Empty means
	// the transforms directory next to the executable.
	TransformDir string `koanf:"transform_dir"`

	// LogLevel sets diagnostic logging verbosity (trace, debug, info, warn, error).
	LogLevel string `koanf:"log_level"`

	// PackageManager forces a package manager (npm, yarn, pnpm, bun) instead
	// of lockfile detection.
	PackageManager string `koanf:"package_manager"`
}

// Default returns a Config with built-in default values.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
	}
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist, then applies environment overrides. A malformed file is an
// error; a missing one is not.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, envDelim, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode configuration: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	switch c.PackageManager {
	case "", "npm", "yarn", "pnpm", "bun":
	default:
		return fmt.Errorf("config: unknown package_manager %q (want npm, yarn, pnpm or bun)", c.PackageManager)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// ResolveTransformDir returns the directory holding transform scripts,
// defaulting to the transforms directory alongside the running executable.
func (c *Config) ResolveTransformDir() (string, error) {
	if c.TransformDir != "" {
		return c.TransformDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: cannot locate executable to find transforms: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "transforms"), nil
}
