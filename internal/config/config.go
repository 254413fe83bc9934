// Package config loads enumcheck settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

const (
	// FileName is looked up in the analyzed module root.
	FileName = ".enumcheck.toml"
	// EnvVar names an explicit config file, used when -config is not given.
	EnvVar = "ENUMCHECK_CONFIG"
)

// Config holds every setting that can come from a config file.
type Config struct {
	Filter            string   `toml:"filter"`
	IncludeUnexported bool     `toml:"include_unexported"`
	IncludeTests      bool     `toml:"include_tests"`
	Ignore            []string `toml:"ignore"`
	Format            string   `toml:"format"`        // console, log or table
	ShowSequence      bool     `toml:"show_sequence"` // print sequence findings
	Sequence          string   `toml:"sequence"`      // descending or ascending
	Parallel          int      `toml:"parallel"`
	LogLevel          string   `toml:"log_level"`
	LogFile           string   `toml:"log_file"`
	Strict            bool     `toml:"strict"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Format:   "console",
		Sequence: "descending",
		Parallel: 1,
		LogLevel: "warn",
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	tree, err := toml.LoadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}

	var file Config
	if err := tree.Unmarshal(&file); err != nil {
		return cfg, fmt.Errorf("decoding config %s: %w", path, err)
	}
	merge(&cfg, file, tree.Has)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func merge(dst *Config, src Config, has func(string) bool) {
	if has("filter") {
		dst.Filter = src.Filter
	}
	if has("include_unexported") {
		dst.IncludeUnexported = src.IncludeUnexported
	}
	if has("include_tests") {
		dst.IncludeTests = src.IncludeTests
	}
	if has("ignore") {
		dst.Ignore = src.Ignore
	}
	if has("format") {
		dst.Format = src.Format
	}
	if has("show_sequence") {
		dst.ShowSequence = src.ShowSequence
	}
	if has("sequence") {
		dst.Sequence = src.Sequence
	}
	if has("parallel") {
		dst.Parallel = src.Parallel
	}
	if has("log_level") {
		dst.LogLevel = src.LogLevel
	}
	if has("log_file") {
		dst.LogFile = src.LogFile
	}
	if has("strict") {
		dst.Strict = src.Strict
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Format {
	case "console", "log", "table":
	default:
		return fmt.Errorf("unknown format: %s (valid: console, log, table)", c.Format)
	}
	if _, err := analyzer.ParseStepRule(c.Sequence); err != nil {
		return err
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative, got %d", c.Parallel)
	}
	return nil
}

// StepRule returns the configured sequence rule.
func (c Config) StepRule() analyzer.StepRule {
	rule, _ := analyzer.ParseStepRule(c.Sequence)
	return rule
}

// Find returns the config file to use: explicit if set, else $ENUMCHECK_CONFIG,
// else FileName in dir when it exists. An empty result means no file.
func Find(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}
