// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package config loads the shell's optional YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable which can point to a configuration
// file, when none is given on the command line.
const EnvVar = "SMALLSH_CONFIG"

// Config holds the shell's settings.
type Config struct {
	// Prompt is printed before reading each interactive line.
	Prompt string `yaml:"prompt"`

	// ForegroundOnly is the initial foreground-only mode.
	ForegroundOnly bool `yaml:"foreground_only"`

	// ReapAll makes the shell collect every finished background program
	// before each prompt, instead of at most one.
	ReapAll bool `yaml:"reap_all"`

	// KillTimeout is how long an interrupted foreground program has to
	// stop when the shell is itself shutting down, before it is killed.
	KillTimeout time.Duration `yaml:"kill_timeout"`

	Log Log `yaml:"log"`

	// Path is the file the settings were read from,
	// or empty if the defaults were used.
	Path string `yaml:"-"`
}

// Log configures the debug log, which is disabled when File is empty.
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the settings used when there is no configuration file.
func Default() Config {
	return Config{
		Prompt:      ": ",
		KillTimeout: 2 * time.Second,
		Log:         Log{Level: "info"},
	}
}

// Load reads the configuration file at path. If path is empty, the file named
// by [EnvVar] is used, and otherwise smallsh/config.yaml under the user's
// configuration directory.
//
// A file which was named explicitly must exist; the default one may not, in
// which case the defaults are returned. Unknown keys are an error.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		explicit = false
		dir, err := os.UserConfigDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(dir, "smallsh", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML settings on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = Default().Prompt
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = Default().Log.Level
	}
	return cfg, nil
}
