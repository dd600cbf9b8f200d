package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/maple"
)

// config is the driver configuration read from a YAML file.
type config struct {
	Eval     maple.EvalOptions     `yaml:"eval"`
	Validate maple.ValidateOptions `yaml:"validate"`
	LogLevel string                `yaml:"log_level"`
	REPL     replConfig            `yaml:"repl"`
}

// replConfig controls the interactive shell.
type replConfig struct {
	Prompt      string `yaml:"prompt"`
	Continue    string `yaml:"continue"`
	History     string `yaml:"history"`
	HaltOnError bool   `yaml:"halt_on_error"`
}

// defaultConfig returns the configuration used when no file is given.
func defaultConfig() *config {
	return &config{
		LogLevel: "warn",
		REPL: replConfig{
			Prompt:   "MAPLe > ",
			Continue: "  ... ",
			History:  ".maple_history",
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrapf(err, "config %s: log_level", path)
	}

	return cfg, nil
}

// newLogger creates a console logger on stderr at the given level.
func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "log level")
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
