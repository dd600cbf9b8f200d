package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "maple.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.REPL.Prompt == "" || cfg.Eval.MaxIntBits != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
eval:
  max_int_bits: 128
  parse:
    disable_comments: true
validate:
  disable_index_check: true
repl:
  halt_on_error: true
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Eval.MaxIntBits != 128 || !cfg.Eval.Parse.DisableComments {
		t.Fatalf("eval section not applied: %+v", cfg)
	}
	if !cfg.Validate.DisableIndexCheck || !cfg.REPL.HaltOnError {
		t.Fatalf("validate or repl section not applied: %+v", cfg)
	}
	// Fields missing from the file keep their defaults.
	if cfg.REPL.Prompt != defaultConfig().REPL.Prompt {
		t.Fatalf("prompt %q", cfg.REPL.Prompt)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown_field", "colour: red\n", "decode config"},
		{"bad_level", "log_level: loud\n", "log_level"},
		{"bad_yaml", "eval: [\n", "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("trace"); err != nil {
		t.Fatalf("trace: %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
