package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"drac/pkg/compiler"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Output.Format != "tree" || !cfg.Output.Color {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if got := cfg.Options(); !reflect.DeepEqual(got, compiler.Options{}) {
		t.Errorf("Options() = %+v, want zero options", got)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelWarn {
		t.Errorf("LogLevel() = %v, want WARN", level)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "toml",
			file: "dracc.toml",
			content: `
[log]
level = "debug"

[lexer]
signed_literals = "greedy"

[checker]
strict_calls = true
`,
			check: func(t *testing.T, cfg *Config) {
				opts := cfg.Options()
				if opts.Lex.SignedLiterals != compiler.SignedGreedy || !opts.Check.StrictCalls {
					t.Errorf("Options() = %+v", opts)
				}
				if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
					t.Errorf("LogLevel() = %v", level)
				}
				// untouched sections keep defaults
				if cfg.Output.Format != "tree" || !cfg.Output.Color {
					t.Errorf("Output = %+v", cfg.Output)
				}
			},
		},
		{
			name: "yaml",
			file: "dracc.yaml",
			content: `
output:
  format: yaml
  color: false
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Output.Format != "yaml" || cfg.Output.Color {
					t.Errorf("Output = %+v", cfg.Output)
				}
				if cfg.Lexer.SignedLiterals != "contextual" {
					t.Errorf("SignedLiterals = %q", cfg.Lexer.SignedLiterals)
				}
			},
		},
		{
			name:    "empty yaml",
			file:    "empty.yml",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg, Default()) {
					t.Errorf("cfg = %+v, want defaults", cfg)
				}
			},
		},
		{
			name:    "invalid toml",
			file:    "bad.toml",
			content: "[log\nlevel =",
			wantErr: true,
		},
		{
			name:    "unknown yaml key",
			file:    "bad.yaml",
			content: "output:\n  colour: true\n",
			wantErr: true,
		},
		{
			name:    "invalid level",
			file:    "level.toml",
			content: "[log]\nlevel = \"loud\"\n",
			wantErr: true,
		},
		{
			name:    "invalid mode",
			file:    "mode.toml",
			content: "[lexer]\nsigned_literals = \"eager\"\n",
			wantErr: true,
		},
		{
			name:    "invalid format",
			file:    "format.yaml",
			content: "output:\n  format: json\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	cfg, err := Load("")
	if err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString("checker:\n  strict_calls: true\n", FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if !cfg.Checker.StrictCalls {
		t.Error("StrictCalls not set")
	}
	if _, err := LoadFromString("x", Format(9)); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[checker]\nstrict_calls = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvConfig, path)
	cfg, used, err := Discover("")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if used != path || !cfg.Checker.StrictCalls {
		t.Errorf("Discover() = %+v, %q", cfg, used)
	}

	// an explicit path wins over the environment
	if _, used, _ := Discover(filepath.Join(dir, "missing.toml")); used == path {
		t.Error("explicit path ignored")
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatTOML, "toml"},
		{FormatYAML, "yaml"},
		{Format(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %s, want %s", int(tt.format), got, tt.expected)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a":      FormatTOML,
	}
	for path, want := range tests {
		if got := detectFormat(path); got != want {
			t.Errorf("detectFormat(%q) = %s, want %s", path, got, want)
		}
	}
}
