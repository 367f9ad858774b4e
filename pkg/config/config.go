// Package config loads dracc settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"drac/pkg/compiler"
)

// EnvConfig names the environment variable consulted when no --config flag
// is given.
const EnvConfig = "DRACC_CONFIG"

// Format is the encoding of a configuration file.
type Format int

const (
	// FormatTOML is the default.
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete dracc configuration
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Checker CheckerConfig `toml:"checker" yaml:"checker"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// LexerConfig holds tokenizer settings
type LexerConfig struct {
	// SignedLiterals is "contextual" or "greedy".
	SignedLiterals string `toml:"signed_literals" yaml:"signed_literals"`
}

// CheckerConfig holds semantic checker settings
type CheckerConfig struct {
	StrictCalls bool `toml:"strict_calls" yaml:"strict_calls"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	// Format is "tree" or "yaml".
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "warn"},
		Lexer:   LexerConfig{SignedLiterals: compiler.SignedContextual.String()},
		Checker: CheckerConfig{StrictCalls: false},
		Output:  OutputConfig{Format: "tree", Color: true},
	}
}

// Load reads the file at path over the defaults. An empty path yields the
// defaults. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.decode(data, detectFormat(path)); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString decodes content in the given format over the defaults.
func LoadFromString(content string, format Format) (*Config, error) {
	cfg := Default()
	if err := cfg.decode([]byte(content), format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover resolves the configuration path: the explicit path if given,
// then $DRACC_CONFIG, then the default locations. It falls back to Default
// when nothing is found.
func Discover(path string) (*Config, string, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func defaultPaths() []string {
	paths := []string{"./dracc.toml", "./dracc.yaml", "./dracc.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dracc", "config.toml"))
	}
	return paths
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) decode(data []byte, format Format) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := compiler.ParseSignedLiteralMode(c.Lexer.SignedLiterals); err != nil {
		return fmt.Errorf("lexer.signed_literals: %w", err)
	}
	switch c.Output.Format {
	case "tree", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q (want tree or yaml)", c.Output.Format)
	}
	return nil
}

// LogLevel maps Log.Level onto a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Options converts the settings into compiler options. The config must
// have passed Validate.
func (c *Config) Options() compiler.Options {
	mode, _ := compiler.ParseSignedLiteralMode(c.Lexer.SignedLiterals)
	return compiler.Options{
		Lex:   compiler.LexOptions{SignedLiterals: mode},
		Check: compiler.CheckOptions{StrictCalls: c.Checker.StrictCalls},
	}
}
