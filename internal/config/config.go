package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "smsparse.yaml"

// Environment variables that override file values.
const (
	EnvLogLevel       = "SMSPARSE_LOG_LEVEL"
	EnvLogFormat      = "SMSPARSE_LOG_FORMAT"
	EnvServerAddr     = "SMSPARSE_SERVER_ADDR"
	EnvCascadeGeneric = "SMSPARSE_CASCADE_GENERIC"
)

// Config represents the top-level smsparse.yaml configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Inbox  InboxConfig  `yaml:"inbox"`
}

// ParserConfig controls extraction policy.
type ParserConfig struct {
	// CascadeGeneric retries generic rules when an identified
	// institution's own rules do not match.
	CascadeGeneric bool `yaml:"cascade_generic"`
	Workers        int  `yaml:"workers,omitempty"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// InboxConfig locates exported message files.
type InboxConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Load reads a smsparse.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			CascadeGeneric: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Inbox: InboxConfig{
			Dir:    "inbox",
			Format: "lines",
		},
	}
}

// LoadEnv loads variables from a dotenv file into the process environment.
// Variables already set are left alone, and a missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any SMSPARSE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Log.Format = v
	}
	if v, ok := os.LookupEnv(EnvServerAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvCascadeGeneric); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvCascadeGeneric, v, err)
		}
		cfg.Parser.CascadeGeneric = b
	}
	return nil
}
