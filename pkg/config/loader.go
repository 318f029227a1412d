package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Load reads a configuration file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration, validates it and fills defaults.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if result := validateDocument(doc); !result.IsValid() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidConfig, result.Error())
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if result := Validate(&cfg); !result.IsValid() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidConfig, result.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// envOverrides are the settings that can come from the environment.
type envOverrides struct {
	LogLevel  string `env:"WSDLKIT_LOG_LEVEL"`
	LogFormat string `env:"WSDLKIT_LOG_FORMAT"`
	BaseURL   string `env:"WSDLKIT_BASE_URL"`
	Style     string `env:"WSDLKIT_STYLE"`
}

// ApplyEnv overrides cfg from WSDLKIT_* environment variables and validates
// the result.
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("environment: %w", err)
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
	if env.BaseURL != "" {
		cfg.Import.BaseURL = env.BaseURL
	}
	if env.Style != "" {
		cfg.Import.Style = env.Style
	}
	if result := Validate(cfg); !result.IsValid() {
		return fmt.Errorf("%w:\n%s", ErrInvalidConfig, result.Error())
	}
	return nil
}

// ToYAML encodes cfg as YAML.
func ToYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ToJSON encodes cfg as indented JSON.
func ToJSON(cfg *Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
