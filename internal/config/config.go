package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Runner  RunnerConfig  `yaml:"runner"`
		Logging LoggingConfig `yaml:"logging"`
	}

	// RunnerConfig carries the knobs for executing generated programs.
	// Candidate ports and the bind-wait window are configuration, not
	// per-run input.
	RunnerConfig struct {
		Interpreter       string `yaml:"interpreter"`
		CandidatePorts    []int  `yaml:"candidate_ports"`
		PortWaitSec       int    `yaml:"port_wait_sec"`
		DefaultTimeoutSec int    `yaml:"default_timeout_sec"`
		OpenBrowser       *bool  `yaml:"open_browser"`
	}

	LoggingConfig struct {
		Level      string `yaml:"level"`  // debug, info, warn, error
		Format     string `yaml:"format"` // json, text
		Output     string `yaml:"output"` // stdout, file, both
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"` // MB
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // days
	}
)

// Load reads and validates the config file at path. A missing file is
// not an error: the defaults apply.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns a validated all-defaults config.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Clone returns a deep copy.
func (c *Config) Clone() (*Config, error) {
	if c == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	raw, err := sonic.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("clone config: %w", err)
	}
	var out Config
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clone config: %w", err)
	}
	return &out, nil
}

// Hash returns a stable fingerprint of the in-memory config.
func (c *Config) Hash() string {
	raw, err := sonic.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
