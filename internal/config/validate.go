package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	defaultInterpreter = "python3"
	defaultPortWaitSec = 15
)

// defaultCandidatePorts is the ordered probe list for freshly started
// services. Order matters: earlier entries win a probe iteration.
var defaultCandidatePorts = []int{5000, 8000, 8080, 3000, 8501}

// Validate normalizes the config in place, filling defaults for
// anything unset.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	c.Runner.Interpreter = strings.TrimSpace(c.Runner.Interpreter)
	if c.Runner.Interpreter == "" {
		c.Runner.Interpreter = defaultInterpreter
	}
	if len(c.Runner.CandidatePorts) == 0 {
		c.Runner.CandidatePorts = append([]int(nil), defaultCandidatePorts...)
	}
	for _, p := range c.Runner.CandidatePorts {
		if p <= 0 || p > 65535 {
			return fmt.Errorf("candidate port out of range: %d", p)
		}
	}
	if c.Runner.PortWaitSec <= 0 {
		c.Runner.PortWaitSec = defaultPortWaitSec
	}
	if c.Runner.DefaultTimeoutSec < 0 {
		return fmt.Errorf("default_timeout_sec cannot be negative: %d", c.Runner.DefaultTimeoutSec)
	}
	if c.Runner.OpenBrowser == nil {
		open := true
		c.Runner.OpenBrowser = &open
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("unsupported log level: %s", c.Logging.Level)
	}

	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && strings.TrimSpace(c.Logging.File) == "" {
		return errors.New("logging.file is required when output includes file")
	}

	return nil
}
