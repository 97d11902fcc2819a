package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Runner.Interpreter != "python3" {
		t.Fatalf("unexpected interpreter: %q", cfg.Runner.Interpreter)
	}
	want := []int{5000, 8000, 8080, 3000, 8501}
	if len(cfg.Runner.CandidatePorts) != len(want) {
		t.Fatalf("unexpected ports: %v", cfg.Runner.CandidatePorts)
	}
	for i, p := range want {
		if cfg.Runner.CandidatePorts[i] != p {
			t.Fatalf("port %d: got %d, want %d", i, cfg.Runner.CandidatePorts[i], p)
		}
	}
	if cfg.Runner.PortWaitSec != 15 {
		t.Fatalf("unexpected port wait: %d", cfg.Runner.PortWaitSec)
	}
	if cfg.Runner.OpenBrowser == nil || !*cfg.Runner.OpenBrowser {
		t.Fatal("open_browser should default to true")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Output != "stdout" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
runner:
  interpreter: python3.12
  candidate_ports: [9000]
  port_wait_sec: 3
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runner.Interpreter != "python3.12" || cfg.Runner.PortWaitSec != 3 {
		t.Fatalf("unexpected runner config: %+v", cfg.Runner)
	}
	if len(cfg.Runner.CandidatePorts) != 1 || cfg.Runner.CandidatePorts[0] != 9000 {
		t.Fatalf("unexpected ports: %v", cfg.Runner.CandidatePorts)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Runner.CandidatePorts = []int{70000} }},
		{"negative timeout", func(c *Config) { c.Runner.DefaultTimeoutSec = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"file output without file", func(c *Config) { c.Logging.Output = "file" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCloneAndHash(t *testing.T) {
	cfg := Default()
	clone, err := cfg.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if cfg.Hash() != clone.Hash() {
		t.Fatal("clone must hash identically")
	}

	clone.Runner.PortWaitSec = 99
	if cfg.Hash() == clone.Hash() {
		t.Fatal("hash must change with content")
	}
	if cfg.Runner.PortWaitSec == 99 {
		t.Fatal("clone is not deep")
	}
}
