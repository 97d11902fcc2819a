package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/runpadhq/runpad/internal/pkg/logs"
	"github.com/runpadhq/runpad/internal/pkg/utils"
)

const installTimeout = 5 * time.Minute

// Manager checks and installs Python package dependencies through the
// configured interpreter's pip.
type Manager struct {
	interpreter string
}

func NewManager(interpreter string) *Manager {
	interpreter = strings.TrimSpace(interpreter)
	if interpreter == "" {
		interpreter = "python3"
	}
	return &Manager{interpreter: interpreter}
}

// InstalledVersion returns the installed version of a package, or ""
// when it is not installed.
func (m *Manager) InstalledVersion(ctx context.Context, name string) (string, error) {
	cmd := exec.CommandContext(ctx, m.interpreter, "-m", "pip", "show", name)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// pip show exits nonzero for unknown packages
			return "", nil
		}
		return "", fmt.Errorf("pip show %s: %w", name, err)
	}

	for _, line := range strings.Split(out.String(), "\n") {
		if v, ok := strings.CutPrefix(line, "Version:"); ok {
			return strings.TrimSpace(v), nil
		}
	}
	return "", nil
}

// Missing filters reqs down to the ones not installed or installed at a
// version outside the requirement's constraints.
func (m *Manager) Missing(ctx context.Context, reqs []Requirement) ([]Requirement, error) {
	var missing []Requirement
	for _, req := range reqs {
		version, err := m.InstalledVersion(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if version == "" {
			logs.CtxInfo(ctx, "[deps] %s not installed", req.Name)
			missing = append(missing, req)
			continue
		}
		if !req.SatisfiedBy(version) {
			logs.CtxInfo(ctx, "[deps] %s %s does not satisfy %s", req.Name, version, req.Spec)
			missing = append(missing, req)
		}
	}
	return missing, nil
}

// Install installs the given requirements, passing the original pip
// specs through verbatim.
func (m *Manager) Install(ctx context.Context, reqs []Requirement) error {
	if len(reqs) == 0 {
		return nil
	}

	args := []string{"-m", "pip", "install"}
	for _, req := range reqs {
		args = append(args, req.Spec)
	}

	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.interpreter, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	logs.CtxInfo(ctx, "[deps] installing %d package(s)", len(reqs))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install failed: %v: %s", err, utils.Truncate(out.String(), 2000))
	}
	return nil
}

// EnsureFile brings the environment in line with a requirements.txt:
// parse, diff against installed versions, install only what is missing
// or out of range.
func (m *Manager) EnsureFile(ctx context.Context, path string) error {
	reqs, err := LoadRequirements(path)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		logs.CtxInfo(ctx, "[deps] nothing to install in %s", path)
		return nil
	}

	missing, err := m.Missing(ctx, reqs)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		logs.CtxInfo(ctx, "[deps] all %d requirement(s) satisfied", len(reqs))
		return nil
	}
	return m.Install(ctx, missing)
}
