package deps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is one parsed requirements.txt line: a package name plus
// its version constraints. Spec keeps the original pip-facing text so
// installs pass it through verbatim.
type Requirement struct {
	Name       string
	Spec       string
	constraint *semver.Constraints // nil means any version
}

var specOperators = []string{"==", ">=", "<=", "!=", "~=", "<", ">"}

// LoadRequirements parses a requirements.txt file.
func LoadRequirements(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requirements: %w", err)
	}
	defer f.Close()
	return ParseRequirements(f)
}

// ParseRequirements reads pip requirement lines: comments, blanks, and
// option lines (-r, --index-url, ...) are skipped; environment markers
// after ';' are dropped.
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var out []Requirement

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		req, err := ParseSpec(line)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}
	return out, nil
}

// ParseSpec parses a single package specification such as
// "numpy==1.21.0" or "pandas>=1.0,<2.0".
func ParseSpec(spec string) (Requirement, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Requirement{}, fmt.Errorf("empty package spec")
	}

	name := spec
	rest := ""
	for i := 0; i < len(spec); i++ {
		if strings.ContainsRune("=<>!~", rune(spec[i])) {
			name = spec[:i]
			rest = spec[i:]
			break
		}
	}

	name = strings.TrimSpace(name)
	// Extras ("requests[socks]") select optional features; the package
	// name is what pip show reports.
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return Requirement{}, fmt.Errorf("invalid package spec: %s", spec)
	}

	req := Requirement{Name: name, Spec: spec}
	if rest != "" {
		c, err := translateConstraints(rest)
		if err != nil {
			return Requirement{}, fmt.Errorf("package %s: %w", name, err)
		}
		req.constraint = c
	}
	return req, nil
}

// translateConstraints maps pip operators onto semver constraint
// syntax. "~=" is approximated with semver's "~"; close enough for the
// versions generated projects pin.
func translateConstraints(s string) (*semver.Constraints, error) {
	parts := strings.Split(s, ",")
	translated := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, "=="):
			part = "=" + strings.TrimSpace(part[2:])
		case strings.HasPrefix(part, "~="):
			part = "~" + strings.TrimSpace(part[2:])
		default:
			matched := false
			for _, op := range specOperators {
				if strings.HasPrefix(part, op) {
					part = op + strings.TrimSpace(part[len(op):])
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("unsupported version constraint: %s", part)
			}
		}
		translated = append(translated, part)
	}

	c, err := semver.NewConstraint(strings.Join(translated, ", "))
	if err != nil {
		return nil, fmt.Errorf("parse version constraint: %w", err)
	}
	return c, nil
}

// SatisfiedBy reports whether an installed version meets the
// requirement. An unparseable version is treated as unsatisfied so the
// caller reinstalls rather than guesses.
func (r Requirement) SatisfiedBy(version string) bool {
	if r.constraint == nil {
		return true
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false
	}
	return r.constraint.Check(v)
}

// Pinned reports whether the requirement carries any version constraint.
func (r Requirement) Pinned() bool {
	return r.constraint != nil
}
