package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/runpadhq/runpad/internal/pkg/logs"
)

const (
	detailFileName   = "project_detail.json"
	entryFileName    = "main.py"
	requirementsName = "requirements.txt"
)

// Layout is what materializing a manifest leaves on disk.
type Layout struct {
	ProjectDir       string
	EntryFile        string // path to main.py when the manifest ships one
	RequirementsFile string // path to requirements.txt when present
	Files            []string
}

// Apply materializes a manifest under root: writes every out_file,
// applies deletes, and refreshes project_detail.json. All paths are
// confined to the project directory.
func Apply(ctx context.Context, root string, m *Manifest) (*Layout, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	projectDir := filepath.Join(root, m.ProjectFolderName)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	layout := &Layout{ProjectDir: projectDir}
	for _, spec := range m.OutFiles {
		abs, err := resolveWithin(projectDir, spec.FileName)
		if err != nil {
			return nil, err
		}

		if spec.Operation == OpDelete {
			if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("delete %s: %w", spec.FileName, err)
			}
			logs.CtxInfo(ctx, "[scaffold] deleted %s", spec.FileName)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("create parent dir for %s: %w", spec.FileName, err)
		}
		if err := os.WriteFile(abs, []byte(spec.Code), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", spec.FileName, err)
		}
		logs.CtxInfo(ctx, "[scaffold] wrote %s (%d bytes)", spec.FileName, len(spec.Code))

		layout.Files = append(layout.Files, abs)
		switch filepath.Base(abs) {
		case entryFileName:
			layout.EntryFile = abs
		case requirementsName:
			layout.RequirementsFile = abs
		}
	}

	if err := writeDetail(projectDir, m); err != nil {
		return nil, err
	}
	return layout, nil
}

// resolveWithin joins name under dir and rejects anything escaping it.
func resolveWithin(dir, name string) (string, error) {
	abs := filepath.Clean(filepath.Join(dir, name))
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("file escapes project dir: %s", name)
	}
	return abs, nil
}

type (
	projectDetail struct {
		ProjectFolderName string       `json:"project_folder_name"`
		ProjectType       string       `json:"project_type"`
		OutFile           []detailFile `json:"out_file"`
	}

	detailFile struct {
		FileName    string `json:"file_name"`
		Description string `json:"description,omitempty"`
	}
)

// writeDetail records the project's file inventory, merged against any
// existing record: deletes drop entries, updates refresh descriptions,
// new files append. Code never lands in the detail file.
func writeDetail(projectDir string, m *Manifest) error {
	detailPath := filepath.Join(projectDir, detailFileName)

	var existing projectDetail
	if raw, err := os.ReadFile(detailPath); err == nil {
		// A corrupt detail file is rebuilt from scratch.
		_ = sonic.Unmarshal(raw, &existing)
	}

	specByName := make(map[string]FileSpec, len(m.OutFiles))
	for _, spec := range m.OutFiles {
		specByName[spec.FileName] = spec
	}

	detail := projectDetail{
		ProjectFolderName: m.ProjectFolderName,
		ProjectType:       m.ProjectType,
	}

	seen := make(map[string]bool)
	for _, prev := range existing.OutFile {
		spec, ok := specByName[prev.FileName]
		if !ok {
			detail.OutFile = append(detail.OutFile, prev)
			continue
		}
		seen[prev.FileName] = true
		if spec.Operation == OpDelete {
			continue
		}
		desc := spec.Description
		if desc == "" {
			desc = prev.Description
		}
		detail.OutFile = append(detail.OutFile, detailFile{FileName: prev.FileName, Description: desc})
	}

	for _, spec := range m.OutFiles {
		if seen[spec.FileName] || spec.Operation == OpDelete {
			continue
		}
		detail.OutFile = append(detail.OutFile, detailFile{FileName: spec.FileName, Description: spec.Description})
	}

	raw, err := sonic.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", detailFileName, err)
	}
	if err := os.WriteFile(detailPath, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", detailFileName, err)
	}
	return nil
}
