package scaffold

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

// Manifest describes a generated project: a folder name, a type, and
// the set of files to materialize. It is the JSON shape the upstream
// generation step emits.
type Manifest struct {
	ProjectFolderName string     `json:"project_folder_name"`
	ProjectType       string     `json:"project_type"` // python | web
	OutFiles          []FileSpec `json:"out_file"`
}

type FileSpec struct {
	FileName    string `json:"file_name"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
	Operation   string `json:"operation,omitempty"` // empty = write, "delete" = remove
}

const OpDelete = "delete"

func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(raw)
}

func (m *Manifest) Validate() error {
	m.ProjectFolderName = strings.TrimSpace(m.ProjectFolderName)
	if m.ProjectFolderName == "" {
		return fmt.Errorf("project_folder_name is required")
	}
	if strings.ContainsAny(m.ProjectFolderName, `/\`) {
		return fmt.Errorf("project_folder_name must be a bare directory name: %s", m.ProjectFolderName)
	}
	m.ProjectType = strings.TrimSpace(m.ProjectType)
	if m.ProjectType == "" {
		m.ProjectType = "python"
	}
	for i := range m.OutFiles {
		m.OutFiles[i].FileName = strings.TrimSpace(m.OutFiles[i].FileName)
		if m.OutFiles[i].FileName == "" {
			return fmt.Errorf("out_file[%d]: file_name is required", i)
		}
	}
	return nil
}

// IsWebApp reports whether the project should run in service mode.
func (m *Manifest) IsWebApp() bool {
	return m.ProjectType == "web"
}
