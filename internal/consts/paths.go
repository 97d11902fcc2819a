package consts

import (
	"os"
	"path/filepath"
)

const (
	RunpadDirName  = ".runpad"
	ConfigFileName = "config.yaml"
	ProjectsDir    = "projects"
)

func RunpadHomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, RunpadDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(RunpadHomeDir(), ConfigFileName)
}

func DefaultProjectsDir() string {
	return filepath.Join(RunpadHomeDir(), ProjectsDir)
}
