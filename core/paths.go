package core

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"ironloader/platform"
)

// Environment is the snapshot of process state that library discovery
// reads. Building it once keeps discovery a function of its inputs.
type Environment struct {
	ProgramFilesX86 string
	ProgramFiles    string
	Home            string
	// ExtraRoots are platform specific Steam roots, checked after the
	// fixed candidates.
	ExtraRoots []string
}

func CurrentEnvironment() Environment {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	return Environment{
		ProgramFilesX86: os.Getenv("ProgramFiles(x86)"),
		ProgramFiles:    os.Getenv("ProgramFiles"),
		Home:            home,
		ExtraRoots:      platform.SteamInstallDirs(home),
	}
}

// GetDefaultConfigDir returns the per-user directory holding settings.json,
// profiles.json and game.toml.
func GetDefaultConfigDir() string {
	if override := os.Getenv(ConfigDirOverrideEnv); override != "" {
		return override
	}

	return filepath.Join(xdg.ConfigHome, APP_NAME)
}

func GetDefaultLogPath() string {
	return filepath.Join(xdg.StateHome, APP_NAME, DefaultLogFileName)
}
