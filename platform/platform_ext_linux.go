//go:build !windows && !darwin

package platform

import (
	"os"
	"path/filepath"
)

// SteamInstallDirs returns the usual Steam roots on Linux: native, Flatpak
// and snap installs.
func SteamInstallDirs(home string) []string {
	result := []string{}
	if home != "" {
		result = append(result,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
			filepath.Join(home, "snap", "steam", "common", ".local", "share", "Steam"),
		)
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		result = append(result, filepath.Join(xdgData, "Steam"))
	}

	return result
}
