//go:build darwin

package platform

import "path/filepath"

func SteamInstallDirs(home string) []string {
	if home == "" {
		return []string{}
	}

	return []string{
		filepath.Join(home, "Library", "Application Support", "Steam"),
	}
}
