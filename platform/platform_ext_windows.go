//go:build windows

package platform

import (
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

type registryValue struct {
	root registry.Key
	path string
	name string
}

// Steam records its install dir under HKCU for the current user and under
// HKLM for the machine, in the 32-bit view on 64-bit Windows.
var steamRegistryValues = []registryValue{
	{registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, "SteamPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`, "InstallPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath"},
}

func readRegistryString(v registryValue) (string, error) {
	key, err := registry.OpenKey(v.root, v.path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(v.name)
	if err != nil {
		return "", err
	}

	return value, nil
}

// SteamInstallDirs returns Steam roots recorded in the registry.
func SteamInstallDirs(home string) []string {
	result := []string{}
	for _, v := range steamRegistryValues {
		steamPath, err := readRegistryString(v)
		if err != nil || steamPath == "" {
			continue
		}
		result = append(result, filepath.Clean(steamPath))
	}

	return result
}
