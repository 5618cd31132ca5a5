package core

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// GetSteamCandidates lists the directories Steam is commonly installed to,
// in the order they are checked.
func GetSteamCandidates(env Environment) []string {
	candidates := []string{}

	if env.ProgramFilesX86 != "" {
		candidates = append(candidates, filepath.Join(env.ProgramFilesX86, "Steam"))
	}
	if env.ProgramFiles != "" {
		candidates = append(candidates, filepath.Join(env.ProgramFiles, "Steam"))
	}

	// Portable installs
	if env.Home != "" {
		candidates = append(candidates, filepath.Join(env.Home, "AppData", "Local", "Steam"))
		candidates = append(candidates, filepath.Join(env.Home, "AppData", "Roaming", "Steam"))
	}

	for _, root := range env.ExtraRoots {
		if root != "" {
			candidates = append(candidates, root)
		}
	}

	return candidates
}

type librarySet struct {
	seen  map[string]struct{}
	paths []string
}

func (s *librarySet) add(path string) {
	path = filepath.Clean(path)
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
}

// FindSteamLibraries returns every existing Steam library directory
// reachable from the candidate roots. A root is itself a library, and its
// steamapps/libraryfolders.vdf may list more. Problems with a single root
// are logged and skipped; the worst case is an empty list.
func FindSteamLibraries(fs afero.Fs, env Environment) []string {
	logger := GetLogger("discovery")
	libs := &librarySet{seen: make(map[string]struct{}), paths: []string{}}

	for _, steamRoot := range GetSteamCandidates(env) {
		if ok, _ := afero.Exists(fs, steamRoot); !ok {
			logger.Debug().Str("root", steamRoot).Msg("steam root not present")
			continue
		}

		libs.add(steamRoot)

		vdfPath := filepath.Join(steamRoot, SteamAppsDir, LibraryFoldersFile)
		vdfText, err := afero.ReadFile(fs, vdfPath)
		if err != nil {
			logger.Debug().Err(err).Str("path", vdfPath).Msg("no library manifest")
			continue
		}

		for _, lib := range ParseLibraryFolders(string(vdfText)) {
			// index values under "apps" look like keys too; only absolute paths are libraries
			if !filepath.IsAbs(lib) {
				continue
			}
			if ok, _ := afero.Exists(fs, lib); ok {
				libs.add(lib)
			}
		}
	}

	logger.Debug().Strs("libraries", libs.paths).Msg("steam libraries discovered")
	return libs.paths
}
