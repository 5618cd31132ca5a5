package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// DetectResult is what callers of AutoDetect branch on. OK is false with a
// Reason whenever the game could not be located or the mods folder could
// not be created.
type DetectResult struct {
	OK          bool   `json:"ok"`
	GamePath    string `json:"gamePath,omitempty"`
	ModsPath    string `json:"modsPath,omitempty"`
	CreatedMods bool   `json:"createdMods"`
	Reason      string `json:"reason,omitempty"`
}

// MarshalJSON leaves createdMods out of a failed result.
func (r DetectResult) MarshalJSON() ([]byte, error) {
	if r.OK {
		type known DetectResult
		return json.Marshal(known(r))
	}

	return json.Marshal(struct {
		OK       bool   `json:"ok"`
		GamePath string `json:"gamePath,omitempty"`
		ModsPath string `json:"modsPath,omitempty"`
		Reason   string `json:"reason"`
	}{r.OK, r.GamePath, r.ModsPath, r.Reason})
}

// AutoDetect finds the game across all Steam libraries and, if the
// settings ask for it, creates its mods folder.
func AutoDetect(fs afero.Fs, env Environment, game GameDef, settings Settings) DetectResult {
	logger := GetLogger("autodetect")

	libraries := FindSteamLibraries(fs, env)
	resolution := NewGameLocator(fs, game).Resolve(libraries)

	gamePath := resolution.Path
	if !resolution.Ok() {
		appPath, err := FindAppInstallDir(fs, libraries, game.SteamAppId)
		if err != nil {
			logger.Info().Str("outcome", resolution.Kind.String()).Int("libraries", len(libraries)).Msg(resolution.Reason)
			if resolution.Detail != nil {
				logger.Debug().Err(resolution.Detail).Msg("library listing errors")
			}
			return DetectResult{OK: false, Reason: resolution.Reason}
		}
		gamePath = appPath
	}

	modsPath := filepath.Join(gamePath, game.ModsDir)
	createdMods := false

	if settings.AutoCreateModsFolder {
		created, err := ensureModsDir(fs, modsPath)
		if err != nil {
			logger.Error().Err(err).Str("path", modsPath).Msg("could not create mods folder")
			return DetectResult{
				OK:       false,
				GamePath: gamePath,
				ModsPath: modsPath,
				Reason:   fmt.Sprintf("Failed to create mods folder: %v", err),
			}
		}
		createdMods = created
	}

	logger.Info().Str("gamePath", gamePath).Bool("createdMods", createdMods).Msg("game detected")
	return DetectResult{
		OK:          true,
		GamePath:    gamePath,
		ModsPath:    modsPath,
		CreatedMods: createdMods,
	}
}

func ensureModsDir(fs afero.Fs, modsPath string) (bool, error) {
	if ok, _ := afero.Exists(fs, modsPath); ok {
		return false, nil
	}

	if err := fs.MkdirAll(modsPath, 0755); err != nil {
		return false, oops.In("autodetect").With("path", modsPath).Wrapf(err, "create mods folder")
	}

	return true, nil
}
