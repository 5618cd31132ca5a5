package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/andygrunwald/vdf"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

func ReadAppManifest(fs afero.Fs, path string) (*AppManifest, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parser := vdf.NewParser(f)
	appManifestMap, err := parser.Parse()
	if err != nil {
		return nil, oops.In("appmanifest").With("path", path).Wrapf(err, "parse app manifest")
	}

	jsonStr, err := json.Marshal(appManifestMap)
	if err != nil {
		return nil, err
	}

	appManifest := &AppManifest{}
	if err := json.Unmarshal(jsonStr, appManifest); err != nil {
		return nil, oops.In("appmanifest").With("path", path).Wrapf(err, "decode app manifest")
	}

	return appManifest, nil
}

// FindAppInstallDir looks for steamapps/appmanifest_<appId>.acf in each
// library and returns the install directory it names, if that exists.
func FindAppInstallDir(fs afero.Fs, libraries []string, appId string) (string, error) {
	if appId == "" {
		return "", ErrGameNotFound
	}

	logger := GetLogger("appmanifest")
	for _, lib := range libraries {
		steamAppsDir := filepath.Join(lib, SteamAppsDir)
		manifestPath := filepath.Join(steamAppsDir, fmt.Sprintf("appmanifest_%s.acf", appId))

		appManifest, err := ReadAppManifest(fs, manifestPath)
		if err != nil {
			logger.Debug().Err(err).Str("path", manifestPath).Msg("skipping library")
			continue
		}

		installDir := appManifest.AppState.InstallDir
		if installDir == "" {
			continue
		}

		result := filepath.Join(steamAppsDir, SteamCommonDir, installDir)
		if ok, _ := afero.Exists(fs, result); ok {
			return result, nil
		}
	}

	return "", ErrGameNotFound
}
