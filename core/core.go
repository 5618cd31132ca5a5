package core

import (
	_ "embed"
	"strings"
)

//go:embed version.txt
var versionRevision string

const APP_NAME = "IronLoader"

// Steam keeps every app under <library>/steamapps/common/<installdir>.
const (
	SteamAppsDir         = "steamapps"
	SteamCommonDir       = "common"
	LibraryFoldersFile   = "libraryfolders.vdf"
	SettingsFileName     = "settings.json"
	ProfilesFileName     = "profiles.json"
	GameDefFileName      = "game.toml"
	DefaultLogFileName   = "ironloader.log"
	ConfigDirOverrideEnv = "IRONLOADER_CONFIG_DIR"
)

func Version() string {
	return strings.TrimSpace(versionRevision)
}
