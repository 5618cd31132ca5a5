package core

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// Settings is the effective settings document. Values are not validated:
// a theme outside dark/light is stored and returned as is. Keys this
// version does not know are kept in Extra and written back on save, as
// are known keys holding a value of the wrong type. Such a key shadows
// its field when written, while the field keeps its default.
type Settings struct {
	Theme                Theme    `json:"theme"`
	AutoDetectOnLaunch   bool     `json:"autoDetectOnLaunch"`
	AutoCreateModsFolder bool     `json:"autoCreateModsFolder"`
	MinLogLevel          LogLevel `json:"minLogLevel"`

	Extra map[string]json.RawMessage `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:                ThemeDark,
		AutoDetectOnLaunch:   false,
		AutoCreateModsFolder: true,
		MinLogLevel:          LogLevelInfo,
	}
}

func (s Settings) MarshalJSON() ([]byte, error) {
	type known Settings
	return withExtra(known(s), s.Extra)
}

// SettingsPatch holds the fields present in a partial update or a
// persisted document; nil means absent.
type SettingsPatch struct {
	Theme                *Theme
	AutoDetectOnLaunch   *bool
	AutoCreateModsFolder *bool
	MinLogLevel          *LogLevel

	Extra map[string]json.RawMessage
}

func (p *SettingsPatch) UnmarshalJSON(data []byte) error {
	extra, err := splitDocument(data, map[string]func(json.RawMessage) bool{
		"theme":                bindField(&p.Theme),
		"autoDetectOnLaunch":   bindField(&p.AutoDetectOnLaunch),
		"autoCreateModsFolder": bindField(&p.AutoCreateModsFolder),
		"minLogLevel":          bindField(&p.MinLogLevel),
	})
	if err != nil {
		return err
	}

	p.Extra = extra
	return nil
}

// MergeSettings overlays every field present in patch on base. The merge
// is shallow: a present field replaces the base value outright, along
// with any raw value kept for that key.
func MergeSettings(base Settings, patch SettingsPatch) Settings {
	result := base
	result.Extra = mergeExtra(base.Extra, patch.Extra)

	if patch.Theme != nil {
		result.Theme = *patch.Theme
		delete(result.Extra, "theme")
	}
	if patch.AutoDetectOnLaunch != nil {
		result.AutoDetectOnLaunch = *patch.AutoDetectOnLaunch
		delete(result.Extra, "autoDetectOnLaunch")
	}
	if patch.AutoCreateModsFolder != nil {
		result.AutoCreateModsFolder = *patch.AutoCreateModsFolder
		delete(result.Extra, "autoCreateModsFolder")
	}
	if patch.MinLogLevel != nil {
		result.MinLogLevel = *patch.MinLogLevel
		delete(result.Extra, "minLogLevel")
	}
	if len(result.Extra) == 0 {
		result.Extra = nil
	}
	return result
}

type SettingsStore = FileBackedDatastore[Settings, SettingsPatch]

func NewSettingsStore(fs afero.Fs, configDir string) *SettingsStore {
	return NewFileBackedDatastore(fs, filepath.Join(configDir, SettingsFileName), DefaultSettings, MergeSettings)
}

var _ Datastore[Settings, SettingsPatch] = (*SettingsStore)(nil)
