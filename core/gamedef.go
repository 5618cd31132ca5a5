package core

import (
	_ "embed"
	"errors"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

//go:embed gamedef.toml
var defaultGameDef []byte

// GameDef describes how to recognise the game inside a Steam library.
type GameDef struct {
	DisplayName      string   `koanf:"display_name" json:"display_name"`
	FolderCandidates []string `koanf:"folder_candidates" json:"folder_candidates"`
	Marker           string   `koanf:"marker" json:"marker"`
	ModsDir          string   `koanf:"mods_dir" json:"mods_dir"`
	SteamAppId       string   `koanf:"steam_app_id" json:"steam_app_id"`
}

// rawBytesProvider hands already-read bytes to koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadGameDef returns the embedded game definition overlaid with the
// user's configDir/game.toml, if present, and then with overrides.
// Lists in the user file replace the defaults rather than extend them.
func LoadGameDef(fs afero.Fs, configDir string, overrides map[string]interface{}) (GameDef, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultGameDef}, toml.Parser()); err != nil {
		return GameDef{}, oops.In("gamedef").Wrapf(err, "load defaults")
	}

	userPath := filepath.Join(configDir, GameDefFileName)
	if ok, _ := afero.Exists(fs, userPath); ok {
		data, err := afero.ReadFile(fs, userPath)
		if err != nil {
			return GameDef{}, oops.In("gamedef").With("path", userPath).Wrapf(err, "read game definition")
		}
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return GameDef{}, oops.In("gamedef").With("path", userPath).Wrapf(err, "parse game definition")
		}
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return GameDef{}, oops.In("gamedef").Wrapf(err, "apply overrides")
		}
	}

	def := GameDef{}
	if err := k.Unmarshal("", &def); err != nil {
		return GameDef{}, oops.In("gamedef").Wrapf(err, "decode game definition")
	}

	if def.ModsDir == "" {
		def.ModsDir = "Mods"
	}

	return def, nil
}

// DefaultGameDef is the embedded definition with no user overlay.
func DefaultGameDef() GameDef {
	def, err := LoadGameDef(afero.NewMemMapFs(), "", nil)
	if err != nil {
		panic(err)
	}
	return def
}
