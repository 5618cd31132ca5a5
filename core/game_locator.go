package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

var ErrGameNotFound = errors.New("game folder not found in Steam libraries")

type ResolutionKind int

const (
	Found ResolutionKind = iota
	NotFound
	IoError
)

func (k ResolutionKind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case IoError:
		return "io error"
	default:
		return fmt.Sprintf("ResolutionKind(%d)", int(k))
	}
}

// Resolution is the outcome of looking for the game. Path is set for
// Found, Reason for the other kinds, and Detail carries the listing
// errors behind an IoError.
type Resolution struct {
	Kind   ResolutionKind
	Path   string
	Reason string
	Detail error
}

func (r Resolution) Ok() bool {
	return r.Kind == Found
}

// Err returns nil when the game was found.
func (r Resolution) Err() error {
	switch r.Kind {
	case Found:
		return nil
	case IoError:
		return errors.Join(ErrGameNotFound, r.Detail)
	default:
		return ErrGameNotFound
	}
}

type GameLocator struct {
	Fs   afero.Fs
	Game GameDef
}

func NewGameLocator(fs afero.Fs, game GameDef) *GameLocator {
	return &GameLocator{Fs: fs, Game: game}
}

// Resolve walks libraries in order. Within a library the known folder
// names are tried in priority order before falling back to any directory
// whose name contains the game's marker; only then does it move on to the
// next library.
func (l *GameLocator) Resolve(libraries []string) Resolution {
	logger := GetLogger("locator")
	var listErrs []error

	for _, lib := range libraries {
		commonDir := filepath.Join(lib, SteamAppsDir, SteamCommonDir)

		for _, gameFolder := range l.Game.FolderCandidates {
			// an empty name would match steamapps/common itself
			if strings.TrimSpace(gameFolder) == "" {
				continue
			}
			candidate := filepath.Join(commonDir, gameFolder)
			if ok, _ := afero.Exists(l.Fs, candidate); ok {
				logger.Info().Str("path", candidate).Msg("game folder matched by name")
				return Resolution{Kind: Found, Path: candidate}
			}
		}

		hit, err := l.scanForMarker(commonDir)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn().Err(err).Str("dir", commonDir).Msg("failed to list library")
				listErrs = append(listErrs, oops.In("locator").With("dir", commonDir).Wrapf(err, "list library"))
			}
			continue
		}

		if hit != "" {
			logger.Info().Str("path", hit).Str("marker", l.Game.Marker).Msg("game folder matched by marker")
			return Resolution{Kind: Found, Path: hit}
		}
	}

	if len(listErrs) > 0 {
		return Resolution{
			Kind:   IoError,
			Reason: "Game folder not found in Steam libraries; some libraries could not be read.",
			Detail: errors.Join(listErrs...),
		}
	}

	return Resolution{Kind: NotFound, Reason: "Game folder not found in Steam libraries."}
}

func (l *GameLocator) scanForMarker(commonDir string) (string, error) {
	marker := strings.ToUpper(l.Game.Marker)
	if marker == "" {
		return "", nil
	}

	entries, err := afero.ReadDir(l.Fs, commonDir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(strings.ToUpper(entry.Name()), marker) {
			continue
		}

		candidate := filepath.Join(commonDir, entry.Name())
		if ok, _ := afero.Exists(l.Fs, candidate); ok {
			return candidate, nil
		}
	}

	return "", nil
}
