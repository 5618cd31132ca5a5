package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appManifestAcf = `"AppState"
{
	"appid"		"123450"
	"Universe"		"1"
	"name"		"IRON NEST: Heavy Turret Simulator"
	"StateFlags"		"4"
	"installdir"		"IronNestHTS"
}
`

func writeAppManifest(t *testing.T, fs afero.Fs, lib string, appId string, content string) {
	t.Helper()
	path := filepath.Join(lib, SteamAppsDir, "appmanifest_"+appId+".acf")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestReadAppManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAppManifest(t, fs, "/lib", "123450", appManifestAcf)

	manifest, err := ReadAppManifest(fs, filepath.Join("/lib", SteamAppsDir, "appmanifest_123450.acf"))
	require.NoError(t, err)
	assert.Equal(t, "123450", manifest.AppState.AppId)
	assert.Equal(t, "IronNestHTS", manifest.AppState.InstallDir)
}

func TestFindAppInstallDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAppManifest(t, fs, "/first", "123450", "garbage {")
	writeAppManifest(t, fs, "/second", "123450", appManifestAcf)
	want := filepath.Join("/second", SteamAppsDir, SteamCommonDir, "IronNestHTS")
	require.NoError(t, fs.MkdirAll(want, os.ModePerm))

	path, err := FindAppInstallDir(fs, []string{"/first", "/second"}, "123450")
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestFindAppInstallDir_NotInstalled(t *testing.T) {
	fs := afero.NewMemMapFs()
	// manifest present but the folder it names is gone
	writeAppManifest(t, fs, "/lib", "123450", appManifestAcf)

	_, err := FindAppInstallDir(fs, []string{"/lib"}, "123450")
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = FindAppInstallDir(fs, []string{"/lib"}, "")
	assert.ErrorIs(t, err, ErrGameNotFound)
}
