package core

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_Defaults(t *testing.T) {
	profiles := NewProfileStore(afero.NewMemMapFs(), testConfigDir).Load()

	assert.Equal(t, DefaultProfileId, profiles.ActiveProfileId)
	require.Len(t, profiles.Profiles, 1)
	assert.Equal(t, Profile{Id: "default", Name: "Default", EnabledMods: []string{}}, profiles.Profiles[0])

	active, ok := profiles.Active()
	assert.True(t, ok)
	assert.Equal(t, "Default", active.Name)
}

func TestProfileStore_SaveReplacesProfiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewProfileStore(fs, testConfigDir)

	patch := ProfilesPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"profiles":[{"id":"x","name":"X","enabledMods":[]}]}`), &patch))

	_, err := store.Save(patch)
	require.NoError(t, err)

	loaded := store.Load()
	assert.Equal(t, []Profile{{Id: "x", Name: "X", EnabledMods: []string{}}}, loaded.Profiles)
	assert.Equal(t, DefaultProfileId, loaded.ActiveProfileId)

	// the active id no longer names a profile; nothing repairs it
	_, ok := loaded.Active()
	assert.False(t, ok)
}

func TestProfileStore_ActiveProfileIsScalar(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDocument(t, fs, ProfilesFileName, `{"activeProfileId":"b","profiles":[{"id":"a","name":"A","enabledMods":["m1"]},{"id":"b","name":"B","enabledMods":["m1","m2"]}]}`)
	store := NewProfileStore(fs, testConfigDir)

	id := "a"
	next, err := store.Save(ProfilesPatch{ActiveProfileId: &id})
	require.NoError(t, err)

	assert.Equal(t, "a", next.ActiveProfileId)
	require.Len(t, next.Profiles, 2)
	assert.Equal(t, []string{"m1", "m2"}, next.Profiles[1].EnabledMods)

	active, ok := next.Active()
	require.True(t, ok)
	assert.Equal(t, []string{"m1"}, active.EnabledMods)
}

func TestProfileStore_DocumentWithoutProfilesKeepsDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDocument(t, fs, ProfilesFileName, `{"activeProfileId":"custom","uiCollapsed":true}`)

	profiles := NewProfileStore(fs, testConfigDir).Load()
	assert.Equal(t, "custom", profiles.ActiveProfileId)
	assert.Equal(t, DefaultProfiles().Profiles, profiles.Profiles)
	assert.JSONEq(t, `true`, string(profiles.Extra["uiCollapsed"]))
}

func TestProfileStore_EmptyProfilesList(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDocument(t, fs, ProfilesFileName, `{"profiles":[]}`)

	profiles := NewProfileStore(fs, testConfigDir).Load()
	assert.Empty(t, profiles.Profiles)
}

func TestProfileStore_Replace(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewProfileStore(fs, testConfigDir)

	set := ProfileSet{
		ActiveProfileId: "p",
		Profiles:        []Profile{{Id: "p", Name: "P"}},
	}
	require.NoError(t, store.Replace(set))

	assert.Equal(t, map[string]interface{}{
		"activeProfileId": "p",
		"profiles": []interface{}{
			map[string]interface{}{"id": "p", "name": "P", "enabledMods": []interface{}{}},
		},
	}, readDocument(t, fs, ProfilesFileName))
}

func TestMergeProfiles_CopiesPatchSlice(t *testing.T) {
	replacement := []Profile{{Id: "x", Name: "X", EnabledMods: []string{}}}
	merged := MergeProfiles(DefaultProfiles(), ProfilesPatch{Profiles: &replacement})

	replacement[0].Name = "changed"
	assert.Equal(t, "X", merged.Profiles[0].Name)
}

func TestProfilesPatch_NullProfilesIsAbsent(t *testing.T) {
	patch := ProfilesPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"profiles":null}`), &patch))
	assert.Nil(t, patch.Profiles)
}

func TestProfileStore_BadFieldStaysWithItsProfile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDocument(t, fs, ProfilesFileName, `{"activeProfileId":"b","profiles":[{"id":"a","name":"A","enabledMods":["m1"],"color":"red"},{"id":"b","name":"B","enabledMods":"oops"}]}`)
	store := NewProfileStore(fs, testConfigDir)

	loaded := store.Load()
	require.Len(t, loaded.Profiles, 2)
	assert.Equal(t, "a", loaded.Profiles[0].Id)
	assert.Equal(t, []string{"m1"}, loaded.Profiles[0].EnabledMods)
	assert.JSONEq(t, `"red"`, string(loaded.Profiles[0].Extra["color"]))
	assert.Equal(t, "b", loaded.Profiles[1].Id)
	assert.Nil(t, loaded.Profiles[1].EnabledMods)

	id := "a"
	_, err := store.Save(ProfilesPatch{ActiveProfileId: &id})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"activeProfileId": "a",
		"profiles": []interface{}{
			map[string]interface{}{"id": "a", "name": "A", "enabledMods": []interface{}{"m1"}, "color": "red"},
			map[string]interface{}{"id": "b", "name": "B", "enabledMods": "oops"},
		},
	}, readDocument(t, fs, ProfilesFileName))
}

func TestProfileStore_UnreadableProfilesListIsWrittenBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDocument(t, fs, ProfilesFileName, `{"activeProfileId":"a","profiles":[{"id":"a"},7]}`)
	store := NewProfileStore(fs, testConfigDir)

	loaded := store.Load()
	assert.Equal(t, DefaultProfiles().Profiles, loaded.Profiles)
	assert.Equal(t, "a", loaded.ActiveProfileId)

	_, err := store.Save(ProfilesPatch{})
	require.NoError(t, err)

	doc := readDocument(t, fs, ProfilesFileName)
	assert.Equal(t, []interface{}{map[string]interface{}{"id": "a"}, float64(7)}, doc["profiles"])
}
