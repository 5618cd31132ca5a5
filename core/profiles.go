package core

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

const DefaultProfileId = "default"

// Profile is one named set of enabled mods. Keys it does not know, and
// known keys holding a value of the wrong type, are kept in Extra.
type Profile struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	EnabledMods []string `json:"enabledMods"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (p Profile) MarshalJSON() ([]byte, error) {
	type known Profile
	k := known(p)
	// write [] rather than null
	if k.EnabledMods == nil {
		k.EnabledMods = []string{}
	}
	return withExtra(k, p.Extra)
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var id, name *string
	var mods *[]string

	extra, err := splitDocument(data, map[string]func(json.RawMessage) bool{
		"id":          bindField(&id),
		"name":        bindField(&name),
		"enabledMods": bindField(&mods),
	})
	if err != nil {
		return err
	}

	*p = Profile{Extra: extra}
	if id != nil {
		p.Id = *id
	}
	if name != nil {
		p.Name = *name
	}
	if mods != nil {
		p.EnabledMods = *mods
	}
	return nil
}

// ProfileSet is the profiles document. A fresh document holds a single
// "default" profile; that is not re-checked on load.
type ProfileSet struct {
	ActiveProfileId string    `json:"activeProfileId"`
	Profiles        []Profile `json:"profiles"`

	Extra map[string]json.RawMessage `json:"-"`
}

func DefaultProfiles() ProfileSet {
	return ProfileSet{
		ActiveProfileId: DefaultProfileId,
		Profiles: []Profile{
			{Id: DefaultProfileId, Name: "Default", EnabledMods: []string{}},
		},
	}
}

func (s ProfileSet) MarshalJSON() ([]byte, error) {
	type known ProfileSet
	k := known(s)
	if k.Profiles == nil {
		k.Profiles = []Profile{}
	}
	return withExtra(k, s.Extra)
}

// Active returns the profile named by ActiveProfileId.
func (s ProfileSet) Active() (Profile, bool) {
	for _, p := range s.Profiles {
		if p.Id == s.ActiveProfileId {
			return p, true
		}
	}
	return Profile{}, false
}

type ProfilesPatch struct {
	ActiveProfileId *string
	Profiles        *[]Profile

	Extra map[string]json.RawMessage
}

// decodeProfiles decodes the profiles list one element at a time, so a bad
// field only affects the profile holding it. A value that is not a list of
// objects yields nil.
func decodeProfiles(raw json.RawMessage) *[]Profile {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}

	profiles := make([]Profile, 0, len(items))
	for _, item := range items {
		p := Profile{}
		if err := json.Unmarshal(item, &p); err != nil {
			return nil
		}
		profiles = append(profiles, p)
	}
	return &profiles
}

func (p *ProfilesPatch) UnmarshalJSON(data []byte) error {
	extra, err := splitDocument(data, map[string]func(json.RawMessage) bool{
		"activeProfileId": bindField(&p.ActiveProfileId),
		"profiles": func(raw json.RawMessage) bool {
			p.Profiles = decodeProfiles(raw)
			return p.Profiles != nil
		},
	})
	if err != nil {
		return err
	}

	p.Extra = extra
	return nil
}

// MergeProfiles overlays patch on base at the top level only. A present
// profiles list replaces the base list wholesale; profiles are not
// reconciled by id.
func MergeProfiles(base ProfileSet, patch ProfilesPatch) ProfileSet {
	result := base
	result.Extra = mergeExtra(base.Extra, patch.Extra)

	if patch.ActiveProfileId != nil {
		result.ActiveProfileId = *patch.ActiveProfileId
		delete(result.Extra, "activeProfileId")
	}
	if patch.Profiles != nil {
		result.Profiles = append([]Profile{}, (*patch.Profiles)...)
		delete(result.Extra, "profiles")
	}
	if len(result.Extra) == 0 {
		result.Extra = nil
	}
	return result
}

type ProfileStore = FileBackedDatastore[ProfileSet, ProfilesPatch]

func NewProfileStore(fs afero.Fs, configDir string) *ProfileStore {
	return NewFileBackedDatastore(fs, filepath.Join(configDir, ProfilesFileName), DefaultProfiles, MergeProfiles)
}

var _ Datastore[ProfileSet, ProfilesPatch] = (*ProfileStore)(nil)
