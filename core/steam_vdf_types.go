package core

// AppManifest mirrors the part of steamapps/appmanifest_<id>.acf that is
// read, after converting the vdf tree to JSON.
type AppManifest struct {
	AppState struct {
		AppId      string `json:"appid"`
		Name       string `json:"name"`
		InstallDir string `json:"installdir"`
	} `json:"AppState"`
}
