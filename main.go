package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"ironloader/core"
)

type Options struct {
	Detect          bool              `short:"d" long:"detect" description:"Locate the game in your Steam libraries and prepare its mods folder"`
	Libraries       bool              `short:"L" long:"libraries" description:"List the Steam libraries found on this machine"`
	Settings        bool              `short:"s" long:"settings" description:"Print the effective settings"`
	Set             map[string]string `short:"S" long:"set" description:"<KEY>:<VALUE> Save a setting. VALUE is read as JSON when it parses, otherwise as a string"`
	Profiles        bool              `short:"p" long:"profiles" description:"Print the mod profiles"`
	SaveProfiles    string            `long:"save-profiles" value-name:"FILE" description:"Merge the JSON document in FILE into the saved profiles"`
	ReplaceProfiles string            `long:"replace-profiles" value-name:"FILE" description:"Overwrite the saved profiles with the JSON document in FILE"`
	ActiveProfile   string            `long:"active-profile" value-name:"ID" description:"Select the active mod profile"`
	Game            map[string]string `short:"g" long:"game" description:"<KEY>:<VALUE> Override a game.toml key for this run, e.g. mods_dir:BepInEx/plugins. VALUE is read as JSON when it parses"`
	Format          string            `short:"f" long:"format" choice:"text" choice:"json" choice:"yaml" default:"text" description:"Output format"`
	ConfigDir       string            `short:"c" long:"config-dir" description:"Directory holding settings.json, profiles.json and game.toml. Defaults to the user config dir"`
	LogLocation     string            `short:"l" long:"log-location" description:"Path to logfile. Defaults to the user state dir / ironloader.log"`
	ExportLogs      string            `long:"export-logs" value-name:"FILE" description:"Copy the current logfile to FILE"`
	Verbose         bool              `short:"v" long:"verbose" description:"Enable verbose logging"`
	Version         bool              `long:"version" description:"Print version and exit"`
}

var errDetectFailed = errors.New("game not detected")

type App struct {
	fs        afero.Fs
	env       core.Environment
	configDir string
	logPath   string
	out       io.Writer
	format    string
	styled    bool
	game      map[string]interface{}
}

func (a *App) settingsStore() *core.SettingsStore {
	return core.NewSettingsStore(a.fs, a.configDir)
}

func (a *App) profileStore() *core.ProfileStore {
	return core.NewProfileStore(a.fs, a.configDir)
}

func settingsPatchFromPairs(pairs map[string]string) (core.SettingsPatch, error) {
	doc := make(map[string]json.RawMessage, len(pairs))
	for key, value := range pairs {
		if json.Valid([]byte(value)) {
			doc[key] = json.RawMessage(value)
			continue
		}

		quoted, err := json.Marshal(value)
		if err != nil {
			return core.SettingsPatch{}, err
		}
		doc[key] = quoted
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return core.SettingsPatch{}, err
	}

	patch := core.SettingsPatch{}
	err = json.Unmarshal(data, &patch)
	return patch, err
}

func gameOverridesFromPairs(pairs map[string]string) map[string]interface{} {
	overrides := make(map[string]interface{}, len(pairs))
	for key, value := range pairs {
		var decoded interface{}
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			overrides[key] = decoded
			continue
		}
		overrides[key] = value
	}
	return overrides
}

func (a *App) readProfilesPatch(path string) (core.ProfilesPatch, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return core.ProfilesPatch{}, err
	}

	patch := core.ProfilesPatch{}
	if err := json.Unmarshal(data, &patch); err != nil {
		return core.ProfilesPatch{}, fmt.Errorf("%v: %w", path, err)
	}
	return patch, nil
}

func (a *App) exportLogs(target string) error {
	content, err := afero.ReadFile(a.fs, a.logPath)
	if err != nil {
		return err
	}

	if err := a.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	if err := afero.WriteFile(a.fs, target, content, 0644); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logs exported to %v\n", target)
	return nil
}

func (a *App) detect() error {
	settings := a.settingsStore().Load()
	game, err := core.LoadGameDef(a.fs, a.configDir, a.game)
	if err != nil {
		return err
	}

	result := core.AutoDetect(a.fs, a.env, game, settings)
	if err := a.write(result, func() string { return renderDetect(result, a.styled) }); err != nil {
		return err
	}

	if !result.OK {
		return errDetectFailed
	}
	return nil
}

func run(a *App, ops *Options) error {
	if ops.Version {
		fmt.Fprintf(a.out, "%v %v\n", core.APP_NAME, core.Version())
		return nil
	}

	settings := a.settingsStore().Load()
	// --verbose already enabled debug output
	if !ops.Verbose {
		core.ApplyLogLevel(settings.MinLogLevel)
	}

	acted := false

	if len(ops.Set) > 0 {
		acted = true
		patch, err := settingsPatchFromPairs(ops.Set)
		if err != nil {
			return err
		}

		settings, err = a.settingsStore().Save(patch)
		if err != nil {
			return err
		}
		log.Info().Interface("settings", settings).Msg("settings saved")
	}

	if ops.SaveProfiles != "" {
		acted = true
		patch, err := a.readProfilesPatch(ops.SaveProfiles)
		if err != nil {
			return err
		}
		if _, err := a.profileStore().Save(patch); err != nil {
			return err
		}
	}

	if ops.ReplaceProfiles != "" {
		acted = true
		patch, err := a.readProfilesPatch(ops.ReplaceProfiles)
		if err != nil {
			return err
		}
		if err := a.profileStore().Replace(core.MergeProfiles(core.ProfileSet{}, patch)); err != nil {
			return err
		}
	}

	if ops.ActiveProfile != "" {
		acted = true
		id := ops.ActiveProfile
		if _, err := a.profileStore().Save(core.ProfilesPatch{ActiveProfileId: &id}); err != nil {
			return err
		}
	}

	if ops.ExportLogs != "" {
		acted = true
		if err := a.exportLogs(ops.ExportLogs); err != nil {
			return err
		}
	}

	if ops.Libraries {
		acted = true
		libs := core.FindSteamLibraries(a.fs, a.env)
		if err := a.write(libs, func() string { return renderLibraries(libs) }); err != nil {
			return err
		}
	}

	if ops.Settings || len(ops.Set) > 0 {
		acted = true
		if err := a.write(settings, func() string { return renderSettings(settings) }); err != nil {
			return err
		}
	}

	if ops.Profiles || ops.SaveProfiles != "" || ops.ReplaceProfiles != "" || ops.ActiveProfile != "" {
		acted = true
		profiles := a.profileStore().Load()
		if err := a.write(profiles, func() string { return renderProfiles(profiles) }); err != nil {
			return err
		}
	}

	if ops.Detect || (!acted && settings.AutoDetectOnLaunch) {
		return a.detect()
	}

	if !acted {
		return a.write(settings, func() string { return renderSettings(settings) })
	}

	return nil
}

func main() {
	ops := &Options{}
	_, err := flags.Parse(ops)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logPath := ops.LogLocation
	if logPath == "" {
		logPath = core.GetDefaultLogPath()
	}

	logFile, err := core.InitLoggingWithPath(logPath, ops.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	} else {
		defer logFile.Close()
	}

	configDir := ops.ConfigDir
	if configDir == "" {
		configDir = core.GetDefaultConfigDir()
	}

	app := &App{
		fs:        afero.NewOsFs(),
		env:       core.CurrentEnvironment(),
		configDir: configDir,
		logPath:   logPath,
		out:       os.Stdout,
		format:    ops.Format,
		styled:    isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		game:      gameOverridesFromPairs(ops.Game),
	}

	if err := run(app, ops); err != nil {
		if !errors.Is(err, errDetectFailed) {
			log.Error().Err(err).Msg("command failed")
			fmt.Fprintln(os.Stderr, err)
		}
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}
