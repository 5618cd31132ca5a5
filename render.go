package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"ironloader/core"
)

var (
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

func (a *App) write(v any, text func() string) error {
	switch a.format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	case "yaml":
		// go through JSON so custom marshalling (extra keys) applies
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprint(a.out, text())
		return err
	}
}

func field(label string, value any, styled bool) string {
	padded := fmt.Sprintf("%-12s", label)
	if styled {
		padded = labelStyle.Render(padded)
	}
	return fmt.Sprintf("  %s %v\n", padded, value)
}

func renderDetect(res core.DetectResult, styled bool) string {
	var b strings.Builder

	if !res.OK {
		header := "Not found"
		if styled {
			header = failStyle.Render(header)
		}
		b.WriteString(header + "\n")
		if res.GamePath != "" {
			b.WriteString(field("game", res.GamePath, styled))
		}
		b.WriteString(field("reason", res.Reason, styled))
		return b.String()
	}

	header := "Game found"
	if styled {
		header = okStyle.Render(header)
	}
	b.WriteString(header + "\n")
	b.WriteString(field("game", res.GamePath, styled))
	b.WriteString(field("mods", res.ModsPath, styled))
	if res.CreatedMods {
		b.WriteString(field("created", "mods folder created", styled))
	}
	return b.String()
}

func renderLibraries(libs []string) string {
	if len(libs) == 0 {
		return "No Steam libraries found\n"
	}

	var b strings.Builder
	for _, lib := range libs {
		fmt.Fprintf(&b, "%v\n", lib)
	}
	return b.String()
}

func renderSettings(s core.Settings) string {
	var b strings.Builder
	known := []struct {
		key   string
		value any
	}{
		{"theme", s.Theme},
		{"autoDetectOnLaunch", s.AutoDetectOnLaunch},
		{"autoCreateModsFolder", s.AutoCreateModsFolder},
		{"minLogLevel", s.MinLogLevel},
	}

	shown := map[string]bool{}
	// kept raw values shadow their fields
	for _, f := range known {
		shown[f.key] = true
		if raw, ok := s.Extra[f.key]; ok {
			fmt.Fprintf(&b, "%v: %s\n", f.key, raw)
			continue
		}
		fmt.Fprintf(&b, "%v: %v\n", f.key, f.value)
	}

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if shown[k] {
			continue
		}
		fmt.Fprintf(&b, "%v: %s\n", k, s.Extra[k])
	}
	return b.String()
}

func renderProfiles(p core.ProfileSet) string {
	var b strings.Builder
	for _, profile := range p.Profiles {
		marker := " "
		if profile.Id == p.ActiveProfileId {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %v\t%v\t%d mods\n", marker, profile.Id, profile.Name, len(profile.EnabledMods))
	}
	if _, ok := p.Active(); !ok {
		fmt.Fprintf(&b, "active profile %q does not exist\n", p.ActiveProfileId)
	}
	return b.String()
}
