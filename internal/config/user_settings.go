package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UISettings holds display preferences. They are the only settings glide
// writes back to the config file.
type UISettings struct {
	ShowTOC   bool   `json:"show_toc"`
	Theme     string `json:"theme"`
	FrameRate int    `json:"frame_rate"`
}

func defaultUISettings() UISettings {
	return UISettings{ShowTOC: true, Theme: "gruvbox", FrameRate: 60}
}

// loadUISettings reads the "ui" section of path over the defaults. Fields
// absent from the file keep their default; a non-positive frame rate is
// ignored.
func loadUISettings(path string) UISettings {
	settings := defaultUISettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	var file struct {
		UI *UISettings `json:"ui"`
	}
	decoded := settings
	file.UI = &decoded
	if err := json.Unmarshal(data, &file); err != nil || file.UI == nil {
		return settings
	}
	fps := file.UI.FrameRate
	settings = *file.UI
	if fps <= 0 {
		settings.FrameRate = defaultUISettings().FrameRate
	}
	return settings
}

// saveUISettings rewrites only the "ui" section of path; scroll, keymap and
// unknown keys survive untouched.
func saveUISettings(path string, settings UISettings) error {
	doc := map[string]json.RawMessage{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &doc)
	}

	section := map[string]any{}
	if raw, ok := doc["ui"]; ok {
		_ = json.Unmarshal(raw, &section)
	}
	section["show_toc"] = settings.ShowTOC
	section["theme"] = settings.Theme
	section["frame_rate"] = settings.FrameRate

	encoded, err := json.Marshal(section)
	if err != nil {
		return err
	}
	doc["ui"] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveUISettings writes c.UI to the config file.
func (c *Config) SaveUISettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return saveUISettings(c.Paths.ConfigPath, c.UI)
}
