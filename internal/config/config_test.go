package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andyrewlee/glide/internal/scroll"
)

func writeConfig(t *testing.T, body string) *Paths {
	t.Helper()
	paths := PathsAt(t.TempDir())
	if err := os.WriteFile(paths.ConfigPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return paths
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}
	if cfg.Paths == nil || !strings.HasSuffix(cfg.Paths.Home, ".glide") {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if !cfg.Scroll.SmoothWheel || cfg.Scroll.SmoothTouch {
		t.Fatalf("unexpected smoothing defaults: %+v", cfg.Scroll)
	}
	if cfg.Scroll.Lerp != 0.1 || cfg.Scroll.Duration != 0 {
		t.Fatalf("unexpected animation defaults: %+v", cfg.Scroll)
	}
	if cfg.UI.FrameRate != 60 || !cfg.UI.ShowTOC {
		t.Fatalf("unexpected UI defaults: %+v", cfg.UI)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(PathsAt(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Scroll != defaultScrollConfig() {
		t.Fatalf("expected defaults, got %+v", cfg.Scroll)
	}
}

func TestLoadOverrides(t *testing.T) {
	paths := writeConfig(t, `{
  "log_level": "debug",
  "keymap": {"bindings": {"quit": ["ctrl+c"]}},
  "scroll": {
    "duration": 1.2,
    "easing": "ease-in-out-cubic",
    "infinite": true,
    "smooth_touch": true,
    "gesture_orientation": "both",
    "wheel_step": 5
  },
  "ui": {"show_toc": false, "frame_rate": 120}
}`)
	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	s := cfg.Scroll
	if s.Duration != 1.2 || s.Lerp != 0 {
		t.Fatalf("duration without lerp should select duration mode: %+v", s)
	}
	if !s.Infinite || !s.SmoothTouch || s.GestureOrientation != "both" || s.WheelStep != 5 {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if !s.SmoothWheel {
		t.Fatalf("unset fields should keep defaults")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	if keys, ok := cfg.KeyMap.BindingFor("QUIT"); !ok || keys[0] != "ctrl+c" {
		t.Fatalf("keymap override missing: %v", keys)
	}
	if cfg.UI.ShowTOC || cfg.UI.FrameRate != 120 {
		t.Fatalf("ui overrides not applied: %+v", cfg.UI)
	}

	opts := s.Options()
	if opts.GestureOrientation != scroll.GestureBoth || !opts.Infinite || opts.Duration != 1.2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Normalizer.WheelStep != 5 {
		t.Fatalf("normalizer options not carried: %+v", opts.Normalizer)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	paths := writeConfig(t, `{"scroll": `)
	if _, err := LoadFrom(paths); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveUISettingsPreservesOtherKeys(t *testing.T) {
	paths := writeConfig(t, `{"scroll": {"infinite": true}}`)
	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.UI.ShowTOC = false
	if err := cfg.SaveUISettings(); err != nil {
		t.Fatalf("SaveUISettings: %v", err)
	}

	reloaded, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.UI.ShowTOC || !reloaded.Scroll.Infinite {
		t.Fatalf("save lost settings: ui=%+v scroll=%+v", reloaded.UI, reloaded.Scroll)
	}
}

func TestEnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "nested", ".glide"))
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("log dir missing: %v", err)
	}
}

func TestDefaultPathsHonorsHomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths: %v", err)
	}
	if paths.Home != dir || paths.ConfigPath != filepath.Join(dir, "config.json") {
		t.Fatalf("unexpected paths %+v", paths)
	}
}

func TestLoadUISettingsKeepsDefaultsForMissingKeys(t *testing.T) {
	paths := writeConfig(t, `{"ui": {"theme": "Nord", "frame_rate": -1}}`)
	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != "Nord" || !cfg.UI.ShowTOC || cfg.UI.FrameRate != 60 {
		t.Fatalf("unexpected ui settings %+v", cfg.UI)
	}
}
