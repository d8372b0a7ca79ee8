package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/andyrewlee/glide/internal/animate"
	"github.com/andyrewlee/glide/internal/input"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/scroll"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// ScrollConfig mirrors the scroll controller and input normalizer options.
type ScrollConfig struct {
	SmoothWheel        bool
	SmoothTouch        bool
	Duration           float64 // seconds; 0 uses Lerp
	Lerp               float64
	Easing             string
	Infinite           bool
	Orientation        string
	GestureOrientation string
	TouchMultiplier    float64
	WheelMultiplier    float64
	NormalizeWheel     bool
	WheelStep          float64
	Snap               bool
}

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Scroll   ScrollConfig
	UI       UISettings
	KeyMap   KeyMapConfig
	LogLevel string
}

func defaultScrollConfig() ScrollConfig {
	in := input.DefaultOptions()
	return ScrollConfig{
		SmoothWheel:        true,
		SmoothTouch:        false,
		Lerp:               animate.DefaultLerp,
		Easing:             "expo-out",
		Orientation:        string(scroll.Vertical),
		GestureOrientation: string(scroll.GestureVertical),
		TouchMultiplier:    in.TouchMultiplier,
		WheelMultiplier:    in.WheelMultiplier,
		NormalizeWheel:     in.NormalizeWheel,
		WheelStep:          in.WheelStep,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigAt(paths), nil
}

func defaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths:    paths,
		Scroll:   defaultScrollConfig(),
		UI:       defaultUISettings(),
		KeyMap:   KeyMapConfig{},
		LogLevel: "info",
	}
}

// Load loads config overrides from ~/.glide/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom loads overrides from paths.ConfigPath over the defaults.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := defaultConfigAt(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user struct {
		KeyMap   KeyMapConfig `json:"keymap,omitempty"`
		LogLevel *string      `json:"log_level"`
		Scroll   struct {
			SmoothWheel        *bool    `json:"smooth_wheel"`
			SmoothTouch        *bool    `json:"smooth_touch"`
			Duration           *float64 `json:"duration"`
			Lerp               *float64 `json:"lerp"`
			Easing             *string  `json:"easing"`
			Infinite           *bool    `json:"infinite"`
			Orientation        *string  `json:"orientation"`
			GestureOrientation *string  `json:"gesture_orientation"`
			TouchMultiplier    *float64 `json:"touch_multiplier"`
			WheelMultiplier    *float64 `json:"wheel_multiplier"`
			NormalizeWheel     *bool    `json:"normalize_wheel"`
			WheelStep          *float64 `json:"wheel_step"`
			Snap               *bool    `json:"snap"`
		} `json:"scroll"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}

	if len(user.KeyMap.Bindings) > 0 {
		cfg.KeyMap = user.KeyMap
	}
	if user.LogLevel != nil {
		cfg.LogLevel = *user.LogLevel
	}

	s := &cfg.Scroll
	u := user.Scroll
	setBool(&s.SmoothWheel, u.SmoothWheel)
	setBool(&s.SmoothTouch, u.SmoothTouch)
	setFloat(&s.Duration, u.Duration)
	setFloat(&s.Lerp, u.Lerp)
	setString(&s.Easing, u.Easing)
	setBool(&s.Infinite, u.Infinite)
	setString(&s.Orientation, u.Orientation)
	setString(&s.GestureOrientation, u.GestureOrientation)
	setFloat(&s.TouchMultiplier, u.TouchMultiplier)
	setFloat(&s.WheelMultiplier, u.WheelMultiplier)
	setBool(&s.NormalizeWheel, u.NormalizeWheel)
	setFloat(&s.WheelStep, u.WheelStep)
	setBool(&s.Snap, u.Snap)

	// A configured duration without an explicit lerp selects duration mode.
	if u.Duration != nil && *u.Duration > 0 && u.Lerp == nil {
		s.Lerp = 0
	}

	cfg.UI = loadUISettings(paths.ConfigPath)
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Options converts the config into controller options. Wrapper, Content,
// Resolver and Input are left for the caller.
func (s ScrollConfig) Options() scroll.Options {
	opts := scroll.DefaultOptions()
	opts.SmoothWheel = s.SmoothWheel
	opts.SmoothTouch = s.SmoothTouch
	opts.Duration = s.Duration
	opts.Lerp = s.Lerp
	opts.Infinite = s.Infinite
	opts.Orientation = scroll.Orientation(strings.ToLower(s.Orientation))
	opts.GestureOrientation = scroll.GestureOrientation(strings.ToLower(s.GestureOrientation))
	if s.Easing != "" {
		if fn, ok := animate.EasingByName(s.Easing); ok {
			opts.Easing = fn
		} else {
			logging.Warn("config: unknown easing %q, using expo-out", s.Easing)
		}
	}
	opts.Normalizer = s.InputOptions()
	return opts
}

// InputOptions returns the normalizer options.
func (s ScrollConfig) InputOptions() input.Options {
	return input.Options{
		WheelMultiplier: s.WheelMultiplier,
		TouchMultiplier: s.TouchMultiplier,
		NormalizeWheel:  s.NormalizeWheel,
		WheelStep:       s.WheelStep,
	}
}
