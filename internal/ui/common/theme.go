package common

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeGruvbox      ThemeID = "gruvbox"
	ThemeGruvboxLight ThemeID = "gruvbox-light"
	ThemeTokyoNight   ThemeID = "tokyo-night"
	ThemeNord         ThemeID = "nord"
	ThemeDracula      ThemeID = "dracula"
)

// ThemeColors defines all colors used by the pager.
type ThemeColors struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Border     color.Color

	Primary   color.Color
	Secondary color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Info      color.Color

	Surface   color.Color
	Selection color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Colors ThemeColors
}

// AvailableThemes returns all predefined themes.
func AvailableThemes() []Theme {
	return []Theme{
		GruvboxTheme(),
		GruvboxLightTheme(),
		TokyoNightTheme(),
		NordTheme(),
		DraculaTheme(),
	}
}

// GetTheme returns a theme by ID, defaulting to Gruvbox.
func GetTheme(id ThemeID) Theme {
	want := ThemeID(strings.ToLower(string(id)))
	for _, t := range AvailableThemes() {
		if t.ID == want {
			return t
		}
	}
	return GruvboxTheme()
}

// GruvboxTheme - warm retro colors
func GruvboxTheme() Theme {
	return Theme{
		ID:   ThemeGruvbox,
		Name: "Gruvbox",
		Colors: ThemeColors{
			Background: lipgloss.Color("#282828"),
			Foreground: lipgloss.Color("#ebdbb2"),
			Muted:      lipgloss.Color("#928374"),
			Border:     lipgloss.Color("#3c3836"),

			Primary:   lipgloss.Color("#fe8019"),
			Secondary: lipgloss.Color("#d3869b"),
			Success:   lipgloss.Color("#b8bb26"),
			Warning:   lipgloss.Color("#fabd2f"),
			Error:     lipgloss.Color("#fb4934"),
			Info:      lipgloss.Color("#83a598"),

			Surface:   lipgloss.Color("#3c3836"),
			Selection: lipgloss.Color("#504945"),
		},
	}
}

// GruvboxLightTheme - warm retro light variant
func GruvboxLightTheme() Theme {
	return Theme{
		ID:   ThemeGruvboxLight,
		Name: "Gruvbox Light",
		Colors: ThemeColors{
			Background: lipgloss.Color("#fbf1c7"),
			Foreground: lipgloss.Color("#3c3836"),
			Muted:      lipgloss.Color("#928374"),
			Border:     lipgloss.Color("#ebdbb2"),

			Primary:   lipgloss.Color("#d65d0e"),
			Secondary: lipgloss.Color("#b16286"),
			Success:   lipgloss.Color("#98971a"),
			Warning:   lipgloss.Color("#d79921"),
			Error:     lipgloss.Color("#cc241d"),
			Info:      lipgloss.Color("#458588"),

			Surface:   lipgloss.Color("#f2e5bc"),
			Selection: lipgloss.Color("#ebdbb2"),
		},
	}
}

// TokyoNightTheme - cool blue tones
func TokyoNightTheme() Theme {
	return Theme{
		ID:   ThemeTokyoNight,
		Name: "Tokyo Night",
		Colors: ThemeColors{
			Background: lipgloss.Color("#1a1b26"),
			Foreground: lipgloss.Color("#a9b1d6"),
			Muted:      lipgloss.Color("#565f89"),
			Border:     lipgloss.Color("#292e42"),

			Primary:   lipgloss.Color("#7aa2f7"),
			Secondary: lipgloss.Color("#bb9af7"),
			Success:   lipgloss.Color("#9ece6a"),
			Warning:   lipgloss.Color("#e0af68"),
			Error:     lipgloss.Color("#f7768e"),
			Info:      lipgloss.Color("#7dcfff"),

			Surface:   lipgloss.Color("#1f2335"),
			Selection: lipgloss.Color("#33467c"),
		},
	}
}

// NordTheme - cool, muted arctic colors
func NordTheme() Theme {
	return Theme{
		ID:   ThemeNord,
		Name: "Nord",
		Colors: ThemeColors{
			Background: lipgloss.Color("#2e3440"),
			Foreground: lipgloss.Color("#eceff4"),
			Muted:      lipgloss.Color("#4c566a"),
			Border:     lipgloss.Color("#3b4252"),

			Primary:   lipgloss.Color("#88c0d0"),
			Secondary: lipgloss.Color("#b48ead"),
			Success:   lipgloss.Color("#a3be8c"),
			Warning:   lipgloss.Color("#ebcb8b"),
			Error:     lipgloss.Color("#bf616a"),
			Info:      lipgloss.Color("#81a1c1"),

			Surface:   lipgloss.Color("#3b4252"),
			Selection: lipgloss.Color("#434c5e"),
		},
	}
}

// DraculaTheme - purple/pink accents
func DraculaTheme() Theme {
	return Theme{
		ID:   ThemeDracula,
		Name: "Dracula",
		Colors: ThemeColors{
			Background: lipgloss.Color("#282a36"),
			Foreground: lipgloss.Color("#f8f8f2"),
			Muted:      lipgloss.Color("#6272a4"),
			Border:     lipgloss.Color("#44475a"),

			Primary:   lipgloss.Color("#bd93f9"),
			Secondary: lipgloss.Color("#ff79c6"),
			Success:   lipgloss.Color("#50fa7b"),
			Warning:   lipgloss.Color("#f1fa8c"),
			Error:     lipgloss.Color("#ff5555"),
			Info:      lipgloss.Color("#8be9fd"),

			Surface:   lipgloss.Color("#2d303e"),
			Selection: lipgloss.Color("#44475a"),
		},
	}
}
