package common

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Styles contains all the pager styles
type Styles struct {
	// Header and status line
	Title   lipgloss.Style
	Header  lipgloss.Style
	Status  lipgloss.Style
	Muted   lipgloss.Style
	FlagOn  lipgloss.Style
	FlagOff lipgloss.Style
	Percent lipgloss.Style

	// Body
	Body     lipgloss.Style
	Heading  []lipgloss.Style // by level, index 0 is h1
	Gutter   lipgloss.Style
	Selected lipgloss.Style

	// Diff lines
	DiffHeader lipgloss.Style
	DiffHunk   lipgloss.Style
	DiffAdd    lipgloss.Style
	DiffDel    lipgloss.Style

	// Table of contents
	TOC       lipgloss.Style
	TOCTitle  lipgloss.Style
	TOCEntry  lipgloss.Style
	TOCActive lipgloss.Style

	// Scrollbar
	Track lipgloss.Style
	Thumb lipgloss.Style

	// Help overlay
	HelpBox   lipgloss.Style
	HelpGroup lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() Styles {
	return NewStyles(GruvboxTheme())
}

// NewStyles builds styles from a theme palette.
func NewStyles(theme Theme) Styles {
	c := theme.Colors
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),
		Header: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Background(c.Surface),
		Status: lipgloss.NewStyle().
			Foreground(c.Muted).
			Background(c.Surface),
		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		FlagOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Warning),
		FlagOff: lipgloss.NewStyle().
			Foreground(c.Muted),
		Percent: lipgloss.NewStyle().
			Foreground(c.Info),

		Body: lipgloss.NewStyle().
			Foreground(c.Foreground),
		Heading: []lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(c.Primary),
			lipgloss.NewStyle().Bold(true).Foreground(c.Secondary),
			lipgloss.NewStyle().Bold(true).Foreground(c.Info),
			lipgloss.NewStyle().Foreground(c.Success),
			lipgloss.NewStyle().Foreground(c.Warning),
			lipgloss.NewStyle().Foreground(c.Muted),
		},
		Gutter: lipgloss.NewStyle().
			Foreground(c.Muted),
		Selected: lipgloss.NewStyle().
			Background(c.Selection),

		DiffHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),
		DiffHunk: lipgloss.NewStyle().
			Foreground(c.Info),
		DiffAdd: lipgloss.NewStyle().
			Foreground(c.Success),
		DiffDel: lipgloss.NewStyle().
			Foreground(c.Error),

		TOC: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c.Border).
			PaddingLeft(1),
		TOCTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Muted),
		TOCEntry: lipgloss.NewStyle().
			Foreground(c.Foreground),
		TOCActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),

		Track: lipgloss.NewStyle().
			Foreground(c.Border),
		Thumb: lipgloss.NewStyle().
			Foreground(c.Primary),

		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Primary).
			Padding(0, 1),
		HelpGroup: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Muted),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Foreground),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Success).
			Foreground(c.Background),
		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Error).
			Foreground(c.Background),
		ToastWarning: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Warning).
			Foreground(c.Background),
		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(c.Info).
			Foreground(c.Background),
	}
}

// HeadingStyle returns the style for a heading level (1-6).
func (s Styles) HeadingStyle(level int) lipgloss.Style {
	if len(s.Heading) == 0 {
		return s.Body
	}
	level = max(1, min(level, len(s.Heading)))
	return s.Heading[level-1]
}

// RenderHelpBar renders key-description pairs on one line.
func RenderHelpBar(s Styles, items []struct{ Key, Desc string }, width int) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, s.HelpKey.Render(item.Key)+" "+s.Muted.Render(item.Desc))
	}
	return s.Status.Width(width).Render(strings.Join(parts, "  "))
}
