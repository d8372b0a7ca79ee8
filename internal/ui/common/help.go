package common

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/glide/internal/keymap"
)

// RenderHelp renders the key binding overlay, grouped by ActionInfo group.
func RenderHelp(s Styles, km keymap.KeyMap, width int) string {
	var lines []string
	lines = append(lines, s.Title.Render("Keys"), "")

	keyCol := 0
	infos := keymap.ActionInfos()
	for _, info := range infos {
		keyCol = max(keyCol, runewidth.StringWidth(keymap.BindingForAction(km, info.Action).Help().Key))
	}

	group := ""
	for _, info := range infos {
		if info.Group != group {
			if group != "" {
				lines = append(lines, "")
			}
			group = info.Group
			lines = append(lines, s.HelpGroup.Render(group))
		}
		k := keymap.BindingForAction(km, info.Action).Help().Key
		pad := strings.Repeat(" ", keyCol-runewidth.StringWidth(k))
		lines = append(lines, "  "+s.HelpKey.Render(k)+pad+"  "+s.HelpDesc.Render(info.Desc))
	}

	box := s.HelpBox
	if width > 0 {
		inner := lipgloss.Width(strings.Join(lines, "\n")) + box.GetHorizontalFrameSize()
		if inner > width {
			box = box.MaxWidth(width)
		}
	}
	return box.Render(strings.Join(lines, "\n"))
}
