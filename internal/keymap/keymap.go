package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/glide/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionLineDown    Action = "line_down"
	ActionLineUp      Action = "line_up"
	ActionPageDown    Action = "page_down"
	ActionPageUp      Action = "page_up"
	ActionColumnLeft  Action = "column_left"
	ActionColumnRight Action = "column_right"
	ActionTop         Action = "top"
	ActionBottom      Action = "bottom"

	ActionNextHeading Action = "next_heading"
	ActionPrevHeading Action = "prev_heading"

	ActionToggleStop Action = "toggle_stop"
	ActionToggleTOC  Action = "toggle_toc"
	ActionCopyLine   Action = "copy_line"
	ActionReload     Action = "reload"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the pager.
type KeyMap struct {
	LineDown    key.Binding
	LineUp      key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	ColumnLeft  key.Binding
	ColumnRight key.Binding
	Top         key.Binding
	Bottom      key.Binding

	NextHeading key.Binding
	PrevHeading key.Binding

	ToggleStop key.Binding
	ToggleTOC  key.Binding
	CopyLine   key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var defaults = []bindingDef{
	{action: ActionLineDown, keys: []string{"j", "down"}, desc: "down"},
	{action: ActionLineUp, keys: []string{"k", "up"}, desc: "up"},
	{action: ActionPageDown, keys: []string{"pgdown", "space", "ctrl+d"}, desc: "page down"},
	{action: ActionPageUp, keys: []string{"pgup", "b", "ctrl+u"}, desc: "page up"},
	{action: ActionColumnLeft, keys: []string{"h", "left"}, desc: "left"},
	{action: ActionColumnRight, keys: []string{"l", "right"}, desc: "right"},
	{action: ActionTop, keys: []string{"g", "home"}, desc: "top"},
	{action: ActionBottom, keys: []string{"G", "end"}, desc: "bottom"},
	{action: ActionNextHeading, keys: []string{"n"}, desc: "next heading"},
	{action: ActionPrevHeading, keys: []string{"p", "N"}, desc: "previous heading"},
	{action: ActionToggleStop, keys: []string{"s"}, desc: "stop/start"},
	{action: ActionToggleTOC, keys: []string{"t"}, desc: "contents"},
	{action: ActionCopyLine, keys: []string{"y"}, desc: "copy line"},
	{action: ActionReload, keys: []string{"r"}, desc: "reload"},
	{action: ActionHelp, keys: []string{"?"}, desc: "help"},
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	var km KeyMap
	for _, def := range defaults {
		if slot := km.slot(def.action); slot != nil {
			*slot = bindingFromDef(cfg, def)
		}
	}
	return km
}

func (km *KeyMap) slot(action Action) *key.Binding {
	switch action {
	case ActionLineDown:
		return &km.LineDown
	case ActionLineUp:
		return &km.LineUp
	case ActionPageDown:
		return &km.PageDown
	case ActionPageUp:
		return &km.PageUp
	case ActionColumnLeft:
		return &km.ColumnLeft
	case ActionColumnRight:
		return &km.ColumnRight
	case ActionTop:
		return &km.Top
	case ActionBottom:
		return &km.Bottom
	case ActionNextHeading:
		return &km.NextHeading
	case ActionPrevHeading:
		return &km.PrevHeading
	case ActionToggleStop:
		return &km.ToggleStop
	case ActionToggleTOC:
		return &km.ToggleTOC
	case ActionCopyLine:
		return &km.CopyLine
	case ActionReload:
		return &km.Reload
	case ActionHelp:
		return &km.Help
	case ActionQuit:
		return &km.Quit
	default:
		return nil
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// PairHint joins two bindings with a slash using their primary keys.
func PairHint(a, b key.Binding) string {
	left := BindingHint(a)
	right := BindingHint(b)
	if left == "" {
		return right
	}
	if right == "" {
		return left
	}
	return left + "/" + right
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for the help overlay.
func ActionInfos() []ActionInfo {
	return []ActionInfo{
		{Action: ActionLineDown, Desc: "Scroll down a line", Group: "Scroll"},
		{Action: ActionLineUp, Desc: "Scroll up a line", Group: "Scroll"},
		{Action: ActionPageDown, Desc: "Scroll down a page", Group: "Scroll"},
		{Action: ActionPageUp, Desc: "Scroll up a page", Group: "Scroll"},
		{Action: ActionColumnLeft, Desc: "Scroll left", Group: "Scroll"},
		{Action: ActionColumnRight, Desc: "Scroll right", Group: "Scroll"},
		{Action: ActionTop, Desc: "Jump to top", Group: "Scroll"},
		{Action: ActionBottom, Desc: "Jump to bottom", Group: "Scroll"},
		{Action: ActionNextHeading, Desc: "Next heading", Group: "Headings"},
		{Action: ActionPrevHeading, Desc: "Previous heading", Group: "Headings"},
		{Action: ActionToggleStop, Desc: "Stop or resume scrolling", Group: "Pager"},
		{Action: ActionToggleTOC, Desc: "Toggle contents", Group: "Pager"},
		{Action: ActionCopyLine, Desc: "Copy top line", Group: "Pager"},
		{Action: ActionReload, Desc: "Reload document", Group: "Pager"},
		{Action: ActionHelp, Desc: "Toggle help", Group: "Pager"},
		{Action: ActionQuit, Desc: "Quit", Group: "Pager"},
	}
}

// BindingForAction returns the binding for the given action.
func BindingForAction(km KeyMap, action Action) key.Binding {
	if slot := km.slot(action); slot != nil {
		return *slot
	}
	return key.Binding{}
}
