package input

import (
	tea "charm.land/bubbletea/v2"
)

// mouseEvent adapts a bubbletea mouse message to Event.
type mouseEvent struct {
	x, y      int
	mod       tea.KeyMod
	path      []Node
	prevented bool
}

func (e *mouseEvent) ZoomModifier() bool     { return e.mod.Contains(tea.ModCtrl) }
func (e *mouseEvent) Path() []Node           { return e.path }
func (e *mouseEvent) PreventDefault()        { e.prevented = true }
func (e *mouseEvent) DefaultPrevented() bool { return e.prevented }

func (n *Normalizer) newMouseEvent(x, y int, mod tea.KeyMod) *mouseEvent {
	return &mouseEvent{x: x, y: y, mod: mod, path: n.zones.PathAt(x, y)}
}

// HandleMsg feeds a bubbletea mouse message through the normalizer.
// It returns the source event when a delta was emitted.
func (n *Normalizer) HandleMsg(msg tea.Msg) (Event, bool) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		step := n.opts.WheelStep
		var dx, dy float64
		switch msg.Button {
		case tea.MouseWheelUp:
			dy = -step
		case tea.MouseWheelDown:
			dy = step
		case tea.MouseWheelLeft:
			dx = -step
		case tea.MouseWheelRight:
			dx = step
		default:
			return nil, false
		}
		// Terminals report shift+wheel as vertical; treat it as horizontal.
		if msg.Mod.Contains(tea.ModShift) && dx == 0 {
			dx, dy = dy, 0
		}
		ev := n.newMouseEvent(msg.X, msg.Y, msg.Mod)
		n.Wheel(dx, dy, ev)
		return ev, true

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			n.TouchStart(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseMotionMsg:
		if msg.Button == tea.MouseLeft && n.touching {
			ev := n.newMouseEvent(msg.X, msg.Y, msg.Mod)
			n.TouchMove(float64(msg.X), float64(msg.Y), ev)
			return ev, true
		}
	case tea.MouseReleaseMsg:
		n.TouchEnd()
	}
	return nil, false
}
