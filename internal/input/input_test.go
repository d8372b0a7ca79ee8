package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func collect(n *Normalizer) *[]Delta {
	var got []Delta
	n.On(func(d Delta) { got = append(got, d) })
	return &got
}

func TestWheelNormalizeAndMultiplier(t *testing.T) {
	n := NewNormalizer(Options{WheelMultiplier: 2, TouchMultiplier: 2, NormalizeWheel: true, WheelStep: 3}, nil)
	got := collect(n)

	n.Wheel(-250, 40, NewEvent(false))
	if len(*got) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(*got))
	}
	d := (*got)[0]
	if d.Kind != KindWheel || d.DeltaX != -200 || d.DeltaY != 80 {
		t.Fatalf("unexpected delta: %+v", d)
	}

	n = NewNormalizer(Options{WheelMultiplier: 1, NormalizeWheel: false}, nil)
	got = collect(n)
	n.Wheel(0, 250, nil)
	if (*got)[0].DeltaY != 250 {
		t.Fatalf("expected unclamped delta, got %v", (*got)[0].DeltaY)
	}
}

func TestTouchDeltaIsNegatedDisplacement(t *testing.T) {
	n := NewNormalizer(DefaultOptions(), nil)
	got := collect(n)

	n.TouchMove(5, 5, nil)
	if len(*got) != 0 {
		t.Fatalf("move without a prior sample should not emit")
	}
	n.TouchStart(10, 20)
	n.TouchMove(12, 15, nil)
	n.TouchMove(12, 10, nil)

	if len(*got) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(*got))
	}
	if d := (*got)[0]; d.Kind != KindTouch || d.DeltaX != -4 || d.DeltaY != 10 {
		t.Fatalf("unexpected first delta: %+v", d)
	}
	if d := (*got)[1]; d.DeltaX != 0 || d.DeltaY != 10 {
		t.Fatalf("unexpected second delta: %+v", d)
	}
}

func TestHandleMsgWheelDirections(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.MouseWheelMsg
		dx, dy float64
	}{
		{"down", tea.MouseWheelMsg{Button: tea.MouseWheelDown}, 0, 3},
		{"up", tea.MouseWheelMsg{Button: tea.MouseWheelUp}, 0, -3},
		{"right", tea.MouseWheelMsg{Button: tea.MouseWheelRight}, 3, 0},
		{"left", tea.MouseWheelMsg{Button: tea.MouseWheelLeft}, -3, 0},
		{"shift down", tea.MouseWheelMsg{Button: tea.MouseWheelDown, Mod: tea.ModShift}, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(DefaultOptions(), nil)
			got := collect(n)
			ev, ok := n.HandleMsg(tt.msg)
			if !ok || ev == nil {
				t.Fatalf("expected wheel to produce an event")
			}
			if len(*got) != 1 || (*got)[0].DeltaX != tt.dx || (*got)[0].DeltaY != tt.dy {
				t.Fatalf("got %+v, want dx=%v dy=%v", *got, tt.dx, tt.dy)
			}
		})
	}
}

func TestHandleMsgCtrlWheelIsZoom(t *testing.T) {
	n := NewNormalizer(DefaultOptions(), nil)
	ev, ok := n.HandleMsg(tea.MouseWheelMsg{Button: tea.MouseWheelDown, Mod: tea.ModCtrl})
	if !ok || !ev.ZoomModifier() {
		t.Fatalf("expected ctrl+wheel to carry the zoom modifier")
	}
}

func TestHandleMsgDrag(t *testing.T) {
	n := NewNormalizer(DefaultOptions(), nil)
	got := collect(n)

	if _, ok := n.HandleMsg(tea.MouseMotionMsg{X: 1, Y: 1, Button: tea.MouseLeft}); ok {
		t.Fatalf("motion before click should not emit")
	}
	n.HandleMsg(tea.MouseClickMsg{X: 4, Y: 10, Button: tea.MouseLeft})
	if _, ok := n.HandleMsg(tea.MouseMotionMsg{X: 4, Y: 7, Button: tea.MouseLeft}); !ok {
		t.Fatalf("expected drag to emit")
	}
	n.HandleMsg(tea.MouseReleaseMsg{X: 4, Y: 7, Button: tea.MouseLeft})
	if n.Touching() {
		t.Fatalf("expected release to end the drag")
	}
	if len(*got) != 1 || (*got)[0].DeltaY != 6 {
		t.Fatalf("unexpected deltas: %+v", *got)
	}
}

func TestZonesPathAndOptOut(t *testing.T) {
	z := NewZones(nil)
	z.Prevent("toc")
	rects := map[string]zoneRect{
		"body": {startX: 0, startY: 0, endX: 59, endY: 23},
		"toc":  {startX: 60, startY: 0, endX: 79, endY: 23},
	}
	z.lookup = func(id string) (zoneRect, bool) {
		r, ok := rects[id]
		return r, ok
	}

	if path := z.PathAt(10, 5); len(path) != 0 || HasOptOut(NewEvent(false, path...)) {
		t.Fatalf("unregistered body zone should not be on the path: %v", path)
	}
	if path := z.PathAt(70, 5); !HasOptOut(NewEvent(false, path...)) {
		t.Fatalf("toc cell should opt out: %v", path)
	}
	if path := z.PathAt(100, 5); len(path) != 0 {
		t.Fatalf("expected empty path outside zones, got %v", path)
	}

	n := NewNormalizer(DefaultOptions(), z)
	ev, _ := n.HandleMsg(tea.MouseWheelMsg{X: 65, Y: 2, Button: tea.MouseWheelDown})
	if !HasOptOut(ev) {
		t.Fatalf("expected wheel over toc to carry the opt-out marker")
	}
}

func TestDestroyDropsSubscribers(t *testing.T) {
	n := NewNormalizer(DefaultOptions(), nil)
	got := collect(n)
	unsubscribe := n.On(func(Delta) { t.Fatalf("unsubscribed handler called") })
	unsubscribe()
	n.Wheel(0, 1, nil)
	n.Destroy()
	n.Wheel(0, 1, nil)
	if len(*got) != 1 {
		t.Fatalf("expected 1 delta before destroy, got %d", len(*got))
	}
}

func TestMarkerAndBasicEvent(t *testing.T) {
	ev := NewEvent(true, Marker("other"), Marker(PreventAttribute))
	if !ev.ZoomModifier() || !HasOptOut(ev) {
		t.Fatalf("unexpected event state")
	}
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Fatalf("expected default prevented")
	}
	if HasOptOut(nil) {
		t.Fatalf("nil event has no path")
	}
}
