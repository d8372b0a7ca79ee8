package input

import (
	zone "github.com/lrstanley/bubblezone"
)

type zoneRect struct {
	startX, startY int
	endX, endY     int
}

func (r zoneRect) contains(x, y int) bool {
	return x >= r.startX && x <= r.endX && y >= r.startY && y <= r.endY
}

// zoneNode is a marked screen region the pointer is inside.
type zoneNode struct {
	id      string
	prevent bool
}

func (n zoneNode) HasAttribute(name string) bool {
	return n.prevent && name == PreventAttribute
}

// Zones tracks marked screen regions and which of them opt out of smoothing.
type Zones struct {
	manager *zone.Manager
	ids     []string
	prevent map[string]bool

	// lookup resolves a zone's bounds; defaults to the zone manager.
	lookup func(id string) (zoneRect, bool)
}

// NewZones wraps a bubblezone manager. A nil manager disables marking.
func NewZones(manager *zone.Manager) *Zones {
	z := &Zones{
		manager: manager,
		prevent: make(map[string]bool),
	}
	z.lookup = z.managerBounds
	return z
}

// Prevent registers id as an opt-out region.
func (z *Zones) Prevent(id string) {
	z.track(id)
	z.prevent[id] = true
}

func (z *Zones) track(id string) {
	if _, ok := z.prevent[id]; !ok {
		z.ids = append(z.ids, id)
	}
}

// Mark wraps rendered text in a zone marker.
func (z *Zones) Mark(id, s string) string {
	if z == nil || z.manager == nil {
		return s
	}
	return z.manager.Mark(id, s)
}

// Scan records zone positions from a fully rendered frame and strips markers.
func (z *Zones) Scan(s string) string {
	if z == nil || z.manager == nil {
		return s
	}
	return z.manager.Scan(s)
}

// PathAt returns the registered zones containing the cell, most recently
// registered first.
func (z *Zones) PathAt(x, y int) []Node {
	if z == nil {
		return nil
	}
	var path []Node
	for i := len(z.ids) - 1; i >= 0; i-- {
		id := z.ids[i]
		r, ok := z.lookup(id)
		if !ok || !r.contains(x, y) {
			continue
		}
		path = append(path, zoneNode{id: id, prevent: z.prevent[id]})
	}
	return path
}

func (z *Zones) managerBounds(id string) (zoneRect, bool) {
	if z.manager == nil {
		return zoneRect{}, false
	}
	info := z.manager.Get(id)
	if info == nil || info.IsZero() {
		return zoneRect{}, false
	}
	return zoneRect{startX: info.StartX, startY: info.StartY, endX: info.EndX, endY: info.EndY}, true
}

