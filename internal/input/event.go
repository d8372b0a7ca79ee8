package input

// Marker is a Node carrying a single attribute.
type Marker string

// HasAttribute reports whether name is the marker's attribute.
func (m Marker) HasAttribute(name string) bool { return string(m) == name }

// BasicEvent is an Event for hosts without a richer source event.
type BasicEvent struct {
	Zoom      bool
	Nodes     []Node
	prevented bool
}

// NewEvent builds a BasicEvent.
func NewEvent(zoom bool, path ...Node) *BasicEvent {
	return &BasicEvent{Zoom: zoom, Nodes: path}
}

func (e *BasicEvent) ZoomModifier() bool     { return e.Zoom }
func (e *BasicEvent) Path() []Node           { return e.Nodes }
func (e *BasicEvent) PreventDefault()        { e.prevented = true }
func (e *BasicEvent) DefaultPrevented() bool { return e.prevented }

// HasOptOut reports whether any node on the event path carries PreventAttribute.
func HasOptOut(ev Event) bool {
	if ev == nil {
		return false
	}
	for _, node := range ev.Path() {
		if node != nil && node.HasAttribute(PreventAttribute) {
			return true
		}
	}
	return false
}
