// Package size tracks the dimensions of the scroll container and its content.
package size

import "sync"

// Provider exposes the current dimensions of an observed region.
type Provider interface {
	Width() int
	Height() int
}

// Observed holds dimensions that the host updates as layout changes.
// Reads are safe from any goroutine.
type Observed struct {
	mu       sync.RWMutex
	width    int
	height   int
	onChange func(width, height int)
}

// NewObserved returns an Observed with initial dimensions.
func NewObserved(width, height int) *Observed {
	return &Observed{width: width, height: height}
}

// Set updates the dimensions and reports whether they changed.
func (o *Observed) Set(width, height int) bool {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	o.mu.Lock()
	if o.width == width && o.height == height {
		o.mu.Unlock()
		return false
	}
	o.width = width
	o.height = height
	fn := o.onChange
	o.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
	return true
}

// OnChange registers a callback invoked after the dimensions change.
func (o *Observed) OnChange(fn func(width, height int)) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// Width returns the current width.
func (o *Observed) Width() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.width
}

// Height returns the current height.
func (o *Observed) Height() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.height
}
