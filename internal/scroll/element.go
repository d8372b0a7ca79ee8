package scroll

// Rect is a box relative to the visible screen.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Element is anything with an on-screen position that can be scrolled to.
type Element interface {
	Rect() Rect
}

// Resolver finds elements by selector.
type Resolver interface {
	Query(selector string) (Element, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(selector string) (Element, bool)

// Query implements Resolver.
func (f ResolverFunc) Query(selector string) (Element, bool) { return f(selector) }

// Keywords resolved before selectors, so these strings never reach a Resolver.
var (
	startKeywords = map[string]bool{"top": true, "left": true, "start": true}
	endKeywords   = map[string]bool{"bottom": true, "right": true, "end": true}
)
