// Package emitter is a small typed publish/subscribe registry keyed by event name.
package emitter

import "container/list"

// Subscription identifies a registered handler.
type Subscription struct {
	name string
	elem *list.Element
}

// Valid reports whether the subscription refers to a registered handler.
func (s Subscription) Valid() bool { return s.elem != nil }

// Emitter dispatches payloads of type T to handlers in registration order.
// Not safe for concurrent use.
type Emitter[T any] struct {
	events map[string]*list.List
}

// New returns an empty emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{events: make(map[string]*list.List)}
}

// On registers fn for name.
func (e *Emitter[T]) On(name string, fn func(T)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	if e.events == nil {
		e.events = make(map[string]*list.List)
	}
	l, ok := e.events[name]
	if !ok {
		l = list.New()
		e.events[name] = l
	}
	return Subscription{name: name, elem: l.PushBack(fn)}
}

// Off removes a handler. Removing twice is a no-op.
func (e *Emitter[T]) Off(sub Subscription) {
	if sub.elem == nil {
		return
	}
	l, ok := e.events[sub.name]
	if !ok {
		return
	}
	// list.Remove ignores elements that belong to another list, which covers
	// handles that outlived Clear.
	l.Remove(sub.elem)
	if l.Len() == 0 {
		delete(e.events, sub.name)
	}
}

// Emit calls every handler registered for name. Handlers added or removed
// during dispatch take effect on the next Emit.
func (e *Emitter[T]) Emit(name string, payload T) {
	l, ok := e.events[name]
	if !ok || l.Len() == 0 {
		return
	}
	handlers := make([]func(T), 0, l.Len())
	for el := l.Front(); el != nil; el = el.Next() {
		handlers = append(handlers, el.Value.(func(T)))
	}
	for _, fn := range handlers {
		fn(payload)
	}
}

// Len returns the number of handlers registered for name.
func (e *Emitter[T]) Len(name string) int {
	if l, ok := e.events[name]; ok {
		return l.Len()
	}
	return 0
}

// Clear drops every handler.
func (e *Emitter[T]) Clear() {
	e.events = make(map[string]*list.List)
}
