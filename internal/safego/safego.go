package safego

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/glide/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// PanicError is returned by RunErr when fn panicked.
type PanicError struct {
	Name      string
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Name, e.Recovered)
}

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

func label(name string) string {
	if name == "" {
		return "goroutine"
	}
	return name
}

// report logs a recovered panic and forwards it to the registered handler.
func report(name string, r any) {
	stack := debug.Stack()
	logging.Error("panic in %s: %v\n%s", name, r, stack)
	panicHandlerMu.RLock()
	handler := panicHandler
	panicHandlerMu.RUnlock()
	if handler != nil {
		func() {
			defer func() { _ = recover() }()
			handler(name, r, stack)
		}()
	}
}

// Run executes fn and converts panics into logged errors.
// This does not recover from runtime-fatal errors (e.g., concurrent map writes).
func Run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			report(label(name), r)
		}
	}()
	fn()
}

// RunErr executes fn and returns its error, or a *PanicError if it panicked.
func RunErr(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			name := label(name)
			report(name, r)
			err = &PanicError{Name: name, Recovered: r}
		}
	}()
	return fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

// GoErr runs fn in a new goroutine and delivers its result on the returned
// channel, which is closed afterwards.
func GoErr(name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- RunErr(name, fn)
	}()
	return done
}
