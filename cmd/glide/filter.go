//go:build !windows

package main

import (
	"bytes"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/safego"
)

var (
	lastMouseMotionEvent   time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion events at the same cell. Wheel
// events always pass: the scroll controller accumulates their deltas.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}
	if motion.X != lastMouseX || motion.Y != lastMouseY {
		lastMouseX = motion.X
		lastMouseY = motion.Y
		lastMouseMotionEvent = time.Now()
		return msg
	}
	now := time.Now()
	if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
		return nil
	}
	lastMouseMotionEvent = now
	return msg
}

// startSignalDebug logs a goroutine dump on SIGUSR1 in dev builds or when
// GLIDE_DEBUG_SIGNALS is set.
func startSignalDebug() {
	if version != "dev" && strings.TrimSpace(os.Getenv("GLIDE_DEBUG_SIGNALS")) == "" {
		return
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	safego.Go("signal-debug", func() {
		for range ch {
			var buf bytes.Buffer
			if err := pprof.Lookup("goroutine").WriteTo(&buf, 2); err != nil {
				logging.Warn("Failed to write goroutine dump: %v", err)
				continue
			}
			logging.Warn("GOROUTINE DUMP\n%s", buf.String())
		}
	})
}
