package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
)

// recovered turns a recovered panic value into an Error message.
func recovered(where string, r any) tea.Msg {
	logging.Error("panic in %s: %v\n%s", where, r, debug.Stack())
	return messages.Error{Err: fmt.Errorf("%s panic: %v", where, r), Context: where, Logged: true}
}

// SafeCmd runs cmd with panic recovery. A panic becomes a messages.Error.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = recovered("command", r)
			}
		}()
		return cmd()
	}
}

// SafeBatch drops nil commands and wraps the rest with SafeCmd.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	var safe []tea.Cmd
	for _, cmd := range cmds {
		if wrapped := SafeCmd(cmd); wrapped != nil {
			safe = append(safe, wrapped)
		}
	}
	if len(safe) == 0 {
		return nil
	}
	if len(safe) == 1 {
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick schedules fn after d. The frame loop and toast expiry use it.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = recovered("tick", r)
			}
		}()
		return fn(t)
	})
}
