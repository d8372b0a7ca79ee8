package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/messages"
)

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("NORD"); got.ID != ThemeNord {
		t.Fatalf("GetTheme(NORD) = %q", got.ID)
	}
	if got := GetTheme("unknown"); got.ID != ThemeGruvbox {
		t.Fatalf("unknown theme should fall back to gruvbox, got %q", got.ID)
	}
}

func TestHeadingStyleClampsLevel(t *testing.T) {
	s := DefaultStyles()
	if got := s.HeadingStyle(0).Render("x"); got != s.Heading[0].Render("x") {
		t.Fatalf("level 0 should use h1 style")
	}
	if got := s.HeadingStyle(9).Render("x"); got != s.Heading[5].Render("x") {
		t.Fatalf("level 9 should use h6 style")
	}
}

func TestSafeCmdRecoversPanic(t *testing.T) {
	cmd := SafeCmd(func() tea.Msg { panic("boom") })
	msg := cmd()
	errMsg, ok := msg.(messages.Error)
	if !ok {
		t.Fatalf("expected messages.Error, got %T", msg)
	}
	if !errMsg.Logged || errMsg.Context != "command" {
		t.Fatalf("unexpected error message: %+v", errMsg)
	}
	if SafeCmd(nil) != nil {
		t.Fatalf("SafeCmd(nil) should be nil")
	}
}

func TestSafeBatchSkipsNil(t *testing.T) {
	if SafeBatch(nil, nil) != nil {
		t.Fatalf("all-nil batch should be nil")
	}
	cmd := SafeBatch(nil, func() tea.Msg { return "ok" })
	if got := cmd(); got != "ok" {
		t.Fatalf("single command should run directly, got %v", got)
	}
}

func TestReportErrorNil(t *testing.T) {
	if ReportError("ctx", nil, "") != nil {
		t.Fatalf("nil error should produce no command")
	}
	if ReportError("ctx", errors.New("x"), "") == nil {
		t.Fatalf("error should produce a command")
	}
}

func TestToastLifecycle(t *testing.T) {
	now := time.Unix(100, 0)
	m := NewToastModel(DefaultStyles())
	m.now = func() time.Time { return now }

	_, cmd := m.Update(messages.Toast{Message: "copied", Level: messages.ToastSuccess})
	if cmd == nil {
		t.Fatalf("showing a toast should schedule a dismissal")
	}
	if !m.Visible() || !strings.Contains(ansi.Strip(m.View()), "copied") {
		t.Fatalf("toast should be visible")
	}

	m.Update(ToastDismissed{})
	if !m.Visible() {
		t.Fatalf("early dismissal tick should not hide the toast")
	}

	now = now.Add(4 * time.Second)
	m.Update(ToastDismissed{})
	if m.Visible() || m.View() != "" {
		t.Fatalf("toast should be hidden after its duration")
	}
}

func TestRenderHelpListsActions(t *testing.T) {
	km := keymap.New(config.KeyMapConfig{})
	out := ansi.Strip(RenderHelp(DefaultStyles(), km, 80))
	for _, want := range []string{"Keys", "Scroll", "Headings", "Next heading", "q/ctrl+c"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
}
