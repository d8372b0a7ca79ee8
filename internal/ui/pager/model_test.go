package pager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/content"
	"github.com/andyrewlee/glide/internal/messages"
)

// testDocument has 100 lines with headings at lines 0, 30 and 60.
func testDocument() string {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	lines[0] = "# Section 1"
	lines[30] = "## Section 2"
	lines[60] = "## Section 3"
	return strings.Join(lines, "\n")
}

func newTestModel(t *testing.T, mutate func(*config.Config)) *Model {
	t.Helper()
	cfg, err := config.LoadFrom(config.PathsAt(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	m, err := New(Options{
		Config: cfg,
		Source: Source{Doc: content.Parse("test.md", testDocument())},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	return m
}

// clocks keeps each model's frame time running across runFrames calls.
var clocks = map[*Model]time.Time{}

func clockFor(t *testing.T, m *Model) time.Time {
	t.Helper()
	at, ok := clocks[m]
	if !ok {
		at = time.Unix(0, 0)
		t.Cleanup(func() { delete(clocks, m) })
	}
	return at
}

// idle advances m's clock without delivering frames.
func idle(t *testing.T, m *Model, d time.Duration) {
	t.Helper()
	clocks[m] = clockFor(t, m).Add(d)
}

// frame delivers one 16ms frame.
func frame(t *testing.T, m *Model) {
	t.Helper()
	at := clockFor(t, m).Add(16 * time.Millisecond)
	clocks[m] = at
	m.Update(frameMsg{at: at})
}

// runFrames drives the frame loop until nothing is animating, calling each
// after every frame when it is not nil.
func runFrames(t *testing.T, m *Model) { runFramesWith(t, m, nil) }

func runFramesWith(t *testing.T, m *Model, each func()) {
	t.Helper()
	for i := 0; m.needsFrame(); i++ {
		if i > 1000 {
			t.Fatalf("animation did not settle")
		}
		frame(t, m)
		if each != nil {
			each()
		}
	}
}

func press(m *Model, text string) {
	r := []rune(text)
	m.Update(tea.KeyPressMsg{Code: r[0], Text: text})
}

func wheel(m *Model, button tea.MouseButton) {
	m.Update(tea.MouseWheelMsg{X: 5, Y: 5, Button: button})
}

func offset(m *Model) float64 {
	return m.body.ScrollOffset(false)
}

func TestLayout(t *testing.T) {
	m := newTestModel(t, nil)
	if got := m.tocWidth(); got != 20 {
		t.Fatalf("expected toc width 20, got %d", got)
	}
	if m.body.Width() != 59 || m.body.Height() != 10 {
		t.Fatalf("unexpected body size %dx%d", m.body.Width(), m.body.Height())
	}
	if got := m.controller.Limit(); got != 90 {
		t.Fatalf("expected limit 90, got %v", got)
	}
}

func TestWheelAnimatesToTarget(t *testing.T) {
	m := newTestModel(t, nil)
	wheel(m, tea.MouseWheelDown)

	if !m.controller.Animating() {
		t.Fatalf("expected wheel input to start an animation")
	}
	if got := m.controller.TargetScroll(); got != 3 {
		t.Fatalf("expected target 3, got %v", got)
	}
	if offset(m) != 0 {
		t.Fatalf("expected offset unchanged before the first frame, got %v", offset(m))
	}

	runFrames(t, m)
	if offset(m) != 3 || m.topLine() != 3 {
		t.Fatalf("expected to settle on line 3, got offset %v", offset(m))
	}
	if m.controller.IsScrolling() {
		t.Fatalf("expected scrolling to end after the animation")
	}
}

func TestNativeWheelWhenSmoothingDisabled(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Scroll.SmoothWheel = false })
	wheel(m, tea.MouseWheelDown)

	if offset(m) != 3 {
		t.Fatalf("expected immediate native scroll to 3, got %v", offset(m))
	}
	if m.controller.Animating() {
		t.Fatalf("native scroll should not animate")
	}
	if m.controller.TargetScroll() != 3 || m.controller.AnimatedScroll() != 3 {
		t.Fatalf("expected controller to resync to 3, got target %v animated %v",
			m.controller.TargetScroll(), m.controller.AnimatedScroll())
	}
}

func TestHeadingNavigation(t *testing.T) {
	m := newTestModel(t, nil)

	steps := []struct {
		key  string
		want float64
	}{
		{"n", 30},
		{"n", 60},
		{"p", 30},
		{"G", 90},
		{"g", 0},
	}
	for _, step := range steps {
		press(m, step.key)
		runFrames(t, m)
		if offset(m) != step.want {
			t.Fatalf("after %q expected offset %v, got %v", step.key, step.want, offset(m))
		}
	}
}

func TestLineKeysAccumulate(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "j")
	press(m, "j")
	press(m, "j")
	if got := m.controller.TargetScroll(); got != 3 {
		t.Fatalf("expected repeated presses to accumulate to 3, got %v", got)
	}
	runFrames(t, m)
	press(m, "k")
	runFrames(t, m)
	if offset(m) != 2 {
		t.Fatalf("expected offset 2, got %v", offset(m))
	}
}

func TestStopBlocksInput(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "s")
	if !m.controller.IsStopped() {
		t.Fatalf("expected controller to stop")
	}
	wheel(m, tea.MouseWheelDown)
	if m.controller.Animating() || offset(m) != 0 {
		t.Fatalf("stopped pager should ignore the wheel")
	}
	if !strings.Contains(ansi.Strip(m.toast.View()), "scrolling stopped") {
		t.Fatalf("expected stop toast, got %q", m.toast.View())
	}

	press(m, "s")
	wheel(m, tea.MouseWheelDown)
	runFrames(t, m)
	if offset(m) != 3 {
		t.Fatalf("expected wheel to work after resuming, got %v", offset(m))
	}
}

func TestToggleTOCPersists(t *testing.T) {
	m := newTestModel(t, nil)
	cmd, quit := m.handleKey(tea.KeyPressMsg{Code: 't', Text: "t"})
	if quit {
		t.Fatalf("toggle should not quit")
	}
	if m.tocWidth() != 0 || m.body.Width() != 79 {
		t.Fatalf("expected body to take the sidebar's columns, got width %d", m.body.Width())
	}
	if cmd == nil {
		t.Fatalf("expected a command persisting the setting")
	}
	cmd()

	cfg, err := config.LoadFrom(m.cfg.Paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.ShowTOC {
		t.Fatalf("expected show_toc to be saved as false")
	}
}

func TestTOCClickScrollsToHeading(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.MouseClickMsg{X: 65, Y: 3, Button: tea.MouseLeft})
	runFrames(t, m)
	if offset(m) != 30 {
		t.Fatalf("expected click on the second entry to reach line 30, got %v", offset(m))
	}
}

func TestInfiniteWrapsAround(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Scroll.Infinite = true })
	wheel(m, tea.MouseWheelUp)
	runFrames(t, m)

	if got := m.topLine(); got != 97 {
		t.Fatalf("expected to wrap to line 97, got %d", got)
	}
	if got := m.controller.Limit(); got != 100 {
		t.Fatalf("expected the wrap period to be the document length, got %v", got)
	}
	out := ansi.Strip(m.render())
	for _, want := range []string{"line 97", "line 99", "Section 1", "line 6"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected wrapped rows to contain %q:\n%s", want, out)
		}
	}
}

func TestInfiniteReachesEveryLine(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Scroll.Infinite = true })
	tops := map[int]bool{}
	sawLast := false
	record := func() {
		tops[m.topLine()] = true
		if strings.Contains(ansi.Strip(m.render()), "line 99") {
			sawLast = true
		}
	}

	for range 40 {
		wheel(m, tea.MouseWheelDown)
		runFramesWith(t, m, record)
	}
	if !sawLast {
		t.Fatalf("the last line was never drawn")
	}
	for line := range 100 {
		if !tops[line] {
			t.Fatalf("line %d never reached the top row", line)
		}
	}
}

func TestIdleGapIsNotAnimationTime(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) {
		cfg.Scroll.Duration = 1
		cfg.Scroll.Lerp = 0
	})
	press(m, "G")
	runFrames(t, m)
	if offset(m) != 90 {
		t.Fatalf("expected to settle at the bottom, got %v", offset(m))
	}

	idle(t, m, 5*time.Second)
	press(m, "g")
	frame(t, m)
	frame(t, m)
	if !m.controller.Animating() || offset(m) < 80 {
		t.Fatalf("a 1s animation jumped after idle: offset %v animating %v", offset(m), m.controller.Animating())
	}
	runFrames(t, m)
	if offset(m) != 0 {
		t.Fatalf("expected to settle at the top, got %v", offset(m))
	}
}

func TestRender(t *testing.T) {
	m := newTestModel(t, nil)
	out := ansi.Strip(m.render())
	for _, want := range []string{"test.md", "Contents", "Section 2", "line 5", "smooth"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected render to contain %q:\n%s", want, out)
		}
	}
	if rows := strings.Split(out, "\n"); len(rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows))
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	press(m, "?")
	if !m.showHelp || !strings.Contains(ansi.Strip(m.render()), "Next heading") {
		t.Fatalf("expected help overlay")
	}
	press(m, "j")
	if m.showHelp {
		t.Fatalf("expected any key to close help")
	}
	if m.controller.Animating() {
		t.Fatalf("closing help should not scroll")
	}
}

func TestReloadWithoutSource(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "r")
	if !strings.Contains(ansi.Strip(m.toast.View()), "nothing to reload") {
		t.Fatalf("expected warning toast, got %q", m.toast.View())
	}
}

func TestInitLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(testDocument()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadFrom(config.PathsAt(dir))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	m, err := New(Options{Config: cfg, Source: Source{Path: path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	if m.Document() != nil || !m.loading {
		t.Fatalf("expected model to start loading")
	}
	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
	msg := cmd()
	if _, ok := msg.(messages.DocumentLoaded); !ok {
		t.Fatalf("expected DocumentLoaded, got %T", msg)
	}
	m.Update(msg)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	if m.Document() == nil || m.Document().Height() != 100 {
		t.Fatalf("expected document to be loaded")
	}
	if m.controller.Limit() != 90 {
		t.Fatalf("expected limit 90, got %v", m.controller.Limit())
	}
}

func TestLoadFailureShowsError(t *testing.T) {
	cfg, err := config.LoadFrom(config.PathsAt(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	m, err := New(Options{Config: cfg, Source: Source{Path: filepath.Join(t.TempDir(), "missing.md")}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	msg := m.Init()()
	if _, ok := msg.(messages.DocumentFailed); !ok {
		t.Fatalf("expected DocumentFailed, got %T", msg)
	}
	m.Update(msg)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	if m.err == nil || !strings.Contains(ansi.Strip(m.render()), "error:") {
		t.Fatalf("expected error placeholder")
	}
}

func TestSnapSettlesOnAnchor(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Scroll.Snap = true })
	wheel(m, tea.MouseWheelDown)
	runFrames(t, m)
	if offset(m) != 0 {
		t.Fatalf("expected snap back to the first heading, got %v", offset(m))
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestFollowReportsFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "follow.log")
	if err := os.WriteFile(path, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadFrom(config.PathsAt(dir))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	m, err := New(Options{Config: cfg, Source: Source{Path: path}, Follow: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()

	wait := m.startWatcher()
	if wait == nil {
		t.Fatalf("expected a wait command")
	}
	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()

	// Give the watcher goroutine time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case msg := <-got:
		changed, ok := msg.(messages.FileChanged)
		if !ok || changed.Path != path {
			t.Fatalf("expected FileChanged for %s, got %#v", path, msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change notification")
	}
}

func TestDiffNavigation(t *testing.T) {
	var b strings.Builder
	b.WriteString("diff --git a/a.go b/a.go\nindex 1..2 100644\n--- a/a.go\n+++ b/a.go\n@@ -1,35 +1,35 @@\n")
	for i := 0; i < 35; i++ {
		b.WriteString("+added\n")
	}
	b.WriteString("diff --git a/b.go b/b.go\n--- a/b.go\n+++ b/b.go\n@@ -1,30 +1,30 @@\n")
	for i := 0; i < 30; i++ {
		b.WriteString("-removed\n")
	}

	cfg, err := config.LoadFrom(config.PathsAt(t.TempDir()))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	m, err := New(Options{Config: cfg, Source: Source{Doc: content.Parse("changes.diff", b.String())}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})

	for _, want := range []float64{4, 40, 43} {
		press(m, "n")
		runFrames(t, m)
		if offset(m) != want {
			t.Fatalf("expected n to reach line %v, got %v", want, offset(m))
		}
	}
	if out := ansi.Strip(m.render()); !strings.Contains(out, "b.go") || !strings.Contains(out, "-removed") {
		t.Fatalf("expected diff rows and file entries in render:\n%s", out)
	}
}

func TestThumbSize(t *testing.T) {
	tests := []struct {
		height, total int
		want          int
		ok            bool
	}{
		{height: 10, total: 100, want: 1, ok: true},
		{height: 10, total: 20, want: 5, ok: true},
		{height: 10, total: 1000, want: 1, ok: true},
		{height: 10, total: 10, ok: false},
		{height: 0, total: 50, ok: false},
	}
	for _, tt := range tests {
		got, ok := thumbSize(tt.height, tt.total)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("thumbSize(%d, %d) = %d, %v; want %d, %v", tt.height, tt.total, got, ok, tt.want, tt.ok)
		}
	}
}
