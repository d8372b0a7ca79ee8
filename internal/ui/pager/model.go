package pager

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/content"
	"github.com/andyrewlee/glide/internal/input"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/maths"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/scroll"
	"github.com/andyrewlee/glide/internal/size"
	"github.com/andyrewlee/glide/internal/snap"
	"github.com/andyrewlee/glide/internal/supervisor"
	"github.com/andyrewlee/glide/internal/ui/common"
)

const (
	tocZone        = "glide-toc"
	commandTimeout = 30 * time.Second
)

// Source says where the document comes from.
type Source struct {
	Path    string
	Command []string
	// Doc is a document that was read up front (stdin) and cannot be reloaded.
	Doc *content.Document
}

// Options configures a pager.
type Options struct {
	Config *config.Config
	Source Source
	Follow bool
	// Zones overrides the zone manager, mostly for tests.
	Zones *zone.Manager
}

// frameMsg drives one animation frame.
type frameMsg struct {
	at time.Time
}

// Model is the Bubble Tea model for the pager
type Model struct {
	cfg    *config.Config
	source Source
	follow bool

	// Document
	doc       *content.Document
	headingAt map[int]content.Anchor
	loading   bool
	err       error

	// Scrolling
	body        *body
	contentSize *size.Observed
	controller  *scroll.Controller
	normalizer  *input.Normalizer
	zones       *input.Zones
	snap        *snap.Snap
	lastDelta   input.Delta
	thumb       scrollbar

	// Frame loop
	ticking  bool
	framing  bool
	epoch    time.Time
	interval time.Duration
	now      func() time.Time

	// UI
	keys     keymap.KeyMap
	styles   common.Styles
	toast    *common.ToastModel
	showTOC  bool
	showHelp bool
	tocTop   int
	width    int
	height   int

	// Follow mode
	changes chan string
	workers *supervisor.Supervisor
}

// New creates a pager model.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.DefaultConfig(); err != nil {
			return nil, err
		}
	}

	manager := opts.Zones
	if manager == nil {
		manager = zone.New()
	}

	styles := common.NewStyles(common.GetTheme(common.ThemeID(cfg.UI.Theme)))
	fps := cfg.UI.FrameRate
	if fps <= 0 {
		fps = 60
	}

	m := &Model{
		cfg:         cfg,
		source:      opts.Source,
		follow:      opts.Follow && opts.Source.Path != "",
		body:        newBody(),
		contentSize: size.NewObserved(0, 0),
		zones:       input.NewZones(manager),
		thumb:       newScrollbar(fps),
		interval:    time.Second / time.Duration(fps),
		now:         time.Now,
		keys:        keymap.New(cfg.KeyMap),
		styles:      styles,
		toast:       common.NewToastModel(styles),
		showTOC:     cfg.UI.ShowTOC,
	}
	m.body.Limit = m.limit
	m.zones.Prevent(tocZone)
	m.normalizer = input.NewNormalizer(cfg.Scroll.InputOptions(), m.zones)

	scrollOpts := cfg.Scroll.Options()
	scrollOpts.Wrapper = m.body
	scrollOpts.Content = m.contentSize
	scrollOpts.Input = m.normalizer
	scrollOpts.Resolver = scroll.ResolverFunc(m.query)

	controller, err := scroll.New(scrollOpts)
	if err != nil {
		return nil, fmt.Errorf("pager: %w", err)
	}
	m.controller = controller
	// Subscribed after the controller so lastDelta is the delta it just saw.
	m.normalizer.On(func(d input.Delta) { m.lastDelta = d })

	if cfg.Scroll.Snap {
		m.snap = snap.New(controller, m.anchorElements, m.body)
	}

	if opts.Source.Doc != nil {
		m.setDocument(opts.Source.Doc)
	} else {
		m.loading = true
	}
	return m, nil
}

func (m *Model) query(selector string) (scroll.Element, bool) {
	if m.doc == nil {
		return nil, false
	}
	return m.doc.Resolver(m.body.frame()).Query(selector)
}

func (m *Model) anchorElements() []scroll.Element {
	if m.doc == nil {
		return nil
	}
	return m.doc.Elements(m.body.frame())
}

// Init loads the document and starts the follow watcher.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.doc == nil {
		cmds = append(cmds, m.load(false))
	}
	if m.follow {
		cmds = append(cmds, m.startWatcher())
	}
	return common.SafeBatch(cmds...)
}

// load returns a command that reads the document asynchronously
func (m *Model) load(reload bool) tea.Cmd {
	src := m.source
	cols := m.bodyWidth()
	if src.Path == "" && len(src.Command) == 0 {
		return nil
	}
	return common.SafeCmd(func() tea.Msg {
		var (
			doc *content.Document
			err error
		)
		name := src.Path
		if len(src.Command) > 0 {
			name = src.Command[0]
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			doc, err = content.FromCommand(ctx, src.Command, cols)
		} else {
			doc, err = content.Load(src.Path)
		}
		if err != nil {
			return messages.DocumentFailed{Source: name, Err: err}
		}
		return messages.DocumentLoaded{Doc: doc, Reload: reload}
	})
}

func (m *Model) startWatcher() tea.Cmd {
	m.changes = make(chan string, 1)
	changes := m.changes
	path := m.source.Path
	onChanged := func(path string) {
		select {
		case changes <- path:
		default:
		}
	}

	// Fail fast on a missing directory; later failures are restarted.
	w, err := content.NewWatcher(path, content.DefaultDebounce, onChanged)
	if err != nil {
		return common.ReportError("watch", err, "follow disabled: "+err.Error())
	}

	m.workers = supervisor.New(context.Background())
	m.workers.Start("pager.watcher", func(ctx context.Context) error {
		if w == nil {
			var err error
			if w, err = content.NewWatcher(path, content.DefaultDebounce, onChanged); err != nil {
				return err
			}
		}
		defer func() {
			_ = w.Close()
			w = nil
		}()
		return w.Run(ctx)
	}, supervisor.WithRestartPolicy(supervisor.RestartOnError), supervisor.WithMaxRestarts(5))
	logging.Info("pager: following %s", path)
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return messages.FileChanged{Path: path}
	}
}

// Close releases the watcher and controller.
func (m *Model) Close() {
	if m.workers != nil {
		m.workers.Stop()
		m.workers = nil
	}
	if m.snap != nil {
		m.snap.Destroy()
	}
	m.controller.Destroy()
	m.normalizer.Destroy()
}

func (m *Model) setDocument(doc *content.Document) {
	m.doc = doc
	m.loading = false
	m.err = nil
	m.headingAt = make(map[int]content.Anchor, len(doc.Anchors))
	for _, a := range doc.Anchors {
		m.headingAt[a.Line] = a
	}
	m.relayout()
	if m.snap != nil {
		m.snap.Refresh()
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()

	case messages.DocumentLoaded:
		m.setDocument(msg.Doc)
		if msg.Reload {
			logging.Info("pager: reloaded %s", msg.Doc.Name)
			cmds = append(cmds, m.toast.Show("reloaded", messages.ToastInfo))
		}

	case messages.DocumentFailed:
		m.loading = false
		m.err = msg.Err
		cmds = append(cmds, common.ReportError("load "+msg.Source, msg.Err, ""))

	case messages.FileChanged:
		cmds = append(cmds, m.load(true), m.waitForChange())

	case messages.Toast, common.ToastDismissed:
		_, cmd := m.toast.Update(msg)
		cmds = append(cmds, cmd)

	case messages.Error:
		if !msg.Logged {
			logging.Error("pager: %v", msg)
		}

	case frameMsg:
		m.ticking = false
		m.frame(msg.at)

	case tea.MouseWheelMsg:
		m.handleMouse(msg)
	case tea.MouseClickMsg:
		if !m.clickTOC(msg.X, msg.Y) {
			m.handleMouse(msg)
		}
	case tea.MouseMotionMsg, tea.MouseReleaseMsg:
		m.handleMouse(msg)

	case tea.KeyPressMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.ensureTicking())
	return m, common.SafeBatch(cmds...)
}

// frame advances the controller and the scrollbar by one display refresh.
func (m *Model) frame(at time.Time) {
	defer perf.Time("pager.frame")()
	if m.epoch.IsZero() {
		m.epoch = at
	}
	ms := float64(at.Sub(m.epoch).Microseconds()) / 1000
	m.controller.Raf(ms)
	m.updateThumb(false)
	m.thumb.step()
}

func (m *Model) needsFrame() bool {
	return m.controller.Animating() || !m.thumb.settled()
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	if !m.needsFrame() {
		m.framing = false
		return nil
	}
	if !m.framing {
		// The loop was idle; the gap since the last frame is not animation time.
		m.controller.ResetClock()
		m.framing = true
	}
	m.ticking = true
	return common.SafeTick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m *Model) updateThumb(jump bool) {
	h := m.bodyHeight()
	total := 0
	if m.doc != nil {
		total = m.doc.Height()
	}
	thumb, ok := thumbSize(h, total)
	if !ok {
		m.thumb.setTarget(0)
		m.thumb.jump()
		return
	}
	progress := m.controller.Progress()
	if m.controller.IsHorizontal() {
		progress = m.body.ScrollOffset(false) / m.limit(false)
	}
	m.thumb.setTarget(progress * float64(h-thumb))
	if jump {
		m.thumb.jump()
	}
}

// handleMouse feeds wheel and drag input through the normalizer and performs
// the native scroll when the controller left the event alone.
func (m *Model) handleMouse(msg tea.Msg) {
	m.lastDelta = input.Delta{}
	ev, ok := m.normalizer.HandleMsg(msg)
	if !ok {
		return
	}
	perf.Count("pager.input", 1)
	if input.HasOptOut(ev) {
		m.scrollTOC(m.lastDelta.DeltaY)
		return
	}
	if ev.DefaultPrevented() {
		return
	}
	m.nativeScroll(m.lastDelta.DeltaX, m.lastDelta.DeltaY)
}

func (m *Model) nativeScroll(dx, dy float64) {
	if dx != 0 {
		m.body.SetScrollOffset(true, m.body.ScrollOffset(true)+dx)
	}
	if dy != 0 {
		m.body.SetScrollOffset(false, m.body.ScrollOffset(false)+dy)
	}
	m.controller.OnNativeScroll()
	m.updateThumb(false)
}

func (m *Model) scrollTOC(dy float64) {
	switch {
	case dy > 0:
		m.tocTop = min(m.tocTop+1, m.tocLimit())
	case dy < 0:
		m.tocTop = max(m.tocTop-1, 0)
	}
}

func (m *Model) clickTOC(x, y int) bool {
	idx, ok := m.tocEntryAt(x, y)
	if !ok {
		return false
	}
	m.scrollToAnchor(m.doc.Anchors[idx])
	return true
}

func (m *Model) scrollToAnchor(a content.Anchor) {
	m.controller.ScrollTo("#"+a.ID, scroll.ScrollToOptions{})
}

// nudge moves the target by delta along the scroll axis, building on any
// animation in flight like wheel input does.
func (m *Model) nudge(delta float64) {
	if m.controller.IsLocked() {
		return
	}
	m.controller.ScrollTo(m.controller.TargetScroll()+delta, scroll.ScrollToOptions{UserInput: true})
}

// currentLine is the document line the view is heading for.
func (m *Model) currentLine() int {
	target := m.controller.TargetScroll()
	if m.controller.IsHorizontal() {
		return m.body.Line(false)
	}
	if m.controller.Infinite() {
		target = m.controller.Scroll()
	}
	return int(maths.Round(maths.Clamp(0, target, m.controller.Limit())))
}

// topLine is the document line drawn in the first body row.
func (m *Model) topLine() int {
	line := m.body.Line(false)
	if m.doc != nil && m.doc.Height() > 0 {
		line %= m.doc.Height()
	}
	return line
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if m.showHelp && !key.Matches(msg, m.keys.Quit) {
		m.showHelp = false
		return nil, false
	}

	horizontal := m.controller.IsHorizontal()
	axisStep := m.nudge
	// The cross axis is not driven by the controller.
	crossStep := func(n float64) {
		if horizontal {
			m.nativeScroll(0, n)
		} else {
			m.nativeScroll(n, 0)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.LineDown):
		if horizontal {
			crossStep(1)
		} else {
			axisStep(1)
		}
	case key.Matches(msg, m.keys.LineUp):
		if horizontal {
			crossStep(-1)
		} else {
			axisStep(-1)
		}
	case key.Matches(msg, m.keys.ColumnRight):
		if horizontal {
			axisStep(horizontalCol)
		} else {
			crossStep(horizontalCol)
		}
	case key.Matches(msg, m.keys.ColumnLeft):
		if horizontal {
			axisStep(-horizontalCol)
		} else {
			crossStep(-horizontalCol)
		}
	case key.Matches(msg, m.keys.PageDown):
		axisStep(float64(max(1, m.pageSize())))
	case key.Matches(msg, m.keys.PageUp):
		axisStep(-float64(max(1, m.pageSize())))
	case key.Matches(msg, m.keys.Top):
		m.controller.ScrollTo("top", scroll.ScrollToOptions{})
	case key.Matches(msg, m.keys.Bottom):
		m.controller.ScrollTo("bottom", scroll.ScrollToOptions{})

	case key.Matches(msg, m.keys.NextHeading):
		if m.doc != nil {
			if a, ok := m.doc.NextAnchor(m.currentLine()); ok {
				m.scrollToAnchor(a)
			}
		}
	case key.Matches(msg, m.keys.PrevHeading):
		if m.doc != nil {
			if a, ok := m.doc.PrevAnchor(m.currentLine()); ok {
				m.scrollToAnchor(a)
			}
		}

	case key.Matches(msg, m.keys.ToggleStop):
		if m.controller.IsStopped() {
			m.controller.Start()
			return m.toast.Show("scrolling resumed", messages.ToastInfo), false
		}
		m.controller.Stop()
		return m.toast.Show("scrolling stopped", messages.ToastWarning), false

	case key.Matches(msg, m.keys.ToggleTOC):
		m.showTOC = !m.showTOC
		m.relayout()
		m.cfg.UI.ShowTOC = m.showTOC
		cfg := m.cfg
		return func() tea.Msg {
			if err := cfg.SaveUISettings(); err != nil {
				logging.Warn("pager: save ui settings: %v", err)
			}
			return nil
		}, false

	case key.Matches(msg, m.keys.CopyLine):
		return m.copyLine(), false

	case key.Matches(msg, m.keys.Reload):
		if m.source.Path == "" && len(m.source.Command) == 0 {
			return m.toast.Show("nothing to reload", messages.ToastWarning), false
		}
		return m.load(true), false
	}
	return nil, false
}

func (m *Model) pageSize() int {
	if m.controller.IsHorizontal() {
		return m.body.Width() - 1
	}
	return m.body.Height() - 1
}

func (m *Model) copyLine() tea.Cmd {
	if m.doc == nil || m.doc.Height() == 0 {
		return nil
	}
	line := m.doc.Line(m.topLine())
	return func() tea.Msg {
		if err := common.CopyToClipboard(line); err != nil {
			logging.Warn("pager: clipboard: %v", err)
			return messages.Toast{Message: "copy failed", Level: messages.ToastError}
		}
		return messages.Toast{Message: "copied line", Level: messages.ToastSuccess}
	}
}

// Controller exposes the scroll controller.
func (m *Model) Controller() *scroll.Controller { return m.controller }

// Document returns the current document, if loaded.
func (m *Model) Document() *content.Document { return m.doc }
