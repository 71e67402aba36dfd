// Package tui implements the profiler's interactive terminal interface on
// bubbletea. It is a thin view over session.Controller: every async action
// runs as a tea.Cmd against the controller, and every render reads the
// controller's latest snapshot.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/malcolmbastien/Agile-Team-Profiler/cmd/profiler/ui"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type viewMode int

const (
	mainView viewMode = iota
	detailView
)

const (
	inputHeight  = 3
	headerHeight = 1
	footerHeight = 2
)

// Model is the bubbletea model for the profiler.
type Model struct {
	ctx      context.Context
	ctrl     *session.Controller
	cat      *catalog.Catalog
	tracker  *usage.Tracker
	model    string
	examples []string

	styles   ui.Styles
	keys     keyMap
	help     help.Model
	input    textarea.Model
	editor   textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	state session.State
	// inflight marks actions dispatched from this model whose result has
	// not arrived yet. The controller only flips its own pending flag once
	// the command goroutine runs, so the trigger boundary checks both.
	inflight map[session.Action]bool

	focus      focusArea
	mode       viewMode
	cursor     int
	detailID   string
	editing    bool
	exampleIdx int
	notice     string

	width  int
	height int
	ready  bool
}

// Options configures a Model.
type Options struct {
	Tracker *usage.Tracker
	Styles  ui.Styles
	Model   string // shown in the header
}

// New builds the model. ctx bounds every request the UI issues.
func New(ctx context.Context, ctrl *session.Controller, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe a practice your team follows, e.g. \"We hold a 15 minute stand-up every morning.\""
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 2000
	ed.SetHeight(inputHeight)
	ed.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		cat:      ctrl.Catalog(),
		tracker:  opts.Tracker,
		model:    opts.Model,
		examples: catalog.ExamplePractices(),
		styles:   opts.Styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ta,
		editor:   ed,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		inflight: make(map[session.Action]bool),
		state:    ctrl.Snapshot(),
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Run starts the program on the alternate screen and blocks until exit.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) pending(a session.Action) bool {
	return m.inflight[a] || m.state.IsPending(a)
}

func (m Model) anyPending() bool {
	for _, a := range session.Actions {
		if m.pending(a) {
			return true
		}
	}
	return false
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if n := len(m.state.Practices); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.mode == detailView {
		if _, ok := m.state.Practice(m.detailID); !ok {
			m.closeDetail()
		}
	}
	m.syncViewport()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.markdownStyle()),
		glamour.WithWordWrap(max(width-6, 20)),
	)
	m.layout()
}

// layout sizes the components for the current mode.
func (m *Model) layout() {
	width, height := m.width, m.height
	m.input.SetWidth(max(width-4, 20))
	m.editor.SetWidth(max(width-4, 20))
	m.help.Width = width

	vpHeight := height - headerHeight - footerHeight
	if m.mode == mainView || m.editing {
		vpHeight -= inputHeight + 3 // panel border + status line
	}
	m.viewport.Width = width
	m.viewport.Height = max(vpHeight, 3)
	m.syncViewport()
}

func (m Model) markdownStyle() string {
	if m.styles.Theme.IsDark {
		return "dark"
	}
	return "light"
}

func (m *Model) closeDetail() {
	m.mode = mainView
	m.detailID = ""
	m.editing = false
	m.editor.Blur()
	m.layout()
}
