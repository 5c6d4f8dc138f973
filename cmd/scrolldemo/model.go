package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/config"
	"github.com/nrfta/infinite-paging-go/logging"
	"github.com/nrfta/infinite-paging-go/scroll"
)

// UI chrome heights (elements that reduce available viewport space)
const (
	headerHeight    = 1
	statusBarHeight = 1
	helpHeight      = 1
	totalUIChrome   = headerHeight + statusBarHeight + helpHeight

	minViewportHeight = 3
)

// controllerFactory creates and starts a controller bound to vp. The source
// it returns receives the viewport samples.
type controllerFactory func(opts paging.Options, vp paging.Viewport) (*paging.Controller[string, string], *scroll.Source, error)

// stateChangedMsg signals that the controller produced an event.
type stateChangedMsg struct{}

// configReloadedMsg carries a config file reload.
type configReloadedMsg struct {
	cfg config.Config
	err error
}

// notifier coalesces controller events into a single pending signal.
type notifier struct {
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{}, 1)}
}

func (n *notifier) Observe(paging.Event) {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// viewportAdapter lets the controller drive the bubbles viewport.
type viewportAdapter struct {
	vp *viewport.Model
}

func (a viewportAdapter) ScrollToTop() {
	a.vp.GotoTop()
}

type keyMap struct {
	Search   key.Binding
	Top      key.Binding
	LoadMore key.Binding
	Reset    key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	LoadMore: key.NewBinding(key.WithKeys("l", " "), key.WithHelp("l", "load more")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Submit:   key.NewBinding(key.WithKeys("enter")),
	Cancel:   key.NewBinding(key.WithKeys("esc")),
}

// model holds the TUI state
type model struct {
	newController controllerFactory
	changed       <-chan struct{}

	opts   paging.Options
	ctrl   *paging.Controller[string, string]
	source *scroll.Source
	state  paging.State[string]

	// The viewport lives behind a pointer so the controller's ScrollToTop
	// reaches the copy Bubble Tea renders.
	vp    *viewport.Model
	input textinput.Model

	width     int
	height    int
	statusMsg string
	quitting  bool
}

func newModel(factory controllerFactory, opts paging.Options, changed <-chan struct{}) (model, error) {
	vp := viewport.New(80, 20)

	input := textinput.New()
	input.Placeholder = defaultTitle
	input.Prompt = "/ "

	m := model{
		newController: factory,
		changed:       changed,
		vp:            &vp,
		input:         input,
	}
	if err := m.start(opts); err != nil {
		return model{}, err
	}
	return m, nil
}

func (m *model) start(opts paging.Options) error {
	ctrl, source, err := m.newController(opts, viewportAdapter{vp: m.vp})
	if err != nil {
		return err
	}

	m.opts = opts
	m.ctrl = ctrl
	m.source = source
	m.state = ctrl.State()
	m.refresh()
	return nil
}

func (m *model) stop() {
	if m.ctrl == nil {
		return
	}
	if err := m.ctrl.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop controller")
	}
}

// Init starts listening for controller events
func (m model) Init() tea.Cmd {
	return waitForChange(m.changed)
}

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - totalUIChrome
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}
		m.vp.Width = msg.Width
		m.vp.Height = viewportHeight
		m.input.Width = msg.Width - 4
		m.refresh()
		m.pushSample()
		return m, nil

	case stateChangedMsg:
		m.state = m.ctrl.State()
		m.refresh()
		return m, waitForChange(m.changed)

	case configReloadedMsg:
		m.applyConfig(msg.cfg, msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		*m.vp, cmd = m.vp.Update(msg)
		m.pushSample()
		return m, cmd
	}

	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		m.input.Blur()
		m.ctrl.SetQuery(m.input.Value())
		m.ctrl.ScrollToTop()
		m.state = m.ctrl.State()
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.input.Blur()
		m.input.SetValue(m.ctrl.Query())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		return m, m.input.Focus()

	case key.Matches(msg, keys.Top):
		m.ctrl.ScrollToTop()
		m.pushSample()
		return m, nil

	case key.Matches(msg, keys.LoadMore):
		m.ctrl.OnAdvanceEvent()
		m.state = m.ctrl.State()
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.ctrl.Reset()
		m.ctrl.ScrollToTop()
		m.state = m.ctrl.State()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	*m.vp, cmd = m.vp.Update(msg)
	m.pushSample()
	return m, cmd
}

// applyConfig restarts the controller when the paging options changed.
// A rejected config keeps the previous options running.
func (m *model) applyConfig(cfg config.Config, err error) {
	if err != nil {
		m.statusMsg = "config not applied: " + err.Error()
		return
	}

	logging.SetLevel(cfg.Log.Level)

	if cfg.Paging == m.opts {
		m.statusMsg = "config reloaded"
		return
	}

	previous := m.opts
	query := m.ctrl.Query()
	m.stop()

	if err := m.start(cfg.Paging); err != nil {
		m.statusMsg = "config not applied: " + err.Error()
		if err := m.start(previous); err != nil {
			log.Error().Err(err).Msg("Failed to restore previous controller")
			return
		}
	} else {
		m.statusMsg = "config reloaded, list restarted"
	}

	if query != "" {
		m.ctrl.SetQuery(query)
		m.state = m.ctrl.State()
	}
	m.vp.GotoTop()
	m.refresh()
}

// pushSample reports the viewport geometry, in rows, to the controller.
func (m *model) pushSample() {
	if m.source == nil {
		return
	}
	sample := scroll.NewSample(
		m.opts.Mode(),
		float64(m.vp.TotalLineCount()),
		float64(m.vp.YOffset),
		float64(m.vp.Height),
	)
	if !m.source.Push(sample) {
		log.Debug().Msg("Scroll sample dropped")
	}
}

func (m *model) refresh() {
	m.vp.SetContent(renderContent(m.state, m.vp.Width))
}
