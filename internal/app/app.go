// Package app contains the root application model: a main and a sidebar
// adaptive view sharing one display context, a status bar, and the reload,
// retention and log pane controls around them.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/config"
	"github.com/zjrosen/adaptive/internal/keys"
	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/pubsub"
	"github.com/zjrosen/adaptive/internal/ui/logpane"
	"github.com/zjrosen/adaptive/internal/ui/panel"
	"github.com/zjrosen/adaptive/internal/ui/toaster"
	"github.com/zjrosen/adaptive/internal/watcher"
)

// View names the app builds.
const (
	MainView    = "main"
	SidebarView = "sidebar"
)

var viewNames = []string{MainView, SidebarView}

// Options configures New.
type Options struct {
	Config config.Config
	// ConfigPath is reloaded on ctrl+r and receives the retention toggle.
	// Empty disables both.
	ConfigPath string
	// Watch reloads the configuration when ConfigPath changes on disk.
	Watch  bool
	Tracer trace.Tracer
	// Debug enables the log pane.
	Debug bool
}

// skipped collects configuration errors the views report while applying.
type skipped struct {
	errs []error
}

func (s *skipped) report(err error) {
	log.ErrorErr(log.CatConfig, "variant skipped", err)
	s.errs = append(s.errs, err)
}

func (s *skipped) take() []error {
	out := s.errs
	s.errs = nil
	return out
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	rawConfig  string
	debug      bool

	env     *adaptive.Env
	views   map[string]*adaptive.View
	skipped *skipped
	tracer  trace.Tracer

	mainSelector config.SelectorConfig

	width  int
	height int
	arr    arrangement

	keys    keys.KeyMap
	toaster toaster.Model
	logPane logpane.Model

	ctx             context.Context
	cancel          context.CancelFunc
	logListener     *log.LogListener
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Event]

	err error
}

// New builds the views from opts.Config. Nothing is selected until the first
// window size arrives.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if err := requireViews(cfg); err != nil {
		return Model{}, err
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("adaptive")
	}

	env := adaptive.NewEnv(
		adaptive.WithUnitsPerCell(cfg.Layout.UnitsPerCell),
		adaptive.WithSharedDedupe(cfg.SharedDedupe),
	)

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		debug:      opts.Debug,
		env:        env,
		views:      make(map[string]*adaptive.View, len(viewNames)),
		skipped:    &skipped{},
		tracer:     tracer,
		keys:       keys.DefaultKeyMap(),
		toaster:    toaster.New(),
		logPane:    logpane.New(),
		ctx:        ctx,
		cancel:     cancel,
	}

	if opts.ConfigPath != "" {
		if data, err := os.ReadFile(opts.ConfigPath); err == nil {
			m.rawConfig = string(data)
		}
	}

	for _, name := range viewNames {
		vc, _ := cfg.View(name)
		sel, err := BuildSelector(vc.Selector, cfg.Layout)
		if err != nil {
			cancel()
			return Model{}, fmt.Errorf("view %s: %w", name, err)
		}
		v := adaptive.New(env,
			adaptive.WithName(name),
			adaptive.WithRetainUnusedVariants(vc.RetainOr(cfg.RetainUnusedVariants)),
			adaptive.WithDefaultSelector(sel),
			adaptive.WithConfigErrorReporter(m.skipped.report),
			adaptive.WithTracer(tracer),
		)
		if _, err := v.ApplyConfig(panel.Nodes(vc, cfg.UI.MarkdownStyle), true); err != nil {
			cancel()
			return Model{}, fmt.Errorf("view %s: %w", name, err)
		}
		m.views[name] = v
	}
	vc, _ := cfg.View(MainView)
	m.mainSelector = vc.Selector

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				log.Warn(log.CatWatcher, "watcher not started", "error", err)
				_ = w.Stop()
			}
		}
	}

	return m, nil
}

// requireViews rejects configurations that lack a view the app lays out.
func requireViews(cfg config.Config) error {
	var errs []error
	for _, name := range viewNames {
		if _, ok := cfg.View(name); !ok {
			errs = append(errs, fmt.Errorf("view %q is not configured", name))
		}
	}
	return errors.Join(errs...)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if len(m.skipped.errs) > 0 {
		cmds = append(cmds, showToast(skippedMessage(m.skipped.take()), toaster.StyleWarn))
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Err is the fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// AdaptiveView returns the named adaptive view.
func (m Model) AdaptiveView(name string) *adaptive.View {
	return m.views[name]
}

// Env is the display context shared by the views.
func (m Model) Env() *adaptive.Env {
	return m.env
}

// Config is the configuration currently applied.
func (m Model) Config() config.Config {
	return m.cfg
}

// Toast is the notice currently shown, if any.
func (m Model) Toast() string {
	return m.toaster.Message()
}

func showToast(msg string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return toaster.ShowMsg{Message: msg, Style: style} }
}

func skippedMessage(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	return fmt.Sprintf("%d variants skipped: %v", len(errs), errs[0])
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case adaptive.ErrorMsg:
		return m.fail(msg.Err)

	case adaptive.RedrawMsg, adaptive.RedrawAllMsg:
		// Every Update ends in a redraw; the layout already ran.
		return m, nil

	case toaster.ShowMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style, toaster.DefaultDuration)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Dismiss(msg)
		return m, nil

	case logpane.CloseMsg:
		return m, nil

	case log.LogEvent:
		if m.logPane.Visible() {
			m.logPane.Refresh()
		}
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case pubsub.Event[watcher.Event]:
		if msg.Payload.Err != nil {
			return m, tea.Batch(
				showToast("watching config: "+msg.Payload.Err.Error(), toaster.StyleWarn),
				m.watcherListener.Listen(),
			)
		}
		next, cmd := m.reload("file changed")
		return next, tea.Batch(cmd, m.watcherListener.Listen())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.logPane.Visible() {
			return m, nil
		}
		return m, m.forward(msg)
	}

	return m, m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && key.Matches(msg, m.keys.ToggleLogs) {
		m.logPane.Toggle()
		return m, nil
	}
	if m.logPane.Visible() {
		var cmd tea.Cmd
		m.logPane, cmd = m.logPane.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleRetain):
		return m.toggleRetention()
	case key.Matches(msg, m.keys.CycleSelector):
		return m.cycleSelector()
	case key.Matches(msg, m.keys.Reload):
		return m.reload("requested")
	}
	return m, m.forward(msg)
}

// forward hands msg to both views. Panels ignore what is not theirs.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(viewNames))
	for _, name := range viewNames {
		cmds = append(cmds, m.views[name].Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if adaptive.IsUnknownVariant(err) {
		log.ErrorErr(log.CatVariant, "selector named an unregistered variant", err)
	} else {
		log.ErrorErr(log.CatUI, "fatal view error", err)
	}
	m.err = err
	return m, tea.Quit
}

// resize broadcasts one geometry event to every view, then lays them out.
func (m Model) resize(width, height int) (tea.Model, tea.Cmd) {
	m.width, m.height = width, height
	m.logPane.SetSize(width, height)

	geo := adaptive.GeometryMsg{Token: m.env.NextToken(), Width: width, Height: height}
	cmds := make([]tea.Cmd, 0, len(viewNames)+1)
	for _, name := range viewNames {
		cmd, err := m.views[name].HandleGeometry(geo)
		if err != nil {
			return m.fail(err)
		}
		cmds = append(cmds, cmd)
	}

	cmd, err := m.layout()
	if err != nil {
		return m.fail(err)
	}
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m Model) bodyHeight() int {
	if m.cfg.UI.ShowStatusBar {
		return max(m.height-1, 0)
	}
	return m.height
}

// layout sizes both views from their size requests. A second pass runs when
// laying out changed a view's variant and with it the request.
func (m *Model) layout() (tea.Cmd, error) {
	if m.width == 0 || m.height == 0 {
		return nil, nil
	}

	mainView, sideView := m.views[MainView], m.views[SidebarView]
	var cmds []tea.Cmd
	for range 2 {
		m.arr = arrange(m.width, m.bodyHeight(), mainView.SizeHint(), sideView.SizeHint())

		cmd, err := mainView.Layout(m.arr.main.Width, m.arr.main.Height)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		cmd, err = sideView.Layout(m.arr.sidebar.Width, m.arr.sidebar.Height)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)

		if arrange(m.width, m.bodyHeight(), mainView.SizeHint(), sideView.SizeHint()) == m.arr {
			break
		}
	}
	return tea.Batch(cmds...), nil
}

func (m Model) toggleRetention() (tea.Model, tea.Cmd) {
	on := !m.cfg.RetainUnusedVariants
	m.cfg.RetainUnusedVariants = on
	for _, name := range viewNames {
		vc, _ := m.cfg.View(name)
		m.views[name].SetRetainUnusedVariants(vc.RetainOr(on))
	}
	log.Info(log.CatUI, "retention toggled", "on", on)

	if m.configPath != "" {
		if err := config.SaveRetention(m.configPath, on); err != nil {
			log.ErrorErr(log.CatConfig, "saving retention", err, "path", m.configPath)
			return m, showToast("retention not saved: "+err.Error(), toaster.StyleError)
		}
	}

	state := "off"
	if on {
		state = "on"
	}
	return m, showToast("retention "+state, toaster.StyleInfo)
}

func (m Model) cycleSelector() (tea.Model, tea.Cmd) {
	mainView := m.views[MainView]
	next, ok := nextSelector(m.mainSelector, mainView.Registry().Has)
	if !ok {
		return m, showToast("no other selector fits the declared variants", toaster.StyleInfo)
	}

	sel, err := BuildSelector(next, m.cfg.Layout)
	if err != nil {
		return m, showToast(err.Error(), toaster.StyleError)
	}
	cmd, err := mainView.SetSelector(sel)
	if err != nil {
		return m.fail(err)
	}
	m.mainSelector = next
	log.Info(log.CatUI, "selector changed", "view", MainView, "selector", selectorLabel(next))

	layoutCmd, err := m.layout()
	if err != nil {
		return m.fail(err)
	}
	return m, tea.Batch(cmd, layoutCmd, showToast("selector "+selectorLabel(next), toaster.StyleInfo))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	mainOut, sideOut := m.views[MainView].View(), m.views[SidebarView].View()
	var body string
	if m.arr.sideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, mainOut, sideOut)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, mainOut, sideOut)
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	out := body
	if m.cfg.UI.ShowStatusBar {
		out += "\n" + m.statusBar()
	}

	out = m.toaster.Overlay(out, m.width, m.height)
	if m.debug {
		out = m.logPane.Overlay(out)
	}
	return zone.Scan(out)
}

// Close stops the watcher and the listeners.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
