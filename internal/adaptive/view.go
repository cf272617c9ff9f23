package adaptive

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/adaptive/internal/layout"
	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/tracing"
)

// State is the selection state of a View.
type State int

const (
	// StateUninitialized means no selector is installed.
	StateUninitialized State = iota
	// StateSelecting means a selector is installed; the view re-evaluates it on
	// every context change.
	StateSelecting
)

func (s State) String() string {
	if s == StateSelecting {
		return "selecting"
	}
	return "uninitialized"
}

// Node is one entry of a configuration apply pass. Err records why a
// declaration could not be turned into a template.
type Node struct {
	ID       VariantID
	Kind     string
	Template Template
	Err      error
}

// View is the responsive container. It forwards events and drawing to its
// single active variant and swaps that variant when the selector's answer for
// the shared display context changes.
type View struct {
	id       string
	name     string
	env      *Env
	registry *Registry
	store    *Store
	stats    *Stats

	selector        Selector
	defaultSelector Selector

	screenWidth int
	seenWidth   bool
	size        layout.Dim
	parent      layout.Dim // units this view was last laid out with; zero after a screen change
	ownHint     layout.Size

	reportConfigError func(error)
	tracer            trace.Tracer
}

// Option configures a View.
type Option func(*View)

// WithName labels the view in logs and spans.
func WithName(name string) Option {
	return func(v *View) { v.name = name }
}

// WithRetainUnusedVariants keeps deactivated variants for later reuse.
func WithRetainUnusedVariants(on bool) Option {
	return func(v *View) { v.store.SetRetain(on) }
}

// WithDefaultSelector replaces the selector installed after a full
// configuration apply.
func WithDefaultSelector(sel Selector) Option {
	return func(v *View) { v.defaultSelector = sel }
}

// WithConfigErrorReporter receives malformed-node and re-apply errors.
func WithConfigErrorReporter(fn func(error)) Option {
	return func(v *View) { v.reportConfigError = fn }
}

// WithTracer records a span per variant transition.
func WithTracer(t trace.Tracer) Option {
	return func(v *View) { v.tracer = t }
}

// WithSizeHint sets the size request used while no variant is active.
func WithSizeHint(size layout.Size) Option {
	return func(v *View) { v.ownHint = size }
}

// New creates a view sharing env's display context.
func New(env *Env, opts ...Option) *View {
	v := &View{
		id:              uuid.NewString(),
		env:             env,
		registry:        NewRegistry(),
		stats:           &Stats{},
		defaultSelector: DefaultSelector(),
		ownHint:         layout.FillBoth(),
		tracer:          noop.NewTracerProvider().Tracer("adaptive"),
		reportConfigError: func(err error) {
			log.ErrorErr(log.CatConfig, "configuration node skipped", err)
		},
	}
	v.store = NewStore(v.registry, false, v.id, v.stats)
	for _, opt := range opts {
		opt(v)
	}
	if v.name == "" {
		v.name = v.id[:8]
	}
	return v
}

// ID returns the view's instance id.
func (v *View) ID() string { return v.id }

// Name returns the view's label.
func (v *View) Name() string { return v.name }

// Registry exposes the view's templates.
func (v *View) Registry() *Registry { return v.registry }

// Stats returns a copy of the view's counters.
func (v *View) Stats() Stats { return *v.stats }

// State reports whether a selector is installed.
func (v *View) State() State {
	if v.selector == nil {
		return StateUninitialized
	}
	return StateSelecting
}

// Active returns the active variant id.
func (v *View) Active() (VariantID, bool) {
	return v.store.ActiveID()
}

// ActiveVariant returns the active variant, or nil.
func (v *View) ActiveVariant() *Variant {
	return v.store.Active()
}

// Retained returns the ids in the retained cache.
func (v *View) Retained() []VariantID {
	return v.store.Retained()
}

// RetainUnusedVariants reports whether retention is on.
func (v *View) RetainUnusedVariants() bool {
	return v.store.Retaining()
}

// SetRetainUnusedVariants toggles retention. Turning it off drops retained
// variants.
func (v *View) SetRetainUnusedVariants(on bool) {
	v.store.SetRetain(on)
	log.Debug(log.CatVariant, "retention toggled", "view", v.name, "retain", on)
}

// SizeHint is the active variant's size request, so the parent lays the view
// out exactly as it would lay out the child.
func (v *View) SizeHint() layout.Size {
	if v.store.Active() == nil {
		return v.ownHint
	}
	return v.store.SizeHint()
}

// SetSelector installs sel and, when a shared context exists, immediately
// re-evaluates against it. Without a context the view waits for the first
// geometry message.
func (v *View) SetSelector(sel Selector) (tea.Cmd, error) {
	v.selector = sel
	return v.Reselect()
}

// SetDefaultSelector installs the default selector.
func (v *View) SetDefaultSelector() (tea.Cmd, error) {
	return v.SetSelector(v.defaultSelector)
}

// ReplaceDefaultSelector changes the selector the next full configuration
// apply installs. The current selector is left alone.
func (v *View) ReplaceDefaultSelector(sel Selector) {
	v.defaultSelector = sel
}

// Reselect re-runs the selector against the current shared context. Outside
// the layout pass the parent size is this view's own, never a sibling's.
func (v *View) Reselect() (tea.Cmd, error) {
	ctx, ok := v.env.Context()
	if !ok {
		return nil, nil
	}
	ctx.ParentSize = v.parent
	return v.reselect(ctx)
}

// RegisterTemplate registers tmpl under id. When id is live (active or
// retained) the new definition is applied onto that instance in place.
func (v *View) RegisterTemplate(id VariantID, tmpl Template) error {
	v.registry.Register(id, tmpl)

	if active := v.store.Active(); active != nil && active.ID == id {
		if err := active.Widget.Apply(tmpl); err != nil {
			return fmt.Errorf("re-apply template %q: %w", string(id), err)
		}
		v.stats.HotReapplies++
		v.store.RefreshHint()
		log.Debug(log.CatConfig, "template re-applied", "view", v.name, "variant", id)
	}
	if retained, ok := v.store.RetainedVariant(id); ok {
		if err := retained.Widget.Apply(tmpl); err != nil {
			return fmt.Errorf("re-apply retained template %q: %w", string(id), err)
		}
		v.stats.HotReapplies++
	}
	return nil
}

// ApplyConfig registers the templates carried by nodes. A full apply clears
// the registry first, prunes retained variants that disappeared and installs
// the default selector afterwards. Malformed nodes are reported and skipped.
func (v *View) ApplyConfig(nodes []Node, full bool) (tea.Cmd, error) {
	if full {
		v.registry.Clear()
	}

	for i, n := range nodes {
		if err := v.applyNode(i, n); err != nil {
			v.reportConfigError(err)
		}
	}

	if !full {
		return nil, nil
	}
	if pruned := v.store.Prune(); len(pruned) > 0 {
		log.Debug(log.CatConfig, "retained variants pruned", "view", v.name, "ids", pruned)
	}
	return v.SetDefaultSelector()
}

func (v *View) applyNode(i int, n Node) error {
	switch {
	case n.ID == "":
		return &MalformedNodeError{Index: i, Reason: "missing variant id"}
	case n.Err != nil:
		return &MalformedNodeError{Index: i, ID: n.ID, Reason: n.Err.Error()}
	case n.Template == nil:
		return &MalformedNodeError{Index: i, ID: n.ID, Reason: fmt.Sprintf("kind %q is not a variant template", n.Kind)}
	}
	return v.RegisterTemplate(n.ID, n.Template)
}

// Update handles geometry messages and forwards everything to the active
// variant. Selection failures come back as an ErrorMsg command.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case GeometryMsg:
		cmd, err := v.HandleGeometry(msg)
		if err != nil {
			return v.errorCmd(err)
		}
		cmds = append(cmds, cmd)
	case tea.WindowSizeMsg:
		cmd, err := v.HandleGeometry(GeometryMsg{Token: v.env.NextToken(), Width: msg.Width, Height: msg.Height})
		if err != nil {
			return v.errorCmd(err)
		}
		cmds = append(cmds, cmd)
	}

	if active := v.store.Active(); active != nil {
		cmds = append(cmds, active.Widget.Update(msg))
	}
	return tea.Batch(cmds...)
}

// HandleGeometry updates the shared context from a window resize. A width this
// view has already seen is ignored.
func (v *View) HandleGeometry(msg GeometryMsg) (tea.Cmd, error) {
	width := v.env.Units(msg.Width)
	if v.seenWidth && width == v.screenWidth {
		v.stats.GeometrySkips++
		return nil, nil
	}
	v.screenWidth = width
	v.seenWidth = true
	v.parent = layout.Dim{}

	ctx := v.env.UpdateScreen(msg.Token, width)
	log.Debug(log.CatLayout, "screen width changed", "view", v.name, "token", msg.Token, "width", width)

	cmd, err := v.reselect(ctx)
	if err != nil {
		return nil, err
	}

	v.stats.RedrawAlls++
	token := msg.Token
	return tea.Batch(cmd, func() tea.Msg { return RedrawAllMsg{Token: token} }), nil
}

// Layout is the pre-draw pass. It narrows the shared parent size to the space
// this view is given, re-runs selection and sizes the active variant.
func (v *View) Layout(width, height int) (tea.Cmd, error) {
	v.size = layout.Dim{Width: width, Height: height}

	var cmd tea.Cmd
	if v.store.Active() != nil {
		parent := layout.Dim{Width: v.env.Units(width), Height: v.env.Units(height)}
		if ctx, ok := v.env.NarrowParent(parent); ok {
			v.parent = parent
			var err error
			if cmd, err = v.reselect(ctx); err != nil {
				return nil, err
			}
		}
	}

	if active := v.store.Active(); active != nil {
		active.Widget.SetSize(width, height)
	}
	return cmd, nil
}

// View renders the active variant, or nothing.
func (v *View) View() string {
	if active := v.store.Active(); active != nil {
		return active.Widget.View()
	}
	return ""
}

// FindWidget looks name up in the active variant only.
func (v *View) FindWidget(name string) (Widget, bool) {
	if active := v.store.Active(); active != nil {
		return active.Widget.FindWidget(name)
	}
	return nil, false
}

// WidgetByUID returns the active variant's widget when uid is its instance id.
func (v *View) WidgetByUID(uid string) (Widget, bool) {
	if active := v.store.Active(); active != nil && active.UID == uid {
		return active.Widget, true
	}
	return nil, false
}

// reselect is the transition: evaluate the selector, and switch variants when
// the answer differs from the active one.
func (v *View) reselect(ctx DisplayContext) (tea.Cmd, error) {
	if v.selector == nil {
		return nil, nil
	}

	v.stats.Evaluations++
	candidate := v.selector.Select(ctx)

	current, hasCurrent := v.store.ActiveID()
	if hasCurrent && current == candidate {
		if !v.registry.Has(candidate) {
			return nil, unknownVariant(candidate)
		}
		return nil, nil
	}

	_, span := v.tracer.Start(context.Background(), tracing.SpanTransition,
		trace.WithAttributes(
			attribute.String(tracing.AttrViewID, v.id),
			attribute.String(tracing.AttrViewName, v.name),
			attribute.String(tracing.AttrVariantFrom, string(current)),
			attribute.String(tracing.AttrVariantTo, string(candidate)),
			attribute.Int64(tracing.AttrContextToken, int64(ctx.Token)),
			attribute.Int(tracing.AttrScreenWidth, ctx.ScreenWidth),
		))
	defer span.End()

	restoresBefore := v.stats.Restores
	active, _, err := v.store.Activate(candidate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatVariant, "variant selection failed", err, "view", v.name, "candidate", candidate)
		return nil, err
	}
	restored := v.stats.Restores > restoresBefore
	span.SetAttributes(attribute.Bool(tracing.AttrRestored, restored))
	span.SetStatus(codes.Ok, "")

	v.stats.Transitions++
	if v.size.Width > 0 || v.size.Height > 0 {
		active.Widget.SetSize(v.size.Width, v.size.Height)
	}
	log.Info(log.CatVariant, "variant activated", "view", v.name, "from", current, "to", candidate, "restored", restored)

	v.stats.Redraws++
	id := v.id
	return func() tea.Msg { return RedrawMsg{ViewID: id} }, nil
}

func (v *View) errorCmd(err error) tea.Cmd {
	id := v.id
	return func() tea.Msg { return ErrorMsg{ViewID: id, Err: err} }
}

// IsUnknownVariant reports whether err is a selection failure caused by an
// unregistered id.
func IsUnknownVariant(err error) bool {
	return errors.Is(err, ErrUnknownVariant)
}
