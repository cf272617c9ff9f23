package adaptive

import (
	"github.com/zjrosen/adaptive/internal/layout"
	"github.com/zjrosen/adaptive/internal/log"
)

// MinDesktopWidth is the screen width, in layout units, at which the default
// selector switches from Mobile to Desktop.
const MinDesktopWidth = 860

// DisplayContext describes the layout environment selectors decide on.
type DisplayContext struct {
	// Token identifies the event that last rewrote the screen width.
	Token uint64
	// ScreenWidth is the window width in layout units.
	ScreenWidth int
	// ParentSize is the space available to the view currently laying out, in
	// layout units. Zero means unknown.
	ParentSize layout.Dim
}

// IsDesktop reports whether the screen is at least MinDesktopWidth wide.
func (c DisplayContext) IsDesktop() bool {
	return c.ScreenWidth >= MinDesktopWidth
}

// AvailableWidth is the parent width when known, else the screen width.
func (c DisplayContext) AvailableWidth() int {
	if c.ParentSize.Width > 0 {
		return c.ParentSize.Width
	}
	return c.ScreenWidth
}

// Env is the application-scoped home of the shared DisplayContext. The context
// is created lazily by the first geometry update and then read and overwritten
// in place by every View built against this Env.
type Env struct {
	current      *DisplayContext
	lastToken    uint64
	unitsPerCell int
	dedupe       bool
	writes       int
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithUnitsPerCell sets how many layout units one terminal cell is worth.
func WithUnitsPerCell(n int) EnvOption {
	return func(e *Env) {
		if n > 0 {
			e.unitsPerCell = n
		}
	}
}

// WithSharedDedupe controls whether a second view handling the same event
// token skips rewriting the shared context. It still runs its own selector.
func WithSharedDedupe(on bool) EnvOption {
	return func(e *Env) {
		e.dedupe = on
	}
}

// NewEnv creates an Env with no context yet. Dedupe is on by default.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{unitsPerCell: 1, dedupe: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Context returns a snapshot of the shared context, if one exists.
func (e *Env) Context() (DisplayContext, bool) {
	if e.current == nil {
		return DisplayContext{}, false
	}
	return *e.current, true
}

// NextToken allocates a fresh event token.
func (e *Env) NextToken() uint64 {
	e.lastToken++
	return e.lastToken
}

// Units converts terminal cells to layout units.
func (e *Env) Units(cells int) int {
	return cells * e.unitsPerCell
}

// UnitsPerCell returns the cell to unit factor.
func (e *Env) UnitsPerCell() int {
	return e.unitsPerCell
}

// Writes counts how many times the shared screen width was rewritten.
func (e *Env) Writes() int {
	return e.writes
}

// UpdateScreen records a new screen width for the event token and resets the
// parent size, creating the context on first use.
func (e *Env) UpdateScreen(token uint64, width int) DisplayContext {
	if token > e.lastToken {
		e.lastToken = token
	}
	if e.current == nil {
		e.current = &DisplayContext{}
		log.Debug(log.CatLayout, "display context created", "token", token, "width", width)
	} else if e.dedupe && e.current.Token == token && e.current.ScreenWidth == width {
		return *e.current
	}

	e.current.Token = token
	e.current.ScreenWidth = width
	e.current.ParentSize = layout.Dim{}
	e.writes++
	return *e.current
}

// NarrowParent records the space available to the view about to draw.
// It reports false when no context exists yet.
func (e *Env) NarrowParent(size layout.Dim) (DisplayContext, bool) {
	if e.current == nil {
		return DisplayContext{}, false
	}
	e.current.ParentSize = size
	return *e.current, true
}
