package adaptive

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/adaptive/internal/layout"
)

// VariantID names a variant. Selectors return one, registries are keyed by them.
type VariantID string

// Well-known variant ids used by the built-in selectors.
const (
	Mobile  VariantID = "Mobile"
	Tablet  VariantID = "Tablet"
	Desktop VariantID = "Desktop"
)

// Template is an inert blueprint for a variant.
type Template interface {
	Instantiate() Widget
}

// Widget is a live variant instance.
type Widget interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// SizeHint is the size the widget asks its parent for.
	SizeHint() layout.Size
	// Apply re-applies an updated template without discarding runtime state.
	Apply(tmpl Template) error
	// FindWidget looks a named widget up inside this sub-tree.
	FindWidget(name string) (Widget, bool)
}

// Variant pairs an instantiated widget with the id it was created for.
type Variant struct {
	ID     VariantID
	UID    string
	Widget Widget
}
