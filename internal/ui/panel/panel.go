// Package panel is the variant widget adaptive views switch between: a
// bordered, scrollable markdown pane. Its scroll position is the runtime state
// retention preserves across variant switches.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/keys"
	"github.com/zjrosen/adaptive/internal/layout"
	"github.com/zjrosen/adaptive/internal/ui/shared/markdown"
	"github.com/zjrosen/adaptive/internal/ui/shared/panes"
	"github.com/zjrosen/adaptive/internal/ui/styles"
)

const wheelLines = 3

// Template describes a panel. It is the inert blueprint registered with an
// adaptive view.
type Template struct {
	// Name is what FindWidget matches. Defaults to the variant id.
	Name          string
	Variant       adaptive.VariantID
	Title         string
	Body          string
	BorderColor   string
	Size          layout.Size
	MarkdownStyle string
}

// Instantiate implements adaptive.Template.
func (t Template) Instantiate() adaptive.Widget {
	return New(t)
}

var _ adaptive.Widget = (*Panel)(nil)

// Panel is a live panel instance.
type Panel struct {
	tmpl        Template
	zoneID      string
	viewport    viewport.Model
	width       int
	height      int
	renderedFor int // inner width the body was last rendered at, 0 when stale
	lineCount   int
	keys        keys.KeyMap
}

// New builds a panel from t. Nothing is rendered until SetSize.
func New(t Template) *Panel {
	if t.Name == "" {
		t.Name = string(t.Variant)
	}
	return &Panel{
		tmpl:     t,
		zoneID:   "panel-" + uuid.NewString(),
		viewport: viewport.New(0, 0),
		keys:     keys.DefaultKeyMap(),
	}
}

// Template returns the template currently applied.
func (p *Panel) Template() Template {
	return p.tmpl
}

// ScrollOffset is the first visible body line.
func (p *Panel) ScrollOffset() int {
	return p.viewport.YOffset
}

// ContentHeight is the number of rendered body lines plus the border.
func (p *Panel) ContentHeight() int {
	return p.lineCount + 2
}

// ZoneID identifies the panel's mouse zone.
func (p *Panel) ZoneID() string {
	return p.zoneID
}

// Update scrolls on key presses and on wheel events inside the panel.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.ScrollDown):
			p.viewport.ScrollDown(1)
		case key.Matches(msg, p.keys.ScrollUp):
			p.viewport.ScrollUp(1)
		case key.Matches(msg, p.keys.Top):
			p.viewport.GotoTop()
		case key.Matches(msg, p.keys.Bottom):
			p.viewport.GotoBottom()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if z := zone.Get(p.zoneID); z == nil || !z.InBounds(msg) {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			p.viewport.ScrollDown(wheelLines)
		case tea.MouseButtonWheelUp:
			p.viewport.ScrollUp(wheelLines)
		}
	}
	return nil
}

// View renders the bordered pane.
func (p *Panel) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	out := panes.BorderedPane(panes.BorderConfig{
		Content:     p.viewport.View(),
		Width:       p.width,
		Height:      p.height,
		TopLeft:     p.tmpl.Title,
		TopRight:    string(p.tmpl.Variant),
		BottomRight: panes.ScrollIndicator(&p.viewport),
		BorderColor: styles.ParseColor(p.tmpl.BorderColor),
		TitleColor:  styles.VariantStyle(string(p.tmpl.Variant)).GetForeground(),
	})
	return zone.Mark(p.zoneID, out)
}

// SetSize resizes the panel. The body is re-rendered only when the inner
// width changes; the scroll offset is kept.
func (p *Panel) SetSize(width, height int) {
	p.width, p.height = width, height
	inner := max(width-2, 1)
	p.viewport.Width = inner
	p.viewport.Height = max(height-2, 1)
	if inner != p.renderedFor {
		p.render(inner)
	}
}

func (p *Panel) render(inner int) {
	content := markdown.RenderBody(p.tmpl.Body, inner, p.tmpl.MarkdownStyle)
	p.lineCount = strings.Count(content, "\n") + 1
	p.viewport.SetContent(content)
	p.renderedFor = inner
}

// SizeHint implements adaptive.Widget.
func (p *Panel) SizeHint() layout.Size {
	return p.tmpl.Size
}

// Apply swaps in an updated template and re-renders at the current size. The
// scroll offset survives unless the new body is too short for it.
func (p *Panel) Apply(t adaptive.Template) error {
	next, ok := t.(Template)
	if !ok {
		return fmt.Errorf("panel: cannot apply %T", t)
	}
	if next.Name == "" {
		next.Name = string(next.Variant)
	}
	p.tmpl = next
	if p.renderedFor > 0 {
		p.render(p.renderedFor)
	}
	return nil
}

// FindWidget matches the panel's own name.
func (p *Panel) FindWidget(name string) (adaptive.Widget, bool) {
	if name == p.tmpl.Name {
		return p, true
	}
	return nil, false
}
