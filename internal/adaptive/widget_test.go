package adaptive

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/adaptive/internal/layout"
)

// scrollMsg moves every fakeWidget it reaches.
type scrollMsg int

type fakeTemplate struct {
	title string
	hint  layout.Size
}

func (t fakeTemplate) Instantiate() Widget {
	return &fakeWidget{title: t.title, hint: t.hint}
}

// otherTemplate is a template fakeWidget refuses to apply.
type otherTemplate struct{}

func (otherTemplate) Instantiate() Widget { return &fakeWidget{} }

type fakeWidget struct {
	title         string
	hint          layout.Size
	offset        int
	width, height int
	updates       int
}

func (w *fakeWidget) Update(msg tea.Msg) tea.Cmd {
	w.updates++
	if m, ok := msg.(scrollMsg); ok {
		w.offset += int(m)
	}
	return nil
}

func (w *fakeWidget) View() string {
	return fmt.Sprintf("%s@%d", w.title, w.offset)
}

func (w *fakeWidget) SetSize(width, height int) {
	w.width, w.height = width, height
}

func (w *fakeWidget) SizeHint() layout.Size { return w.hint }

func (w *fakeWidget) Apply(tmpl Template) error {
	t, ok := tmpl.(fakeTemplate)
	if !ok {
		return fmt.Errorf("cannot apply %T", tmpl)
	}
	w.title = t.title
	w.hint = t.hint
	return nil
}

func (w *fakeWidget) FindWidget(name string) (Widget, bool) {
	if name == w.title {
		return w, true
	}
	return nil, false
}

func mobileDesktop() []Node {
	return []Node{
		{ID: Mobile, Kind: "panel", Template: fakeTemplate{title: "M", hint: layout.Size{Width: layout.Fixed(30), Height: layout.Fill()}}},
		{ID: Desktop, Kind: "panel", Template: fakeTemplate{title: "D", hint: layout.Size{Width: layout.Percent(60), Height: layout.Fill()}}},
	}
}

func fake(v *View) *fakeWidget {
	return v.ActiveVariant().Widget.(*fakeWidget)
}
