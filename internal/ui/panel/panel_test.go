package panel

import (
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/config"
	"github.com/zjrosen/adaptive/internal/layout"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func longBody(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n\n", i)
	}
	return b.String()
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPanel_RendersBorderAndTitles(t *testing.T) {
	p := New(Template{Variant: adaptive.Mobile, Title: "Compact", Body: "hello"})
	require.Equal(t, "", p.View(), "nothing to draw before SetSize")

	p.SetSize(30, 6)
	lines := strings.Split(ansi.Strip(p.View()), "\n")
	require.Len(t, lines, 6)
	require.True(t, strings.HasPrefix(lines[0], "╭─ Compact "))
	require.True(t, strings.HasSuffix(lines[0], " Mobile ─╮"))
	require.Contains(t, strings.Join(lines[1:5], "\n"), "hello")
	for _, line := range lines {
		require.Equal(t, 30, ansi.StringWidth(line))
	}
}

func TestPanel_KeyScrolling(t *testing.T) {
	p := New(Template{Variant: adaptive.Desktop, Body: longBody(30)})
	p.SetSize(30, 8)

	p.Update(keyMsg('j'))
	p.Update(keyMsg('j'))
	require.Equal(t, 2, p.ScrollOffset())

	p.Update(keyMsg('k'))
	require.Equal(t, 1, p.ScrollOffset())

	p.Update(keyMsg('G'))
	require.Greater(t, p.ScrollOffset(), 1)

	p.Update(keyMsg('g'))
	require.Zero(t, p.ScrollOffset())
}

func TestPanel_WheelOutsideZoneIgnored(t *testing.T) {
	p := New(Template{Variant: adaptive.Desktop, Body: longBody(30)})
	p.SetSize(30, 8)

	p.Update(tea.MouseMsg{X: 500, Y: 500, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Zero(t, p.ScrollOffset())
}

func TestPanel_ResizeKeepsOffset(t *testing.T) {
	p := New(Template{Variant: adaptive.Desktop, Body: longBody(30)})
	p.SetSize(30, 8)
	for range 5 {
		p.Update(keyMsg('j'))
	}

	p.SetSize(40, 10)
	require.Equal(t, 5, p.ScrollOffset())
}

func TestPanel_ApplyKeepsOffset(t *testing.T) {
	p := New(Template{Variant: adaptive.Mobile, Title: "Old", Body: longBody(30)})
	p.SetSize(30, 8)
	for range 3 {
		p.Update(keyMsg('j'))
	}

	require.NoError(t, p.Apply(Template{Variant: adaptive.Mobile, Title: "New", Body: longBody(31)}))
	require.Equal(t, 3, p.ScrollOffset())
	require.Equal(t, "New", p.Template().Title)
	require.Contains(t, ansi.Strip(p.View()), "New")
}

func TestPanel_ApplyRejectsForeignTemplate(t *testing.T) {
	p := New(Template{Variant: adaptive.Mobile})
	require.Error(t, p.Apply(adaptive.Template(nil)))
}

func TestPanel_FindWidgetAndHint(t *testing.T) {
	size := layout.Size{Width: layout.Percent(30), Height: layout.Fill()}
	p := New(Template{Variant: adaptive.Desktop, Size: size})

	w, ok := p.FindWidget("Desktop")
	require.True(t, ok)
	require.Same(t, p, w)
	_, ok = p.FindWidget("Mobile")
	require.False(t, ok)

	require.Equal(t, size, p.SizeHint())
}

func TestNodes_FromConfig(t *testing.T) {
	vc := config.ViewConfig{
		Name: "main",
		Variants: []config.VariantConfig{
			{ID: "Mobile", Kind: "panel", Title: "Compact", Width: "fill", Height: "12"},
			{ID: "Desktop", Kind: "label"},
			{ID: "Tablet", Kind: "panel", Width: "wide"},
		},
	}

	nodes := Nodes(vc, "light")
	require.Len(t, nodes, 3)

	tmpl, ok := nodes[0].Template.(Template)
	require.True(t, ok)
	require.Equal(t, "main/Mobile", tmpl.Name)
	require.Equal(t, "light", tmpl.MarkdownStyle)
	require.Equal(t, layout.Fixed(12), tmpl.Size.Height)

	require.Nil(t, nodes[1].Template)
	require.ErrorContains(t, nodes[1].Err, `kind "label"`)
	require.Nil(t, nodes[2].Template)
	require.ErrorContains(t, nodes[2].Err, "width")
}

// A real panel inside an adaptive view: narrow, wide, narrow again, and the
// compact panel comes back scrolled where it was left.
func TestPanel_RetainedAcrossVariantSwitch(t *testing.T) {
	env := adaptive.NewEnv(adaptive.WithUnitsPerCell(8))
	view := adaptive.New(env, adaptive.WithRetainUnusedVariants(true))
	_, err := view.ApplyConfig([]adaptive.Node{
		{ID: adaptive.Mobile, Kind: "panel", Template: Template{Variant: adaptive.Mobile, Body: longBody(40)}},
		{ID: adaptive.Desktop, Kind: "panel", Template: Template{Variant: adaptive.Desktop, Body: longBody(40)}},
	}, true)
	require.NoError(t, err)

	resize := func(token uint64, w int) {
		_, err := view.HandleGeometry(adaptive.GeometryMsg{Token: token, Width: w, Height: 20})
		require.NoError(t, err)
		_, err = view.Layout(w, 20)
		require.NoError(t, err)
	}

	resize(1, 80) // 640 units
	for range 4 {
		view.Update(keyMsg('j'))
	}
	compact := view.ActiveVariant().Widget.(*Panel)
	require.Equal(t, 4, compact.ScrollOffset())

	resize(2, 120) // 960 units
	require.Equal(t, 0, view.ActiveVariant().Widget.(*Panel).ScrollOffset())

	resize(3, 80)
	back := view.ActiveVariant().Widget.(*Panel)
	require.Same(t, compact, back)
	require.Equal(t, 4, back.ScrollOffset())
}
