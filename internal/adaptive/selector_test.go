package adaptive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/adaptive/internal/layout"
)

func TestDefaultSelector_Threshold(t *testing.T) {
	sel := DefaultSelector()

	tests := []struct {
		width int
		want  VariantID
	}{
		{0, Mobile},
		{859, Mobile},
		{860, Desktop},
		{861, Desktop},
		{1920, Desktop},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, sel.Select(DisplayContext{ScreenWidth: tt.width}), "width %d", tt.width)
	}
}

func TestThresholdSelector_ParentMeasure(t *testing.T) {
	sel := ThresholdSelector{MinWideWidth: 400, Narrow: "Compact", Wide: "Full", Measure: MeasureParent}

	require.Equal(t, VariantID("Full"), sel.Select(DisplayContext{ScreenWidth: 1000}),
		"unknown parent falls back to the screen width")
	require.Equal(t, VariantID("Compact"), sel.Select(DisplayContext{ScreenWidth: 1000, ParentSize: layout.Dim{Width: 399}}))
	require.Equal(t, VariantID("Full"), sel.Select(DisplayContext{ScreenWidth: 100, ParentSize: layout.Dim{Width: 400}}))
}

func TestThreeWaySelector(t *testing.T) {
	sel := ThreeWaySelector(600, 860, MeasureScreen)

	require.Equal(t, Mobile, sel.Select(DisplayContext{ScreenWidth: 599}))
	require.Equal(t, Tablet, sel.Select(DisplayContext{ScreenWidth: 600}))
	require.Equal(t, Tablet, sel.Select(DisplayContext{ScreenWidth: 859}))
	require.Equal(t, Desktop, sel.Select(DisplayContext{ScreenWidth: 860}))
}

func TestNewBreakpointSelector_SortsWidestFirst(t *testing.T) {
	sel := NewBreakpointSelector(Mobile, MeasureScreen,
		Breakpoint{MinWidth: 100, Variant: "A"},
		Breakpoint{MinWidth: 300, Variant: "C"},
		Breakpoint{MinWidth: 200, Variant: "B"},
	)

	require.Equal(t, []Breakpoint{{300, "C"}, {200, "B"}, {100, "A"}}, sel.Breakpoints())
	require.Equal(t, VariantID("B"), sel.Select(DisplayContext{ScreenWidth: 250}))
	require.Equal(t, Mobile, sel.Select(DisplayContext{ScreenWidth: 99}))
}

func TestSelectorFunc(t *testing.T) {
	sel := SelectorFunc(func(ctx DisplayContext) VariantID {
		if ctx.IsDesktop() {
			return Desktop
		}
		return Tablet
	})
	require.Equal(t, Tablet, sel.Select(DisplayContext{ScreenWidth: 859}))
	require.Equal(t, Desktop, sel.Select(DisplayContext{ScreenWidth: 860}))
}

func TestParseMeasure(t *testing.T) {
	m, err := ParseMeasure("")
	require.NoError(t, err)
	require.Equal(t, MeasureScreen, m)

	m, err = ParseMeasure(" Parent ")
	require.NoError(t, err)
	require.Equal(t, MeasureParent, m)
	require.Equal(t, "parent", m.String())

	_, err = ParseMeasure("viewport")
	require.Error(t, err)
}
