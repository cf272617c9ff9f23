package adaptive

import (
	"fmt"
	"sort"
	"strings"
)

// Selector maps a display context to the variant that should be shown.
type Selector interface {
	Select(ctx DisplayContext) VariantID
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(ctx DisplayContext) VariantID

// Select calls f.
func (f SelectorFunc) Select(ctx DisplayContext) VariantID {
	return f(ctx)
}

// Measure picks which width of the context a selector compares.
type Measure int

const (
	// MeasureScreen compares the window width.
	MeasureScreen Measure = iota
	// MeasureParent compares the space available to the view, falling back to
	// the window width while it is unknown.
	MeasureParent
)

func (m Measure) String() string {
	switch m {
	case MeasureParent:
		return "parent"
	default:
		return "screen"
	}
}

// ParseMeasure reads "screen" or "parent". Empty means screen.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "screen":
		return MeasureScreen, nil
	case "parent":
		return MeasureParent, nil
	default:
		return MeasureScreen, fmt.Errorf("unknown measure %q: want screen or parent", s)
	}
}

func (m Measure) width(ctx DisplayContext) int {
	if m == MeasureParent {
		return ctx.AvailableWidth()
	}
	return ctx.ScreenWidth
}

// ThresholdSelector picks Narrow below MinWideWidth and Wide from it upward.
type ThresholdSelector struct {
	MinWideWidth int
	Narrow       VariantID
	Wide         VariantID
	Measure      Measure
}

// DefaultSelector is Mobile below MinDesktopWidth screen units, else Desktop.
func DefaultSelector() ThresholdSelector {
	return ThresholdSelector{
		MinWideWidth: MinDesktopWidth,
		Narrow:       Mobile,
		Wide:         Desktop,
		Measure:      MeasureScreen,
	}
}

// Select implements Selector.
func (s ThresholdSelector) Select(ctx DisplayContext) VariantID {
	if s.Measure.width(ctx) < s.MinWideWidth {
		return s.Narrow
	}
	return s.Wide
}

// Breakpoint selects Variant from MinWidth upward.
type Breakpoint struct {
	MinWidth int
	Variant  VariantID
}

// BreakpointSelector picks the variant of the widest breakpoint the measured
// width reaches, or Fallback when it reaches none.
type BreakpointSelector struct {
	breakpoints []Breakpoint
	fallback    VariantID
	measure     Measure
}

// NewBreakpointSelector orders bps from widest to narrowest.
func NewBreakpointSelector(fallback VariantID, measure Measure, bps ...Breakpoint) BreakpointSelector {
	sorted := append([]Breakpoint(nil), bps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinWidth > sorted[j].MinWidth })
	return BreakpointSelector{breakpoints: sorted, fallback: fallback, measure: measure}
}

// ThreeWaySelector is Mobile / Tablet / Desktop split at the given widths.
func ThreeWaySelector(tabletMin, desktopMin int, measure Measure) BreakpointSelector {
	return NewBreakpointSelector(Mobile, measure,
		Breakpoint{MinWidth: tabletMin, Variant: Tablet},
		Breakpoint{MinWidth: desktopMin, Variant: Desktop},
	)
}

// Select implements Selector.
func (s BreakpointSelector) Select(ctx DisplayContext) VariantID {
	w := s.measure.width(ctx)
	for _, bp := range s.breakpoints {
		if w >= bp.MinWidth {
			return bp.Variant
		}
	}
	return s.fallback
}

// Breakpoints returns the breakpoints widest first.
func (s BreakpointSelector) Breakpoints() []Breakpoint {
	return append([]Breakpoint(nil), s.breakpoints...)
}
