package app

import (
	"fmt"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/config"
)

// BuildSelector turns a view's selector configuration into a selector using
// the configured breakpoints.
func BuildSelector(sc config.SelectorConfig, lc config.LayoutConfig) (adaptive.Selector, error) {
	measure, err := adaptive.ParseMeasure(sc.Measure)
	if err != nil {
		return nil, err
	}

	switch sc.Kind {
	case "", config.SelectorThreshold:
		sel := adaptive.DefaultSelector()
		sel.Measure = measure
		if lc.DesktopMinWidth > 0 {
			sel.MinWideWidth = lc.DesktopMinWidth
		}
		return sel, nil
	case config.SelectorBreakpoints:
		return adaptive.ThreeWaySelector(lc.TabletMinWidth, lc.DesktopMinWidth, measure), nil
	default:
		return nil, fmt.Errorf("unknown selector kind %q", sc.Kind)
	}
}

// selectorChoices is the order the cycle key walks through.
var selectorChoices = []config.SelectorConfig{
	{Kind: config.SelectorThreshold, Measure: "screen"},
	{Kind: config.SelectorThreshold, Measure: "parent"},
	{Kind: config.SelectorBreakpoints, Measure: "screen"},
	{Kind: config.SelectorBreakpoints, Measure: "parent"},
}

func selectorLabel(sc config.SelectorConfig) string {
	kind, measure := sc.Kind, sc.Measure
	if kind == "" {
		kind = config.SelectorThreshold
	}
	if measure == "" {
		measure = "screen"
	}
	return kind + "/" + measure
}

// nextSelector returns the choice after current whose variants are all
// registered, so cycling never selects an id the view cannot build.
func nextSelector(current config.SelectorConfig, registered func(adaptive.VariantID) bool) (config.SelectorConfig, bool) {
	start := 0
	for i, c := range selectorChoices {
		if selectorLabel(c) == selectorLabel(current) {
			start = i
			break
		}
	}

	for step := 1; step <= len(selectorChoices); step++ {
		c := selectorChoices[(start+step)%len(selectorChoices)]
		ok := true
		for _, id := range c.RequiredVariants() {
			if !registered(adaptive.VariantID(id)) {
				ok = false
				break
			}
		}
		if ok && selectorLabel(c) != selectorLabel(current) {
			return c, true
		}
	}
	return current, false
}
