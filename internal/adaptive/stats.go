package adaptive

// Stats counts what a View has done. Tests use it to assert that redundant
// work was skipped.
type Stats struct {
	Evaluations    int // selector invocations
	Transitions    int // active variant changed
	Instantiations int // variants built from a template
	Restores       int // variants promoted from the retained cache
	Evictions      int // variants moved into the retained cache
	Drops          int // variants discarded on deactivation
	GeometrySkips  int // geometry messages ignored because the width did not change
	Redraws        int // redraw requests for this view
	RedrawAlls     int // full-tree redraw requests
	HotReapplies   int // templates re-applied onto live instances
}
