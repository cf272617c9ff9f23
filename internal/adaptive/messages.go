package adaptive

// GeometryMsg reports a new window size in terminal cells. Token identifies the
// event so views sharing an Env can tell a repeat delivery from a new event.
type GeometryMsg struct {
	Token  uint64
	Width  int
	Height int
}

// RedrawMsg asks the host to redraw one view.
type RedrawMsg struct {
	ViewID string
}

// RedrawAllMsg asks the host to lay out and redraw the whole tree, so sibling
// views re-evaluate against the new shared width.
type RedrawAllMsg struct {
	Token uint64
}

// ErrorMsg carries a selection failure out of Update.
type ErrorMsg struct {
	ViewID string
	Err    error
}

func (m ErrorMsg) Error() string {
	return m.Err.Error()
}
