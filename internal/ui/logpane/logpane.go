// Package logpane shows recent log entries docked over the bottom of the app,
// so variant switches and reloads can be watched without leaving the TUI.
package logpane

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/ui/overlay"
	"github.com/zjrosen/adaptive/internal/ui/styles"
)

const (
	maxBodyHeight = 12
	minBodyHeight = 3
	chromeHeight  = 4 // border top/bottom, header, footer
)

// CloseMsg is sent when the pane closes itself.
type CloseMsg struct{}

// Model is the log pane state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New returns a hidden pane showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the pane is shown.
func (m Model) Visible() bool {
	return m.visible
}

// MinLevel is the current filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// Toggle shows or hides the pane.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.Refresh()
	}
}

// SetSize records the screen size the pane docks into.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.Refresh()
}

// Height is the number of lines the pane covers when visible.
func (m Model) Height() int {
	if !m.visible || m.width == 0 {
		return 0
	}
	return m.bodyHeight() + chromeHeight
}

// Update handles filter and scroll keys while the pane is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		log.ClearBuffer()
		m.Refresh()
	case "d":
		m.setLevel(log.LevelDebug)
	case "i":
		m.setLevel(log.LevelInfo)
	case "w":
		m.setLevel(log.LevelWarn)
	case "e":
		m.setLevel(log.LevelError)
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

func (m *Model) setLevel(l log.Level) {
	m.minLevel = l
	m.Refresh()
}

// Refresh reloads the buffered entries. The view follows the tail unless the
// user scrolled up.
func (m *Model) Refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}

	atBottom := m.viewport.AtBottom()
	offset := m.viewport.YOffset

	m.viewport = viewport.New(m.contentWidth(), m.bodyHeight())
	m.viewport.SetContent(m.content())
	if atBottom {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(offset)
	}
}

func (m Model) contentWidth() int {
	return max(m.width-2, 1)
}

func (m Model) bodyHeight() int {
	return max(min(maxBodyHeight, m.height/3), minBodyHeight)
}

func (m Model) content() string {
	entries := log.Recent(m.minLevel)
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}

	width := m.contentWidth()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, colorize(e, width))
	}
	return strings.Join(lines, "\n")
}

func colorize(e log.Entry, width int) string {
	line := e.Line
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "...")
	}

	var c lipgloss.TerminalColor
	switch e.Level {
	case log.LevelError:
		c = styles.StatusErrorColor
	case log.LevelWarn:
		c = styles.StatusWarningColor
	case log.LevelInfo:
		c = styles.StatusInfoColor
	default:
		c = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(c).Render(line)
}

// View renders the pane box, or nothing when hidden.
func (m Model) View() string {
	if !m.visible || m.width == 0 {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render("Logs")
	body := lipgloss.NewStyle().Height(m.bodyHeight()).Render(m.viewport.View())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(m.contentWidth())

	return box.Render(header + "\n" + body + "\n" + m.filterHint())
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

// Overlay draws the pane over the bottom lines of bg. bg is returned as is
// when the pane is hidden.
func (m Model) Overlay(bg string) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(bg, fg, m.width, m.height, overlay.Bottom, 0)
}
