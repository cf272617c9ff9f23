package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	out := Place("AAAAA\nAAAAA\nAAAAA", "X", 5, 3, Center, 0)
	require.Equal(t, "AAAAA\nAAXAA\nAAAAA", out)
}

func TestPlace_BottomWithMargin(t *testing.T) {
	out := Place("AAAA\nAAAA\nAAAA\nAAAA", "XX", 4, 4, Bottom, 1)
	require.Equal(t, "AAAA\nAAAA\nAXXA\nAAAA", out)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place("AAAA", "XX", 4, 3, Bottom, 0)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, " XX", lines[2])
}

func TestPlace_ForegroundWiderThanFrame(t *testing.T) {
	out := Place("AAA\nAAA", "XXXXX", 3, 2, Center, 0)
	require.Equal(t, "XXXXX\nAAA", out)
}

func TestPlace_KeepsStyledBackground(t *testing.T) {
	out := Place("\x1b[31mRRRRRR\x1b[0m", "X", 6, 1, Center, 0)
	require.Equal(t, "RRXRRR", ansi.Strip(out))
	require.True(t, strings.HasPrefix(out, "\x1b[31m"))
}
