package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer func() { defaultLogger = nil }()

	Info(CatVariant, "variant activated", "view", "main", "variant", "Desktop")

	out := buf.String()
	require.Contains(t, out, "[INFO] [variant] variant activated")
	require.Contains(t, out, "view=main")
	require.Contains(t, out, "variant=Desktop")
}

func TestWrite_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer func() { defaultLogger = nil }()

	Warn(CatLayout, "width", "orphan")

	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestWrite_RespectsMinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer func() { defaultLogger = nil }()

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	ErrorErr(CatConfig, "bad node", errors.New("boom"))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "error=boom")

	SetEnabled(false)
	Error(CatUI, "suppressed")
	require.NotContains(t, buf.String(), "suppressed")
}

func TestRecent_FiltersAndClears(t *testing.T) {
	InitWriter(nil)
	defer func() { defaultLogger = nil }()

	Debug(CatCache, "one")
	Error(CatCache, "two")

	require.Len(t, Recent(LevelDebug), 2)
	errs := Recent(LevelError)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Line, "two")

	ClearBuffer()
	require.Empty(t, Recent(LevelDebug))
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	InitWriter(nil)
	defer func() { defaultLogger = nil }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatWatcher, "config changed")

	msg := listener.Listen()()
	event, ok := msg.(LogEvent)
	require.True(t, ok)
	require.Contains(t, event.Payload.Line, "config changed")
}

func TestUninitialized_IsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() { Info(CatUI, "nothing") })
	require.Nil(t, NewListener(context.Background()))
	require.Nil(t, Recent(LevelDebug))
}
