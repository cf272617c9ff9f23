package tracing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_AppendsAndRecordsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	stubs := tracetest.SpanStubs{
		{Name: SpanTransition, Status: sdktrace.Status{Code: codes.Error, Description: "unknown variant"}},
		{Name: SpanReload},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), stubs.Snapshots()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "ERROR", records[0].Status)
	require.Equal(t, "unknown variant", records[0].StatusMsg)
	require.Equal(t, "UNSET", records[1].Status)
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "shutdown is idempotent")

	stubs := tracetest.SpanStubs{{Name: SpanTransition}}
	require.Error(t, exporter.ExportSpans(context.Background(), stubs.Snapshots()))
}

func TestReadRecords_BadLine(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("{\"name\":\"a\"}\nnot json\n"))
	require.ErrorContains(t, err, "line 2")
}
