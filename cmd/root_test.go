package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/config"
)

func TestTracingConfig_FilePathDefaultsNextToConfig(t *testing.T) {
	c := config.Defaults()
	c.Tracing.Enabled = true
	c.Tracing.Exporter = "file"

	tc := tracingConfig(c, filepath.Join("home", ".config", "adaptive", "config.yaml"))
	require.Equal(t, filepath.Join("home", ".config", "adaptive", "traces", "traces.jsonl"), tc.FilePath)

	c.Tracing.FilePath = "/tmp/t.jsonl"
	require.Equal(t, "/tmp/t.jsonl", tracingConfig(c, "config.yaml").FilePath)

	c.Tracing.Enabled = false
	c.Tracing.FilePath = ""
	require.Empty(t, tracingConfig(c, "config.yaml").FilePath)
}

func TestPrintVariants_DefaultConfig(t *testing.T) {
	var narrow, wide bytes.Buffer
	require.NoError(t, printVariants(&narrow, config.Defaults(), 80))
	require.NoError(t, printVariants(&wide, config.Defaults(), 120))

	require.Contains(t, narrow.String(), "width 80 columns = 640 units")
	require.Contains(t, narrow.String(), "* Mobile")
	require.Contains(t, narrow.String(), "  Desktop")
	require.Contains(t, narrow.String(), "main (threshold/screen)")

	require.Contains(t, wide.String(), "* Desktop")
	require.Contains(t, wide.String(), "sidebar (threshold/screen)")
}

func TestPrintVariants_ReportsSkippedAndUnknown(t *testing.T) {
	c := config.Defaults()
	c.Views = []config.ViewConfig{{
		Name: "main",
		Variants: []config.VariantConfig{
			{ID: "Mobile", Kind: "panel"},
			{ID: "Desktop", Kind: "panel", Width: "huge"},
		},
	}}

	var out bytes.Buffer
	require.NoError(t, printVariants(&out, c, 80))
	require.Contains(t, out.String(), `! malformed configuration node "Desktop"`)

	err := printVariants(&out, c, 200)
	require.ErrorIs(t, err, adaptive.ErrUnknownVariant)
}

func TestSelectorName(t *testing.T) {
	require.Equal(t, "threshold/screen", selectorName(config.SelectorConfig{}))
	require.Equal(t, "breakpoints/parent", selectorName(config.SelectorConfig{Kind: "breakpoints", Measure: "parent"}))
}
