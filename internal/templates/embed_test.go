package templates

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_IsValidYAML(t *testing.T) {
	data, err := DefaultConfig()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))

	views, ok := doc["views"].([]any)
	require.True(t, ok)
	require.Len(t, views, 2)
	require.Equal(t, true, doc["retain_unused_variants"])
}

func TestFS_ContainsDefaultConfig(t *testing.T) {
	data, err := fs.ReadFile(FS(), DefaultConfigPath)
	require.NoError(t, err)

	want, err := DefaultConfig()
	require.NoError(t, err)
	require.Equal(t, want, data)
}
