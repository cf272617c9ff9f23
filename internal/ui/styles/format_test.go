package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Compact", 10, "Compact"},
		{"exact", "Compact", 7, "Compact"},
		{"ellipsis", "Compact layout", 10, "Compact..."},
		{"tiny", "Compact", 2, ".."},
		{"zero", "Compact", 0, ""},
		{"wide runes", "日本語テキスト", 9, "日本語..."},
		{"combining marks stay attached", "e\u0301e\u0301e\u0301e\u0301e\u0301", 4, "e\u0301..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TruncateString(tt.in, tt.width))
		})
	}
}

func TestVariantStyle(t *testing.T) {
	require.Equal(t, VariantMobileColor, VariantStyle("Mobile").GetForeground())
	require.Equal(t, TextPrimaryColor, VariantStyle("Watch").GetForeground())
}

func TestParseColor(t *testing.T) {
	require.Nil(t, ParseColor(""))
	require.NotNil(t, ParseColor("#7D56F4"))
}
