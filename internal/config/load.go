package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers the default values on v so keys missing from the file
// still resolve.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("retain_unused_variants", d.RetainUnusedVariants)
	v.SetDefault("shared_dedupe", d.SharedDedupe)
	v.SetDefault("layout.units_per_cell", d.Layout.UnitsPerCell)
	v.SetDefault("layout.desktop_min_width", d.Layout.DesktopMinWidth)
	v.SetDefault("layout.tablet_min_width", d.Layout.TabletMinWidth)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load reads the file at path with a fresh viper instance. Used for reloads,
// where the global instance still describes the previous file contents.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, nil
}
