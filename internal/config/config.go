// Package config provides configuration types, defaults and validation for
// adaptive.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/adaptive/internal/layout"
	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/templates"
	"github.com/zjrosen/adaptive/internal/tracing"
)

// Selector kinds.
const (
	SelectorThreshold   = "threshold"
	SelectorBreakpoints = "breakpoints"
)

// KindPanel is the only variant kind adaptive can build.
const KindPanel = "panel"

// Config holds all configuration options for adaptive.
type Config struct {
	RetainUnusedVariants bool           `mapstructure:"retain_unused_variants" yaml:"retain_unused_variants"`
	SharedDedupe         bool           `mapstructure:"shared_dedupe" yaml:"shared_dedupe"`
	Layout               LayoutConfig   `mapstructure:"layout" yaml:"layout"`
	UI                   UIConfig       `mapstructure:"ui" yaml:"ui"`
	Tracing              tracing.Config `mapstructure:"tracing" yaml:"tracing"`
	Views                []ViewConfig   `mapstructure:"views" yaml:"views"`
}

// LayoutConfig sets the unit scale and the selector breakpoints.
type LayoutConfig struct {
	UnitsPerCell    int `mapstructure:"units_per_cell" yaml:"units_per_cell"`
	DesktopMinWidth int `mapstructure:"desktop_min_width" yaml:"desktop_min_width"`
	TabletMinWidth  int `mapstructure:"tablet_min_width" yaml:"tablet_min_width"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
	ShowStatusBar bool   `mapstructure:"show_status_bar" yaml:"show_status_bar"`
}

// ViewConfig is one adaptive view and its variants.
type ViewConfig struct {
	Name     string          `mapstructure:"name" yaml:"name"`
	Selector SelectorConfig  `mapstructure:"selector" yaml:"selector"`
	Retain   *bool           `mapstructure:"retain" yaml:"retain,omitempty"` // overrides retain_unused_variants
	Variants []VariantConfig `mapstructure:"variants" yaml:"variants"`
}

// SelectorConfig picks the selector strategy of a view.
type SelectorConfig struct {
	Kind    string `mapstructure:"kind" yaml:"kind"`       // "threshold" (default) or "breakpoints"
	Measure string `mapstructure:"measure" yaml:"measure"` // "screen" (default) or "parent"
}

// VariantConfig declares one variant template.
type VariantConfig struct {
	ID          string `mapstructure:"id" yaml:"id"`
	Kind        string `mapstructure:"kind" yaml:"kind"`
	Title       string `mapstructure:"title" yaml:"title"`
	Body        string `mapstructure:"body" yaml:"body"`
	BorderColor string `mapstructure:"border_color" yaml:"border_color"`
	Width       string `mapstructure:"width" yaml:"width"`
	Height      string `mapstructure:"height" yaml:"height"`
}

// Size parses the width and height requests.
func (v VariantConfig) Size() (layout.Size, error) {
	w, err := layout.ParseValue(v.Width)
	if err != nil {
		return layout.Size{}, fmt.Errorf("width: %w", err)
	}
	h, err := layout.ParseValue(v.Height)
	if err != nil {
		return layout.Size{}, fmt.Errorf("height: %w", err)
	}
	return layout.Size{Width: w, Height: h}, nil
}

// RetainOr returns the view's retention override, or fallback.
func (v ViewConfig) RetainOr(fallback bool) bool {
	if v.Retain != nil {
		return *v.Retain
	}
	return fallback
}

// Variant returns the variant declared with id.
func (v ViewConfig) Variant(id string) (VariantConfig, bool) {
	for _, vc := range v.Variants {
		if vc.ID == id {
			return vc, true
		}
	}
	return VariantConfig{}, false
}

// RequiredVariants lists the ids the view's selector can produce.
func (s SelectorConfig) RequiredVariants() []string {
	if s.Kind == SelectorBreakpoints {
		return []string{"Mobile", "Tablet", "Desktop"}
	}
	return []string{"Mobile", "Desktop"}
}

// Defaults returns a Config with the default values and views.
func Defaults() Config {
	return Config{
		RetainUnusedVariants: true,
		SharedDedupe:         true,
		Layout: LayoutConfig{
			UnitsPerCell:    8,
			DesktopMinWidth: 860,
			TabletMinWidth:  600,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			ShowStatusBar: true,
		},
		Tracing: tracing.DefaultConfig(),
		Views:   DefaultViews(),
	}
}

// DefaultViews returns the views of the embedded default configuration.
func DefaultViews() []ViewConfig {
	data, err := templates.DefaultConfig()
	if err != nil {
		log.ErrorErr(log.CatConfig, "Failed to read embedded config", err)
		return nil
	}
	var doc struct {
		Views []ViewConfig `yaml:"views"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to parse embedded config", err)
		return nil
	}
	return doc.Views
}

// GetViews returns the configured views, or DefaultViews() if none are
// configured.
func (c Config) GetViews() []ViewConfig {
	if len(c.Views) > 0 {
		return c.Views
	}
	return DefaultViews()
}

// View returns the view called name.
func (c Config) View(name string) (ViewConfig, bool) {
	for _, v := range c.GetViews() {
		if v.Name == name {
			return v, true
		}
	}
	return ViewConfig{}, false
}

// Validate reports every configuration problem at once. Problems inside a
// variant no selector requires are left to the view, which skips the variant
// and carries on.
func Validate(cfg Config) error {
	return errors.Join(
		ValidateLayout(cfg.Layout),
		ValidateUI(cfg.UI),
		ValidateTracing(cfg.Tracing),
		ValidateViews(cfg.Views),
	)
}

// ValidateLayout checks units and breakpoints.
func ValidateLayout(l LayoutConfig) error {
	var errs []error
	if l.UnitsPerCell < 1 {
		errs = append(errs, fmt.Errorf("layout.units_per_cell must be at least 1, got %d", l.UnitsPerCell))
	}
	if l.DesktopMinWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.desktop_min_width must be positive, got %d", l.DesktopMinWidth))
	}
	if l.TabletMinWidth < 0 || (l.DesktopMinWidth > 0 && l.TabletMinWidth >= l.DesktopMinWidth) {
		errs = append(errs, fmt.Errorf("layout.tablet_min_width must be between 0 and desktop_min_width (%d), got %d",
			l.DesktopMinWidth, l.TabletMinWidth))
	}
	return errors.Join(errs...)
}

// ValidateUI checks the markdown style.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ValidateViews checks view names, selectors and that every id a selector can
// produce is declared as a well-formed panel. Empty views are valid and fall
// back to the defaults.
func ValidateViews(views []ViewConfig) error {
	var errs []error
	seen := make(map[string]bool, len(views))

	for i, view := range views {
		if view.Name == "" {
			errs = append(errs, fmt.Errorf("view %d: name is required", i))
			continue
		}
		if seen[view.Name] {
			errs = append(errs, fmt.Errorf("view %d: duplicate name %q", i, view.Name))
		}
		seen[view.Name] = true

		switch view.Selector.Kind {
		case "", SelectorThreshold, SelectorBreakpoints:
		default:
			errs = append(errs, fmt.Errorf("view %d (%s): selector.kind must be %q or %q, got %q",
				i, view.Name, SelectorThreshold, SelectorBreakpoints, view.Selector.Kind))
		}
		switch strings.ToLower(view.Selector.Measure) {
		case "", "screen", "parent":
		default:
			errs = append(errs, fmt.Errorf("view %d (%s): selector.measure must be \"screen\" or \"parent\", got %q",
				i, view.Name, view.Selector.Measure))
		}

		var missing []string
		for _, id := range view.Selector.RequiredVariants() {
			vc, ok := view.Variant(id)
			if !ok {
				missing = append(missing, id)
				continue
			}
			if err := validateRequiredVariant(vc); err != nil {
				errs = append(errs, fmt.Errorf("view %d (%s): variant %s: %w", i, view.Name, id, err))
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Errorf("view %d (%s): no variant declared for %s",
				i, view.Name, strings.Join(missing, ", ")))
		}
	}
	return errors.Join(errs...)
}

// validateRequiredVariant rejects a declaration the view would skip.
func validateRequiredVariant(vc VariantConfig) error {
	if vc.Kind != KindPanel {
		return fmt.Errorf("kind must be %q, got %q", KindPanel, vc.Kind)
	}
	_, err := vc.Size()
	return err
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	data, err := templates.DefaultConfig()
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteDefaultConfig creates a config file at configPath with the default
// settings and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := templates.DefaultConfig()
	if err != nil {
		return fmt.Errorf("reading embedded config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
