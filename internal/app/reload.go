package app

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/adaptive/internal/config"
	"github.com/zjrosen/adaptive/internal/log"
	"github.com/zjrosen/adaptive/internal/tracing"
	"github.com/zjrosen/adaptive/internal/ui/panel"
	"github.com/zjrosen/adaptive/internal/ui/toaster"
)

// reload re-reads the configuration file and applies it to every view as a
// full apply. A file that fails to load or validate leaves the running
// configuration untouched.
func (m Model) reload(reason string) (tea.Model, tea.Cmd) {
	if m.configPath == "" {
		return m, showToast("no config file to reload", toaster.StyleInfo)
	}

	_, span := m.tracer.Start(context.Background(), tracing.SpanReload,
		trace.WithAttributes(attribute.String(tracing.AttrConfigPath, m.configPath)))
	defer span.End()

	cfg, raw, err := loadForReload(m.configPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatConfig, "reload rejected", err, "path", m.configPath, "reason", reason)
		return m, showToast("reload failed: "+err.Error(), toaster.StyleError)
	}

	added, removed := diffSummary(m.rawConfig, raw)
	log.Info(log.CatConfig, "reloading config", "path", m.configPath, "reason", reason, "diff", formatDiff(added, removed))

	if cfg.Layout.UnitsPerCell != m.cfg.Layout.UnitsPerCell || cfg.SharedDedupe != m.cfg.SharedDedupe {
		log.Warn(log.CatConfig, "layout.units_per_cell and shared_dedupe apply on restart")
	}

	var cmds []tea.Cmd
	for _, name := range viewNames {
		vc, _ := cfg.View(name)
		sel, err := BuildSelector(vc.Selector, cfg.Layout)
		if err != nil {
			return m.fail(fmt.Errorf("view %s: %w", name, err))
		}

		v := m.views[name]
		v.SetRetainUnusedVariants(vc.RetainOr(cfg.RetainUnusedVariants))
		v.ReplaceDefaultSelector(sel)
		cmd, err := v.ApplyConfig(panel.Nodes(vc, cfg.UI.MarkdownStyle), true)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return m.fail(err)
		}
		cmds = append(cmds, cmd)
	}

	keep := m.cfg.Layout.UnitsPerCell
	dedupe := m.cfg.SharedDedupe
	m.cfg = cfg
	m.cfg.Layout.UnitsPerCell = keep
	m.cfg.SharedDedupe = dedupe
	m.rawConfig = raw
	vc, _ := cfg.View(MainView)
	m.mainSelector = vc.Selector

	span.SetAttributes(attribute.Int(tracing.AttrConfigViews, len(viewNames)))

	layoutCmd, err := m.layout()
	if err != nil {
		return m.fail(err)
	}
	cmds = append(cmds, layoutCmd)

	if errs := m.skipped.take(); len(errs) > 0 {
		span.SetStatus(codes.Error, "variants skipped")
		cmds = append(cmds, showToast(skippedMessage(errs), toaster.StyleWarn))
	} else {
		span.SetStatus(codes.Ok, "")
		cmds = append(cmds, showToast("config reloaded ("+formatDiff(added, removed)+")", toaster.StyleSuccess))
	}
	return m, tea.Batch(cmds...)
}

func loadForReload(path string) (config.Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("reading config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "", err
	}
	if err := requireViews(cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, string(data), nil
}
