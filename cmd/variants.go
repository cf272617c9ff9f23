package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/app"
	"github.com/zjrosen/adaptive/internal/config"
	"github.com/zjrosen/adaptive/internal/ui/panel"
	"github.com/zjrosen/adaptive/internal/ui/styles"
)

var variantsWidth int

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List each view's variants and the one selected at a width",
	Long: `Loads the configuration and prints, per view, the registered variants and
which one the configured selector picks for a terminal --width in columns.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return printVariants(cmd.OutOrStdout(), cfg, variantsWidth)
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.Flags().IntVarP(&variantsWidth, "width", "w", 80, "terminal width in columns")
}

// printVariants registers every view's variants in a throwaway view and runs
// its selector against a display context of the given width.
func printVariants(w io.Writer, c config.Config, width int) error {
	env := adaptive.NewEnv(adaptive.WithUnitsPerCell(c.Layout.UnitsPerCell))
	units := env.Units(width)
	fmt.Fprintf(w, "width %d columns = %d units\n", width, units)

	for _, vc := range c.GetViews() {
		sel, err := app.BuildSelector(vc.Selector, c.Layout)
		if err != nil {
			return fmt.Errorf("view %s: %w", vc.Name, err)
		}

		var skipped []string
		view := adaptive.New(env,
			adaptive.WithName(vc.Name),
			adaptive.WithConfigErrorReporter(func(err error) { skipped = append(skipped, err.Error()) }),
		)
		if _, err := view.ApplyConfig(panel.Nodes(vc, c.UI.MarkdownStyle), true); err != nil {
			return fmt.Errorf("view %s: %w", vc.Name, err)
		}

		picked := sel.Select(adaptive.DisplayContext{ScreenWidth: units})
		if !view.Registry().Has(picked) {
			return fmt.Errorf("view %s: %w: %q", vc.Name, adaptive.ErrUnknownVariant, string(picked))
		}

		fmt.Fprintf(w, "\n%s (%s)\n", vc.Name, selectorName(vc.Selector))
		for _, id := range view.Registry().IDs() {
			marker := " "
			if id == picked {
				marker = "*"
			}
			vcv, _ := vc.Variant(string(id))
			size, _ := vcv.Size()
			fmt.Fprintf(w, "  %s %-8s %-20s %s x %s\n", marker, id,
				styles.TruncateString(vcv.Title, 20), size.Width, size.Height)
		}
		for _, s := range skipped {
			fmt.Fprintf(w, "  ! %s\n", s)
		}
	}
	return nil
}

func selectorName(sc config.SelectorConfig) string {
	kind, measure := sc.Kind, sc.Measure
	if kind == "" {
		kind = config.SelectorThreshold
	}
	if measure == "" {
		measure = "screen"
	}
	return strings.Join([]string{kind, measure}, "/")
}
