package panel

import (
	"fmt"

	"github.com/zjrosen/adaptive/internal/adaptive"
	"github.com/zjrosen/adaptive/internal/config"
)

// Nodes turns a view's variant declarations into apply nodes. Declarations
// that are not panels, or whose sizes do not parse, become nodes carrying the
// reason so the view reports and skips them.
func Nodes(vc config.ViewConfig, markdownStyle string) []adaptive.Node {
	nodes := make([]adaptive.Node, 0, len(vc.Variants))
	for _, v := range vc.Variants {
		n := adaptive.Node{ID: adaptive.VariantID(v.ID), Kind: v.Kind}

		if v.Kind != config.KindPanel {
			n.Err = fmt.Errorf("kind %q is not a variant template", v.Kind)
			nodes = append(nodes, n)
			continue
		}

		size, err := v.Size()
		if err != nil {
			n.Err = err
			nodes = append(nodes, n)
			continue
		}

		n.Template = Template{
			Name:          vc.Name + "/" + v.ID,
			Variant:       adaptive.VariantID(v.ID),
			Title:         v.Title,
			Body:          v.Body,
			BorderColor:   v.BorderColor,
			Size:          size,
			MarkdownStyle: markdownStyle,
		}
		nodes = append(nodes, n)
	}
	return nodes
}
