// Package markdown renders panel bodies. Markdown goes through glamour; when
// glamour cannot render, the text is word-wrapped as is.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/adaptive/internal/log"
)

// noMarginStyle removes glamour's document margins so the body lines up with
// the pane border.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour for one width and style.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a renderer wrapping at width. style is "dark" (the default) or
// "light". A fixed style is used rather than auto-detection, which queries the
// terminal and leaks the response into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	width = max(width, 1)

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output without the trailing
// blank lines glamour appends.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n "), nil
}

// Plain word-wraps text at width without interpreting markup.
func Plain(text string, width int) string {
	return wordwrap.String(strings.TrimRight(text, "\n"), max(width, 1))
}

// RenderBody renders markdown at width, falling back to Plain when glamour
// fails.
func RenderBody(body string, width int, style string) string {
	r, err := New(width, style)
	if err == nil {
		var out string
		if out, err = r.Render(body); err == nil {
			return out
		}
	}
	log.ErrorErr(log.CatUI, "markdown render failed, using plain text", err, "width", width, "style", style)
	return Plain(body, width)
}
