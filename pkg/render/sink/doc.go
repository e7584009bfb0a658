// Package sink renders a layout plan into output artifacts.
//
// Each renderer takes the [layout.Plan] and the [sheet.Document] it was built
// from; the plan says where everything goes, the document supplies what to
// write there:
//
//   - [RenderJSON]: the plan itself
//   - [RenderXLSX]: a workbook with one worksheet per page, every box written
//     at its grid origin with its row numbers
//   - [RenderText]: per page, a character map of the grid and a table of boxes
//   - [RenderPNG]: a wireframe of each page's grid, pages stacked vertically
//
// Pass [WithPrint] to render the booklet print pages of a 4-page plan rather
// than its logical pages.
package sink

import "github.com/matzehuels/callsheet/pkg/layout"

// Option configures a renderer.
type Option func(*config)

// Bounds for the PNG row height in pixels.
const (
	MinScale = 4
	MaxScale = 64
)

type config struct {
	print bool
	scale int
}

// WithPrint renders the plan's print pages (the booklet for 4-page plans).
func WithPrint() Option { return func(c *config) { c.print = true } }

// WithScale sets the PNG size of one grid row in pixels (default 14),
// clamped to MinScale..MaxScale.
func WithScale(px int) Option { return func(c *config) { c.scale = px } }

func newConfig(opts []Option) config {
	c := config{scale: 14}
	for _, opt := range opts {
		opt(&c)
	}
	c.scale = min(max(c.scale, MinScale), MaxScale)
	return c
}

func (c config) pages(p *layout.Plan) []layout.Page {
	if c.print {
		return p.PrintPages()
	}
	return p.Pages
}
