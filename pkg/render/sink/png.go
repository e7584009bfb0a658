package sink

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/callsheet/pkg/layout"
)

const (
	pngMargin  = 16.0
	pngColUnit = 5 // grid row heights per column width
)

// RenderPNG draws a wireframe of the plan: each page's grid at scale pixels
// per row, boxes with their title bars and row numbers, pages stacked top to
// bottom. Overflowing pages extend below a red capacity line.
func RenderPNG(plan layout.Plan, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	pages := cfg.pages(&plan)
	if len(pages) == 0 {
		return nil, fmt.Errorf("png: plan has no pages")
	}

	row := float64(cfg.scale)
	col := row * pngColUnit
	width, height := 0.0, pngMargin
	for i := range pages {
		p := &pages[i]
		width = max(width, float64(p.MaxColumns)*col)
		height += pageHeight(p, row) + pngMargin
	}
	dc := gg.NewContext(int(width+2*pngMargin), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	face, err := labelFace(row)
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	dc.SetFontFace(face)

	y := pngMargin
	for i := range pages {
		drawPage(dc, &pages[i], pngMargin, y, col, row, cfg.print)
		y += pageHeight(&pages[i], row) + pngMargin
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	labelFont     *opentype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// labelFace returns the Go Regular face sized to fit a grid row.
func labelFace(row float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	return opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    row * 0.65,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func pageHeight(p *layout.Page, row float64) float64 {
	return float64(max(p.MaxRows, p.RowsUsed)+1) * row
}

func drawPage(dc *gg.Context, p *layout.Page, x, y, col, row float64, print bool) {
	w := float64(p.MaxColumns) * col
	h := float64(p.MaxRows) * row

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(fmt.Sprintf("%s  %d/%d", pageTitle(p, print), p.RowsUsed, p.MaxRows), x, y+row/2, 0, 0.5)
	top := y + row

	dc.SetLineWidth(1)
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.DrawRectangle(x, top, w, h)
	dc.Stroke()

	offset := 0
	for si := range p.Sections {
		sl := &p.Sections[si]
		sy := top + float64(offset)*row
		if offset > 0 {
			dc.SetRGB(0.3, 0.45, 0.8)
			dc.SetDash(4, 3)
			dc.DrawLine(x, sy, x+w, sy)
			dc.Stroke()
			dc.SetDash()
		}
		for bi := range sl.Boxes {
			drawBox(dc, &sl.Boxes[bi], x, sy, col, row)
		}
		offset += sl.Rows
	}

	if p.Overflow {
		dc.SetRGB(0.85, 0.1, 0.1)
		dc.SetLineWidth(2)
		dc.DrawLine(x, top+h, x+w, top+h)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("+%d rows", -p.Free()), x+w, top+h+row/2, 1, 0.5)
	}
}

func drawBox(dc *gg.Context, bl *layout.BoxLayout, x, y, col, row float64) {
	pl := bl.Placement
	bx := x + float64(pl.Col)*col
	by := y + float64(pl.Row)*row
	bw := float64(pl.ColSpan) * col
	bh := float64(pl.RowSpan) * row

	dc.SetRGB(0.25, 0.25, 0.25)
	dc.DrawRectangle(bx, by, bw, row)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(title(bl), bx+bw/2, by+row/2, 0.5, 0.5)

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawRectangle(bx, by+row, bw, row)
	dc.Fill()

	dc.SetLineWidth(0.5)
	dc.SetRGB(0.8, 0.8, 0.8)
	for r := 2; r < pl.RowSpan; r++ {
		ly := by + float64(r)*row
		dc.DrawLine(bx, ly, bx+bw, ly)
	}
	dc.Stroke()

	dc.SetRGB(0.4, 0.4, 0.4)
	for r, n := range bl.RowNumbers {
		if n == 0 {
			continue
		}
		dc.DrawStringAnchored(rowNumber(n), bx+3, by+float64(r+2)*row+row/2, 0, 0.5)
	}

	dc.SetLineWidth(1)
	if bl.Locked {
		dc.SetRGB(0.8, 0.5, 0.1)
	} else {
		dc.SetRGB(0.1, 0.1, 0.1)
	}
	dc.DrawRectangle(bx, by, bw, bh)
	dc.Stroke()
}
