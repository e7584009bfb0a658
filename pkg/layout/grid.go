package layout

import "github.com/matzehuels/callsheet/pkg/sheet"

// Placement is the rectangle a box occupies in its section grid.
// Row and Col are zero-based.
type Placement struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// Bottom returns the first row below the placement.
func (p Placement) Bottom() int { return p.Row + p.RowSpan }

// Overlaps reports whether two placements share a cell.
func (p Placement) Overlaps(q Placement) bool {
	return p.Row < q.Row+q.RowSpan && q.Row < p.Row+p.RowSpan &&
		p.Col < q.Col+q.ColSpan && q.Col < p.Col+p.ColSpan
}

// SectionGrid is the result of placing one section's boxes.
type SectionGrid struct {
	Columns    int
	Rows       int         // required grid rows, max(row+rowSpan)
	Placements []Placement // one per input box, same order
}

type cell struct{ row, col int }

// occupancy is the set of taken cells for one placement pass.
type occupancy map[cell]struct{}

func (o occupancy) mark(p Placement) {
	for r := p.Row; r < p.Bottom(); r++ {
		for c := p.Col; c < p.Col+p.ColSpan; c++ {
			o[cell{r, c}] = struct{}{}
		}
	}
}

func (o occupancy) free(p Placement) bool {
	for r := p.Row; r < p.Bottom(); r++ {
		for c := p.Col; c < p.Col+p.ColSpan; c++ {
			if _, taken := o[cell{r, c}]; taken {
				return false
			}
		}
	}
	return true
}

// Place packs boxes into a grid of the given width.
//
// Locked boxes with a position are placed first at that position, shifted
// left if they would cross the right edge. They are marked unconditionally,
// so two locked boxes may overlap; the later one wins. All other boxes are
// then auto-flowed in order: the first origin in row-major order whose whole
// rectangle is free is taken. A box is never split.
//
// Column spans are clamped to [1, columns]. Place never fails.
func Place(boxes []sheet.Box, columns int) SectionGrid {
	if columns < 1 {
		columns = 1
	}
	g := SectionGrid{Columns: columns, Placements: make([]Placement, len(boxes))}
	occ := make(occupancy)
	pinned := make([]bool, len(boxes))

	for i := range boxes {
		pos, ok := boxes[i].FixedPosition()
		if !ok {
			continue
		}
		p := Placement{RowSpan: RowSpanOf(&boxes[i]), ColSpan: clampSpan(boxes[i].Span(), columns)}
		p.Row = max(pos.Row, 0)
		p.Col = max(min(pos.Col, columns-p.ColSpan), 0)
		occ.mark(p)
		g.Placements[i] = p
		pinned[i] = true
	}

	for i := range boxes {
		if pinned[i] {
			continue
		}
		p := Placement{RowSpan: RowSpanOf(&boxes[i]), ColSpan: clampSpan(boxes[i].Span(), columns)}
		p.Row, p.Col = nextFree(occ, p, columns)
		occ.mark(p)
		g.Placements[i] = p
	}

	for _, p := range g.Placements {
		g.Rows = max(g.Rows, p.Bottom())
	}
	return g
}

// nextFree scans origins row-major from (0,0) for the first one where p's
// rectangle fits entirely. Rows below every marked cell are always free,
// so the scan terminates.
func nextFree(occ occupancy, p Placement, columns int) (row, col int) {
	for row = 0; ; row++ {
		for col = 0; col+p.ColSpan <= columns; col++ {
			p.Row, p.Col = row, col
			if occ.free(p) {
				return row, col
			}
		}
	}
}

func clampSpan(span, columns int) int {
	return max(min(span, columns), 1)
}
