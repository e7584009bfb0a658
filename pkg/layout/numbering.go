package layout

import "github.com/matzehuels/callsheet/pkg/sheet"

// BoxNumbering is the row numbering of one box.
type BoxNumbering struct {
	// Start is the count of filled rows displayed before this box.
	Start int
	// Filled is the number of filled content rows in the box.
	Filled int
	// RowNumbers holds the displayed number of each content row, or 0 for
	// rows with nothing in them.
	RowNumbers []int
	// Overflow counts content that does not fit the reserved rows.
	Overflow int
}

// Numbering is the result of numbering a run of boxes.
type Numbering struct {
	Start int
	Next  int // Start plus every filled row
	Boxes []BoxNumbering
}

// NumberRows numbers the filled content rows of a section's boxes in box
// order, continuing from start. Empty rows are skipped and keep number 0.
// Chain calls by passing the previous Next to continue across sections.
func NumberRows(section *sheet.Section, start int) Numbering {
	return numberBoxes(section.Boxes, start)
}

func numberBoxes(boxes []sheet.Box, start int) Numbering {
	n := Numbering{Start: start, Next: start, Boxes: make([]BoxNumbering, len(boxes))}
	for i := range boxes {
		filled, overflow := FilledRows(&boxes[i])
		bn := BoxNumbering{Start: n.Next, RowNumbers: make([]int, len(filled)), Overflow: overflow}
		for r, ok := range filled {
			if ok {
				bn.Filled++
				bn.RowNumbers[r] = n.Next + bn.Filled
			}
		}
		n.Next += bn.Filled
		n.Boxes[i] = bn
	}
	return n
}

// FilledRows reports, for each content row of the box, whether it holds
// anything, plus how much content falls outside the reserved rows.
func FilledRows(b *sheet.Box) (filled []bool, overflow int) {
	rows := ContentRows(b)
	switch b.Type {
	case sheet.TypeGrid:
		return cellRows(b.Cells, rows, gridColumns(b))
	case sheet.TypeFieldZone:
		return cellRows(b.Cells, rows, len(b.Columns))
	case sheet.TypeScript:
		filled = make([]bool, rows)
		for i, row := range b.Script {
			filled[i] = !sheet.IsEmptyItem(row.Left) || !sheet.IsEmptyItem(row.Right)
		}
		return filled, 0
	case sheet.TypeMatrix:
		filled = make([]bool, rows)
		groups := b.MatrixHashGroups()
		for i, pt := range b.MatrixPlayTypes() {
			filled[i] = matrixRowFilled(b, pt.ID, groups)
		}
		return filled, 0
	default:
		filled = make([]bool, rows)
		n := 0
		for _, item := range b.Items {
			if sheet.IsEmptyItem(item) {
				continue
			}
			if n < rows {
				filled[n] = true
			} else {
				overflow++
			}
			n++
		}
		return filled, overflow
	}
}

// cellRows evaluates row-major cells against a fixed row count. Only the
// first width cells of a row count; width 0 means the whole row.
func cellRows(cells [][]string, rows, width int) (filled []bool, overflow int) {
	filled = make([]bool, rows)
	for r, row := range cells {
		if width > 0 && len(row) > width {
			row = row[:width]
		}
		if !anyItem(row) {
			continue
		}
		if r < rows {
			filled[r] = true
		} else {
			overflow++
		}
	}
	return filled, overflow
}

func matrixRowFilled(b *sheet.Box, playType string, groups []sheet.HashGroup) bool {
	for _, g := range groups {
		for _, col := range g.Columns {
			if anyItem(b.MatrixItems(playType, col)) {
				return true
			}
		}
	}
	return false
}

func anyItem(items []string) bool {
	for _, it := range items {
		if !sheet.IsEmptyItem(it) {
			return true
		}
	}
	return false
}
