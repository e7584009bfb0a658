package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// boxTable is the printable content of a box: column headings and one text
// row per content row.
type boxTable struct {
	headings []string
	rows     [][]string
}

// tableOf flattens a box into text. The number of rows always matches
// layout.ContentRows.
func tableOf(b *sheet.Box) boxTable {
	n := layout.ContentRows(b)
	t := boxTable{rows: make([][]string, n)}

	switch b.Type {
	case sheet.TypeGrid:
		cols := b.GridColumns
		if cols <= 0 {
			cols = sheet.DefaultGridColumns
		}
		t.headings = padded(b.Headings, cols)
		for r := range t.rows {
			t.rows[r] = padded(rowAt(b.Cells, r), cols)
		}
	case sheet.TypeFieldZone:
		cols := len(b.Columns)
		if cols == 0 {
			cols = widest(b.Cells)
		}
		t.headings = padded(b.Columns, cols)
		for r := range t.rows {
			t.rows[r] = padded(rowAt(b.Cells, r), cols)
		}
	case sheet.TypeScript:
		t.headings = []string{"", "LEFT", "RIGHT"}
		for r := range t.rows {
			t.rows[r] = []string{"", "", ""}
			if r < len(b.Script) {
				s := b.Script[r]
				t.rows[r] = []string{s.Label, s.Left, s.Right}
			}
		}
	case sheet.TypeMatrix:
		t.headings = []string{""}
		groups := b.MatrixHashGroups()
		for _, g := range groups {
			t.headings = append(t.headings, g.Columns...)
		}
		for r, pt := range b.MatrixPlayTypes() {
			row := []string{label(pt)}
			for _, g := range groups {
				for _, col := range g.Columns {
					row = append(row, strings.Join(nonEmpty(b.MatrixItems(pt.ID, col)), ", "))
				}
			}
			t.rows[r] = row
		}
	default:
		t.headings = []string{""}
		items := nonEmpty(b.Items)
		for r := range t.rows {
			t.rows[r] = []string{""}
			if r < len(items) {
				t.rows[r][0] = items[r]
			}
		}
	}
	return t
}

func label(pt sheet.PlayType) string {
	if pt.Label != "" {
		return pt.Label
	}
	return pt.ID
}

func rowAt(cells [][]string, r int) []string {
	if r < len(cells) {
		return cells[r]
	}
	return nil
}

func padded(in []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n && i < len(in); i++ {
		if !sheet.IsEmptyItem(in[i]) {
			out[i] = in[i]
		}
	}
	return out
}

func widest(cells [][]string) int {
	w := 1
	for _, row := range cells {
		w = max(w, len(row))
	}
	return w
}

func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		if !sheet.IsEmptyItem(it) {
			out = append(out, it)
		}
	}
	return out
}

// title is the heading drawn in a box's title bar.
func title(bl *layout.BoxLayout) string {
	if bl.Header != "" {
		return bl.Header
	}
	return strings.ToUpper(string(bl.Type))
}

// rowNumber formats a displayed row number; unfilled rows show nothing.
func rowNumber(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

// numberRange summarizes a box's row numbers as "first-last".
func numberRange(bl *layout.BoxLayout) string {
	if bl.FilledRows == 0 {
		return "-"
	}
	first, last := bl.StartOffset+1, bl.StartOffset+bl.FilledRows
	if first == last {
		return fmt.Sprint(first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

// pageTitle names a page for sheet tabs and headings.
func pageTitle(p *layout.Page, print bool) string {
	if print {
		return fmt.Sprintf("Print %d %s", p.Number, p.Side)
	}
	return fmt.Sprintf("Page %d", p.Number)
}
