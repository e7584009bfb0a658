package layout

import "github.com/matzehuels/callsheet/pkg/sheet"

// chromeRows is the title bar plus the column-header row every box draws
// above its content.
const chromeRows = 2

// contentRowsByType maps a content type to its content-row rule. Types not
// listed are freeform.
var contentRowsByType = map[sheet.ContentType]func(*sheet.Box) int{
	sheet.TypeGrid:      gridRows,
	sheet.TypeScript:    scriptRows,
	sheet.TypeFieldZone: zoneRows,
	sheet.TypeMatrix:    matrixRows,
}

// RowSpanOf returns the number of grid rows a box occupies: its content
// rows plus the title and header rows.
func RowSpanOf(b *sheet.Box) int {
	return ContentRows(b) + chromeRows
}

// ContentRows returns the number of rows the box reserves for content.
func ContentRows(b *sheet.Box) int {
	if fn, ok := contentRowsByType[b.Type]; ok {
		return fn(b)
	}
	return sheet.DefaultListRows
}

func gridRows(b *sheet.Box) int {
	if b.GridRows > 0 {
		return b.GridRows
	}
	return sheet.DefaultGridRows
}

func scriptRows(b *sheet.Box) int {
	if n := len(b.Script); n > 0 {
		return n
	}
	return sheet.DefaultScriptRows
}

func zoneRows(b *sheet.Box) int {
	switch {
	case b.RowCount > 0:
		return b.RowCount
	case b.GridRows > 0:
		return b.GridRows
	default:
		return sheet.DefaultZoneRows
	}
}

func matrixRows(b *sheet.Box) int {
	return len(b.MatrixPlayTypes())
}

// gridColumns is the number of cells per row that count for a tabular grid.
func gridColumns(b *sheet.Box) int {
	if b.GridColumns > 0 {
		return b.GridColumns
	}
	return sheet.DefaultGridColumns
}
