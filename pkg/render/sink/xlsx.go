package sink

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// xlsxUnit is the number of worksheet columns per layout grid column.
const xlsxUnit = 3

type xlsxStyles struct {
	page, section, title, heading, number, cell int
}

type xlsxRenderer struct {
	f      *excelize.File
	doc    *sheet.Document
	styles xlsxStyles
}

// RenderXLSX writes the plan as a workbook, one worksheet per page. Each box
// sits at its grid origin: a merged title row, a heading row, then its
// content rows with the displayed row numbers in the first column. Every
// worksheet carries the page orientation and a print area covering the page.
func RenderXLSX(plan layout.Plan, doc *sheet.Document, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	f := excelize.NewFile()
	defer f.Close()

	r := &xlsxRenderer{f: f, doc: doc}
	if err := r.initStyles(); err != nil {
		return nil, err
	}

	pages := cfg.pages(&plan)
	if len(pages) == 0 {
		return nil, fmt.Errorf("xlsx: plan has no pages")
	}
	for i := range pages {
		name := pageTitle(&pages[i], cfg.print)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := r.writePage(name, &plan, &pages[i]); err != nil {
			return nil, fmt.Errorf("xlsx: %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *xlsxRenderer) initStyles() error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&r.styles.page, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&r.styles.section, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&r.styles.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"404040"}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		}},
		{&r.styles.heading, &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 8},
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
			Border: border,
		}},
		{&r.styles.number, &excelize.Style{
			Font:      &excelize.Font{Size: 8, Color: "808080"},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border:    border,
		}},
		{&r.styles.cell, &excelize.Style{Font: &excelize.Font{Size: 9}, Border: border}},
	}
	for _, d := range defs {
		id, err := r.f.NewStyle(d.style)
		if err != nil {
			return fmt.Errorf("xlsx: style: %w", err)
		}
		*d.dst = id
	}
	return nil
}

func (r *xlsxRenderer) writePage(name string, plan *layout.Plan, p *layout.Page) error {
	lastCol := p.MaxColumns * xlsxUnit
	if err := r.set(name, 1, 1, pageHeading(plan, p)); err != nil {
		return err
	}
	if err := r.style(name, 1, 1, 1, 1, r.styles.page); err != nil {
		return err
	}

	cursor := 2
	for si := range p.Sections {
		sl := &p.Sections[si]
		if err := r.set(name, cursor, 1, sl.Title); err != nil {
			return err
		}
		if err := r.style(name, cursor, 1, cursor, 1, r.styles.section); err != nil {
			return err
		}
		origin := cursor + 1
		for bi := range sl.Boxes {
			if err := r.writeBox(name, origin, sl, &sl.Boxes[bi]); err != nil {
				return err
			}
		}
		cursor = origin + sl.Rows
	}

	lastName, err := excelize.ColumnNumberToName(lastCol)
	if err != nil {
		return err
	}
	if err := r.f.SetColWidth(name, "A", lastName, 7); err != nil {
		return err
	}
	orient := string(p.Orientation)
	if err := r.f.SetPageLayout(name, &excelize.PageLayoutOptions{Orientation: &orient}); err != nil {
		return err
	}
	return r.f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", name, lastName, max(cursor-1, 1)),
		Scope:    name,
	})
}

func (r *xlsxRenderer) writeBox(name string, origin int, sl *layout.SectionLayout, bl *layout.BoxLayout) error {
	pl := bl.Placement
	top := origin + pl.Row
	left := 1 + pl.Col*xlsxUnit
	right := (pl.Col + pl.ColSpan) * xlsxUnit
	width := right - left // content columns after the number column

	if err := r.merge(name, top, left, top, right); err != nil {
		return err
	}
	if err := r.set(name, top, left, title(bl)); err != nil {
		return err
	}
	if err := r.style(name, top, left, top, right, r.styles.title); err != nil {
		return err
	}

	t := boxTable{rows: make([][]string, max(pl.RowSpan-2, 0))}
	if b := layout.ContentOf(r.doc, sl, bl); b != nil {
		t = tableOf(b)
	}
	headRow := top + 1
	if err := r.style(name, headRow, left, headRow, right, r.styles.heading); err != nil {
		return err
	}
	if err := r.set(name, headRow, left, "#"); err != nil {
		return err
	}
	for i, h := range fitColumns(t.headings, width) {
		if err := r.set(name, headRow, left+1+i, h); err != nil {
			return err
		}
	}

	for i, row := range t.rows {
		y := headRow + 1 + i
		if err := r.style(name, y, left, y, left, r.styles.number); err != nil {
			return err
		}
		if width > 0 {
			if err := r.style(name, y, left+1, y, right, r.styles.cell); err != nil {
				return err
			}
		}
		if i < len(bl.RowNumbers) && bl.RowNumbers[i] > 0 {
			if err := r.set(name, y, left, bl.RowNumbers[i]); err != nil {
				return err
			}
		}
		for j, v := range fitColumns(row, width) {
			if v == "" {
				continue
			}
			if err := r.set(name, y, left+1+j, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// fitColumns squeezes values into n columns, joining the surplus into the
// last one.
func fitColumns(values []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		return values
	}
	out := append([]string(nil), values[:n-1]...)
	var rest []string
	for _, v := range values[n-1:] {
		if v != "" {
			rest = append(rest, v)
		}
	}
	return append(out, strings.Join(rest, " / "))
}

func pageHeading(plan *layout.Plan, p *layout.Page) string {
	return fmt.Sprintf("%s  p.%d%s", planHeading(plan), p.Number, p.Side)
}

// planHeading joins the title, opponent and week that are set.
func planHeading(plan *layout.Plan) string {
	parts := []string{}
	if plan.Title != "" {
		parts = append(parts, plan.Title)
	}
	if plan.Opponent != "" {
		parts = append(parts, "vs "+plan.Opponent)
	}
	if plan.Week != "" {
		parts = append(parts, "Week "+plan.Week)
	}
	if len(parts) == 0 {
		return "Call sheet"
	}
	return strings.Join(parts, "  ")
}

func (r *xlsxRenderer) set(name string, row, col int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return r.f.SetCellValue(name, cell, v)
}

func (r *xlsxRenderer) style(name string, r1, c1, r2, c2, id int) error {
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(name, from, to, id)
}

func (r *xlsxRenderer) merge(name string, r1, c1, r2, c2 int) error {
	if r1 == r2 && c1 == c2 {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	return r.f.MergeCell(name, from, to)
}
