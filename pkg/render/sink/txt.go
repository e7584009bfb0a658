package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

const boxLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RenderText writes a plain-text report of the plan. Each page gets a
// summary line, a character map of every section grid (one letter per box,
// '.' for free cells) and a table of its boxes with their row numbers. Doc
// is optional and only used to list box contents.
func RenderText(plan layout.Plan, doc *sheet.Document, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s, %s)\n", planHeading(&plan), plan.Format, plan.Orientation)
	pages := cfg.pages(&plan)
	for i := range pages {
		sb.WriteString("\n")
		writePageText(&sb, &pages[i], doc, cfg.print)
	}
	for _, w := range plan.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}
	return []byte(sb.String()), nil
}

func writePageText(sb *strings.Builder, p *layout.Page, doc *sheet.Document, print bool) {
	fmt.Fprintf(sb, "%s  %s %dx%d  %d/%d rows", pageTitle(p, print), p.Orientation, p.MaxColumns, p.MaxRows, p.RowsUsed, p.MaxRows)
	if p.Overflow {
		fmt.Fprintf(sb, "  OVERFLOW +%d", -p.Free())
	}
	sb.WriteString("\n")

	for si := range p.Sections {
		sl := &p.Sections[si]
		fmt.Fprintf(sb, "\n  %s (rows %d, offset %d)\n", sl.Title, sl.Rows, sl.StartOffset)
		for _, line := range gridMap(sl) {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(boxTableText(sl))
		sb.WriteString("\n")
		if doc != nil {
			writeContents(sb, doc, sl)
		}
	}
}

// gridMap draws the section grid with one character per cell.
func gridMap(sl *layout.SectionLayout) []string {
	cells := make([][]byte, sl.Rows)
	for r := range cells {
		cells[r] = []byte(strings.Repeat(".", sl.Columns))
	}
	for i, bl := range sl.Boxes {
		ch := byte('#')
		if i < len(boxLetters) {
			ch = boxLetters[i]
		}
		pl := bl.Placement
		for r := pl.Row; r < pl.Bottom() && r < len(cells); r++ {
			for c := pl.Col; c < pl.Col+pl.ColSpan && c < sl.Columns; c++ {
				cells[r][c] = ch
			}
		}
	}
	lines := make([]string, len(cells))
	for r := range cells {
		lines[r] = string(cells[r])
	}
	return lines
}

func boxTableText(sl *layout.SectionLayout) string {
	rows := make([][]string, len(sl.Boxes))
	for i := range sl.Boxes {
		bl := &sl.Boxes[i]
		key := "#"
		if i < len(boxLetters) {
			key = boxLetters[i : i+1]
		}
		lock := ""
		if bl.Locked {
			lock = "locked"
		}
		pl := bl.Placement
		rows[i] = []string{
			key,
			title(bl),
			string(bl.Type),
			fmt.Sprintf("%d,%d", pl.Row, pl.Col),
			fmt.Sprintf("%dx%d", pl.ColSpan, pl.RowSpan),
			numberRange(bl),
			overflowText(bl.Overflow),
			lock,
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "Box", "Type", "Origin", "Size", "Rows", "Overflow", "").
		Rows(rows...)
	return t.Render()
}

func overflowText(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("+%d", n)
}

// writeContents lists the filled rows of every box with their numbers.
func writeContents(sb *strings.Builder, doc *sheet.Document, sl *layout.SectionLayout) {
	for i := range sl.Boxes {
		bl := &sl.Boxes[i]
		b := layout.ContentOf(doc, sl, bl)
		if b == nil || bl.FilledRows == 0 {
			continue
		}
		fmt.Fprintf(sb, "  %s\n", title(bl))
		t := tableOf(b)
		for r, row := range t.rows {
			if r >= len(bl.RowNumbers) || bl.RowNumbers[r] == 0 {
				continue
			}
			fmt.Fprintf(sb, "    %3s  %s\n", rowNumber(bl.RowNumbers[r]), strings.Join(nonEmpty(row), " | "))
		}
	}
}
