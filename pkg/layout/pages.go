package layout

import "github.com/matzehuels/callsheet/pkg/sheet"

// Page capacities in grid columns and rows.
const (
	LandscapeColumns = 6
	LandscapeRows    = 60
	PortraitColumns  = 5
	PortraitRows     = 70
)

// Capacity returns the grid size of a physical page.
func Capacity(o sheet.Orientation) (columns, rows int) {
	if o == sheet.Portrait {
		return PortraitColumns, PortraitRows
	}
	return LandscapeColumns, LandscapeRows
}

// PhysicalOrientation returns how pages are actually printed. The 4-page
// booklet folds each sheet, so its pages run opposite to the selection.
func PhysicalOrientation(format sheet.PageFormat, selected sheet.Orientation) sheet.Orientation {
	if format.IsBooklet() {
		return selected.Flip()
	}
	return selected
}

// SheetSize returns the printed page size in inches.
func SheetSize(format sheet.PageFormat, selected sheet.Orientation) (width, height float64) {
	switch {
	case format.IsBooklet() && selected == sheet.Portrait:
		return 10.5, 5
	case format.IsBooklet():
		return 8, 10.5
	case selected == sheet.Portrait:
		return 8, 10.5
	default:
		return 10.5, 8
	}
}

// Side marks which half of a booklet spread a print page belongs to.
type Side string

// Booklet sides.
const (
	SideLeft  Side = "L"
	SideRight Side = "R"
)

// Page is one laid-out page.
type Page struct {
	Number      int               `json:"number"`
	Orientation sheet.Orientation `json:"orientation"`
	MaxColumns  int               `json:"max_columns"`
	MaxRows     int               `json:"max_rows"`
	RowsUsed    int               `json:"rows_used"`
	Overflow    bool              `json:"overflow"`
	Width       float64           `json:"width_in"`
	Height      float64           `json:"height_in"`
	Side        Side              `json:"side,omitempty"`
	Sections    []SectionLayout   `json:"sections"`
}

// Free returns the unused row capacity, negative when overflowing.
func (p *Page) Free() int { return p.MaxRows - p.RowsUsed }

// SectionLayout is a section as laid out on a page.
type SectionLayout struct {
	Index       int         `json:"index"` // position in the document
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title"`
	Columns     int         `json:"columns"`
	Rows        int         `json:"rows"`
	StartOffset int         `json:"start_offset"`
	Boxes       []BoxLayout `json:"boxes"`
}

// BoxLayout is one placed box.
type BoxLayout struct {
	Index       int               `json:"index"` // position in the section
	ID          string            `json:"id,omitempty"`
	Header      string            `json:"header,omitempty"`
	Type        sheet.ContentType `json:"type"`
	Locked      bool              `json:"locked,omitempty"`
	Hidden      bool              `json:"hidden,omitempty"`
	Placement   Placement         `json:"placement"`
	StartOffset int               `json:"start_offset"`
	FilledRows  int               `json:"filled_rows"`
	RowNumbers  []int             `json:"row_numbers"`
	Overflow    int               `json:"content_overflow,omitempty"`

	// HashGroups lists the matrix groups shown, for booklet halves.
	HashGroups []string `json:"hash_groups,omitempty"`
}

// PageOptions adjusts page planning.
type PageOptions struct {
	// Editing keeps empty pages and hidden boxes.
	Editing bool
}

// PlanPages assigns sections to pages, lays each section out and numbers
// rows per page.
//
// Sections go to their target page, or page 1 when it is missing or out of
// range. Pages without sections are dropped unless editing. Row offsets run
// across the sections of a page and restart at 0 on each page. A page whose
// sections need more rows than it holds is flagged, never truncated.
func PlanPages(sections []sheet.Section, format sheet.PageFormat, selected sheet.Orientation, opts PageOptions) []Page {
	count := format.Pages()
	orient := PhysicalOrientation(format, selected)
	cols, rows := Capacity(orient)
	width, height := SheetSize(format, selected)

	buckets := make([][]int, count+1)
	for i := range sections {
		p := sections[i].TargetPage(count)
		buckets[p] = append(buckets[p], i)
	}

	var pages []Page
	for n := 1; n <= count; n++ {
		if len(buckets[n]) == 0 && !opts.Editing {
			continue
		}
		page := Page{
			Number:      n,
			Orientation: orient,
			MaxColumns:  cols,
			MaxRows:     rows,
			Width:       width,
			Height:      height,
		}
		offset := 0
		for _, si := range buckets[n] {
			sl := layoutSection(si, &sections[si], visible(&sections[si], opts.Editing), cols, offset)
			offset = sl.StartOffset + sectionFilled(sl)
			page.RowsUsed += sl.Rows
			page.Sections = append(page.Sections, sl)
		}
		page.Overflow = page.RowsUsed > page.MaxRows
		pages = append(pages, page)
	}
	return pages
}

// SectionColumns clamps a section's declared width to the page. Zero means
// the full page width.
func SectionColumns(declared, pageColumns int) int {
	if declared <= 0 || declared > pageColumns {
		return pageColumns
	}
	return declared
}

// indexedBox is a box plus its position in the section's box list.
type indexedBox struct {
	index int
	box   sheet.Box
}

// visible returns the boxes of s to lay out, sized with the section's
// default rows.
func visible(s *sheet.Section, editing bool) []indexedBox {
	out := make([]indexedBox, 0, len(s.Boxes))
	for i, b := range s.Boxes {
		if b.Hidden && !editing {
			continue
		}
		out = append(out, indexedBox{index: i, box: s.SizedBox(b)})
	}
	return out
}

// layoutSection places and numbers a run of boxes as one section.
func layoutSection(index int, s *sheet.Section, boxes []indexedBox, pageColumns, start int) SectionLayout {
	plain := make([]sheet.Box, len(boxes))
	for i := range boxes {
		plain[i] = boxes[i].box
	}
	cols := SectionColumns(s.Columns, pageColumns)
	grid := Place(plain, cols)
	num := numberBoxes(plain, start)

	sl := SectionLayout{
		Index:       index,
		ID:          s.ID,
		Title:       s.Title,
		Columns:     cols,
		Rows:        grid.Rows,
		StartOffset: start,
		Boxes:       make([]BoxLayout, len(boxes)),
	}
	for i := range boxes {
		b := &boxes[i].box
		bn := num.Boxes[i]
		sl.Boxes[i] = BoxLayout{
			Index:       boxes[i].index,
			ID:          b.ID,
			Header:      b.Header,
			Type:        b.Type,
			Locked:      b.Locked,
			Hidden:      b.Hidden,
			Placement:   grid.Placements[i],
			StartOffset: bn.Start,
			FilledRows:  bn.Filled,
			RowNumbers:  bn.RowNumbers,
			Overflow:    bn.Overflow,
		}
		if b.IsMatrix() && len(b.HashGroups) > 0 {
			for _, g := range b.HashGroups {
				sl.Boxes[i].HashGroups = append(sl.Boxes[i].HashGroups, g.ID)
			}
		}
	}
	return sl
}

func sectionFilled(sl SectionLayout) int {
	n := 0
	for _, b := range sl.Boxes {
		n += b.FilledRows
	}
	return n
}
