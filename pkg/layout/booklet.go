package layout

import "github.com/matzehuels/callsheet/pkg/sheet"

// leftHashGroups is how many matrix hash groups print on the left page of a
// matrix spread.
const leftHashGroups = 2

// BookletHalf is the content of one printed page of a booklet spread.
type BookletHalf struct {
	Side        Side
	Boxes       []sheet.Box
	Indexes     []int // position of each box in the section
	StartOffset int
	Filled      int
}

// Empty reports whether the half has nothing to print.
func (h *BookletHalf) Empty() bool { return len(h.Boxes) == 0 }

// BookletPair is a left/right spread produced from one section.
type BookletPair struct {
	// Matrix is set when the pair splits a single matrix box by hash group.
	Matrix bool
	Left   BookletHalf
	Right  BookletHalf
}

// BookletSplit is how one section prints in the 4-page format.
type BookletSplit struct {
	Pairs []BookletPair
}

// SplitForBooklet divides a section into page pairs for booklet printing.
//
// Each visible matrix box becomes its own pair: the first two hash groups on
// the left page, the rest on the right. Each half is numbered on its own from
// 0, counting only the hash columns it shows. The remaining boxes are cut in
// two at ceil(n/2); the right half continues numbering where the left half
// stopped. Matrix pairs come first. Hidden boxes are left out.
func SplitForBooklet(section *sheet.Section) BookletSplit {
	var split BookletSplit
	var rest []indexedBox

	for _, ib := range visible(section, false) {
		if !ib.box.IsMatrix() {
			rest = append(rest, ib)
			continue
		}
		groups := ib.box.MatrixHashGroups()
		cut := min(leftHashGroups, len(groups))
		left := halfOf(SideLeft, []indexedBox{withGroups(ib, groups[:cut])}, 0)
		right := BookletHalf{Side: SideRight}
		if cut < len(groups) {
			right = halfOf(SideRight, []indexedBox{withGroups(ib, groups[cut:])}, 0)
		}
		split.Pairs = append(split.Pairs, BookletPair{Matrix: true, Left: left, Right: right})
	}

	if len(rest) > 0 {
		mid := (len(rest) + 1) / 2
		left := halfOf(SideLeft, rest[:mid], 0)
		right := halfOf(SideRight, rest[mid:], left.Filled)
		split.Pairs = append(split.Pairs, BookletPair{Left: left, Right: right})
	}
	return split
}

func withGroups(ib indexedBox, groups []sheet.HashGroup) indexedBox {
	ib.box.HashGroups = append([]sheet.HashGroup(nil), groups...)
	return ib
}

func halfOf(side Side, boxes []indexedBox, start int) BookletHalf {
	h := BookletHalf{Side: side, StartOffset: start}
	for _, ib := range boxes {
		h.Boxes = append(h.Boxes, ib.box)
		h.Indexes = append(h.Indexes, ib.index)
	}
	h.Filled = numberBoxes(h.Boxes, start).Next - start
	return h
}

// PlanBooklet lays out the print pages of the 4-page format.
//
// Every section is split with SplitForBooklet and each non-empty half becomes
// a physical page, numbered in order. Fixed positions refer to the full
// section grid, so the boxes of a half are auto-flowed. Right halves carry
// the section title with a "(cont.)" suffix.
func PlanBooklet(sections []sheet.Section, selected sheet.Orientation) []Page {
	orient := PhysicalOrientation(sheet.FormatFourPage, selected)
	cols, rows := Capacity(orient)
	width, height := SheetSize(sheet.FormatFourPage, selected)

	var pages []Page
	for si := range sections {
		s := &sections[si]
		for _, pair := range SplitForBooklet(s).Pairs {
			for _, half := range []BookletHalf{pair.Left, pair.Right} {
				if half.Empty() {
					continue
				}
				boxes := make([]indexedBox, len(half.Boxes))
				for i, b := range half.Boxes {
					b.Locked = false
					b.Position = nil
					boxes[i] = indexedBox{index: half.Indexes[i], box: b}
				}
				sl := layoutSection(si, s, boxes, cols, half.StartOffset)
				if half.Side == SideRight {
					sl.Title = continued(s.Title)
				}
				page := Page{
					Number:      len(pages) + 1,
					Orientation: orient,
					MaxColumns:  cols,
					MaxRows:     rows,
					RowsUsed:    sl.Rows,
					Width:       width,
					Height:      height,
					Side:        half.Side,
					Sections:    []SectionLayout{sl},
				}
				page.Overflow = page.RowsUsed > page.MaxRows
				pages = append(pages, page)
			}
		}
	}
	return pages
}

func continued(title string) string {
	if title == "" {
		return "(cont.)"
	}
	return title + " (cont.)"
}
