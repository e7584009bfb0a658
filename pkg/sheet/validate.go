package sheet

import (
	"github.com/matzehuels/callsheet/pkg/errors"
)

// Validate checks a document for problems the layout engine cannot resolve
// by policy. Out-of-range spans, pages and positions are not errors: the
// engine clamps them. What is rejected:
//   - an unknown page format or orientation
//   - duplicate section or box IDs
//   - negative row or column counts, or more than MaxBoxRows rows in a box
//   - matrix hash groups without columns, or with a repeated column ID
//
// All problems are collected; the returned error carries
// ErrCodeInvalidDocument and names the first one.
func Validate(doc *Document) error {
	p := errors.Problems{Code: errors.ErrCodeInvalidDocument}
	if doc == nil {
		p.Add("document is empty")
		return p.Err()
	}

	if doc.Format != "" && !doc.Format.Valid() {
		p.Add("unknown page format %q", doc.Format)
	}
	if doc.Orientation != "" && !doc.Orientation.Valid() {
		p.Add("unknown orientation %q", doc.Orientation)
	}

	sectionIDs := make(map[string]bool)
	boxIDs := make(map[string]bool)
	for si := range doc.Sections {
		s := &doc.Sections[si]
		if s.ID != "" {
			if sectionIDs[s.ID] {
				p.Add("section %d: duplicate id %q", si+1, s.ID)
			}
			sectionIDs[s.ID] = true
		}
		if s.Columns < 0 {
			p.Add("section %d: negative columns %d", si+1, s.Columns)
		}
		if s.DefaultRows < 0 || s.DefaultRows > MaxBoxRows {
			p.Add("section %d: default_rows %d outside 0..%d", si+1, s.DefaultRows, MaxBoxRows)
		}
		for bi := range s.Boxes {
			b := &s.Boxes[bi]
			if b.ID != "" {
				if boxIDs[b.ID] {
					p.Add("section %d box %d: duplicate id %q", si+1, bi+1, b.ID)
				}
				boxIDs[b.ID] = true
			}
			validateBox(&p, si, bi, b)
		}
	}
	return p.Err()
}

func validateBox(p *errors.Problems, si, bi int, b *Box) {
	if b.GridRows < 0 || b.GridColumns < 0 || b.RowCount < 0 {
		p.Add("section %d box %d: negative row or column count", si+1, bi+1)
	}
	for _, n := range []int{b.GridRows, b.RowCount, len(b.Script), len(b.PlayTypes)} {
		if n > MaxBoxRows {
			p.Add("section %d box %d: %d rows exceeds the limit of %d", si+1, bi+1, n, MaxBoxRows)
			break
		}
	}
	if !b.IsMatrix() {
		return
	}
	seen := make(map[string]bool)
	for _, g := range b.HashGroups {
		if len(g.Columns) == 0 {
			p.Add("section %d box %d: hash group %q has no columns", si+1, bi+1, g.ID)
		}
		for _, c := range g.Columns {
			if seen[c] {
				p.Add("section %d box %d: hash column %q repeated", si+1, bi+1, c)
			}
			seen[c] = true
		}
	}
}
