package sheet

import (
	"fmt"

	"github.com/google/uuid"
)

// namespace seeds the name-based IDs assigned by Normalize.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/callsheet"))

// Normalize returns a copy of doc with defaults applied:
//   - Format defaults to 2-page and Orientation to landscape
//   - sections and boxes without an ID get a name-based (v5) UUID derived
//     from their position and title, so repeated runs agree
//   - a position on an unlocked box is dropped
//
// The input is not modified.
func Normalize(doc *Document) *Document {
	out := doc.Clone()
	if out.Format == "" {
		out.Format = FormatTwoPage
	}
	if out.Orientation == "" {
		out.Orientation = Landscape
	}

	for si := range out.Sections {
		s := &out.Sections[si]
		if s.ID == "" {
			s.ID = stableID(fmt.Sprintf("section/%d/%s", si, s.Title))
		}
		for bi := range s.Boxes {
			b := &s.Boxes[bi]
			if b.ID == "" {
				b.ID = stableID(fmt.Sprintf("%s/box/%d/%s/%s", s.ID, bi, b.Type, b.Header))
			}
			if !b.Locked {
				b.Position = nil
			}
		}
	}
	return out
}

func stableID(name string) string {
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// Clone returns a copy of the document whose sections, boxes and positions
// can be modified without affecting d. Box content slices are shared.
func (d *Document) Clone() *Document {
	if d == nil {
		return &Document{}
	}
	out := *d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		s.Boxes = append([]Box(nil), s.Boxes...)
		for j := range s.Boxes {
			if p := s.Boxes[j].Position; p != nil {
				cp := *p
				s.Boxes[j].Position = &cp
			}
		}
		out.Sections[i] = s
	}
	return &out
}
