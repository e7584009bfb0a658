package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/callsheet/pkg/sheet"
)

// =============================================================================
// Plan - Layout Output
// =============================================================================

// Plan is the complete layout of a document.
//
// Pages holds the logical pages in page order: every section with its box
// placements and row offsets. For the 4-page format, Print additionally
// holds the booklet print pages built by PlanBooklet. Warnings lists every
// page whose content exceeds its capacity.
type Plan struct {
	Title       string            `json:"title,omitempty"`
	Opponent    string            `json:"opponent,omitempty"`
	Week        string            `json:"week,omitempty"`
	Format      sheet.PageFormat  `json:"format"`
	Orientation sheet.Orientation `json:"orientation"`
	Editing     bool              `json:"editing,omitempty"`
	Pages       []Page            `json:"pages"`
	Print       []Page            `json:"print,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// Options selects the page format for Build. Zero values fall back to the
// document's own settings, then to a landscape 2-page sheet.
type Options struct {
	Format      sheet.PageFormat
	Orientation sheet.Orientation
	Editing     bool
}

// Resolve fills unset options from the document and the defaults.
func (o Options) Resolve(doc *sheet.Document) Options {
	if o.Format == "" && doc != nil {
		o.Format = doc.Format
	}
	if o.Orientation == "" && doc != nil {
		o.Orientation = doc.Orientation
	}
	if !o.Format.Valid() {
		o.Format = sheet.FormatTwoPage
	}
	if !o.Orientation.Valid() {
		o.Orientation = sheet.Landscape
	}
	return o
}

// Build computes the layout of doc. It never fails and never modifies doc;
// the same document and options always yield the same plan.
func Build(doc *sheet.Document, opts Options) Plan {
	opts = opts.Resolve(doc)
	if doc == nil {
		doc = &sheet.Document{}
	}

	plan := Plan{
		Title:       doc.Title,
		Opponent:    doc.Opponent,
		Week:        doc.Week,
		Format:      opts.Format,
		Orientation: opts.Orientation,
		Editing:     opts.Editing,
		Pages:       PlanPages(doc.Sections, opts.Format, opts.Orientation, PageOptions{Editing: opts.Editing}),
	}
	if opts.Format.IsBooklet() && !opts.Editing {
		plan.Print = PlanBooklet(doc.Sections, opts.Orientation)
	}

	for _, p := range plan.Pages {
		if p.Overflow {
			plan.Warnings = append(plan.Warnings, overflowWarning("page", p))
		}
	}
	for _, p := range plan.Print {
		if p.Overflow {
			plan.Warnings = append(plan.Warnings, overflowWarning("print page", p))
		}
	}
	return plan
}

func overflowWarning(kind string, p Page) string {
	return fmt.Sprintf("%s %d: %d rows used, capacity %d (over by %d)", kind, p.Number, p.RowsUsed, p.MaxRows, -p.Free())
}

// Overflowing returns the numbers of logical pages that exceed capacity.
func (p *Plan) Overflowing() []int {
	var out []int
	for _, pg := range p.Pages {
		if pg.Overflow {
			out = append(out, pg.Number)
		}
	}
	return out
}

// PrintPages returns the pages to print: the booklet pages for the 4-page
// format, the logical pages otherwise.
func (p *Plan) PrintPages() []Page {
	if len(p.Print) > 0 {
		return p.Print
	}
	return p.Pages
}

// Stats summarizes a plan.
type Stats struct {
	Pages      int
	Sections   int
	Boxes      int
	FilledRows int
	Overflow   int
}

// Stats counts pages, placed sections and boxes, and filled rows.
func (p *Plan) Stats() Stats {
	s := Stats{Pages: len(p.Pages), Overflow: len(p.Overflowing())}
	for _, pg := range p.Pages {
		s.Sections += len(pg.Sections)
		for _, sec := range pg.Sections {
			s.Boxes += len(sec.Boxes)
			s.FilledRows += sectionFilled(sec)
		}
	}
	return s
}

// ContentOf returns the document box a box layout was computed from, or nil
// if the indexes do not match doc. A matrix shown on a booklet half comes
// back restricted to the hash groups that half shows.
func ContentOf(doc *sheet.Document, sl *SectionLayout, bl *BoxLayout) *sheet.Box {
	if doc == nil || sl.Index < 0 || sl.Index >= len(doc.Sections) {
		return nil
	}
	s := &doc.Sections[sl.Index]
	if bl.Index < 0 || bl.Index >= len(s.Boxes) {
		return nil
	}
	b := s.SizedBox(s.Boxes[bl.Index])
	if len(bl.HashGroups) > 0 {
		show := make(map[string]bool, len(bl.HashGroups))
		for _, id := range bl.HashGroups {
			show[id] = true
		}
		var groups []sheet.HashGroup
		for _, g := range b.MatrixHashGroups() {
			if show[g.ID] {
				groups = append(groups, g)
			}
		}
		b.HashGroups = groups
	}
	return &b
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalPlan encodes a plan as indented JSON.
func MarshalPlan(p Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPlan decodes a plan from JSON.
func UnmarshalPlan(data []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// WritePlanFile writes a plan as JSON to path.
func WritePlanFile(p Plan, path string) error {
	data, err := MarshalPlan(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlanFile reads a JSON plan from path.
func ReadPlanFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalPlan(data)
}
