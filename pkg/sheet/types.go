package sheet

import "strings"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// PageFormat selects how many physical pages the call sheet prints on.
type PageFormat string

// Page formats.
const (
	FormatTwoPage  PageFormat = "2-page"
	FormatFourPage PageFormat = "4-page"
)

// Pages returns the number of physical pages for the format.
// Unknown formats print as a 2-page spread.
func (f PageFormat) Pages() int {
	if f == FormatFourPage {
		return 4
	}
	return 2
}

// IsBooklet reports whether the format is the 4-page booklet.
func (f PageFormat) IsBooklet() bool { return f == FormatFourPage }

// Valid reports whether f is a known page format.
func (f PageFormat) Valid() bool { return f == FormatTwoPage || f == FormatFourPage }

// Orientation is the logical (or physical) page orientation.
type Orientation string

// Orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool { return o == Portrait || o == Landscape }

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == Landscape {
		return Portrait
	}
	return Landscape
}

// ContentType discriminates what a box displays.
type ContentType string

// Content types. Anything else is treated as a freeform list.
const (
	TypeGrid      ContentType = "grid"   // tabular grid of play slots
	TypeScript    ContentType = "script" // sequential script, two slots per row
	TypeFieldZone ContentType = "fzdnd"  // field-zone chart
	TypeMatrix    ContentType = "matrix" // formation matrix (play types × hash columns)
	TypeList      ContentType = "list"   // freeform list
)

// Defaults applied when a box or section leaves a field unset.
const (
	DefaultColSpan     = 2
	DefaultGridRows    = 5
	DefaultGridColumns = 4
	DefaultScriptRows  = 10
	DefaultZoneRows    = 5
	DefaultListRows    = 5
)

// MaxBoxRows is the most content rows a single box may reserve.
const MaxBoxRows = 50

// DefaultPlayTypes are the matrix rows used when a matrix box declares none.
var DefaultPlayTypes = []PlayType{
	{ID: "strong_run", Label: "STRONG RUN"},
	{ID: "weak_run", Label: "WEAK RUN"},
	{ID: "quick_game", Label: "QUICK GAME"},
	{ID: "drop_back", Label: "DROPBACK"},
	{ID: "gadget", Label: "GADGET"},
}

// DefaultHashGroups are the matrix column groups used when a matrix box declares none.
var DefaultHashGroups = []HashGroup{
	{ID: "FB", Label: "BASE/INITIAL", Columns: []string{"FB_L", "FB_R"}},
	{ID: "CB", Label: "BASE W/ DRESSING", Columns: []string{"CB_L", "CB_R"}},
	{ID: "CU", Label: "CONVERT", Columns: []string{"CU_L", "CU_R"}},
	{ID: "SO", Label: "EXPLOSIVE", Columns: []string{"SO_L", "SO_R"}},
}

// =============================================================================
// Document
// =============================================================================

// Document is the call sheet as the editor persists it. Only inputs live
// here; placements and row numbers are always recomputed.
type Document struct {
	Title       string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Opponent    string      `json:"opponent,omitempty" yaml:"opponent,omitempty" toml:"opponent,omitempty"`
	Week        string      `json:"week,omitempty" yaml:"week,omitempty" toml:"week,omitempty"`
	Format      PageFormat  `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Sections    []Section   `json:"sections" yaml:"sections" toml:"sections"`
}

// Section is a titled group of boxes with its own sub-grid.
type Section struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Title       string `json:"title" yaml:"title" toml:"title"`
	Boxes       []Box  `json:"boxes" yaml:"boxes" toml:"boxes"`
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
	DefaultRows int    `json:"default_rows,omitempty" yaml:"default_rows,omitempty" toml:"default_rows,omitempty"`
	Page        int    `json:"page,omitempty" yaml:"page,omitempty" toml:"page,omitempty"`
}

// SizedBox returns b with the section's DefaultRows filled in where a grid
// or field-zone box leaves its own row count unset.
func (s *Section) SizedBox(b Box) Box {
	if s.DefaultRows <= 0 {
		return b
	}
	switch b.Type {
	case TypeGrid:
		if b.GridRows == 0 {
			b.GridRows = s.DefaultRows
		}
	case TypeFieldZone:
		if b.RowCount == 0 && b.GridRows == 0 {
			b.RowCount = s.DefaultRows
		}
	}
	return b
}

// TargetPage returns the page the section is assigned to, falling back to
// page 1 when the assignment is missing or outside 1..pages.
func (s *Section) TargetPage(pages int) int {
	if s.Page < 1 || s.Page > pages {
		return 1
	}
	return s.Page
}

// Position is a fixed grid origin for a locked box (zero-based).
type Position struct {
	Row int `json:"row" yaml:"row" toml:"row"`
	Col int `json:"col" yaml:"col" toml:"col"`
}

// Box is one rectangular content unit.
type Box struct {
	ID       string      `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Header   string      `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty"`
	Type     ContentType `json:"type" yaml:"type" toml:"type"`
	ColSpan  int         `json:"col_span,omitempty" yaml:"col_span,omitempty" toml:"col_span,omitempty"`
	Locked   bool        `json:"locked,omitempty" yaml:"locked,omitempty" toml:"locked,omitempty"`
	Position *Position   `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Hidden   bool        `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`

	// Tabular grid and field-zone content.
	GridRows    int        `json:"grid_rows,omitempty" yaml:"grid_rows,omitempty" toml:"grid_rows,omitempty"`
	GridColumns int        `json:"grid_columns,omitempty" yaml:"grid_columns,omitempty" toml:"grid_columns,omitempty"`
	Headings    []string   `json:"headings,omitempty" yaml:"headings,omitempty" toml:"headings,omitempty"`
	Cells       [][]string `json:"cells,omitempty" yaml:"cells,omitempty" toml:"cells,omitempty"`

	// Field-zone chart.
	RowCount int      `json:"row_count,omitempty" yaml:"row_count,omitempty" toml:"row_count,omitempty"`
	Columns  []string `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`

	// Sequential script.
	Script []ScriptRow `json:"script,omitempty" yaml:"script,omitempty" toml:"script,omitempty"`

	// Formation matrix: play type ID -> hash column ID -> items.
	PlayTypes  []PlayType                     `json:"play_types,omitempty" yaml:"play_types,omitempty" toml:"play_types,omitempty"`
	HashGroups []HashGroup                    `json:"hash_groups,omitempty" yaml:"hash_groups,omitempty" toml:"hash_groups,omitempty"`
	Matrix     map[string]map[string][]string `json:"matrix,omitempty" yaml:"matrix,omitempty" toml:"matrix,omitempty"`

	// Freeform list.
	Items []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// ScriptRow is one numbered line of a sequential script.
type ScriptRow struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Left  string `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
}

// PlayType is a matrix row.
type PlayType struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// HashGroup is a labelled group of matrix hash columns.
type HashGroup struct {
	ID      string   `json:"id" yaml:"id" toml:"id"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Columns []string `json:"columns" yaml:"columns" toml:"columns"`
}

// IsMatrix reports whether the box is a formation matrix.
func (b *Box) IsMatrix() bool { return b.Type == TypeMatrix }

// FixedPosition returns the box's pinned origin. Only locked boxes with a
// declared position are pinned; everything else auto-flows.
func (b *Box) FixedPosition() (Position, bool) {
	if !b.Locked || b.Position == nil {
		return Position{}, false
	}
	return *b.Position, true
}

// Span returns the declared column span, defaulting to DefaultColSpan.
func (b *Box) Span() int {
	if b.ColSpan < 1 {
		return DefaultColSpan
	}
	return b.ColSpan
}

// MatrixPlayTypes returns the declared play types or the defaults.
func (b *Box) MatrixPlayTypes() []PlayType {
	if len(b.PlayTypes) == 0 {
		return DefaultPlayTypes
	}
	return b.PlayTypes
}

// MatrixHashGroups returns the declared hash groups or the defaults.
func (b *Box) MatrixHashGroups() []HashGroup {
	if len(b.HashGroups) == 0 {
		return DefaultHashGroups
	}
	return b.HashGroups
}

// MatrixItems returns the items assigned to one matrix cell.
func (b *Box) MatrixItems(playTypeID, columnID string) []string {
	if b.Matrix == nil {
		return nil
	}
	return b.Matrix[playTypeID][columnID]
}

// IsEmptyItem reports whether a slot reference counts as empty. Blank and
// placeholder ("-") references are empty.
func IsEmptyItem(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "-"
}
