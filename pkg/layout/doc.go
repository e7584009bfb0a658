// Package layout is the call-sheet layout and pagination engine.
//
// Given a [sheet.Document], the engine works in four passes, each a pure
// function of its input:
//
//  1. Sizing: [RowSpanOf] gives the rows a box needs, its content rows plus
//     a title and a header row.
//  2. Placement: [Place] packs a section's boxes into a grid. Locked boxes
//     keep their position; the rest take the first free slot in row-major
//     order.
//  3. Numbering: [NumberRows] numbers filled content rows, continuing across
//     the sections of a page and restarting on every page.
//  4. Pagination: [PlanPages] assigns sections to pages and checks capacity
//     (6×60 landscape, 5×70 portrait). For the 4-page booklet,
//     [SplitForBooklet] and [PlanBooklet] split sections into spreads.
//
// [Build] runs all passes and returns a [Plan]:
//
//	plan := layout.Build(doc, layout.Options{Format: sheet.FormatFourPage})
//	for _, w := range plan.Warnings {
//	    log.Warn(w)
//	}
//
// Nothing here returns an error. Oversized spans are clamped, overlapping
// locked boxes are tolerated and pages that run over are flagged, so every
// document has a layout. Nothing is cached between calls either: editing a
// document means building it again.
package layout
