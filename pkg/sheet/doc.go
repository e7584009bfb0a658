// Package sheet defines the call-sheet document model and its file formats.
//
// A [Document] is an ordered list of [Section] values, each holding an ordered
// list of [Box] values. Boxes carry only inputs: content type, column span,
// lock state, an optional fixed position and their type-specific content.
// Placements, row spans and row numbers are derived by package layout on
// every pass and never stored here.
//
// Documents are read from JSON, YAML or TOML:
//
//	doc, err := sheet.Load("week7.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := sheet.Validate(doc); err != nil {
//	    return err
//	}
//	doc = sheet.Normalize(doc)
//
// [Normalize] returns a copy with defaults applied and stable IDs assigned to
// sections and boxes that lack one, so identical input always produces
// identical output.
package sheet
