// Package pkg holds the libraries behind the callsheet CLI.
//
// # Overview
//
// A call sheet is a grid of titled boxes (scripts, play grids, field-zone
// charts, formation matrices, lists) grouped into sections. Callsheet packs
// the boxes onto printed pages, numbers every filled row, and paginates the
// sections into a 2-page sheet or a folded 4-page booklet.
//
// # Architecture
//
//	document (yaml, json, toml)
//	         ↓
//	    [sheet] (load, validate, normalize)
//	         ↓
//	    [layout] (placement, numbering, pages, booklet halves)
//	         ↓
//	    [render/sink] (json, xlsx, txt, png)
//
// [pipeline] wires the three stages together behind a [cache] so unchanged
// documents are not laid out or rendered twice.
//
// # Quick Start
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
//	plan := layout.Build(doc, layout.Options{Format: sheet.FormatFourPage})
//	xlsx, err := sink.RenderXLSX(plan, doc, sink.WithPrint())
//
// # Main Packages
//
// [sheet] - Document model and loaders. Box types, defaults, and the
// normalization that assigns missing IDs.
//
// [layout] - Grid placement of locked and flowing boxes, row numbering across
// sections, page assignment with overflow flags, and booklet splitting.
//
// [render/sink] - Output formats. The xlsx workbook is the printable sheet;
// txt and png are previews.
//
// [pipeline] - Load → layout → render with option validation and caching.
//
// [cache] - File, redis and null caches plus the key scheme for plans and
// artifacts.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hooks for pipeline stages and cache traffic.
//
// [sheet]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/sheet
// [layout]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/callsheet/pkg/observability
package pkg
