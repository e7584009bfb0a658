package layout_test

import (
	"fmt"

	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

func ExampleBuild() {
	doc := &sheet.Document{Sections: []sheet.Section{{
		Title: "OPENERS",
		Boxes: []sheet.Box{
			{Header: "SCRIPT", Type: sheet.TypeScript, Script: []sheet.ScriptRow{{Left: "Power"}, {Left: "Stick"}}},
			{Header: "RUNS", Type: sheet.TypeGrid, Cells: [][]string{{"Zone"}}},
		},
	}}}

	plan := layout.Build(doc, layout.Options{})
	for _, b := range plan.Pages[0].Sections[0].Boxes {
		p := b.Placement
		fmt.Printf("%s at (%d,%d) %dx%d, rows from %d\n", b.Header, p.Row, p.Col, p.ColSpan, p.RowSpan, b.StartOffset+1)
	}
	// Output:
	// SCRIPT at (0,0) 2x4, rows from 1
	// RUNS at (0,2) 2x7, rows from 3
}

func ExamplePlace() {
	boxes := []sheet.Box{
		{Type: sheet.TypeGrid, ColSpan: 4},
		{Type: sheet.TypeGrid, ColSpan: 4},
		{Type: sheet.TypeGrid, ColSpan: 2},
	}
	g := layout.Place(boxes, 6)
	for _, p := range g.Placements {
		fmt.Printf("(%d,%d)\n", p.Row, p.Col)
	}
	fmt.Println("rows:", g.Rows)
	// Output:
	// (0,0)
	// (7,0)
	// (0,4)
	// rows: 14
}
