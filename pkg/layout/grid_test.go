package layout

import (
	"testing"

	"github.com/matzehuels/callsheet/pkg/sheet"
)

func grid(span int) sheet.Box {
	return sheet.Box{Type: sheet.TypeGrid, ColSpan: span}
}

func locked(span, row, col int) sheet.Box {
	b := grid(span)
	b.Locked = true
	b.Position = &sheet.Position{Row: row, Col: col}
	return b
}

func assertNoOverlap(t *testing.T, g SectionGrid) {
	t.Helper()
	for i, p := range g.Placements {
		if p.Col < 0 || p.Col+p.ColSpan > g.Columns {
			t.Errorf("placement %d = %+v outside %d columns", i, p, g.Columns)
		}
		for j := i + 1; j < len(g.Placements); j++ {
			if p.Overlaps(g.Placements[j]) {
				t.Errorf("placements %d %+v and %d %+v overlap", i, p, j, g.Placements[j])
			}
		}
	}
}

func TestPlace_NoOverlap(t *testing.T) {
	boxes := []sheet.Box{
		grid(2),
		{Type: sheet.TypeScript, ColSpan: 3, Script: make([]sheet.ScriptRow, 12)},
		locked(2, 4, 4),
		grid(1),
		{Type: sheet.TypeMatrix, ColSpan: 6},
		grid(4),
		{Type: sheet.TypeFieldZone, ColSpan: 2, RowCount: 2},
		grid(5),
		{Type: sheet.TypeList},
	}

	for _, cols := range []int{1, 3, 5, 6} {
		g := Place(boxes, cols)
		assertNoOverlap(t, g)
		want := 0
		for _, p := range g.Placements {
			want = max(want, p.Bottom())
		}
		if g.Rows != want {
			t.Errorf("columns=%d: Rows = %d, want %d", cols, g.Rows, want)
		}
	}
}

func TestPlace_LockedPriority(t *testing.T) {
	boxes := []sheet.Box{grid(2), grid(2), locked(2, 0, 2), grid(2)}
	g := Place(boxes, 6)

	want := []Placement{
		{Row: 0, Col: 0, RowSpan: 7, ColSpan: 2},
		{Row: 0, Col: 4, RowSpan: 7, ColSpan: 2},
		{Row: 0, Col: 2, RowSpan: 7, ColSpan: 2},
		{Row: 7, Col: 0, RowSpan: 7, ColSpan: 2},
	}
	for i := range want {
		if g.Placements[i] != want[i] {
			t.Errorf("Placements[%d] = %+v, want %+v", i, g.Placements[i], want[i])
		}
	}
	if g.Rows != 14 {
		t.Errorf("Rows = %d, want 14", g.Rows)
	}
}

func TestPlace_Clamping(t *testing.T) {
	tests := []struct {
		name string
		box  sheet.Box
		want Placement
	}{
		{"span wider than grid", grid(9), Placement{Row: 0, Col: 0, RowSpan: 7, ColSpan: 6}},
		{"zero span defaults", grid(0), Placement{Row: 0, Col: 0, RowSpan: 7, ColSpan: 2}},
		{"locked past right edge", locked(2, 1, 5), Placement{Row: 1, Col: 4, RowSpan: 7, ColSpan: 2}},
		{"locked negative origin", locked(2, -3, -1), Placement{Row: 0, Col: 0, RowSpan: 7, ColSpan: 2}},
		{"locked wide", locked(8, 0, 3), Placement{Row: 0, Col: 0, RowSpan: 7, ColSpan: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Place([]sheet.Box{tt.box}, 6)
			if got := g.Placements[0]; got != tt.want {
				t.Errorf("Place() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlace_LockedOverlapLastWins(t *testing.T) {
	boxes := []sheet.Box{locked(2, 0, 0), locked(2, 0, 0), grid(2)}
	g := Place(boxes, 6)

	if g.Placements[0] != g.Placements[1] {
		t.Errorf("locked boxes = %+v, %+v, want same rectangle", g.Placements[0], g.Placements[1])
	}
	if got := g.Placements[2]; got.Row != 0 || got.Col != 2 {
		t.Errorf("auto-flowed box at (%d,%d), want (0,2)", got.Row, got.Col)
	}
}

func TestPlace_UnpinnedPositions(t *testing.T) {
	lockedNoPos := grid(2)
	lockedNoPos.Locked = true
	unlockedWithPos := grid(2)
	unlockedWithPos.Position = &sheet.Position{Row: 10, Col: 4}

	g := Place([]sheet.Box{lockedNoPos, unlockedWithPos}, 6)
	if got := g.Placements[0]; got.Row != 0 || got.Col != 0 {
		t.Errorf("locked box without position at (%d,%d), want (0,0)", got.Row, got.Col)
	}
	if got := g.Placements[1]; got.Row != 0 || got.Col != 2 {
		t.Errorf("unlocked box with position at (%d,%d), want (0,2)", got.Row, got.Col)
	}
}

func TestPlace_NeverSplits(t *testing.T) {
	g := Place([]sheet.Box{grid(3), grid(3)}, 5)
	if got := g.Placements[1]; got.Row != 7 || got.Col != 0 {
		t.Errorf("second box at (%d,%d), want (7,0)", got.Row, got.Col)
	}
	if g.Rows != 14 {
		t.Errorf("Rows = %d, want 14", g.Rows)
	}
}

func TestPlace_FillsHoles(t *testing.T) {
	g := Place([]sheet.Box{grid(4), grid(4), grid(2)}, 6)
	want := []Placement{
		{Row: 0, Col: 0, RowSpan: 7, ColSpan: 4},
		{Row: 7, Col: 0, RowSpan: 7, ColSpan: 4},
		{Row: 0, Col: 4, RowSpan: 7, ColSpan: 2},
	}
	for i := range want {
		if g.Placements[i] != want[i] {
			t.Errorf("Placements[%d] = %+v, want %+v", i, g.Placements[i], want[i])
		}
	}
}

func TestPlace_Empty(t *testing.T) {
	g := Place(nil, 6)
	if g.Rows != 0 || len(g.Placements) != 0 {
		t.Errorf("Place(nil) = %+v, want empty grid", g)
	}
	if g := Place([]sheet.Box{grid(2)}, 0); g.Columns != 1 || g.Placements[0].ColSpan != 1 {
		t.Errorf("Place(columns=0) = %+v, want one column", g)
	}
}
