package session

import "testing"

func TestLinePoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want int
	}{
		{name: "horizontal", a: Cell{0, 0}, b: Cell{0, 5}, want: 6},
		{name: "diagonal", a: Cell{0, 0}, b: Cell{3, 3}, want: 4},
		{name: "single cell", a: Cell{2, 2}, b: Cell{2, 2}, want: 1},
		{name: "vertical reversed", a: Cell{4, 1}, b: Cell{0, 1}, want: 5},
		{name: "shallow slope", a: Cell{0, 0}, b: Cell{2, 6}, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinePoints(tt.a, tt.b)
			if len(got) != tt.want {
				t.Fatalf("got %d cells, want %d: %v", len(got), tt.want, got)
			}
			if got[0] != tt.a || got[len(got)-1] != tt.b {
				t.Errorf("endpoints %v..%v, want %v..%v", got[0], got[len(got)-1], tt.a, tt.b)
			}
			seen := make(map[Cell]bool)
			for _, c := range got {
				if seen[c] {
					t.Errorf("cell %v repeated", c)
				}
				seen[c] = true
			}
		})
	}
}

func TestLinePointsSymmetric(t *testing.T) {
	a, b := Cell{1, 2}, Cell{6, 9}
	forward := LinePoints(a, b)
	backward := LinePoints(b, a)
	if len(forward) != len(backward) {
		t.Fatalf("forward %d cells, backward %d", len(forward), len(backward))
	}
}

func TestBoxCells(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Cell
		filled bool
		want   int
	}{
		{name: "outline 3x3", a: Cell{1, 1}, b: Cell{3, 3}, filled: false, want: 8},
		{name: "filled 3x3", a: Cell{1, 1}, b: Cell{3, 3}, filled: true, want: 9},
		{name: "outline swapped corners", a: Cell{3, 3}, b: Cell{1, 1}, filled: false, want: 8},
		{name: "single row", a: Cell{2, 0}, b: Cell{2, 4}, filled: false, want: 5},
		{name: "single cell", a: Cell{0, 0}, b: Cell{0, 0}, filled: false, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxCells(tt.a, tt.b, tt.filled)
			if len(got) != tt.want {
				t.Fatalf("got %d cells, want %d: %v", len(got), tt.want, got)
			}
			seen := make(map[Cell]bool)
			for _, c := range got {
				if seen[c] {
					t.Errorf("cell %v repeated", c)
				}
				seen[c] = true
			}
		})
	}
}

func TestFloodFill(t *testing.T) {
	grid := func() *Grid {
		g, err := ParseGrid([]string{
			"....",
			".##.",
			".##.",
			"....",
		})
		if err != nil {
			t.Fatal(err)
		}
		return g
	}

	t.Run("fills connected region only", func(t *testing.T) {
		region := FloodFill(grid(), Cell{1, 1}, 'x')
		if len(region) != 4 {
			t.Fatalf("got %d cells, want 4: %v", len(region), region)
		}
	})

	t.Run("same symbol is a no-op", func(t *testing.T) {
		if region := FloodFill(grid(), Cell{1, 1}, '#'); region != nil {
			t.Fatalf("expected no region, got %v", region)
		}
	})

	t.Run("outer region stops at walls", func(t *testing.T) {
		region := FloodFill(grid(), Cell{0, 0}, '#')
		if len(region) != 12 {
			t.Fatalf("got %d cells, want 12", len(region))
		}
	})

	t.Run("out of bounds start", func(t *testing.T) {
		if region := FloodFill(grid(), Cell{-1, 0}, 'x'); region != nil {
			t.Fatalf("expected no region, got %v", region)
		}
	})
}
