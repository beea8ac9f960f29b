package domain

const (
	Rows   = 10
	Cols   = 17
	Target = 10 // sum a selection must reach to clear
	Empty  = 0
)

// Grid holds the digit in each cell; Empty marks a cleared cell.
// It is an array, so plain assignment yields an independent copy.
type Grid [Rows][Cols]uint8

// Count returns the number of non-empty cells.
func (g Grid) Count() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if g[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Histogram counts occurrences of each value 0..9.
func (g Grid) Histogram() [10]int {
	var h [10]int
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if v := g[r][c]; v <= 9 {
				h[v]++
			}
		}
	}
	return h
}

// At returns the value at c, or Empty when c is off the grid.
func (g Grid) At(c Coord) uint8 {
	if !c.InBounds() {
		return Empty
	}
	return g[c.Row][c.Col]
}

// Coord identifies a cell on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Adjacent reports whether o shares an edge with c.
func (c Coord) Adjacent(o Coord) bool {
	dr, dc := abs(c.Row-o.Row), abs(c.Col-o.Col)
	return dr+dc == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Selection is an ordered, duplicate-free chain of coordinates.
type Selection []Coord

// Outcome is what releasing a selection produced.
type Outcome struct {
	Selection Selection  `json:"selection"`
	Sum       int        `json:"sum"`
	Matched   bool       `json:"matched"`
	Cleared   int        `json:"cleared"`
	Gained    int        `json:"gained"`
	Score     int        `json:"score"`
	State     RoundState `json:"state"`
	Reason    EndReason  `json:"reason,omitempty"`
}

// RoundView is a read-only picture of a round.
type RoundView struct {
	Grid      Grid       `json:"grid"`
	Score     int        `json:"score"`
	Remaining int        `json:"remaining"`
	State     RoundState `json:"state"`
	Reason    EndReason  `json:"reason,omitempty"`
	Scoring   Scoring    `json:"scoring"`
	// Balanced reports whether the grid was dealt with digit counts
	// differing by at most one.
	Balanced  bool       `json:"balanced"`
}
