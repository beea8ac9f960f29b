package validator

import "svw.info/tenmatch/internal/domain"

type GridValidator struct{}

func New() *GridValidator { return &GridValidator{} }

// Validate reports every cell holding a value outside 0..9.
func (v *GridValidator) Validate(g *domain.Grid) (bool, []domain.Coord) {
	bad := make([]domain.Coord, 0, 4)
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Cols; c++ {
			if g[r][c] > 9 {
				bad = append(bad, domain.Coord{Row: r, Col: c})
			}
		}
	}
	return len(bad) == 0, bad
}

// Balanced reports whether the counts of digits 1..9 differ by at most one.
// Empty cells are ignored.
func Balanced(g *domain.Grid) bool {
	h := g.Histogram()
	lo, hi := h[1], h[1]
	for v := 2; v <= 9; v++ {
		lo = min(lo, h[v])
		hi = max(hi, h[v])
	}
	return hi-lo <= 1
}
