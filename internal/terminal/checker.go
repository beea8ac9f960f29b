// Package terminal decides whether a round can still be played.
package terminal

import "svw.info/tenmatch/internal/domain"

// Pair is two cells whose values sum to the target.
type Pair struct {
	A, B domain.Coord
}

// offsets scanned from each cell: right, down, down-right, down-left.
var offsets = [4]domain.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

// HasValidMoves reports whether any neighbouring pair sums to the target.
// False is the terminal signal for the round.
func HasValidMoves(g *domain.Grid) bool {
	found := false
	scan(g, func(Pair) bool {
		found = true
		return false
	})
	return found
}

// ValidPairs lists every neighbouring pair summing to the target in row-major order.
func ValidPairs(g *domain.Grid) []Pair {
	var out []Pair
	scan(g, func(p Pair) bool {
		out = append(out, p)
		return true
	})
	return out
}

// scan calls yield for each matching pair until yield returns false.
func scan(g *domain.Grid, yield func(Pair) bool) {
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Cols; c++ {
			a := domain.Coord{Row: r, Col: c}
			va := int(g[r][c])
			for _, off := range offsets {
				b := domain.Coord{Row: r + off.Row, Col: c + off.Col}
				if !b.InBounds() {
					continue
				}
				if va+int(g[b.Row][b.Col]) == domain.Target {
					if !yield(Pair{A: a, B: b}) {
						return
					}
				}
			}
		}
	}
}
