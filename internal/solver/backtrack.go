package solver

import "svw.info/tenmatch/internal/domain"

// BacktrackingSolver searches orthogonal chains depth first.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

var steps = [4]domain.Coord{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}

// neighbours returns the on-grid cells sharing an edge with c.
func neighbours(c domain.Coord) []domain.Coord {
	out := make([]domain.Coord, 0, 4)
	for _, s := range steps {
		n := domain.Coord{Row: c.Row + s.Row, Col: c.Col + s.Col}
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}
