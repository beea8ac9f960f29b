package hint

import (
	"context"
	"errors"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/ports"
	"svw.info/tenmatch/internal/solver"
	"svw.info/tenmatch/internal/terminal"
)

// Pairs suggests the first edge-sharing pair that sums to the target and
// falls back to a chain search when there is none.
type Pairs struct {
	Finder ports.ChainFinder
	MaxLen int
}

func NewPairs(f ports.ChainFinder, maxLen int) *Pairs {
	return &Pairs{Finder: f, MaxLen: maxLen}
}

// Hint returns a selection the player could drag to clear cells.
// Diagonal pairs count as moves for terminality but cannot be dragged, so
// they are never suggested.
func (h *Pairs) Hint(ctx context.Context, g *domain.Grid) (domain.Selection, bool, ports.Stats, error) {
	for _, p := range terminal.ValidPairs(g) {
		if p.A.Adjacent(p.B) {
			return domain.Selection{p.A, p.B}, true, ports.Stats{}, nil
		}
	}
	if h.Finder == nil || h.MaxLen < 3 {
		return nil, false, ports.Stats{}, nil
	}
	sel, st, err := h.Finder.Find(ctx, g, h.MaxLen)
	if errors.Is(err, solver.ErrNoChain) {
		return nil, false, st, nil
	}
	if err != nil {
		return nil, false, st, err
	}
	return sel, true, st, nil
}
