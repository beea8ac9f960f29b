package ports

import (
	"context"
	"time"

	"svw.info/tenmatch/internal/domain"
)

// Stats captures performance characteristics of a search.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Generator produces fresh grid layouts.
type Generator interface {
	Generate() domain.Grid
}

// Observer receives a copy of the grid after every mutation.
// It runs synchronously on the mutating goroutine and must not call back
// into the store that notified it.
type Observer interface {
	OnGridChanged(g domain.Grid)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(g domain.Grid)

func (f ObserverFunc) OnGridChanged(g domain.Grid) { f(g) }

// Scorer maps the number of cleared cells to points.
type Scorer interface {
	Score(cleared int) int
}

// ChainFinder searches for any selectable chain summing to Target.
type ChainFinder interface {
	Find(ctx context.Context, g *domain.Grid, maxLen int) (domain.Selection, Stats, error)
}

// Hinter suggests a selection that would clear cells.
type Hinter interface {
	Hint(ctx context.Context, g *domain.Grid) (domain.Selection, bool, Stats, error)
}

// Validator checks that a grid holds only legal values.
type Validator interface {
	Validate(g *domain.Grid) (ok bool, bad []domain.Coord)
}
