// Package scoring holds the policies that turn a cleared count into points.
package scoring

import (
	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/ports"
)

// Linear awards one point per cleared cell.
type Linear struct{}

func (Linear) Score(cleared int) int { return cleared }

// Squared rewards long chains: cleared².
type Squared struct{}

func (Squared) Score(cleared int) int { return cleared * cleared }

// For returns the scorer matching s.
func For(s domain.Scoring) ports.Scorer {
	if s == domain.Squared {
		return Squared{}
	}
	return Linear{}
}
