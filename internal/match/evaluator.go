// Package match judges a finished selection against the grid.
package match

import "svw.info/tenmatch/internal/domain"

// Result bundles the figures the round needs after a release.
type Result struct {
	Sum      int
	Matched  bool
	NonEmpty int
}

// Sum adds the values under sel. Off-grid coordinates contribute nothing.
func Sum(sel domain.Selection, g *domain.Grid) int {
	total := 0
	for _, c := range sel {
		total += int(g.At(c))
	}
	return total
}

// IsMatch reports whether sum hits the target exactly.
func IsMatch(sum int) bool { return sum == domain.Target }

// NonEmptyCount counts selected cells that still hold a digit. This is the
// number handed to the scoring policy.
func NonEmptyCount(sel domain.Selection, g *domain.Grid) int {
	n := 0
	for _, c := range sel {
		if g.At(c) != domain.Empty {
			n++
		}
	}
	return n
}

func Evaluate(sel domain.Selection, g *domain.Grid) Result {
	sum := Sum(sel, g)
	return Result{Sum: sum, Matched: IsMatch(sum), NonEmpty: NonEmptyCount(sel, g)}
}
