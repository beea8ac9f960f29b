// Package selection builds the chain of cells a player drags across.
package selection

import "svw.info/tenmatch/internal/domain"

// Tracker turns discrete pointer samples into an orthogonally connected,
// duplicate-free path. The zero value is an empty tracker ready for Begin.
type Tracker struct {
	path   domain.Selection
	picked [domain.Rows][domain.Cols]bool
}

// New returns an empty tracker.
func New() *Tracker { return &Tracker{} }

// Building reports whether a gesture is in progress.
func (t *Tracker) Building() bool { return len(t.path) > 0 }

// Begin starts a new selection at c. Off-grid input is ignored.
func (t *Tracker) Begin(c domain.Coord) {
	if !c.InBounds() {
		return
	}
	t.clear()
	t.add(c)
}

// Extend walks from the last selected cell towards c one step per axis at a
// time and appends each step that is on the grid, not yet picked, and
// shares an edge with the cell appended before it. The walk stops at the
// first step that fails, so a jump keeps only its connectable prefix.
func (t *Tracker) Extend(c domain.Coord) {
	if !t.Building() || !c.InBounds() || t.picked[c.Row][c.Col] {
		return
	}
	last := t.path[len(t.path)-1]
	dr, dc := sign(c.Row-last.Row), sign(c.Col-last.Col)

	cur := last
	for cur != c {
		next := cur
		if next.Row != c.Row {
			next.Row += dr
		}
		if next.Col != c.Col {
			next.Col += dc
		}
		if !next.InBounds() || t.picked[next.Row][next.Col] || !next.Adjacent(cur) {
			return
		}
		t.add(next)
		cur = next
	}
}

// End returns the finished selection and resets to empty.
func (t *Tracker) End() domain.Selection {
	out := t.path
	t.path = nil
	t.picked = [domain.Rows][domain.Cols]bool{}
	return out
}

// Selection returns a copy of the path built so far.
func (t *Tracker) Selection() domain.Selection {
	out := make(domain.Selection, len(t.path))
	copy(out, t.path)
	return out
}

func (t *Tracker) add(c domain.Coord) {
	t.path = append(t.path, c)
	t.picked[c.Row][c.Col] = true
}

func (t *Tracker) clear() {
	t.path = t.path[:0]
	t.picked = [domain.Rows][domain.Cols]bool{}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
