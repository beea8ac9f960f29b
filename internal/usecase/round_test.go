package usecase

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/generator"
	"svw.info/tenmatch/internal/hint"
	"svw.info/tenmatch/internal/ports"
	"svw.info/tenmatch/internal/validator"
)

type fixedGen struct{ g domain.Grid }

func (f fixedGen) Generate() domain.Grid { return f.g }

func at(r, c int) domain.Coord { return domain.Coord{Row: r, Col: c} }

// nines is a grid with no moves at all.
func nines() domain.Grid {
	var g domain.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = 9
		}
	}
	return g
}

// eventHook appends a marker for each log entry to a shared slice.
type eventHook struct{ events *[]string }

func (h eventHook) Levels() []logrus.Level { return logrus.AllLevels }
func (h eventHook) Fire(e *logrus.Entry) error {
	*h.events = append(*h.events, "log:"+e.Message)
	return nil
}

func quietLogger(events *[]string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(io.Discard)
	if events != nil {
		l.AddHook(eventHook{events: events})
	}
	return l
}

func TestReleaseMatchClearsAndScores(t *testing.T) {
	g := nines()
	g[0][0], g[0][1] = 4, 6
	g[5][5], g[5][6] = 5, 5 // keeps a move after the first match
	r := NewRound(fixedGen{g}, domain.Linear, quietLogger(nil))

	r.Begin(at(0, 0))
	r.Extend(at(0, 1))
	out := r.Release()

	assert.True(t, out.Matched)
	assert.Equal(t, 10, out.Sum)
	assert.Equal(t, 2, out.Cleared)
	assert.Equal(t, 2, out.Gained)
	assert.Equal(t, 2, out.Score)
	assert.Equal(t, domain.Active, out.State)
	assert.Equal(t, domain.Selection{at(0, 0), at(0, 1)}, out.Selection)

	v := r.View()
	assert.Equal(t, uint8(0), v.Grid[0][0])
	assert.Equal(t, uint8(0), v.Grid[0][1])
	assert.Equal(t, domain.Rows*domain.Cols-2, v.Remaining)
}

func TestReleaseWithoutMatchKeepsGrid(t *testing.T) {
	g := nines()
	g[0][0], g[0][1] = 4, 5
	g[5][5], g[5][6] = 5, 5
	r := NewRound(fixedGen{g}, domain.Linear, quietLogger(nil))

	r.Begin(at(0, 0))
	r.Extend(at(0, 1))
	out := r.Release()

	assert.False(t, out.Matched)
	assert.Equal(t, 9, out.Sum)
	assert.Zero(t, out.Score)
	assert.Equal(t, g, r.View().Grid)
	assert.Empty(t, r.Extend(at(0, 2)), "selection is discarded on release")
}

func TestLastMatchEndsRoundAfterObserverSawGrid(t *testing.T) {
	g := nines()
	g[0][0], g[0][1] = 4, 6
	var events []string
	r := NewRound(fixedGen{g}, domain.Linear, quietLogger(&events))
	r.Observe(ports.ObserverFunc(func(g domain.Grid) {
		events = append(events, "grid")
	}))

	r.Begin(at(0, 0))
	r.Extend(at(0, 1))
	out := r.Release()

	assert.True(t, out.Matched)
	assert.Equal(t, domain.Terminal, out.State)
	assert.Equal(t, domain.NoMoves, out.Reason)
	require.Contains(t, events, "log:round over")
	assert.Equal(t, "grid", events[0], "observer must run before the round is declared over")
}

func TestChainThroughEmptyCellSquared(t *testing.T) {
	g := nines()
	g[0][0], g[0][1], g[0][2] = 3, 0, 7
	g[5][5], g[5][6] = 5, 5
	r := NewRound(fixedGen{g}, domain.Squared, quietLogger(nil))

	r.Begin(at(0, 0))
	r.Extend(at(0, 2))
	out := r.Release()

	assert.True(t, out.Matched)
	assert.Equal(t, 2, out.Cleared)
	assert.Equal(t, 4, out.Gained)
	assert.Equal(t, 4, out.Score)
}

func TestExpireEndsRoundAndFreezesInput(t *testing.T) {
	g := nines()
	g[0][0], g[0][1] = 4, 6
	r := NewRound(fixedGen{g}, domain.Linear, quietLogger(nil))

	r.Begin(at(0, 0))
	v := r.Expire()
	assert.Equal(t, domain.Terminal, v.State)
	assert.Equal(t, domain.TimeUp, v.Reason)

	assert.Empty(t, r.Begin(at(0, 0)))
	r.Extend(at(0, 1))
	out := r.Release()
	assert.False(t, out.Matched)
	assert.Equal(t, g, r.View().Grid)

	// a second expiry keeps the first reason
	assert.Equal(t, domain.TimeUp, r.Expire().Reason)
}

func TestResetReturnsToActive(t *testing.T) {
	r := NewRound(generator.NewBalanced(11), domain.Linear, quietLogger(nil))
	var notified int
	r.Observe(ports.ObserverFunc(func(domain.Grid) { notified++ }))
	r.Expire()

	v := r.Reset()
	assert.Equal(t, domain.Active, v.State)
	assert.Equal(t, domain.NotEnded, v.Reason)
	assert.Zero(t, v.Score)
	assert.Equal(t, domain.Rows*domain.Cols, v.Remaining)
	assert.Equal(t, 1, notified)
}

func TestLoadValidatesAndChecksMoves(t *testing.T) {
	r := NewRound(generator.NewBalanced(3), domain.Linear, quietLogger(nil))
	r.Validator = validator.New()

	bad := nines()
	bad[2][2] = 42
	_, err := r.Load(bad)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	v, err := r.Load(nines())
	require.NoError(t, err)
	assert.Equal(t, domain.Terminal, v.State)
	assert.Equal(t, domain.NoMoves, v.Reason)

	playable := nines()
	playable[1][1], playable[1][2] = 1, 9
	v, err = r.Load(playable)
	require.NoError(t, err)
	assert.Equal(t, domain.Active, v.State)
}

func TestHintNeedsHinter(t *testing.T) {
	r := NewRound(generator.NewBalanced(3), domain.Linear, quietLogger(nil))
	_, _, _, err := r.Hint(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// rejectAll refuses every grid without naming a cell.
type rejectAll struct{}

func (rejectAll) Validate(*domain.Grid) (bool, []domain.Coord) { return false, nil }

func TestLoadRejectedWithoutBadCells(t *testing.T) {
	r := NewRound(generator.NewBalanced(3), domain.Linear, quietLogger(nil))
	r.Validator = rejectAll{}
	before := r.View().Grid

	var err error
	require.NotPanics(t, func() { _, err = r.Load(nines()) })
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.Equal(t, before, r.View().Grid)
}

func TestBalancedFlagFollowsDealtGrid(t *testing.T) {
	var events []string
	r := NewRound(generator.NewBalanced(4), domain.Linear, quietLogger(&events))
	assert.True(t, r.View().Balanced)

	v, err := r.Load(nines())
	require.NoError(t, err)
	assert.False(t, v.Balanced)
	assert.Contains(t, events, "log:loaded grid has uneven digit counts")

	assert.True(t, r.Reset().Balanced)
}

func TestHintAfterRoundEndsFindsNothing(t *testing.T) {
	g := nines()
	g[0][0], g[0][1] = 4, 6
	r := NewRound(fixedGen{g}, domain.Linear, quietLogger(nil))
	r.Hinter = hint.NewPairs(nil, 0)
	ctx := context.Background()

	sel, ok, _, err := r.Hint(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Selection{at(0, 0), at(0, 1)}, sel)

	r.Expire()
	sel, ok, _, err = r.Hint(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, sel)
}

// closingObserver counts grids and remembers being closed.
type closingObserver struct {
	grids  int
	closed bool
}

func (o *closingObserver) OnGridChanged(domain.Grid) { o.grids++ }
func (o *closingObserver) Close() error {
	o.closed = true
	return nil
}

func TestAttachSendsGridAndCloseReleasesObserver(t *testing.T) {
	r := NewRound(generator.NewBalanced(6), domain.Linear, quietLogger(nil))
	o := &closingObserver{}

	r.Attach(o)
	assert.Equal(t, 1, o.grids)

	require.NoError(t, r.Close())
	assert.True(t, o.closed)
	r.Reset()
	assert.Equal(t, 1, o.grids, "closed observer is no longer notified")
	assert.NoError(t, r.Close(), "closing an empty slot is a no-op")
}

// Gestures from several goroutines share one tracker, so they interleave
// arbitrarily; the score must still account for exactly the cleared cells.
func TestConcurrentGesturesKeepScoreConsistent(t *testing.T) {
	r := NewRound(generator.NewBalanced(8), domain.Linear, quietLogger(nil))
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				row := (w*3 + i) % domain.Rows
				col := (i * 7) % domain.Cols
				r.Begin(at(row, col))
				r.Extend(at(row, (col+1)%domain.Cols))
				r.Release()
				v := r.View()
				assert.Equal(t, domain.Rows*domain.Cols-v.Remaining, v.Score)
			}
		}(w)
	}
	wg.Wait()

	v := r.View()
	assert.Equal(t, domain.Rows*domain.Cols-v.Remaining, v.Score)
}
