package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/grid"
	"svw.info/tenmatch/internal/match"
	"svw.info/tenmatch/internal/ports"
	"svw.info/tenmatch/internal/scoring"
	"svw.info/tenmatch/internal/selection"
	"svw.info/tenmatch/internal/terminal"
	"svw.info/tenmatch/internal/validator"
)

// Round is one playthrough: a grid, the gesture in progress, the score and
// whether play can continue. All methods are safe for concurrent use and
// run one at a time.
type Round struct {
	mu      sync.Mutex
	store   *grid.Store
	tracker *selection.Tracker
	scoring domain.Scoring
	scorer  ports.Scorer
	score   int
	state   domain.RoundState
	reason  domain.EndReason

	// balanced is fixed when a grid is dealt or loaded.
	balanced bool

	Hinter    ports.Hinter
	Validator ports.Validator
	log       logrus.FieldLogger
}

// NewRound starts an Active round on a generated grid.
func NewRound(gen ports.Generator, s domain.Scoring, log logrus.FieldLogger) *Round {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Round{
		store:   grid.New(gen),
		tracker: selection.New(),
		scoring: s,
		scorer:  scoring.For(s),
		state:   domain.Active,
		log:     log,
	}
	g := r.store.Snapshot()
	r.balanced = validator.Balanced(&g)
	return r
}

// Observe registers the single observer of grid changes; nil removes it.
func (r *Round) Observe(o ports.Observer) {
	r.store.SetObserver(o)
}

// Attach registers o and sends it the current grid straight away.
func (r *Round) Attach(o ports.Observer) {
	r.store.Attach(o)
}

// Close detaches the observer and closes it if it holds a resource.
func (r *Round) Close() error {
	if c, ok := r.store.Detach().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Unobserve detaches o if it is still the registered observer.
func (r *Round) Unobserve(o ports.Observer) {
	r.store.ClearObserver(o)
}

// Begin starts a gesture at c. Ignored once the round is over.
func (r *Round) Begin(c domain.Coord) domain.Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == domain.Active {
		r.tracker.Begin(c)
	}
	return r.tracker.Selection()
}

// Extend grows the gesture towards c.
func (r *Round) Extend(c domain.Coord) domain.Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == domain.Active {
		r.tracker.Extend(c)
	}
	return r.tracker.Selection()
}

// Release ends the gesture and judges it. On a match the cells are cleared
// and the observer has seen the new grid before terminality is checked.
func (r *Round) Release() domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel := r.tracker.End()
	out := domain.Outcome{Selection: sel, Score: r.score, State: r.state, Reason: r.reason}
	if r.state != domain.Active {
		return out
	}

	g := r.store.Snapshot()
	res := match.Evaluate(sel, &g)
	out.Sum = res.Sum
	if !res.Matched {
		return out
	}

	out.Matched = true
	out.Cleared = r.store.RemoveCells(sel)
	out.Gained = r.scorer.Score(res.NonEmpty)
	r.score += out.Gained
	out.Score = r.score

	after := r.store.Snapshot()
	if !terminal.HasValidMoves(&after) {
		r.end(domain.NoMoves)
	}
	out.State, out.Reason = r.state, r.reason

	r.log.WithFields(logrus.Fields{
		"cells":   len(sel),
		"cleared": out.Cleared,
		"gained":  out.Gained,
		"score":   r.score,
		"state":   r.state,
	}).Debug("match")
	return out
}

// Expire is the hook for an external clock: an Active round ends with TimeUp.
func (r *Round) Expire() domain.RoundView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == domain.Active {
		r.tracker.End()
		r.end(domain.TimeUp)
	}
	return r.view()
}

// Reset deals a new grid and starts over at zero.
func (r *Round) Reset() domain.RoundView {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracker.End()
	r.store.Reset()
	g := r.store.Snapshot()
	r.balanced = validator.Balanced(&g)
	r.score = 0
	r.state, r.reason = domain.Active, domain.NotEnded
	r.log.Debug("round reset")
	return r.view()
}

// Load starts over on a caller-supplied layout. A layout without any move
// is Terminal straight away.
func (r *Round) Load(g domain.Grid) (domain.RoundView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Validator != nil {
		if ok, bad := r.Validator.Validate(&g); !ok {
			if len(bad) == 0 {
				return domain.RoundView{}, ErrInvalidGrid
			}
			return domain.RoundView{}, fmt.Errorf("%w: %d cells out of range, first at %v", ErrInvalidGrid, len(bad), bad[0])
		}
	}
	r.tracker.End()
	r.store.Load(g)
	r.balanced = validator.Balanced(&g)
	if !r.balanced {
		r.log.WithField("balanced", false).Warn("loaded grid has uneven digit counts")
	}
	r.score = 0
	r.state, r.reason = domain.Active, domain.NotEnded
	if !terminal.HasValidMoves(&g) {
		r.end(domain.NoMoves)
	}
	return r.view(), nil
}

// View returns the current picture of the round.
func (r *Round) View() domain.RoundView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view()
}

// Hint suggests a selection on the current grid. A finished round has none.
// The search runs outside the round lock.
func (r *Round) Hint(ctx context.Context) (domain.Selection, bool, ports.Stats, error) {
	if r.Hinter == nil {
		return nil, false, ports.Stats{}, ErrNotConfigured
	}
	r.mu.Lock()
	active := r.state == domain.Active
	g := r.store.Snapshot()
	r.mu.Unlock()
	if !active {
		return nil, false, ports.Stats{}, nil
	}
	return r.Hinter.Hint(ctx, &g)
}

func (r *Round) end(reason domain.EndReason) {
	r.state, r.reason = domain.Terminal, reason
	r.log.WithFields(logrus.Fields{"reason": reason, "score": r.score}).Info("round over")
}

func (r *Round) view() domain.RoundView {
	g := r.store.Snapshot()
	return domain.RoundView{
		Grid:      g,
		Score:     r.score,
		Remaining: g.Count(),
		State:     r.state,
		Reason:    r.reason,
		Scoring:   r.scoring,
		Balanced:  r.balanced,
	}
}
