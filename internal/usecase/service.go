package usecase

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/generator"
	"svw.info/tenmatch/internal/ports"
)

// Registry keeps live rounds by ID.
type Registry interface {
	Add(r *Round) string
	Get(id string) (*Round, bool)
}

// NewRoundParams are the optional knobs for starting a round.
type NewRoundParams struct {
	Seed    *int64
	Scoring *domain.Scoring
	Grid    *domain.Grid
}

type Service struct {
	Rounds    Registry
	Hinter    ports.Hinter
	Validator ports.Validator
	Scoring   domain.Scoring
	Log       logrus.FieldLogger
}

func NewService(reg Registry, h ports.Hinter, v ports.Validator, s domain.Scoring, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{Rounds: reg, Hinter: h, Validator: v, Scoring: s, Log: log}
}

// Create starts a round and registers it.
func (u *Service) Create(ctx context.Context, p NewRoundParams) (string, domain.RoundView, error) {
	if u.Rounds == nil {
		return "", domain.RoundView{}, ErrNotConfigured
	}
	seed := int64(0)
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		var err error
		if seed, err = newSeed(); err != nil {
			return "", domain.RoundView{}, err
		}
	}
	s := u.Scoring
	if p.Scoring != nil {
		s = *p.Scoring
	}

	log := u.Log.WithField("seed", seed)
	r := NewRound(generator.NewBalanced(seed), s, log)
	r.Hinter, r.Validator = u.Hinter, u.Validator
	view := r.View()
	if p.Grid != nil {
		var err error
		if view, err = r.Load(*p.Grid); err != nil {
			return "", domain.RoundView{}, err
		}
	}
	id := u.Rounds.Add(r)
	log.WithFields(logrus.Fields{"round": id, "scoring": s}).Info("round created")
	return id, view, nil
}

// Round looks up a live round.
func (u *Service) Round(ctx context.Context, id string) (*Round, error) {
	if u.Rounds == nil {
		return nil, ErrNotConfigured
	}
	r, ok := u.Rounds.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	return r, nil
}

func (u *Service) View(ctx context.Context, id string) (domain.RoundView, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return domain.RoundView{}, err
	}
	return r.View(), nil
}

func (u *Service) Begin(ctx context.Context, id string, c domain.Coord) (domain.Selection, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Begin(c), nil
}

func (u *Service) Extend(ctx context.Context, id string, c domain.Coord) (domain.Selection, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Extend(c), nil
}

func (u *Service) Release(ctx context.Context, id string) (domain.Outcome, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return domain.Outcome{}, err
	}
	return r.Release(), nil
}

func (u *Service) Expire(ctx context.Context, id string) (domain.RoundView, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return domain.RoundView{}, err
	}
	return r.Expire(), nil
}

func (u *Service) Reset(ctx context.Context, id string) (domain.RoundView, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return domain.RoundView{}, err
	}
	return r.Reset(), nil
}

func (u *Service) Hint(ctx context.Context, id string) (domain.Selection, bool, ports.Stats, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return nil, false, ports.Stats{}, err
	}
	return r.Hint(ctx)
}

// Observe points the round's single observer slot at o.
func (u *Service) Observe(ctx context.Context, id string, o ports.Observer) error {
	r, err := u.Round(ctx, id)
	if err != nil {
		return err
	}
	r.Observe(o)
	return nil
}

// Attach makes o the round's observer and sends it the current grid.
func (u *Service) Attach(ctx context.Context, id string, o ports.Observer) error {
	r, err := u.Round(ctx, id)
	if err != nil {
		return err
	}
	r.Attach(o)
	return nil
}

// Unobserve releases the slot if o still holds it.
func (u *Service) Unobserve(ctx context.Context, id string, o ports.Observer) {
	if r, err := u.Round(ctx, id); err == nil {
		r.Unobserve(o)
	}
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
