package domain

import (
	"fmt"
	"strings"
)

// RoundState is where a round sits in its lifecycle.
type RoundState int

const (
	Active RoundState = iota
	Terminal
)

func (s RoundState) String() string {
	if s == Terminal {
		return "terminal"
	}
	return "active"
}

func (s RoundState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// EndReason says why a round became Terminal.
type EndReason int

const (
	NotEnded EndReason = iota
	NoMoves            // no adjacent pair sums to Target
	TimeUp             // external clock fired
)

func (r EndReason) String() string {
	switch r {
	case NoMoves:
		return "no-moves"
	case TimeUp:
		return "time-up"
	default:
		return ""
	}
}

func (r EndReason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Scoring picks how a match's cleared count turns into points.
type Scoring int

const (
	Linear  Scoring = iota // points = cleared
	Squared                // points = cleared²
)

func (s Scoring) String() string {
	if s == Squared {
		return "squared"
	}
	return "linear"
}

func (s Scoring) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Scoring) UnmarshalText(b []byte) error {
	v, err := ParseScoring(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseScoring accepts "linear" or "squared"; empty means Linear.
func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "count":
		return Linear, nil
	case "squared", "square":
		return Squared, nil
	default:
		return Linear, fmt.Errorf("unknown scoring %q", s)
	}
}
