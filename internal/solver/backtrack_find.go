package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/ports"
)

// ErrNoChain means no chain of at most maxLen cells sums to the target.
var ErrNoChain = errors.New("no chain sums to target")

// Find returns the first orthogonal chain, in row-major order of its start
// cell, whose values sum to the target. Empty cells may act as connectors
// but never start or end a chain.
func (s *BacktrackingSolver) Find(ctx context.Context, g *domain.Grid, maxLen int) (domain.Selection, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	var picked [domain.Rows][domain.Cols]bool
	path := make(domain.Selection, 0, maxLen)

	var dfs func(c domain.Coord, sum int) bool
	dfs = func(c domain.Coord, sum int) bool {
		if ctx.Err() != nil {
			return false
		}
		nodes++
		v := int(g[c.Row][c.Col])
		sum += v
		if sum > domain.Target {
			return false
		}
		path = append(path, c)
		picked[c.Row][c.Col] = true
		if sum == domain.Target && v != domain.Empty && len(path) > 1 {
			return true
		}
		if len(path) < maxLen {
			for _, n := range neighbours(c) {
				if !picked[n.Row][n.Col] && dfs(n, sum) {
					return true
				}
			}
		}
		picked[c.Row][c.Col] = false
		path = path[:len(path)-1]
		return false
	}

	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Cols; c++ {
			if g[r][c] == domain.Empty {
				continue
			}
			if dfs(domain.Coord{Row: r, Col: c}, 0) {
				out := make(domain.Selection, len(path))
				copy(out, path)
				return out, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
			}
			if err := ctx.Err(); err != nil {
				return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
		}
	}
	return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, ErrNoChain
}
