package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"svw.info/tenmatch/internal/domain"
)

func TestEvaluatePairSummingToTen(t *testing.T) {
	var g domain.Grid
	g[0][0], g[0][1] = 4, 6
	sel := domain.Selection{{Row: 0, Col: 0}, {Row: 0, Col: 1}}

	assert.Equal(t, 10, Sum(sel, &g))
	assert.True(t, IsMatch(Sum(sel, &g)))
	assert.Equal(t, Result{Sum: 10, Matched: true, NonEmpty: 2}, Evaluate(sel, &g))
}

func TestSumSkipsOffGridAndEmpty(t *testing.T) {
	var g domain.Grid
	g[2][2], g[2][3], g[2][4] = 3, 0, 7
	sel := domain.Selection{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 50, Col: 50}}

	r := Evaluate(sel, &g)
	assert.Equal(t, 10, r.Sum)
	assert.True(t, r.Matched)
	assert.Equal(t, 2, r.NonEmpty, "the empty connector does not count")
}

func TestEmptySelectionNeverMatches(t *testing.T) {
	var g domain.Grid
	r := Evaluate(nil, &g)
	assert.Zero(t, r.Sum)
	assert.False(t, r.Matched)
	assert.Zero(t, r.NonEmpty)
}

func TestIsMatchExactEquality(t *testing.T) {
	for sum := -5; sum <= 30; sum++ {
		assert.Equal(t, sum == 10, IsMatch(sum), "sum %d", sum)
	}
}
