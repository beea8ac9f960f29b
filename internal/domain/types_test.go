package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordAdjacent(t *testing.T) {
	c := Coord{Row: 4, Col: 4}
	assert.True(t, c.Adjacent(Coord{Row: 4, Col: 5}))
	assert.True(t, c.Adjacent(Coord{Row: 3, Col: 4}))
	assert.False(t, c.Adjacent(Coord{Row: 5, Col: 5}), "diagonal")
	assert.False(t, c.Adjacent(Coord{Row: 4, Col: 6}))
	assert.False(t, c.Adjacent(c))
}

func TestCoordInBounds(t *testing.T) {
	assert.True(t, Coord{Row: 0, Col: 0}.InBounds())
	assert.True(t, Coord{Row: Rows - 1, Col: Cols - 1}.InBounds())
	assert.False(t, Coord{Row: Rows, Col: 0}.InBounds())
	assert.False(t, Coord{Row: 0, Col: -1}.InBounds())
}

func TestGridAtOffGrid(t *testing.T) {
	var g Grid
	g[1][2] = 7
	assert.Equal(t, uint8(7), g.At(Coord{Row: 1, Col: 2}))
	assert.Equal(t, uint8(Empty), g.At(Coord{Row: 99, Col: 99}))
}

func TestGridMarshalsAsNumbers(t *testing.T) {
	var g Grid
	g[0][0] = 4
	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[[4,0,0")
}

func TestParseScoring(t *testing.T) {
	s, err := ParseScoring(" Squared ")
	require.NoError(t, err)
	assert.Equal(t, Squared, s)

	s, err = ParseScoring("")
	require.NoError(t, err)
	assert.Equal(t, Linear, s)

	_, err = ParseScoring("cubed")
	assert.Error(t, err)
}

func TestStateText(t *testing.T) {
	b, err := json.Marshal(Outcome{State: Terminal, Reason: TimeUp})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"state":"terminal"`)
	assert.Contains(t, string(b), `"reason":"time-up"`)

	b, err = json.Marshal(RoundView{})
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"reason"`)
}
