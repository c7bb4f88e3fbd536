package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/board"
)

func TestPoolSearchFindsALegalMoveFromStartPosition(t *testing.T) {
	pos := board.NewPosition()
	pool := NewPool(Options{Threads: 1, HashMB: 1, MultiPV: 1}, NopLogger{})

	best := pool.Search(context.Background(), pos, Limits{Depth: 4})
	require.NotEqual(t, board.NullMove, best)
	assert.True(t, pos.IsLegal(best))
	assert.Greater(t, pool.Nodes(), uint64(0))
}

func TestPoolSearchFindsMateInOne(t *testing.T) {
	// White to deliver back-rank mate with Ra8#.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	pool := NewPool(Options{Threads: 1, HashMB: 1, MultiPV: 1}, NopLogger{})
	best := pool.Search(context.Background(), pos, Limits{Depth: 4})

	require.NotEqual(t, board.NullMove, best)
	assert.Equal(t, board.A1, best.From())
	assert.Equal(t, board.A8, best.To())
}

func TestLMRReductionIsZeroBelowMinDepth(t *testing.T) {
	assert.Equal(t, 0, lmrReduction(2, 10, false, false, false, false))
}

func TestLMRReductionGrowsWithDepthAndMoveCount(t *testing.T) {
	small := lmrReduction(6, 5, false, false, false, false)
	large := lmrReduction(6, 40, false, false, false, false)
	assert.GreaterOrEqual(t, large, small)
}

func TestLMRReductionNeverReachesFullDepth(t *testing.T) {
	r := lmrReduction(10, 60, false, false, false, false)
	assert.Less(t, r, 10)
	assert.GreaterOrEqual(t, r, 0)
}
