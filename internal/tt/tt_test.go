package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/board"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := New(1)
	hash := uint64(0xdeadbeefcafef00d)
	m := board.NewMove(board.E2, board.E4, board.Quiet)

	table.Store(hash, m, 123, 45, 0, 7, false, BoundExact)

	move, score, eval, depth, _, bound, ok := table.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, m, move)
	assert.Equal(t, 123, score)
	assert.Equal(t, 45, eval)
	assert.Equal(t, 7, depth)
	assert.Equal(t, BoundExact, bound)
}

func TestProbeMissReturnsFalse(t *testing.T) {
	table := New(1)
	_, _, _, _, _, _, ok := table.Probe(0x1234)
	assert.False(t, ok)
}

func TestDeeperStoreReplacesShallowerWithinGeneration(t *testing.T) {
	table := New(1)
	hash := uint64(0x1111)
	m := board.NewMove(board.D2, board.D4, board.Quiet)

	table.Store(hash, m, 10, 10, 0, 3, false, BoundExact)
	table.Store(hash, m, 20, 20, 0, 8, false, BoundExact)

	_, score, _, depth, _, _, ok := table.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, 20, score)
	assert.Equal(t, 8, depth)
}

func TestShallowerStoreDoesNotReplaceDeeperWithinGeneration(t *testing.T) {
	table := New(1)
	hash := uint64(0x2222)
	m := board.NewMove(board.D2, board.D4, board.Quiet)

	table.Store(hash, m, 20, 20, 0, 8, false, BoundExact)
	table.Store(hash, m, 10, 10, 0, 3, false, BoundExact)

	_, score, _, depth, _, _, ok := table.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, 20, score)
	assert.Equal(t, 8, depth)
}

func TestExactBoundReplacesRegardlessOfDepth(t *testing.T) {
	table := New(1)
	hash := uint64(0x3333)
	m := board.NewMove(board.D2, board.D4, board.Quiet)

	table.Store(hash, m, 20, 20, 0, 8, false, BoundUpper)
	table.Store(hash, m, 1, 1, 0, 1, false, BoundExact)

	_, score, _, depth, _, bound, ok := table.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, depth)
	assert.Equal(t, BoundExact, bound)
}

func TestDifferingKeyAlwaysOverwritesSlot(t *testing.T) {
	table := New(1)
	a := uint64(0x123456789abcdef0)
	idx := table.index(a)

	var b uint64
	for i := uint64(1); ; i++ {
		cand := a + i
		if table.index(cand) == idx && partialKey(cand) != partialKey(a) {
			b = cand
			break
		}
	}

	ma := board.NewMove(board.D2, board.D4, board.Quiet)
	mb := board.NewMove(board.E2, board.E4, board.Quiet)

	table.Store(a, ma, 20, 20, 0, 10, false, BoundUpper)
	table.Store(b, mb, 1, 1, 0, 1, false, BoundUpper)

	move, _, _, _, _, _, ok := table.Probe(b)
	require.True(t, ok)
	assert.Equal(t, mb, move)
}

func TestWasPVRoundTrips(t *testing.T) {
	table := New(1)
	hash := uint64(0x7777)
	m := board.NewMove(board.D2, board.D4, board.Quiet)

	table.Store(hash, m, 1, 1, 0, 4, true, BoundExact)

	_, _, _, _, pv, _, ok := table.Probe(hash)
	require.True(t, ok)
	assert.True(t, pv)
}

func TestClearEmptiesTable(t *testing.T) {
	table := New(1)
	hash := uint64(0x4444)
	table.Store(hash, board.NullMove, 1, 1, 0, 1, false, BoundExact)
	table.Clear()
	_, _, _, _, _, _, ok := table.Probe(hash)
	assert.False(t, ok)
}

func TestMateScorePlyAdjustmentRoundTrips(t *testing.T) {
	const mateIn3FromRoot = 31000 - 6
	tableScore := ToTT(mateIn3FromRoot, 4)
	assert.Equal(t, mateIn3FromRoot+4, tableScore)
	assert.Equal(t, mateIn3FromRoot, FromTT(tableScore, 4))
}

func TestNonMateScoreIsUnaffectedByPly(t *testing.T) {
	assert.Equal(t, 57, ToTT(57, 10))
	assert.Equal(t, 57, FromTT(57, 10))
}
