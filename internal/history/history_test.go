package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talonchess/talon/internal/board"
)

var whiteKnight = board.NewPiece(board.White, board.Knight)

func TestQuietHistoryRewardsGoodMoves(t *testing.T) {
	var h QuietHistory
	before := h.Get(whiteKnight, board.E4)
	h.Update(whiteKnight, board.E4, 6, true)
	after := h.Get(whiteKnight, board.E4)
	assert.Greater(t, after, before)
}

func TestQuietHistoryPunishesBadMoves(t *testing.T) {
	var h QuietHistory
	h.Update(whiteKnight, board.E4, 6, false)
	assert.Less(t, h.Get(whiteKnight, board.E4), int32(0))
}

func TestHistoryGravitySaturates(t *testing.T) {
	var h QuietHistory
	for i := 0; i < 10000; i++ {
		h.Update(whiteKnight, board.E4, 20, true)
	}
	assert.LessOrEqual(t, h.Get(whiteKnight, board.E4), int32(maxHistory))
}

func TestKillerTableAddAndGet(t *testing.T) {
	var k KillerTable
	m1 := board.NewMove(board.E2, board.E4, board.Quiet)
	m2 := board.NewMove(board.D2, board.D4, board.Quiet)

	k.Add(0, m1)
	k.Add(0, m2)

	first, second := k.Get(0)
	assert.Equal(t, m2, first)
	assert.Equal(t, m1, second)
	assert.True(t, k.IsKiller(0, m1))
	assert.True(t, k.IsKiller(0, m2))
	assert.False(t, k.IsKiller(0, board.NewMove(board.G1, board.F3, board.Quiet)))
}

func TestKillerTableIgnoresDuplicateInsert(t *testing.T) {
	var k KillerTable
	m1 := board.NewMove(board.E2, board.E4, board.Quiet)
	k.Add(0, m1)
	k.Add(0, m1)
	first, second := k.Get(0)
	assert.Equal(t, m1, first)
	assert.Equal(t, board.NullMove, second)
}

func TestCounterTableSetAndGet(t *testing.T) {
	var c CounterTable
	reply := board.NewMove(board.G8, board.F6, board.Quiet)
	whitePawn := board.NewPiece(board.White, board.Pawn)
	c.Set(whitePawn, board.E4, reply)
	assert.Equal(t, reply, c.Get(whitePawn, board.E4))
}

func TestCorrectionHistoryBlendsTowardSearchScore(t *testing.T) {
	var c CorrectionHistory
	c.init()

	const pawnHash = 0x1234
	staticEval := 50
	for i := 0; i < 50; i++ {
		c.Update(board.White, pawnHash, 10, staticEval, staticEval+80)
	}
	corrected := c.Correct(board.White, pawnHash, staticEval)
	assert.Greater(t, corrected, staticEval)
}
