package nnue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/board"
)

func TestIncrementalAccumulatorMatchesRefresh(t *testing.T) {
	net := Load()
	pos := board.NewPosition()

	stack := NewStack(8)
	stack.Reset(pos, net)

	var moves []board.Move
	pos.GenerateMoves(board.All, &moves)
	require.NotEmpty(t, moves)

	var m board.Move
	for _, cand := range moves {
		if pos.IsLegal(cand) {
			m = cand
			break
		}
	}
	require.NotEqual(t, board.NullMove, m)

	moving := pos.PieceOn(m.From())
	captureSq := m.To()
	if m.Kind() == board.EnPassant {
		captureSq = board.RankFile(m.From().Rank(), m.To().File())
	}
	captured := pos.PieceOn(captureSq)

	dirty, n := ComputeDirtyPieces(pos, m, moving, captured, captureSq)
	pos.DoMove(m)
	stack.Push(dirty, n)

	incremental := *stack.Current(net, pos, board.White)

	var fresh Accumulator
	net.Refresh(pos, board.White, &fresh)

	assert.Equal(t, fresh.values[board.White], incremental)
}

func TestEvaluateIsFinite(t *testing.T) {
	net := Load()
	pos := board.NewPosition()
	stack := NewStack(8)
	stack.Reset(pos, net)

	score := net.Evaluate(stack, pos, board.White)
	assert.True(t, score > -1000000 && score < 1000000)
}
