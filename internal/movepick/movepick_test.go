package movepick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/history"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPickerReturnsHashMoveFirst(t *testing.T) {
	pos, err := board.ParseFEN(kiwipeteFEN)
	require.NoError(t, err)

	var moves []board.Move
	pos.GenerateMoves(board.All, &moves)
	var hash board.Move
	for _, m := range moves {
		if pos.IsLegal(m) {
			hash = m
			break
		}
	}
	require.NotEqual(t, board.NullMove, hash)

	hist := history.NewTables()
	pk := New(pos, hist, 0, hash, board.NoPiece, board.NoSquare, board.NoPiece, board.NoSquare)
	assert.Equal(t, hash, pk.Next())
}

func TestPickerEnumeratesEveryLegalMoveExactlyOnce(t *testing.T) {
	pos, err := board.ParseFEN(kiwipeteFEN)
	require.NoError(t, err)

	var legal []board.Move
	var all []board.Move
	pos.GenerateMoves(board.All, &all)
	for _, m := range all {
		if pos.IsLegal(m) {
			legal = append(legal, m)
		}
	}

	hist := history.NewTables()
	pk := New(pos, hist, 0, board.NullMove, board.NoPiece, board.NoSquare, board.NoPiece, board.NoSquare)

	seen := make(map[board.Move]int)
	for m := pk.Next(); m != board.NullMove; m = pk.Next() {
		if !pos.IsLegal(m) {
			continue
		}
		seen[m]++
	}

	for _, m := range legal {
		assert.Equal(t, 1, seen[m], "move %v should be yielded exactly once", m)
	}
}

func TestPickerSkipQuietsOnlyYieldsCaptures(t *testing.T) {
	pos, err := board.ParseFEN(kiwipeteFEN)
	require.NoError(t, err)

	hist := history.NewTables()
	pk := New(pos, hist, 0, board.NullMove, board.NoPiece, board.NoSquare, board.NoPiece, board.NoSquare)
	pk.SkipQuiets()

	for m := pk.Next(); m != board.NullMove; m = pk.Next() {
		captured := pos.PieceOn(m.To())
		isCapture := captured != board.NoPiece || m.Kind() == board.EnPassant
		assert.True(t, isCapture, "expected only captures, got quiet move %v", m)
	}
}
