package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPositionFEN(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, StartFEN, p.FEN())
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
	}
	for _, f := range fens {
		p, err := ParseFEN(f)
		require.NoError(t, err)
		assert.Equal(t, f, p.FEN())
	}
}

func TestDoUndoMoveRestoresHash(t *testing.T) {
	p := NewPosition()
	before := p.Hash()
	beforeFEN := p.FEN()

	var moves []Move
	p.GenerateMoves(All, &moves)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		if !p.IsLegal(m) {
			continue
		}
		p.DoMove(m)
		p.UndoMove()
		assert.Equal(t, before, p.Hash(), "hash not restored after %s", m)
		assert.Equal(t, beforeFEN, p.FEN(), "FEN not restored after %s", m)
	}
}

func TestStartingMoveCount(t *testing.T) {
	p := NewPosition()
	var moves []Move
	p.GenerateMoves(All, &moves)
	legal := 0
	for _, m := range moves {
		if p.IsLegal(m) {
			legal++
		}
	}
	assert.Equal(t, 20, legal)
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	p, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m := NewMove(A1, A8, Quiet)
	p.DoMove(m)
	assert.Equal(t, BlackOO, p.CastlingRights()&BlackOO)
	assert.Equal(t, Castle(0), p.CastlingRights()&(WhiteOOO|BlackOOO))
}

func TestEnPassantCapture(t *testing.T) {
	p, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	m := NewMove(E5, D6, EnPassant)
	p.DoMove(m)
	assert.Equal(t, NoPiece, p.PieceOn(D5))
	assert.Equal(t, NewPiece(White, Pawn), p.PieceOn(D6))
}

func TestSEEGoodAndBadCapture(t *testing.T) {
	// White rook takes a pawn defended by a black rook: losing exchange.
	p, err := ParseFEN("4r3/8/8/3p4/8/8/8/3R4 w - - 0 1")
	require.NoError(t, err)
	m := NewMove(D1, D5, Quiet)
	assert.Less(t, p.SEE(m), 0)
}
