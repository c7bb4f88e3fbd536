package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talonchess/talon/internal/search"
)

func TestPositionStartposWithMoves(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	require.NoError(t, e.Execute("position startpos moves e2e4 e7e5"))
	assert.Equal(t, "e6", e.pos.EnPassantSquare().String())
}

func TestPositionFEN(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, e.Execute("position fen " + fen))
	assert.Equal(t, fen, e.pos.FEN())
}

func TestSetoptionClearHash(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	assert.NoError(t, e.Execute("setoption name Clear Hash"))
}

func TestSetoptionHashResizesTable(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	assert.NoError(t, e.Execute("setoption name Hash value 32"))
	assert.Equal(t, 32, e.pool.Options().HashMB)
}

func TestSetoptionThreads(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	assert.NoError(t, e.Execute("setoption name Threads value 2"))
	assert.Equal(t, 2, e.pool.Options().Threads)
}

func TestUnknownCommandErrors(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	assert.Error(t, e.Execute("notacommand"))
}

func TestStopWithoutRunningSearchIsANoop(t *testing.T) {
	e := New(zap.NewNop(), search.Options{})
	assert.NoError(t, e.Execute("stop"))
}
