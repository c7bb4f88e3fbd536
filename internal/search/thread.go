package search

import (
	"sync/atomic"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/history"
	"github.com/talonchess/talon/internal/nnue"
	"github.com/talonchess/talon/internal/tt"
)

// ThreadData is one Lazy-SMP worker's private state: its own position copy,
// history tables, accumulator stack and node counter, all sharing only the
// transposition table with the rest of the pool.
type ThreadData struct {
	ID       int
	Pos      *board.Position
	Hist     *history.Tables
	Net      *nnue.Network
	Accum    *nnue.Stack
	TT       *tt.Table
	frames   [MaxPly + 1]frame
	nodes    uint64
	selDepth int
	rootPly  int

	stopped *atomic.Bool
	nodeCap uint64
}

// NewThreadData builds a worker sharing net and shared with the given TT.
func NewThreadData(id int, pos *board.Position, net *nnue.Network, table *tt.Table, stopped *atomic.Bool) *ThreadData {
	td := &ThreadData{
		ID:      id,
		Pos:     pos,
		Hist:    history.NewTables(),
		Net:     net,
		Accum:   nnue.NewStack(MaxPly),
		TT:      table,
		frames:  newFrames(),
		stopped: stopped,
	}
	td.Accum.Reset(pos, net)
	return td
}

// Nodes returns the number of nodes visited by this worker so far.
func (td *ThreadData) Nodes() uint64 { return atomic.LoadUint64(&td.nodes) }

func (td *ThreadData) bumpNodes() uint64 {
	return atomic.AddUint64(&td.nodes, 1)
}

// ShouldStop reports whether this worker must abort the current search,
// either because the pool-wide stop flag was set or because it has
// exceeded a hard node cap.
func (td *ThreadData) ShouldStop() bool {
	if td.stopped.Load() {
		return true
	}
	if td.nodeCap != 0 && td.Nodes() >= td.nodeCap {
		td.stopped.Store(true)
		return true
	}
	return false
}

// doMove applies m on the position and accumulator stack together, keeping
// both in sync; it must always be paired with undoMove.
func (td *ThreadData) doMove(m board.Move) {
	moving := td.Pos.PieceOn(m.From())
	captureSq := m.To()
	if m.Kind() == board.EnPassant {
		captureSq = board.RankFile(m.From().Rank(), m.To().File())
	}
	captured := td.Pos.PieceOn(captureSq)
	dirty, n := nnue.ComputeDirtyPieces(td.Pos, m, moving, captured, captureSq)

	td.Pos.DoMove(m)
	td.Accum.Push(dirty, n)
}

func (td *ThreadData) undoMove() {
	td.Pos.UndoMove()
	td.Accum.Pop()
}

// staticEval returns the NNUE evaluation from the side-to-move's
// perspective, corrected by the pawn/material correction history.
func (td *ThreadData) staticEval() int {
	stm := td.Pos.SideToMove()
	raw := td.Net.Evaluate(td.Accum, td.Pos, stm)
	return td.Hist.Correction.Correct(stm, td.Pos.PawnHash(), raw)
}
