package nnue

import "github.com/talonchess/talon/internal/board"

// DirtyPiece records one piece movement between accumulator refresh points:
// fromSq/toSq are NoSquare for an added/removed piece respectively.
type DirtyPiece struct {
	Piece  board.Piece
	FromSq board.Square
	ToSq   board.Square
}

// MaxDirtyPieces bounds the pieces touched by a single move: a normal move
// touches one (remove+add), a capture two, and castling touches two pieces
// (king + rook, each a remove+add) — four dirty-piece records in the worst
// case.
const MaxDirtyPieces = 4

// Accumulator holds both perspectives' hidden-layer activations for one
// position, refreshed incrementally from the previous ply's accumulator.
type Accumulator struct {
	values   [board.ColorArraySize][HiddenDim]int16
	computed [board.ColorArraySize]bool
}

// Stack is the per-thread accumulator stack, pushed on DoMove and popped on
// UndoMove so incremental updates never need to be recomputed from scratch
// except after a null move or at the search root.
type Stack struct {
	entries []Accumulator
	dirty   [][MaxDirtyPieces]DirtyPiece
	dirtyN  []int
}

// NewStack returns an empty accumulator stack with room for maxPly frames.
func NewStack(maxPly int) *Stack {
	return &Stack{
		entries: make([]Accumulator, 0, maxPly+1),
		dirty:   make([][MaxDirtyPieces]DirtyPiece, 0, maxPly+1),
		dirtyN:  make([]int, 0, maxPly+1),
	}
}

// Reset clears the stack and seeds frame 0 with a from-scratch refresh.
func (s *Stack) Reset(pos *board.Position, net *Network) {
	s.entries = s.entries[:0]
	s.dirty = s.dirty[:0]
	s.dirtyN = s.dirtyN[:0]
	var acc Accumulator
	net.Refresh(pos, board.White, &acc)
	net.Refresh(pos, board.Black, &acc)
	s.entries = append(s.entries, acc)
	s.dirty = append(s.dirty, [MaxDirtyPieces]DirtyPiece{})
	s.dirtyN = append(s.dirtyN, 0)
}

// Push starts a new frame for the position reached after applying a move,
// recording which pieces moved so Current can lazily update the
// accumulator the first time it is actually read.
func (s *Stack) Push(dirty [MaxDirtyPieces]DirtyPiece, n int) {
	prev := s.entries[len(s.entries)-1]
	s.entries = append(s.entries, prev)
	s.entries[len(s.entries)-1].computed = [board.ColorArraySize]bool{}
	s.dirty = append(s.dirty, dirty)
	s.dirtyN = append(s.dirtyN, n)
}

// Pop discards the top frame, restoring the previous ply's accumulator.
func (s *Stack) Pop() {
	s.entries = s.entries[:len(s.entries)-1]
	s.dirty = s.dirty[:len(s.dirty)-1]
	s.dirtyN = s.dirtyN[:len(s.dirtyN)-1]
}

// Current returns the top-of-stack accumulator, lazily applying any pending
// incremental update for the requested perspective.
func (s *Stack) Current(net *Network, pos *board.Position, perspective board.Color) *[HiddenDim]int16 {
	top := len(s.entries) - 1
	acc := &s.entries[top]
	if acc.computed[perspective] {
		return &acc.values[perspective]
	}

	kingSq := pos.ByPiece(perspective, board.King).AsSquare()
	prev := &s.entries[top-1]
	acc.values[perspective] = prev.values[perspective]
	for i := 0; i < s.dirtyN[top]; i++ {
		d := s.dirty[top][i]
		if d.FromSq != board.NoSquare {
			net.removeFeature(&acc.values[perspective], perspective, kingSq, d.Piece, d.FromSq)
		}
		if d.ToSq != board.NoSquare {
			net.addFeature(&acc.values[perspective], perspective, kingSq, d.Piece, d.ToSq)
		}
	}
	acc.computed[perspective] = true
	return &acc.values[perspective]
}

// ComputeDirtyPieces derives the DirtyPiece set for a move, used by the
// search driver right before calling Push.
func ComputeDirtyPieces(pos *board.Position, m board.Move, moving board.Piece, captured board.Piece, captureSq board.Square) ([MaxDirtyPieces]DirtyPiece, int) {
	var d [MaxDirtyPieces]DirtyPiece
	n := 0

	placed := moving
	if m.Kind() == board.Promotion {
		placed = board.NewPiece(moving.Color(), m.PromotionType())
	}
	d[n] = DirtyPiece{Piece: moving, FromSq: m.From(), ToSq: board.NoSquare}
	n++
	d[n] = DirtyPiece{Piece: placed, FromSq: board.NoSquare, ToSq: m.To()}
	n++

	if captured != board.NoPiece {
		d[n] = DirtyPiece{Piece: captured, FromSq: captureSq, ToSq: board.NoSquare}
		n++
	}

	if m.Kind() == board.Castling {
		rook := board.NewPiece(moving.Color(), board.Rook)
		rookFrom, rookTo := board.CastlingRookSquares(m.To())
		d[n] = DirtyPiece{Piece: rook, FromSq: rookFrom, ToSq: board.NoSquare}
		n++
		d[n] = DirtyPiece{Piece: rook, FromSq: board.NoSquare, ToSq: rookTo}
		n++
	}

	return d, n
}
