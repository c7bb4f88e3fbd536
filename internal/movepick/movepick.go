// Package movepick implements the staged move picker: a phase state
// machine that yields moves roughly in best-first order without sorting
// the entire move list up front.
package movepick

import (
	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/history"
)

// Phase identifies the current stage of move generation.
type Phase int

const (
	PhaseHash Phase = iota
	PhaseGenCaptures
	PhaseGoodCaptures
	PhaseKillers
	PhaseCounter
	PhaseGenQuiets
	PhaseQuiets
	PhaseBadCaptures
	PhaseDone
)

// scored pairs a move with its ordering key.
type scored struct {
	move  board.Move
	order int32
}

// Picker yields pseudo-legal moves for one search node, already staged:
// hash move, then SEE-positive captures (MVV-LVA + capture history), then
// killer/counter quiets, then remaining quiets by history score, then
// SEE-negative captures last.
type Picker struct {
	pos        *board.Position
	hist       *history.Tables
	ply        int
	hash       board.Move
	prevP      board.Piece
	prevTo     board.Square
	prevP2     board.Piece
	prevTo2    board.Square
	skipQuiets bool

	phase Phase

	captures    []scored
	badCaptures []scored
	quiets      []scored

	killer1, killer2, counter board.Move
}

// New builds a picker for the current node. prevPiece/prevTo describe the
// move that led to this node (NoPiece/NoSquare at the root), used for
// counter-move and continuation-history lookups. prevPiece2/prevTo2
// describe the move two plies back (NoPiece/NoSquare if unavailable), used
// as a second continuation-history term.
func New(pos *board.Position, hist *history.Tables, ply int, hashMove board.Move, prevPiece board.Piece, prevTo board.Square, prevPiece2 board.Piece, prevTo2 board.Square) *Picker {
	k1, k2 := hist.Killers.Get(ply)
	return &Picker{
		pos:     pos,
		hist:    hist,
		ply:     ply,
		hash:    hashMove,
		prevP:   prevPiece,
		prevTo:  prevTo,
		prevP2:  prevPiece2,
		prevTo2: prevTo2,
		phase:   PhaseHash,
		killer1: k1,
		killer2: k2,
		counter: hist.Counter.Get(prevPiece, prevTo),
	}
}

// SkipQuiets restricts the remaining stages to captures only, used by
// quiescence search.
func (pk *Picker) SkipQuiets() {
	pk.skipQuiets = true
	if pk.phase == PhaseHash {
		pk.phase = PhaseGenCaptures
	}
}

// Next returns the next move, or NullMove once exhausted.
func (pk *Picker) Next() board.Move {
	for {
		switch pk.phase {
		case PhaseHash:
			pk.phase = PhaseGenCaptures
			if pk.hash != board.NullMove && pk.pos.IsPseudoLegal(pk.hash) {
				return pk.hash
			}

		case PhaseGenCaptures:
			pk.generateCaptures()
			pk.phase = PhaseGoodCaptures

		case PhaseGoodCaptures:
			if m, ok := pk.popBest(&pk.captures); ok {
				if m == pk.hash {
					continue
				}
				return m
			}
			if pk.skipQuiets {
				pk.phase = PhaseBadCaptures
			} else {
				pk.phase = PhaseKillers
			}

		case PhaseKillers:
			pk.phase = PhaseCounter
			if pk.killer1 != pk.hash && pk.killer1 != board.NullMove && pk.pos.IsPseudoLegal(pk.killer1) {
				return pk.killer1
			}
			fallthrough

		case PhaseCounter:
			pk.phase = PhaseGenQuiets
			if pk.killer2 != pk.hash && pk.killer2 != board.NullMove && pk.pos.IsPseudoLegal(pk.killer2) {
				return pk.killer2
			}
			if pk.counter != pk.hash && pk.counter != pk.killer1 && pk.counter != pk.killer2 &&
				pk.counter != board.NullMove && pk.pos.IsPseudoLegal(pk.counter) {
				return pk.counter
			}

		case PhaseGenQuiets:
			pk.phase = PhaseQuiets
			if !pk.skipQuiets {
				pk.generateQuiets()
			}

		case PhaseQuiets:
			if m, ok := pk.popBest(&pk.quiets); ok {
				if m == pk.hash || pk.isKillerOrCounter(m) {
					continue
				}
				return m
			}
			pk.phase = PhaseBadCaptures

		case PhaseBadCaptures:
			if m, ok := pk.popBest(&pk.badCaptures); ok {
				if m == pk.hash {
					continue
				}
				return m
			}
			pk.phase = PhaseDone

		case PhaseDone:
			return board.NullMove
		}
	}
}

func (pk *Picker) isKillerOrCounter(m board.Move) bool {
	return m == pk.killer1 || m == pk.killer2 || m == pk.counter
}

func (pk *Picker) generateCaptures() {
	var moves []board.Move
	pk.pos.GenerateMoves(board.Captures, &moves)
	for _, m := range moves {
		captured := pk.pos.PieceOn(m.To())
		capturedType := history.CapturedTypeForHistory(captured, m)
		order := mvvLVA(pk.pos.PieceOn(m.From()).Type(), capturedType) + pk.hist.Capture.Get(pk.pos.PieceOn(m.From()), m.To(), capturedType)
		s := scored{move: m, order: order}
		if pk.pos.SEEGE(m, 0) {
			pk.captures = append(pk.captures, s)
		} else {
			pk.badCaptures = append(pk.badCaptures, s)
		}
	}
}

func (pk *Picker) generateQuiets() {
	var moves []board.Move
	pk.pos.GenerateMoves(board.Quiets, &moves)
	for _, m := range moves {
		p := pk.pos.PieceOn(m.From())
		order := pk.hist.Quiet.Get(p, m.To()) +
			pk.hist.Continuation.Get(p, m.To(), pk.prevP, pk.prevTo) +
			pk.hist.Continuation.Get(p, m.To(), pk.prevP2, pk.prevTo2)
		pk.quiets = append(pk.quiets, scored{move: m, order: order})
	}
}

// popBest scans list for the highest-order entry, swap-removes it, and
// returns it. Lists here are short (legal chess positions rarely have more
// than ~40 moves of one kind) so an O(n) scan beats maintaining a heap.
func (pk *Picker) popBest(list *[]scored) (board.Move, bool) {
	l := *list
	if len(l) == 0 {
		return board.NullMove, false
	}
	best := 0
	for i := 1; i < len(l); i++ {
		if l[i].order > l[best].order {
			best = i
		}
	}
	m := l[best].move
	last := len(l) - 1
	l[best] = l[last]
	*list = l[:last]
	return m, true
}

// mvvlvaBonus is scaled so that even the cheapest victim outranks every
// quiet move's history score range.
var mvvlvaBonus = [board.PieceTypeArraySize]int32{0, 100, 320, 330, 500, 900, 20000}

func mvvLVA(attacker, victim board.PieceType) int32 {
	return mvvlvaBonus[victim]*64 - mvvlvaBonus[attacker]
}
