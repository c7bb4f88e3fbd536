// Package history implements the move-ordering history tables: quiet,
// capture, continuation and correction history, plus killer and
// counter-move slots consulted by internal/movepick.
package history

import "github.com/talonchess/talon/internal/board"

// maxHistory bounds every history score; update uses "gravity" so repeated
// reinforcement saturates instead of overflowing.
const maxHistory = 16384

// updateGravity applies the history-gravity formula shared by every table
// in this package: the score is nudged toward bonus, with the nudge
// shrinking as the score approaches maxHistory in either direction.
func updateGravity(score int32, bonus int32) int32 {
	return score + bonus - score*abs32(bonus)/maxHistory
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampBonus(depth int) int32 {
	b := int32(300*depth - 250)
	if b > maxHistory {
		b = maxHistory
	}
	if b < -maxHistory {
		b = -maxHistory
	}
	return b
}

// Tables bundles every history table a single search thread needs. Each
// thread owns its own Tables; they are not shared across Lazy-SMP workers.
type Tables struct {
	Quiet        QuietHistory
	Capture      CaptureHistory
	Continuation ContinuationHistory
	Correction   CorrectionHistory
	Killers      KillerTable
	Counter      CounterTable
}

// NewTables builds a zero-valued set of history tables.
func NewTables() *Tables {
	t := &Tables{}
	t.Correction.init()
	return t
}

// QuietHistory scores quiet moves by [piece][to].
type QuietHistory [board.PieceArraySize][64]int32

func (h *QuietHistory) Get(p board.Piece, to board.Square) int32 { return h[p][to] }

func (h *QuietHistory) Update(p board.Piece, to board.Square, depth int, good bool) {
	bonus := clampBonus(depth)
	if !good {
		bonus = -bonus
	}
	h[p][to] = updateGravity(h[p][to], bonus)
}

// CaptureHistory scores captures by [piece][to][capturedType].
type CaptureHistory [board.PieceArraySize][64][board.PieceTypeArraySize]int32

func (h *CaptureHistory) Get(p board.Piece, to board.Square, captured board.PieceType) int32 {
	return h[p][to][captured]
}

func (h *CaptureHistory) Update(p board.Piece, to board.Square, captured board.PieceType, depth int, good bool) {
	bonus := clampBonus(depth)
	if !good {
		bonus = -bonus
	}
	h[p][to][captured] = updateGravity(h[p][to][captured], bonus)
}

// CapturedTypeForHistory maps the captured piece to the type capture
// history indexes by; en passant and promotion captures are folded to Pawn,
// matching the "capthist_capture" convention carried over from the engine
// this design was distilled from.
func CapturedTypeForHistory(captured board.Piece, m board.Move) board.PieceType {
	if m.Kind() == board.EnPassant {
		return board.Pawn
	}
	if captured == board.NoPiece {
		return board.NoPieceType
	}
	return captured.Type()
}

// ContinuationHistory scores a quiet move conditioned on an earlier move:
// [piece][to][prevPiece][prevTo]. Callers consult and update it once for
// the move at ply-1 and once for the move at ply-2 against this same
// table, so a quiet's order is the sum of both contributions.
type ContinuationHistory [board.PieceArraySize][64][board.PieceArraySize][64]int32

func (h *ContinuationHistory) Get(p board.Piece, to board.Square, prevP board.Piece, prevTo board.Square) int32 {
	return h[p][to][prevP][prevTo]
}

func (h *ContinuationHistory) Update(p board.Piece, to board.Square, prevP board.Piece, prevTo board.Square, depth int, good bool) {
	bonus := clampBonus(depth)
	if !good {
		bonus = -bonus
	}
	h[p][to][prevP][prevTo] = updateGravity(h[p][to][prevP][prevTo], bonus)
}

// KillerTable holds two killer quiet moves per ply.
type KillerTable struct {
	moves [128][2]board.Move
}

func (k *KillerTable) Get(ply int) (board.Move, board.Move) {
	return k.moves[ply][0], k.moves[ply][1]
}

func (k *KillerTable) IsKiller(ply int, m board.Move) bool {
	return m == k.moves[ply][0] || m == k.moves[ply][1]
}

func (k *KillerTable) Add(ply int, m board.Move) {
	if m == k.moves[ply][0] {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// CounterTable maps the previous move to a quiet reply that has refuted it
// before, indexed by [prevPiece][prevTo].
type CounterTable [board.PieceArraySize][64]board.Move

func (c *CounterTable) Get(prevP board.Piece, prevTo board.Square) board.Move {
	return c[prevP][prevTo]
}

func (c *CounterTable) Set(prevP board.Piece, prevTo board.Square, m board.Move) {
	c[prevP][prevTo] = m
}
