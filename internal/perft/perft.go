// Package perft implements the move-generator node-count harness used to
// validate internal/board against known-good counts; it is a collaborator
// outside the search/eval core.
package perft

import "github.com/talonchess/talon/internal/board"

// Count returns the number of leaf positions reachable from pos in exactly
// depth half-moves, by brute-force make/unmake enumeration.
func Count(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var moves []board.Move
	pos.GenerateMoves(board.All, &moves)

	var total uint64
	for _, m := range moves {
		if !pos.IsLegal(m) {
			continue
		}
		if depth == 1 {
			total++
			continue
		}
		pos.DoMove(m)
		total += Count(pos, depth-1)
		pos.UndoMove()
	}
	return total
}

// Divide returns the per-root-move node counts at depth, useful for
// bisecting a move generator bug against a reference engine's divide
// output.
func Divide(pos *board.Position, depth int) map[board.Move]uint64 {
	var moves []board.Move
	pos.GenerateMoves(board.All, &moves)

	out := make(map[board.Move]uint64, len(moves))
	for _, m := range moves {
		if !pos.IsLegal(m) {
			continue
		}
		pos.DoMove(m)
		out[m] = Count(pos, depth-1)
		pos.UndoMove()
	}
	return out
}
