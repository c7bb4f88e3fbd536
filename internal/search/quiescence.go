package search

import (
	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/movepick"
	"github.com/talonchess/talon/internal/tt"
)

// quiescence extends the search along capture/check sequences only, so the
// static evaluation at the search frontier is never taken in the middle of
// a hanging exchange.
func quiescence(td *ThreadData, alpha, beta, ply int) int {
	if td.bumpNodes()&2047 == 0 && td.ShouldStop() {
		return 0
	}
	if ply > td.selDepth {
		td.selDepth = ply
	}
	if ply >= MaxPly {
		return td.staticEval()
	}

	hash := td.Pos.Hash()
	var hashMove board.Move
	if m, score, _, _, _, bound, ok := td.TT.Probe(hash); ok {
		hashMove = m
		s := tt.FromTT(score, ply)
		if bound == tt.BoundExact ||
			(bound == tt.BoundLower && s >= beta) ||
			(bound == tt.BoundUpper && s <= alpha) {
			return s
		}
	}

	inCheck := td.Pos.InCheck()
	standPat := ScoreNone
	if !inCheck {
		standPat = td.staticEval()
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	prevP, prevTo := prevMove(td, ply)
	prevP2, prevTo2 := prevMove2(td, ply)
	picker := movepick.New(td.Pos, td.Hist, ply, hashMove, prevP, prevTo, prevP2, prevTo2)
	if !inCheck {
		picker.SkipQuiets()
	}

	best := standPat
	movesSearched := 0
	for {
		m := picker.Next()
		if m == board.NullMove {
			break
		}
		if !td.Pos.IsLegal(m) {
			continue
		}

		// Futility pruning: a hopeless capture that cannot possibly raise
		// alpha even with the best-case material swing is skipped outright.
		if !inCheck && standPat+futilityMargin(m, td.Pos) <= alpha && !td.Pos.InCheck() {
			continue
		}
		if !inCheck && !td.Pos.SEEGE(m, 0) {
			continue
		}

		td.frames[ply].movedPiece = td.Pos.PieceOn(m.From())
		td.frames[ply].moveTo = m.To()
		td.doMove(m)
		score := -quiescence(td, -beta, -alpha, ply+1)
		td.undoMove()
		movesSearched++

		if td.stopped.Load() {
			return 0
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if score >= beta {
					break
				}
			}
		}
	}

	if inCheck && movesSearched == 0 {
		return -ScoreMate + ply
	}

	bound := tt.BoundUpper
	if best >= beta {
		bound = tt.BoundLower
	}
	td.TT.Store(hash, board.NullMove, best, standPat, ply, 0, false, bound)
	return best
}

// pieceValue is reused by futility margin estimation.
var pieceValue = [board.PieceTypeArraySize]int{0, 100, 320, 330, 500, 900, 0}

func futilityMargin(m board.Move, pos *board.Position) int {
	margin := 100 // QSearch futility base margin
	captured := pos.PieceOn(m.To())
	if m.Kind() == board.EnPassant {
		margin += pieceValue[board.Pawn]
	} else if captured != board.NoPiece {
		margin += pieceValue[captured.Type()]
	}
	if m.Kind() == board.Promotion {
		margin += pieceValue[board.Queen]
	}
	return margin
}

func prevMove(td *ThreadData, ply int) (board.Piece, board.Square) {
	if ply == 0 {
		return board.NoPiece, board.NoSquare
	}
	return td.frames[ply-1].movedPiece, td.frames[ply-1].moveTo
}

// prevMove2 describes the move two plies back, the second term continuation
// history aggregates over alongside prevMove.
func prevMove2(td *ThreadData, ply int) (board.Piece, board.Square) {
	if ply < 2 {
		return board.NoPiece, board.NoSquare
	}
	return td.frames[ply-2].movedPiece, td.frames[ply-2].moveTo
}
