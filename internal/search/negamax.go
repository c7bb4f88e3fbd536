package search

import (
	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/history"
	"github.com/talonchess/talon/internal/movepick"
	"github.com/talonchess/talon/internal/tt"
)

// negamax is the principal variation search: a fail-soft negamax with
// null-window re-search for non-PV moves, aspiration-window-friendly
// alpha/beta, and the full suite of pruning/extension heuristics.
func negamax(td *ThreadData, alpha, beta, depth, ply int, cutNode bool) int {
	isPV := beta-alpha > 1
	td.frames[ply].pv = td.frames[ply].pv[:0]

	if depth <= 0 {
		return quiescence(td, alpha, beta, ply)
	}
	if td.bumpNodes()&1023 == 0 && td.ShouldStop() {
		return 0
	}
	if ply > td.selDepth {
		td.selDepth = ply
	}
	if ply >= MaxPly {
		return td.staticEval()
	}

	// Mate distance pruning: a position can't be worth more than "mate in
	// the next ply" nor worse than "getting mated right now", so the
	// window can be tightened without affecting correctness.
	if ply > 0 {
		alpha = max(alpha, -ScoreMate+ply)
		beta = min(beta, ScoreMate-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	if ply > 0 && (td.Pos.IsDraw() || isRepetition(td, ply)) {
		return 0
	}

	hash := td.Pos.Hash()
	excluded := td.frames[ply].excluded
	var hashMove board.Move
	ttDepth, ttScore, ttEval, ttBound := 0, ScoreNone, ScoreNone, tt.BoundNone
	ttHit := false
	if excluded == board.NullMove {
		if m, score, evl, d, _, bound, ok := td.TT.Probe(hash); ok {
			ttHit = true
			hashMove, ttScore, ttEval, ttDepth, ttBound = m, tt.FromTT(score, ply), evl, d, bound
			if !isPV && ttDepth >= depth {
				if ttBound == tt.BoundExact ||
					(ttBound == tt.BoundLower && ttScore >= beta) ||
					(ttBound == tt.BoundUpper && ttScore <= alpha) {
					return ttScore
				}
			}
		}
	}

	inCheck := td.Pos.InCheck()
	staticEval := ScoreNone
	if !inCheck {
		if ttHit && ttEval != ScoreNone {
			staticEval = ttEval
		} else {
			staticEval = td.staticEval()
		}
	}
	td.frames[ply].staticEval = staticEval

	improving := !inCheck && ply >= 2 && staticEval > td.frames[ply-2].staticEval

	// Reverse futility pruning: if the static eval already beats beta by a
	// depth-scaled margin, assume a quiet move won't lose that much and
	// cut immediately, returning a clamped average rather than the raw
	// static eval since the cutoff is only an estimate.
	if !isPV && !inCheck && excluded == board.NullMove && !IsMateScore(staticEval) &&
		depth < 9 && staticEval >= beta {
		margin := 93 * depth
		if improving {
			margin -= 30 * depth
		}
		if staticEval-margin >= beta {
			return ClampScore((staticEval + beta) / 2)
		}
	}

	// Null-move pruning: pass the move and see if the opponent still
	// cannot beat beta; skipped in check, near mate scores, when the side
	// to move is down to king+pawns only (zugzwang risk), when this node
	// is not itself a cut node, and right after another null move (two
	// consecutive null moves are a no-op search-wise).
	prevWasNull := ply > 0 && td.frames[ply-1].nullMove
	if !inCheck && cutNode && excluded == board.NullMove && depth >= 2 && !prevWasNull &&
		staticEval >= beta && !IsMateScore(staticEval) &&
		td.Pos.ByPiece(td.Pos.SideToMove(), board.Knight).Popcnt()+
			td.Pos.ByPiece(td.Pos.SideToMove(), board.Bishop).Popcnt()+
			td.Pos.ByPiece(td.Pos.SideToMove(), board.Rook).Popcnt()+
			td.Pos.ByPiece(td.Pos.SideToMove(), board.Queen).Popcnt() > 0 {
		r := 4 + depth/4 + min((staticEval-beta)/173, 4)
		td.frames[ply].nullMove = true
		td.Pos.DoMove(board.NullMove)
		score := -negamax(td, -beta, -beta+1, depth-r, ply+1, false)
		td.Pos.UndoMove()
		td.frames[ply].nullMove = false
		if td.stopped.Load() {
			return 0
		}
		if score >= beta {
			if IsMateScore(score) {
				score = beta
			}
			return score
		}
	}

	// Singular extensions: if the TT move is deep enough, verify whether
	// it is the only move that holds the position by re-searching every
	// alternative at a reduced depth against a lowered bound; if nothing
	// else comes close, the TT move is "singular" and gets an extra ply.
	singularExtension := 0
	if depth >= 8 && excluded == board.NullMove && ttHit && hashMove != board.NullMove &&
		ttDepth >= depth-3 && ttBound != tt.BoundUpper && !IsMateScore(ttScore) {
		singularBeta := ttScore - 2*depth
		td.frames[ply].excluded = hashMove
		score := negamax(td, singularBeta-1, singularBeta, (depth-1)/2, ply, cutNode)
		td.frames[ply].excluded = board.NullMove
		if score < singularBeta {
			singularExtension = 1
			if !isPV && score < singularBeta-20 {
				singularExtension = 2 // double extension, capped below
			}
		} else if singularBeta >= beta {
			// Multi-cut: if even the reduced search beats beta without the
			// TT move, the position is probably a cut node regardless.
			return singularBeta
		}
	}
	if singularExtension > 1 {
		singularExtension = 1 // Open Question cap, see DESIGN.md.
	}

	prevP, prevTo := prevMove(td, ply)
	prevP2, prevTo2 := prevMove2(td, ply)
	picker := movepick.New(td.Pos, td.Hist, ply, hashMove, prevP, prevTo, prevP2, prevTo2)

	var moves []quietOrCapture
	best := ScoreNone
	bestMove := board.NullMove
	bound := tt.BoundUpper
	legalMoves := 0

	for {
		m := picker.Next()
		if m == board.NullMove {
			break
		}
		if m == excluded || !td.Pos.IsLegal(m) {
			continue
		}
		legalMoves++
		isCapture := td.Pos.PieceOn(m.To()) != board.NoPiece || m.Kind() == board.EnPassant
		moves = append(moves, quietOrCapture{m, isCapture})

		// Late move pruning / futility pruning for quiet moves far from
		// the frontier: skip moves unlikely to matter once many have
		// already been tried.
		if !isPV && !inCheck && depth <= 6 && !isCapture && legalMoves > 3+depth*depth {
			continue
		}
		if !isPV && !inCheck && depth <= 6 && !isCapture && staticEval+150*depth+100 <= alpha {
			continue
		}
		// SEE pruning: skip a move that loses too much material even in the
		// opponent's best reply, once something already found guarantees
		// this node isn't a forced loss. Captures get a looser margin than
		// quiets since losing an exchange is less alarming than losing a
		// quiet move outright.
		if ply > 0 && !IsLossScore(best) && depth < 12 {
			margin := -41 * depth
			if isCapture {
				margin = -93 * depth
			}
			if !td.Pos.SEEGE(m, margin) {
				continue
			}
		}

		td.frames[ply].movedPiece = td.Pos.PieceOn(m.From())
		td.frames[ply].moveTo = m.To()
		td.doMove(m)
		givesCheck := td.Pos.InCheck()

		ext := 0
		if m == hashMove {
			ext = singularExtension
		}
		if givesCheck && ext == 0 {
			ext = 1
		}
		newDepth := depth - 1 + ext

		var score int
		if legalMoves == 1 {
			score = -negamax(td, -beta, -alpha, newDepth, ply+1, false)
		} else {
			r := 0
			if !isCapture {
				r = lmrReduction(depth, legalMoves, improving, isPV, isCapture, givesCheck)
			}
			score = -negamax(td, -alpha-1, -alpha, newDepth-r, ply+1, true)
			if score > alpha && r > 0 {
				score = -negamax(td, -alpha-1, -alpha, newDepth, ply+1, !cutNode)
			}
			if score > alpha && isPV {
				score = -negamax(td, -beta, -alpha, newDepth, ply+1, false)
			}
		}
		td.undoMove()

		if td.stopped.Load() {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
			if isPV {
				td.frames[ply].pv = append(td.frames[ply].pv[:0], m)
				td.frames[ply].pv = append(td.frames[ply].pv, td.frames[ply+1].pv...)
			}
			if score > alpha {
				alpha = score
				bound = tt.BoundExact
				if score >= beta {
					bound = tt.BoundLower
					break
				}
			}
		}
	}

	if legalMoves == 0 {
		if excluded != board.NullMove {
			return alpha
		}
		if inCheck {
			return -ScoreMate + ply
		}
		return 0
	}

	if bound == tt.BoundLower && bestMove != board.NullMove {
		applyHistoryUpdates(td, moves, bestMove, depth, prevP, prevTo, prevP2, prevTo2, ply)
	}

	if !inCheck && excluded == board.NullMove &&
		!(bestMove != board.NullMove && (td.Pos.PieceOn(bestMove.To()) != board.NoPiece)) {
		td.Hist.Correction.Update(td.Pos.SideToMove(), td.Pos.PawnHash(), depth, staticEval, best)
	}

	if excluded == board.NullMove {
		td.TT.Store(hash, bestMove, best, staticEval, ply, depth, isPV, bound)
	}
	return best
}

type quietOrCapture struct {
	move      board.Move
	isCapture bool
}

// applyHistoryUpdates rewards the move that caused the beta cutoff and
// penalizes every quiet move tried before it, matching the "history
// malus" convention the gravity formula is designed around.
func applyHistoryUpdates(td *ThreadData, tried []quietOrCapture, best board.Move, depth int, prevP board.Piece, prevTo board.Square, prevP2 board.Piece, prevTo2 board.Square, ply int) {
	bestIsCapture := false
	for _, mc := range tried {
		if mc.move == best {
			bestIsCapture = mc.isCapture
			break
		}
	}

	if !bestIsCapture {
		td.Hist.Killers.Add(ply, best)
		if prevP != board.NoPiece {
			td.Hist.Counter.Set(prevP, prevTo, best)
		}
	}

	for _, mc := range tried {
		good := mc.move == best
		p := td.Pos.PieceOn(mc.move.From())
		if mc.isCapture {
			captured := td.Pos.PieceOn(mc.move.To())
			ct := history.CapturedTypeForHistory(captured, mc.move)
			td.Hist.Capture.Update(p, mc.move.To(), ct, depth, good)
		} else {
			td.Hist.Quiet.Update(p, mc.move.To(), depth, good)
			td.Hist.Continuation.Update(p, mc.move.To(), prevP, prevTo, depth, good)
			td.Hist.Continuation.Update(p, mc.move.To(), prevP2, prevTo2, depth, good)
		}
	}
}

func isRepetition(td *ThreadData, ply int) bool {
	return td.Pos.IsThreeFoldRepetition()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
