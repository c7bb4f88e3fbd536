package search

import (
	"time"

	"github.com/talonchess/talon/internal/board"
)

// iterativeDeepen drives one worker's search from depth 1 up to maxDepth
// (or until stopped), widening an aspiration window around each previous
// iteration's score.
func iterativeDeepen(td *ThreadData, maxDepth int, tm *TimeManager, onInfo func(Info)) (board.Move, int) {
	var bestMove board.Move
	bestScore := 0

	window := 16
	for depth := 1; depth <= maxDepth && depth < MaxPly; depth++ {
		alpha, beta := -ScoreInf, ScoreInf
		if depth >= 4 {
			alpha = bestScore - window
			beta = bestScore + window
		}

		var score int
		for {
			score = negamax(td, alpha, beta, depth, 0, false)
			if td.stopped.Load() {
				break
			}
			if score <= alpha {
				alpha -= window
				window *= 2
			} else if score >= beta {
				beta += window
				window *= 2
			} else {
				break
			}
			if window > ScoreInf {
				alpha, beta = -ScoreInf, ScoreInf
			}
		}

		if td.stopped.Load() && depth > 1 {
			break
		}

		bestScore = score
		window = 16
		if len(td.frames[0].pv) > 0 {
			bestMove = td.frames[0].pv[0]
		}

		if onInfo != nil {
			pv := append([]board.Move(nil), td.frames[0].pv...)
			var elapsed time.Duration
			if tm != nil {
				elapsed = tm.Elapsed()
			}
			onInfo(Info{
				Depth:    depth,
				SelDepth: td.selDepth,
				Score:    bestScore,
				Mate:     IsMateScore(bestScore),
				Nodes:    td.Nodes(),
				Time:     elapsed,
				PV:       pv,
			})
		}

		if td.ShouldStop() {
			break
		}
		if td.ID == 0 && tm != nil && tm.ShouldStopSoft() {
			td.stopped.Store(true)
			break
		}
	}
	return bestMove, bestScore
}
