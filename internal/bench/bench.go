// Package bench runs a fixed suite of positions to a fixed depth, used by
// the talon binary's bench command as a deterministic, build-over-build
// regression signal for node counts and speed (not move quality).
package bench

import (
	"context"
	"time"

	"github.com/talonchess/talon/internal/board"
	"github.com/talonchess/talon/internal/search"
)

// Positions is the fixed suite: the start position, a well-known
// heavily-tactical middlegame (Kiwipete), a simplified rook endgame, and a
// middlegame with hanging material, chosen to exercise quiescence, check
// evasion, and the quiet move-ordering paths together.
var Positions = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

// Result is the outcome of running the suite once.
type Result struct {
	Nodes   uint64
	Elapsed time.Duration
	NPS     uint64
}

// Run searches every position in Positions to depth with a single-threaded
// pool and returns the aggregate node count and speed.
func Run(depth int) Result {
	pool := search.NewPool(search.Options{Threads: 1, HashMB: 16, MultiPV: 1}, search.NopLogger{})

	start := time.Now()
	var nodes uint64
	for _, fen := range Positions {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			continue
		}
		pool.NewGame()
		pool.Search(context.Background(), pos, search.Limits{Depth: depth})
		nodes += pool.Nodes()
	}
	elapsed := time.Since(start)

	var nps uint64
	if elapsed > 0 {
		nps = nodes * uint64(time.Second) / uint64(elapsed)
	}
	return Result{Nodes: nodes, Elapsed: elapsed, NPS: nps}
}
