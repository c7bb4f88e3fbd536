package search

import "github.com/talonchess/talon/internal/board"

// frame is one ply's worth of search-local state, analogous to the
// teacher's move-ordering-only stack generalized into a full search frame:
// it additionally carries the static evaluation and the excluded move used
// by singular-extension verification searches.
type frame struct {
	staticEval int
	excluded   board.Move
	movedPiece board.Piece
	moveTo     board.Square
	nullMove   bool
	pv         []board.Move
}

func newFrames() [MaxPly + 1]frame {
	var frames [MaxPly + 1]frame
	for i := range frames {
		frames[i].pv = make([]board.Move, 0, MaxPly)
	}
	return frames
}
