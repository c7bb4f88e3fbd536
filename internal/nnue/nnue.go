// Package nnue implements a quantized, incrementally updated evaluation
// network (NNUE) with king-bucketed perspective features.
package nnue

import "github.com/talonchess/talon/internal/board"

const (
	// KingBuckets partitions the king's square into coarse buckets so the
	// network can specialize per king position without needing a full
	// 64-way split (which would balloon FeatureDim for little gain near
	// the edges of king safety).
	KingBuckets = 16
	// FeatureDim is the per-perspective input feature count: KingBuckets *
	// 64 squares * 10 non-king piece types (5 types * 2 colors).
	FeatureDim = KingBuckets * 64 * 10
	// HiddenDim is the accumulator width per perspective.
	HiddenDim = 128
	// OutputScale and QA/QB are the quantization constants: weights are
	// stored as int16 scaled by QA in the input layer and QB in the output
	// layer, dequantized back to centipawns at inference time.
	QA          = 255
	QB          = 64
	OutputScale = 400
)

// kingBucket maps a king square to one of KingBuckets buckets.
func kingBucket(kingSq board.Square) int { return int(kingSq) % KingBuckets }

// featureIndex computes the perspective feature index for a non-king piece
// on sq, as seen by the side whose king sits at kingSq.
func featureIndex(perspective board.Color, kingSq board.Square, pc board.Piece, sq board.Square) int {
	relSq := sq
	relKing := kingSq
	if perspective == board.Black {
		relSq = Square(sq).flip()
		relKing = Square(kingSq).flip()
	}
	pieceIdx := pieceFeatureIndex(perspective, pc)
	return kingBucket(relKing)*64*10 + int(relSq)*10 + pieceIdx
}

// pieceFeatureIndex maps a piece (as seen from perspective) to one of the
// 10 non-king feature planes: own pawn, own knight, ..., enemy pawn, ...
func pieceFeatureIndex(perspective board.Color, pc board.Piece) int {
	pt := pc.Type()
	plane := int(pt) - int(board.Pawn) // 0..4
	if pc.Color() != perspective {
		plane += 5
	}
	return plane
}

// Square is a thin wrapper giving board.Square a vertical-flip helper for
// the black perspective's point of view.
type Square board.Square

func (s Square) flip() board.Square { return board.Square(s ^ 56) }
