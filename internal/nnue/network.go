package nnue

import "github.com/talonchess/talon/internal/board"

// Network holds quantized weights for one king-bucketed HalfKA-style
// network: an input layer of FeatureDim -> HiddenDim per perspective, and
// an output layer combining both perspectives' clipped-ReLU activations.
type Network struct {
	inputWeights [FeatureDim][HiddenDim]int16
	inputBias    [HiddenDim]int16
	outputWeights [2 * HiddenDim]int16
	outputBias    int32
}

// Refresh recomputes perspective's accumulator from scratch by walking
// every non-king piece on the board, used at the search root and after a
// king move (which changes every feature index for that perspective).
func (n *Network) Refresh(pos *board.Position, perspective board.Color, acc *Accumulator) {
	values := &acc.values[perspective]
	*values = n.inputBias
	kingSq := pos.ByPiece(perspective, board.King).AsSquare()

	for pt := board.Pawn; pt < board.King; pt++ {
		for _, c := range [2]board.Color{board.White, board.Black} {
			bb := pos.ByPiece(c, pt)
			for bb != 0 {
				sq := bb.Pop()
				n.addFeature(values, perspective, kingSq, board.NewPiece(c, pt), sq)
			}
		}
	}
	acc.computed[perspective] = true
}

func (n *Network) addFeature(values *[HiddenDim]int16, perspective board.Color, kingSq board.Square, pc board.Piece, sq board.Square) {
	idx := featureIndex(perspective, kingSq, pc, sq)
	row := &n.inputWeights[idx]
	for i := 0; i < HiddenDim; i++ {
		values[i] += row[i]
	}
}

func (n *Network) removeFeature(values *[HiddenDim]int16, perspective board.Color, kingSq board.Square, pc board.Piece, sq board.Square) {
	idx := featureIndex(perspective, kingSq, pc, sq)
	row := &n.inputWeights[idx]
	for i := 0; i < HiddenDim; i++ {
		values[i] -= row[i]
	}
}

func clippedReLU(v int16) int32 {
	x := int32(v)
	if x < 0 {
		return 0
	}
	if x > QA {
		return QA
	}
	return x
}

// Evaluate runs the output layer over the given stack's current top-of-stack
// accumulator, with stm as the side to move (whose perspective is placed
// first, matching the usual NNUE convention of feeding the mover's own
// activations before the opponent's).
func (n *Network) Evaluate(stack *Stack, pos *board.Position, stm board.Color) int {
	us := stack.Current(n, pos, stm)
	them := stack.Current(n, pos, stm.Opposite())

	sum := dotFn(n, us, them)
	return int(sum * OutputScale / (QA * QB))
}
