package history

import "github.com/talonchess/talon/internal/board"

// correctionEntries is the pawn-hash table size; a power of two so indexing
// is a mask, not a modulo.
const correctionEntries = 1 << 14
const correctionMask = correctionEntries - 1

// correctionGrain scales stored correction values so fractional EMA weights
// survive integer storage, matching the scaling convention of the Rust
// correction-history implementation this table is supplemented from.
const correctionGrain = 256
const correctionMax = 32 * correctionGrain
const correctionWeightScale = 256

// CorrectionHistory supplements static evaluation with a pawn-structure
// keyed correction term: the running difference between the static eval at
// a position and the score the search eventually settled on, weighted by
// depth, blended in before pruning decisions consult the static eval.
type CorrectionHistory struct {
	table [board.ColorArraySize][correctionEntries]int32
}

func (c *CorrectionHistory) init() {}

// Update nudges the correction entry for pawnHash toward the observed
// search-score-minus-static-eval delta, weighted by depth (deeper searches
// get more trust) via an exponential moving average.
func (c *CorrectionHistory) Update(side board.Color, pawnHash uint64, depth int, staticEval, searchScore int) {
	idx := pawnHash & correctionMask
	delta := int32(searchScore-staticEval) * correctionGrain

	weight := depth + 1
	if weight > 16 {
		weight = 16
	}
	entry := &c.table[side][idx]
	*entry = (*entry*int32(correctionWeightScale-weight) + delta*int32(weight)) / correctionWeightScale
	if *entry > correctionMax {
		*entry = correctionMax
	}
	if *entry < -correctionMax {
		*entry = -correctionMax
	}
}

// Correct applies the stored correction to a raw static evaluation.
func (c *CorrectionHistory) Correct(side board.Color, pawnHash uint64, staticEval int) int {
	idx := pawnHash & correctionMask
	return staticEval + int(c.table[side][idx]/correctionGrain)
}
