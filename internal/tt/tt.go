// Package tt implements a lock-free shared transposition table used by the
// Lazy-SMP search pool: every worker thread reads and writes the same flat
// entry array without locks, relying on split-word atomics per slot instead
// of a whole-entry mutex or pointer swap.
package tt

import (
	"math/bits"
	"sync/atomic"

	"github.com/talonchess/talon/internal/board"
)

// Bound classifies how a stored score relates to the true minimax value.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Each slot is two independently-atomic 64-bit words rather than one 32-byte
// struct swapped as a whole pointer. word0 packs everything the replacement
// policy and a probe need first: the 16-bit partial key, depth, the
// age/pv/bound byte, the move and the score. word1 carries the static eval
// plus a second copy of the partial key, so a reader who observes one word
// mid-update by a concurrent writer can tell: the key embedded in word1 must
// match the key embedded in word0, or the pair is a torn write and treated
// as a miss exactly like an ordinary key mismatch.
const (
	word0KeyShift   = 0
	word0DepthShift = 16
	word0FlagsShift = 24
	word0MoveShift  = 32
	word0ScoreShift = 48

	word1EvalShift    = 0
	word1KeyEchoShift = 16

	flagsAgeMask    = 0x1f
	flagsPVBit      = 0x20
	flagsBoundMask  = 0xc0
	flagsBoundShift = 6
)

func packWord0(key16 uint16, depth uint8, flags uint8, move board.Move, score int16) uint64 {
	return uint64(key16)<<word0KeyShift |
		uint64(depth)<<word0DepthShift |
		uint64(flags)<<word0FlagsShift |
		uint64(uint16(move))<<word0MoveShift |
		uint64(uint16(score))<<word0ScoreShift
}

func packWord1(eval int16, key16 uint16) uint64 {
	return uint64(uint16(eval))<<word1EvalShift | uint64(key16)<<word1KeyEchoShift
}

func packFlags(age uint8, pv bool, bound Bound) uint8 {
	f := age & flagsAgeMask
	if pv {
		f |= flagsPVBit
	}
	f |= uint8(bound) << flagsBoundShift & flagsBoundMask
	return f
}

func unpackFlags(flags uint8) (age uint8, pv bool, bound Bound) {
	return flags & flagsAgeMask, flags&flagsPVBit != 0, Bound(flags&flagsBoundMask) >> flagsBoundShift
}

// slot is one transposition table cell: two atomic words updated
// independently, never under a lock.
type slot struct {
	word0 atomic.Uint64
	word1 atomic.Uint64
}

// Table is a lock-free, fixed-size shared transposition table.
type Table struct {
	slots    []slot
	capacity uint64
	age      atomic.Uint32
}

// New allocates a table sized to approximately sizeMB megabytes. Capacity is
// not rounded to a power of two: the index is computed with a Lemire
// mapping rather than a mask, so any entry count works.
func New(sizeMB int) *Table {
	const entrySize = 16 // two uint64 words per slot
	bytes := uint64(sizeMB) << 20
	n := bytes / entrySize
	if n == 0 {
		n = 1
	}
	return &Table{
		slots:    make([]slot, n),
		capacity: n,
	}
}

// NewGeneration increments the replacement-policy age counter; called once
// per search (not per iterative-deepening depth) so stale entries from a
// previous search lose priority against fresher ones at equal depth.
func (t *Table) NewGeneration() {
	t.age.Add(1)
}

// index maps hash onto [0, capacity) via a Lemire mapping: the high bits of
// the 128-bit product hash*capacity, not hash%capacity. Every bit of hash
// influences the result, unlike a power-of-two mask which only looks at the
// low bits.
func (t *Table) index(hash uint64) uint64 {
	hi, _ := bits.Mul64(hash, t.capacity)
	return hi
}

func partialKey(hash uint64) uint16 {
	return uint16(hash >> 48)
}

// Probe looks up hash. ok is false on a miss, a partial-key mismatch
// (collision or empty slot), or a torn concurrent read (the two words'
// embedded keys disagree).
func (t *Table) Probe(hash uint64) (move board.Move, score, eval int, depth int, pv bool, bound Bound, ok bool) {
	s := &t.slots[t.index(hash)]
	w0 := s.word0.Load()
	w1 := s.word1.Load()

	key0 := uint16(w0 >> word0KeyShift)
	key1 := uint16(w1 >> word1KeyEchoShift)
	want := partialKey(hash)
	if key0 != want || key1 != want {
		return board.NullMove, 0, 0, 0, false, BoundNone, false
	}

	d := uint8(w0 >> word0DepthShift)
	_, storedPV, storedBound := unpackFlags(uint8(w0 >> word0FlagsShift))
	m := board.Move(uint16(w0 >> word0MoveShift))
	sc := int16(w0 >> word0ScoreShift)
	ev := int16(w1 >> word1EvalShift)
	return m, int(sc), int(ev), int(d), storedPV, storedBound, true
}

// Store writes a new entry, ply-adjusting mate scores to/from the
// "distance from this node" representation used during search into the
// "distance from the position itself" representation used in the table
// (see ToTT/FromTT). The replacement policy is a four-way OR: a slot is
// overwritten if it is empty, if its key differs from ours (a collision —
// never silently dropped), if the new bound is exact, or if the new entry
// is deep enough relative to the old one once depth, a small constant and
// double weight for an old PV entry are accounted for.
func (t *Table) Store(hash uint64, move board.Move, score, eval, ply, depth int, pv bool, bound Bound) {
	key16 := partialKey(hash)
	s := &t.slots[t.index(hash)]

	oldW0 := s.word0.Load()
	oldKey := uint16(oldW0 >> word0KeyShift)
	oldDepth := int(uint8(oldW0 >> word0DepthShift))
	empty := oldW0 == 0 && s.word1.Load() == 0

	sameKeyStale := !empty && oldKey == key16 &&
		bound != BoundExact &&
		depth+5+2*boolInt(pv) <= oldDepth
	if sameKeyStale {
		return
	}

	flags := packFlags(uint8(t.age.Load()), pv, bound)
	w0 := packWord0(key16, uint8(depth), flags, move, int16(ToTT(score, ply)))
	w1 := packWord1(int16(eval), key16)

	s.word0.Store(w0)
	s.word1.Store(w1)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const mateScoreThreshold = 30000 - 1000

// ToTT converts a score found at search-local ply (where mate scores are
// "mate in N from here") to the table's position-relative encoding (mate
// scores as a fixed huge constant offset by total plies from the root),
// so that a stored mate score remains meaningful when probed at a
// different ply from a different path to the same position.
func ToTT(score, ply int) int {
	if score >= mateScoreThreshold {
		return score + ply
	}
	if score <= -mateScoreThreshold {
		return score - ply
	}
	return score
}

// FromTT is the inverse of ToTT, applied when a stored score is retrieved
// at search-local ply.
func FromTT(score, ply int) int {
	if score >= mateScoreThreshold {
		return score - ply
	}
	if score <= -mateScoreThreshold {
		return score + ply
	}
	return score
}

// Used samples a fraction of the table and returns the fraction of
// non-empty slots from the current generation, matching the UCI
// "hashfull" permille statistic (scaled by caller to 0..1000).
func (t *Table) Used() float64 {
	const sample = 4000
	n := len(t.slots)
	if n == 0 {
		return 0
	}
	if sample > n {
		return t.usedFraction(n)
	}
	return t.usedFraction(sample)
}

func (t *Table) usedFraction(n int) float64 {
	filled := 0
	age := uint8(t.age.Load())
	for i := 0; i < n; i++ {
		w0 := t.slots[i].word0.Load()
		if w0 == 0 {
			continue
		}
		a, _, _ := unpackFlags(uint8(w0 >> word0FlagsShift))
		if a == age {
			filled++
		}
	}
	return float64(filled) / float64(n)
}

// Clear empties every slot, used on "ucinewgame".
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i].word0.Store(0)
		t.slots[i].word1.Store(0)
	}
	t.age.Store(0)
}
