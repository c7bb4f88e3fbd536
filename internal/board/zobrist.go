package board

import "math/rand"

// zobristSeed is fixed so hash keys, and hence shared-TT layout, are
// reproducible across runs and across machines.
const zobristSeed = 0xE926E6210D9E3487

var (
	zobristPiece    [PieceArraySize][64]uint64
	zobristEnPassant [64]uint64
	zobristCastle   [CastleArraySize]uint64
	zobristColor    [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Uint32())<<32 | uint64(r.Uint32())
}

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for pi := 0; pi < PieceArraySize; pi++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[pi][sq] = rand64(r)
		}
	}
	for sq := 0; sq < 64; sq++ {
		zobristEnPassant[sq] = rand64(r)
	}
	for c := Castle(0); c <= AnyCastle; c++ {
		zobristCastle[c] = rand64(r)
	}
	for c := 0; c < ColorArraySize; c++ {
		zobristColor[c] = rand64(r)
	}
}

// ZobristPiece returns the hash contribution of piece p standing on sq.
func ZobristPiece(p Piece, sq Square) uint64 { return zobristPiece[p][sq] }

// ZobristEnPassant returns the hash contribution of an en passant target
// square. sq should be NoSquare when there is none (contribution 0).
func ZobristEnPassant(sq Square) uint64 {
	if sq == NoSquare {
		return 0
	}
	return zobristEnPassant[sq]
}

// ZobristCastle returns the hash contribution of a castling rights mask.
func ZobristCastle(c Castle) uint64 { return zobristCastle[c] }

// ZobristColor returns the hash contribution of the side to move.
func ZobristColor(c Color) uint64 { return zobristColor[c] }
