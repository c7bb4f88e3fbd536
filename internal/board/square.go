// Package board implements bitboard position representation, magic
// sliding-piece attacks, move generation and static exchange evaluation.
package board

import "fmt"

// Square identifies one of the 64 board squares, A1=0 .. H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	NoSquare Square = 64
)

var errInvalidSquare = fmt.Errorf("invalid square")

// RankFile builds a square from a 0-based rank and file.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square in standard algebraic form, e.g. "e4".
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errInvalidSquare
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return NoSquare, errInvalidSquare
	}
	return RankFile(r, f), nil
}

// Bitboard returns a one-bit bitboard with sq set.
func (sq Square) Bitboard() Bitboard {
	return 1 << uint(sq)
}

// Relative offsets the square by dr ranks and df files without bounds checks.
func (sq Square) Relative(dr, df int) Square {
	return sq + Square(dr*8+df)
}

// Rank returns the 0-based rank of sq.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns the 0-based file of sq.
func (sq Square) File() int { return int(sq % 8) }

func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{byte(sq.File() + 'a'), byte(sq.Rank() + '1')})
}
