package board

// Color identifies a side to move.
type Color uint8

const (
	NoColor Color = iota
	White
	Black

	ColorArraySize = int(iota)
)

// Opposite returns the other color. Undefined for NoColor.
func (c Color) Opposite() Color { return White + Black - c }

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// PieceType is a figure without color: pawn, knight, bishop, rook, queen, king.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	PieceTypeArraySize = int(iota)
)

var pieceTypeSymbol = [PieceTypeArraySize]string{"", "P", "N", "B", "R", "Q", "K"}

func (pt PieceType) String() string { return pieceTypeSymbol[pt] }

// Piece is a PieceType owned by a Color, packed as (pieceType<<2)|color.
type Piece uint8

const (
	NoPiece Piece = 0

	PieceArraySize = 4 * PieceTypeArraySize
)

// NewPiece builds a Piece from a color and a piece type.
func NewPiece(c Color, pt PieceType) Piece {
	return Piece(pt<<2) | Piece(c)
}

// Color returns the owning color of p.
func (p Piece) Color() Color { return Color(p & 3) }

// Type returns the piece type of p.
func (p Piece) Type() PieceType { return PieceType(p >> 2) }

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	s := p.Type().String()
	if p.Color() == Black {
		return toLower(s)
	}
	return s
}

func toLower(s string) string {
	b := []byte(s)
	for i := range b {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// Castle is a bitmask of remaining castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle) + 1
)

var castleSymbol = [4]byte{'K', 'Q', 'k', 'q'}

func (c Castle) String() string {
	if c == NoCastle {
		return "-"
	}
	var out []byte
	for i, bit := 0, Castle(1); bit <= BlackOOO; i, bit = i+1, bit<<1 {
		if c&bit != 0 {
			out = append(out, castleSymbol[i])
		}
	}
	return string(out)
}

// lostCastleRights maps a from/to square touched by a move to the castling
// rights it permanently revokes (rook or king moved away from/onto it).
var lostCastleRights [64]Castle

func init() {
	lostCastleRights[E1] = WhiteOO | WhiteOOO
	lostCastleRights[A1] = WhiteOOO
	lostCastleRights[H1] = WhiteOO
	lostCastleRights[E8] = BlackOO | BlackOOO
	lostCastleRights[A8] = BlackOOO
	lostCastleRights[H8] = BlackOO
}
