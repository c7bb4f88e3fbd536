package board

// Move is a packed 16-bit encoding: bits 0-5 destination square, bits 6-11
// origin square, bits 12-13 promotion piece type, bits 14-15 move kind.
type Move uint16

// MoveKind distinguishes normal moves from the three special ones that need
// extra make/unmake handling.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	Promotion
	Castling
	EnPassant
)

const (
	moveToMask        = 0x003f
	moveFromShift     = 6
	moveFromMask      = 0x0fc0
	movePromoShift    = 12
	movePromoMask     = 0x3000
	moveKindShift     = 14
	moveKindMask      = 0xc000
)

// NullMove is the sentinel "no move" value.
const NullMove Move = 0

// promoTable maps the 2-bit promotion field to a piece type; pawn/king are
// never legal promotion results so those codes are unused by NewPromotion.
var promoTable = [4]PieceType{Knight, Bishop, Rook, Queen}
var promoCode = map[PieceType]uint16{Knight: 0, Bishop: 1, Rook: 2, Queen: 3}

// NewMove builds a quiet/capture move. Captures are recovered from the
// position at generation time, not encoded in the move itself.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(uint16(to)&moveToMask | uint16(from)<<moveFromShift | uint16(kind)<<moveKindShift)
}

// NewPromotionMove builds a promotion move to the given piece type.
func NewPromotionMove(from, to Square, promo PieceType) Move {
	return Move(uint16(to)&moveToMask |
		uint16(from)<<moveFromShift |
		promoCode[promo]<<movePromoShift |
		uint16(Promotion)<<moveKindShift)
}

// From returns the origin square.
func (m Move) From() Square { return Square((uint16(m) & moveFromMask) >> moveFromShift) }

// To returns the destination square.
func (m Move) To() Square { return Square(uint16(m) & moveToMask) }

// Kind returns the move's special-move classification.
func (m Move) Kind() MoveKind { return MoveKind((uint16(m) & moveKindMask) >> moveKindShift) }

// PromotionType returns the promoted-to piece type. Only meaningful when
// Kind() == Promotion.
func (m Move) PromotionType() PieceType {
	return promoTable[(uint16(m)&movePromoMask)>>movePromoShift]
}

func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.Kind() == Promotion {
		s += toLower(m.PromotionType().String())
	}
	return s
}
