package board

// GenKind selects which subset of pseudo-legal moves a generator produces.
type GenKind int

const (
	Captures GenKind = 1 << iota
	Quiets

	All = Captures | Quiets
)

// state is the irreversible part of a position, one entry pushed per ply so
// UnmakeMove can restore it without the move itself carrying undo payload.
type state struct {
	move      Move
	captured  Piece
	castle    Castle
	epSquare  Square
	halfmove  int
	hash      uint64
}

// Position is a mutable bitboard chess position with make/unmake support.
type Position struct {
	board      [64]Piece
	byColor    [ColorArraySize]Bitboard
	byType     [PieceTypeArraySize]Bitboard
	sideToMove Color
	fullMove   int
	ply        int
	states     []state
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p := &Position{sideToMove: White, fullMove: 1}
	p.states = append(p.states, state{castle: AnyCastle, epSquare: NoSquare})

	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		p.put(NewPiece(White, back[f]), RankFile(0, f))
		p.put(NewPiece(White, Pawn), RankFile(1, f))
		p.put(NewPiece(Black, Pawn), RankFile(6, f))
		p.put(NewPiece(Black, back[f]), RankFile(7, f))
	}
	st := &p.states[0]
	st.hash = p.computeHash()
	return p
}

func (p *Position) curr() *state { return &p.states[p.ply] }

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Ply returns the number of half-moves played from the root of this
// position's make/unmake stack (not the game's full move counter).
func (p *Position) Ply() int { return p.ply }

// Hash returns the current Zobrist hash.
func (p *Position) Hash() uint64 { return p.curr().hash }

// CastlingRights returns the current castling rights mask.
func (p *Position) CastlingRights() Castle { return p.curr().castle }

// EnPassantSquare returns the current en passant target, or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.curr().epSquare }

// HalfMoveClock returns the fifty-move-rule half-move counter.
func (p *Position) HalfMoveClock() int { return p.curr().halfmove }

// PieceOn returns the piece occupying sq, or NoPiece.
func (p *Position) PieceOn(sq Square) Piece { return p.board[sq] }

// Occupied returns the bitboard of all occupied squares.
func (p *Position) Occupied() Bitboard { return p.byColor[White] | p.byColor[Black] }

// ByColor returns the occupancy bitboard for color c.
func (p *Position) ByColor(c Color) Bitboard { return p.byColor[c] }

// ByPiece returns the bitboard of pieces of type pt belonging to color c.
func (p *Position) ByPiece(c Color, pt PieceType) Bitboard {
	return p.byType[pt] & p.byColor[c]
}

func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if pc := p.board[sq]; pc != NoPiece {
			h ^= ZobristPiece(pc, sq)
		}
	}
	h ^= ZobristCastle(p.curr().castle)
	h ^= ZobristEnPassant(p.curr().epSquare)
	if p.sideToMove == Black {
		h ^= ZobristColor(Black)
	}
	return h
}

func (p *Position) put(pc Piece, sq Square) {
	p.board[sq] = pc
	bb := SquareBB(sq)
	p.byColor[pc.Color()] |= bb
	p.byType[pc.Type()] |= bb
}

func (p *Position) remove(sq Square) Piece {
	pc := p.board[sq]
	p.board[sq] = NoPiece
	bb := SquareBB(sq)
	p.byColor[pc.Color()] &^= bb
	p.byType[pc.Type()] &^= bb
	return pc
}

func (p *Position) xorPieceHash(pc Piece, sq Square) {
	p.curr().hash ^= ZobristPiece(pc, sq)
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occ := p.Occupied()
	if KnightAttack(sq)&p.ByPiece(by, Knight) != 0 {
		return true
	}
	if KingAttack(sq)&p.ByPiece(by, King) != 0 {
		return true
	}
	// Pawn attacks are symmetric: a square is attacked by an enemy pawn iff
	// a pawn of our own color standing there would attack that pawn's square.
	if PawnAttack(by.Opposite(), sq)&p.ByPiece(by, Pawn) != 0 {
		return true
	}
	bq := p.ByPiece(by, Bishop) | p.ByPiece(by, Queen)
	if BishopAttack(sq, occ)&bq != 0 {
		return true
	}
	rq := p.ByPiece(by, Rook) | p.ByPiece(by, Queen)
	if RookAttack(sq, occ)&rq != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	kingBB := p.ByPiece(p.sideToMove, King)
	if kingBB == 0 {
		return false
	}
	return p.IsAttacked(kingBB.AsSquare(), p.sideToMove.Opposite())
}

// Attackers returns every piece of color by attacking sq, for SEE.
func (p *Position) Attackers(sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	att |= PawnAttack(White, sq) & p.byType[Pawn] & p.byColor[Black] & occ
	att |= PawnAttack(Black, sq) & p.byType[Pawn] & p.byColor[White] & occ
	att |= KnightAttack(sq) & p.byType[Knight] & occ
	att |= KingAttack(sq) & p.byType[King] & occ
	bq := (p.byType[Bishop] | p.byType[Queen]) & occ
	att |= BishopAttack(sq, occ) & bq
	rq := (p.byType[Rook] | p.byType[Queen]) & occ
	att |= RookAttack(sq, occ) & rq
	return att
}

// DoMove applies move m (assumed pseudo-legal for the current position) and
// pushes a new state frame.
func (p *Position) DoMove(m Move) {
	us := p.sideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()

	prev := p.curr()
	next := state{
		move:     m,
		castle:   prev.castle,
		epSquare: NoSquare,
		halfmove: prev.halfmove + 1,
		hash:     prev.hash,
	}
	p.states = append(p.states[:p.ply+1], next)
	p.ply++

	moving := p.remove(from)
	p.xorPieceHash(moving, from)
	p.curr().hash ^= ZobristEnPassant(prev.epSquare)

	captureSq := to
	if m.Kind() == EnPassant {
		captureSq = RankFile(from.Rank(), to.File())
	}
	var captured Piece
	if m.Kind() == EnPassant || p.board[to] != NoPiece {
		captured = p.remove(captureSq)
		p.xorPieceHash(captured, captureSq)
		p.curr().halfmove = 0
	}
	p.curr().captured = captured

	placed := moving
	if m.Kind() == Promotion {
		placed = NewPiece(us, m.PromotionType())
	}
	p.put(placed, to)
	p.xorPieceHash(placed, to)

	if moving.Type() == Pawn {
		p.curr().halfmove = 0
		if to == from.Relative(2, 0) || from == to.Relative(2, 0) {
			// Double push: record the passed-over square only if an enemy
			// pawn could actually capture en passant there.
			epSq := Square((int(from) + int(to)) / 2)
			if PawnAttack(us, epSq)&p.ByPiece(them, Pawn) != 0 {
				p.curr().epSquare = epSq
			}
		}
	}

	if m.Kind() == Castling {
		rookFrom, rookTo := castlingRookSquares(to)
		rook := p.remove(rookFrom)
		p.xorPieceHash(rook, rookFrom)
		p.put(rook, rookTo)
		p.xorPieceHash(rook, rookTo)
	}

	newCastle := prev.castle &^ (lostCastleRights[from] | lostCastleRights[to])
	if newCastle != prev.castle {
		p.curr().hash ^= ZobristCastle(prev.castle)
		p.curr().hash ^= ZobristCastle(newCastle)
		p.curr().castle = newCastle
	}
	p.curr().hash ^= ZobristEnPassant(p.curr().epSquare)

	if us == Black {
		p.fullMove++
	}
	p.sideToMove = them
	p.curr().hash ^= ZobristColor(White) ^ ZobristColor(Black)
}

// UndoMove reverts the last DoMove.
func (p *Position) UndoMove() {
	st := p.curr()
	m := st.move
	them := p.sideToMove
	us := them.Opposite()
	from, to := m.From(), m.To()

	if m.Kind() == Castling {
		rookFrom, rookTo := castlingRookSquares(to)
		rook := p.remove(rookTo)
		p.put(rook, rookFrom)
	}

	placed := p.remove(to)
	restored := placed
	if m.Kind() == Promotion {
		restored = NewPiece(us, Pawn)
	}
	p.put(restored, from)

	if st.captured != NoPiece {
		captureSq := to
		if m.Kind() == EnPassant {
			captureSq = RankFile(from.Rank(), to.File())
		}
		p.put(st.captured, captureSq)
	}

	if us == Black {
		p.fullMove--
	}
	p.sideToMove = us
	p.ply--
	p.states = p.states[:p.ply+1]
}

// CastlingRookSquares returns the rook's from/to squares given the king's
// destination square during castling. Exposed for callers that need to
// mirror DoMove's side effects incrementally, such as the NNUE accumulator.
func CastlingRookSquares(kingTo Square) (from, to Square) {
	return castlingRookSquares(kingTo)
}

// castlingRookSquares returns the rook's from/to squares given the king's
// destination square during castling.
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	return NoSquare, NoSquare
}

// IsLegal reports whether pseudo-legal move m leaves the mover's own king
// safe. Callers generate pseudo-legal moves and filter with this.
func (p *Position) IsLegal(m Move) bool {
	us := p.sideToMove
	p.DoMove(m)
	legal := !p.IsAttacked(p.ByPiece(us, King).AsSquare(), us.Opposite())
	p.UndoMove()
	return legal
}

// IsDraw reports whether the position is drawn by the fifty-move rule or
// insufficient material. Threefold repetition requires external game
// history and is checked by the caller via RepetitionCount.
func (p *Position) IsDraw() bool {
	if p.curr().halfmove >= 100 {
		return true
	}
	return p.hasInsufficientMaterial()
}

// Clone returns an independent deep copy of p, safe to mutate from another
// goroutine without affecting the original. Used by the Lazy-SMP pool to
// give each worker thread its own position.
func (p *Position) Clone() *Position {
	cp := *p
	cp.states = append([]state(nil), p.states...)
	return &cp
}

// IsThreeFoldRepetition reports whether the current hash has occurred at
// least twice earlier in this position's own make/unmake history, bounded
// by the last irreversible move (halfmove clock reset), which is as much
// repetition information as a position-only search can see without the
// game's pre-search move history.
func (p *Position) IsThreeFoldRepetition() bool {
	h := p.Hash()
	seen := 0
	clock := p.curr().halfmove
	for i := p.ply - 2; i >= 0 && i >= p.ply-clock; i -= 2 {
		if p.states[i].hash == h {
			seen++
			if seen >= 2 {
				return true
			}
		}
	}
	return false
}

// PawnHash returns a Zobrist-style key covering only pawn placement (plus
// side to move), used to index pawn-structure-keyed caches such as the
// correction history. Unlike the main Hash, this is recomputed on demand
// rather than tracked incrementally, since pawn moves are comparatively
// rare.
func (p *Position) PawnHash() uint64 {
	var h uint64
	bb := p.byType[Pawn]
	for bb != 0 {
		sq := bb.Pop()
		h ^= ZobristPiece(p.board[sq], sq)
	}
	if p.sideToMove == Black {
		h ^= ZobristColor(Black)
	}
	return h
}

func (p *Position) hasInsufficientMaterial() bool {
	if p.byType[Pawn]|p.byType[Rook]|p.byType[Queen] != 0 {
		return false
	}
	minors := (p.byType[Knight] | p.byType[Bishop]).Popcnt()
	return minors <= 1
}
