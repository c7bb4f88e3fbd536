package board

// GenerateMoves appends every pseudo-legal move of the requested kind to
// moves. Castling and en passant legality (king never ends up in check) is
// finished later by IsLegal; this pass only filters castling-through-check
// since that cannot be expressed by IsLegal's post-move test alone.
func (p *Position) GenerateMoves(kind GenKind, moves *[]Move) {
	us := p.sideToMove
	them := us.Opposite()
	occ := p.Occupied()
	theirs := p.byColor[them]
	empty := ^occ

	genPawnMoves(p, us, them, occ, theirs, kind, moves)
	genPieceMoves(p, us, Knight, func(sq Square) Bitboard { return KnightAttack(sq) }, occ, theirs, empty, kind, moves)
	genPieceMoves(p, us, Bishop, func(sq Square) Bitboard { return BishopAttack(sq, occ) }, occ, theirs, empty, kind, moves)
	genPieceMoves(p, us, Rook, func(sq Square) Bitboard { return RookAttack(sq, occ) }, occ, theirs, empty, kind, moves)
	genPieceMoves(p, us, Queen, func(sq Square) Bitboard { return QueenAttack(sq, occ) }, occ, theirs, empty, kind, moves)
	genKingMoves(p, us, them, occ, theirs, kind, moves)
}

func genPieceMoves(p *Position, us Color, pt PieceType, attack func(Square) Bitboard, occ, theirs, empty Bitboard, kind GenKind, moves *[]Move) {
	bb := p.ByPiece(us, pt)
	for bb != 0 {
		from := bb.Pop()
		targets := attack(from) &^ p.byColor[us]
		if kind&Captures == 0 {
			targets &= empty
		} else if kind&Quiets == 0 {
			targets &= theirs
		}
		for targets != 0 {
			to := targets.Pop()
			*moves = append(*moves, NewMove(from, to, Quiet))
		}
	}
}

func genKingMoves(p *Position, us, them Color, occ, theirs Bitboard, kind GenKind, moves *[]Move) {
	bb := p.ByPiece(us, King)
	if bb == 0 {
		return
	}
	from := bb.AsSquare()
	targets := KingAttack(from) &^ p.byColor[us]
	if kind&Captures == 0 {
		targets &= ^occ
	} else if kind&Quiets == 0 {
		targets &= theirs
	}
	for targets != 0 {
		to := targets.Pop()
		*moves = append(*moves, NewMove(from, to, Quiet))
	}

	if kind&Quiets == 0 {
		return
	}
	genCastles(p, us, them, occ, from, moves)
}

func genCastles(p *Position, us, them Color, occ Bitboard, kingFrom Square, moves *[]Move) {
	rights := p.curr().castle
	switch us {
	case White:
		if rights&WhiteOO != 0 && occ&(F1.Bitboard()|G1.Bitboard()) == 0 &&
			!p.IsAttacked(E1, them) && !p.IsAttacked(F1, them) && !p.IsAttacked(G1, them) {
			*moves = append(*moves, NewMove(kingFrom, G1, Castling))
		}
		if rights&WhiteOOO != 0 && occ&(B1.Bitboard()|C1.Bitboard()|D1.Bitboard()) == 0 &&
			!p.IsAttacked(E1, them) && !p.IsAttacked(D1, them) && !p.IsAttacked(C1, them) {
			*moves = append(*moves, NewMove(kingFrom, C1, Castling))
		}
	case Black:
		if rights&BlackOO != 0 && occ&(F8.Bitboard()|G8.Bitboard()) == 0 &&
			!p.IsAttacked(E8, them) && !p.IsAttacked(F8, them) && !p.IsAttacked(G8, them) {
			*moves = append(*moves, NewMove(kingFrom, G8, Castling))
		}
		if rights&BlackOOO != 0 && occ&(B8.Bitboard()|C8.Bitboard()|D8.Bitboard()) == 0 &&
			!p.IsAttacked(E8, them) && !p.IsAttacked(D8, them) && !p.IsAttacked(C8, them) {
			*moves = append(*moves, NewMove(kingFrom, C8, Castling))
		}
	}
}

func genPawnMoves(p *Position, us, them Color, occ, theirs Bitboard, kind GenKind, moves *[]Move) {
	bb := p.ByPiece(us, Pawn)
	forward, startRank, promoRank := 1, 1, 7
	if us == Black {
		forward, startRank, promoRank = -1, 6, 0
	}
	for bb != 0 {
		from := bb.Pop()
		r, f := from.Rank(), from.File()

		if kind&Quiets != 0 {
			one := RankFile(r+forward, f)
			if !occ.Has(one) {
				if one.Rank() == promoRank {
					addPromotions(from, one, moves)
				} else {
					*moves = append(*moves, NewMove(from, one, Quiet))
					if r == startRank {
						two := RankFile(r+2*forward, f)
						if !occ.Has(two) {
							*moves = append(*moves, NewMove(from, two, Quiet))
						}
					}
				}
			}
		}

		if kind&Captures != 0 {
			targets := PawnAttack(us, from)
			caps := targets & theirs
			for caps != 0 {
				to := caps.Pop()
				if to.Rank() == promoRank {
					addPromotions(from, to, moves)
				} else {
					*moves = append(*moves, NewMove(from, to, Quiet))
				}
			}
			if ep := p.curr().epSquare; ep != NoSquare && targets.Has(ep) {
				*moves = append(*moves, NewMove(from, ep, EnPassant))
			}
		}
	}
}

func addPromotions(from, to Square, moves *[]Move) {
	*moves = append(*moves,
		NewPromotionMove(from, to, Queen),
		NewPromotionMove(from, to, Rook),
		NewPromotionMove(from, to, Bishop),
		NewPromotionMove(from, to, Knight),
	)
}

// IsPseudoLegal performs a best-effort structural check that m could be the
// next move in the current position, used by the move picker to validate a
// hash/killer move without regenerating the full move list.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m == NullMove {
		return false
	}
	pc := p.board[m.From()]
	if pc == NoPiece || pc.Color() != p.sideToMove {
		return false
	}
	target := p.board[m.To()]
	if target != NoPiece && target.Color() == p.sideToMove {
		return false
	}
	var moves []Move
	p.GenerateMoves(All, &moves)
	for _, mv := range moves {
		if mv == m {
			return true
		}
	}
	return false
}
