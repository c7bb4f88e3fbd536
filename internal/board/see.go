package board

// seeValue assigns the values used by the exchange simulation; a king can
// never legally be captured but is given a very large value so a king
// "attacker" still sorts last and exchanges correctly refuse to trade it.
var seeValue = [PieceTypeArraySize]int{0, 100, 320, 330, 500, 900, 20000}

// smallestAttacker returns the lowest-value attacker of color by within
// attackers (restricted to the current occupancy occ), and the bitboard of
// sliding pieces that should be re-tested for X-ray attacks once it is
// removed from occ.
func (p *Position) smallestAttacker(attackers Bitboard, by Color, occ Bitboard) (Square, PieceType, bool) {
	for pt := Pawn; pt <= King; pt++ {
		bb := attackers & p.ByPiece(by, pt) & occ
		if bb != 0 {
			return bb.LSB().AsSquare(), pt, true
		}
	}
	return NoSquare, NoPieceType, false
}

// SEE runs a static exchange evaluation of a capture on sq, assuming the
// first capturer is attackerType belonging to color by and the piece
// initially on sq is captured (already accounted for by the caller via
// initialGain). It returns the net material swing from by's perspective.
func (p *Position) SEE(m Move) int {
	to := m.To()
	from := m.From()
	us := p.board[from].Color()

	occ := p.Occupied()
	var gain [32]int
	depth := 0

	captured := p.board[to]
	if m.Kind() == EnPassant {
		captured = NewPiece(us.Opposite(), Pawn)
	}
	gain[0] = seeValue[captured.Type()]
	attackerType := p.board[from].Type()
	if m.Kind() == Promotion {
		attackerType = m.PromotionType()
	}

	occ &^= SquareBB(from)
	if m.Kind() == EnPassant {
		occ &^= SquareBB(RankFile(from.Rank(), to.File()))
	}

	side := us.Opposite()
	attackers := p.Attackers(to, occ)

	for {
		depth++
		gain[depth] = seeValue[attackerType] - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		sq, pt, ok := p.smallestAttacker(attackers, side, occ)
		if !ok {
			break
		}
		occ &^= SquareBB(sq)
		attackers &^= SquareBB(sq)
		// X-ray: removing a sliding piece (or a pawn, which can unmask a
		// slider behind it) may expose new sliding attackers through sq's
		// line and diagonal.
		attackers |= (RookAttack(to, occ) & (p.byType[Rook] | p.byType[Queen]) & occ)
		attackers |= (BishopAttack(to, occ) & (p.byType[Bishop] | p.byType[Queen]) & occ)

		attackerType = pt
		side = side.Opposite()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// SEEGE reports whether the capture's static exchange evaluation is at
// least threshold, the entry point used by capture ordering and pruning.
func (p *Position) SEEGE(m Move, threshold int) bool {
	return p.SEE(m) >= threshold
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
