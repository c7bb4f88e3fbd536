package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position in FEN.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceTypeFromFENByte = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// ParseFEN builds a Position from Forsyth-Edwards Notation.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: invalid FEN %q: expected at least 4 fields", fen)
	}

	p := &Position{fullMove: 1}
	p.states = append(p.states, state{epSquare: NoSquare})

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: invalid FEN %q: expected 8 ranks, got %d", fen, len(ranks))
	}
	for i, rank := range ranks {
		r := 7 - i
		f := 0
		for _, ch := range []byte(rank) {
			switch {
			case ch >= '1' && ch <= '8':
				f += int(ch - '0')
			default:
				pt, ok := pieceTypeFromFENByte[strings.ToLower(string(ch))[0]]
				if !ok {
					return nil, fmt.Errorf("board: invalid FEN %q: bad piece byte %q", fen, ch)
				}
				c := White
				if ch >= 'a' && ch <= 'z' {
					c = Black
				}
				if f > 7 {
					return nil, fmt.Errorf("board: invalid FEN %q: rank %d overflows", fen, i)
				}
				p.put(NewPiece(c, pt), RankFile(r, f))
				f++
			}
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("board: invalid FEN %q: bad side to move %q", fen, fields[1])
	}

	var castle Castle
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				castle |= WhiteOO
			case 'Q':
				castle |= WhiteOOO
			case 'k':
				castle |= BlackOO
			case 'q':
				castle |= BlackOOO
			}
		}
	}
	p.states[0].castle = castle

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad en passant square: %w", fen, err)
		}
		p.states[0].epSquare = sq
	}

	if len(fields) >= 5 {
		hm, err := strconv.Atoi(fields[4])
		if err == nil {
			p.states[0].halfmove = hm
		}
	}
	if len(fields) >= 6 {
		fm, err := strconv.Atoi(fields[5])
		if err == nil && fm > 0 {
			p.fullMove = fm
		}
	}

	p.states[0].hash = p.computeHash()
	return p, nil
}

// FEN renders the position in Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := p.board[RankFile(r, f)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(p.curr().castle.String())
	sb.WriteByte(' ')
	sb.WriteString(p.curr().epSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.curr().halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMove))
	return sb.String()
}

// ParseUCIMove resolves a long-algebraic move string (e.g. "e2e4", "e7e8q")
// against the legal moves available in p, since the packed encoding alone
// cannot disambiguate promotion/castling/en-passant from the squares alone.
func (p *Position) ParseUCIMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, fmt.Errorf("board: invalid UCI move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	var promo PieceType
	if len(s) == 5 {
		pt, ok := pieceTypeFromFENByte[s[4]]
		if !ok {
			return NullMove, fmt.Errorf("board: invalid promotion piece %q", s[4:5])
		}
		promo = pt
	}

	var moves []Move
	p.GenerateMoves(All, &moves)
	for _, m := range moves {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Kind() == Promotion && m.PromotionType() != promo {
			continue
		}
		if !p.IsLegal(m) {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("board: no legal move %s in current position", s)
}
