package position

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialFEN is the FEN of the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN serializes the position to a six-field FEN string.
func (p *Position) FEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			cell := p.At(file, rank)
			if cell == Empty {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(cell.FEN())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if p.SideToMove == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	b.WriteString(castlingFEN(p.Castling))

	b.WriteByte(' ')
	if p.EnPassantFile < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte(byte('a' + p.EnPassantFile))
		if p.SideToMove == White {
			b.WriteByte('6')
		} else {
			b.WriteByte('3')
		}
	}

	fmt.Fprintf(&b, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return b.String()
}

func castlingFEN(c Castling) string {
	if c == 0 {
		return "-"
	}
	var b strings.Builder
	if c.Has(WhiteKingside) {
		b.WriteByte('K')
	}
	if c.Has(WhiteQueenside) {
		b.WriteByte('Q')
	}
	if c.Has(BlackKingside) {
		b.WriteByte('k')
	}
	if c.Has(BlackQueenside) {
		b.WriteByte('q')
	}
	return b.String()
}

// ParseFEN parses a six-field FEN string.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("parsing FEN: expected 6 fields, got %d", len(fields))
	}

	pos := &Position{EnPassantFile: -1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("parsing FEN: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := pieceByFEN[ch]
			if !ok {
				return nil, fmt.Errorf("parsing FEN: invalid piece %q", ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("parsing FEN: rank %d overflows", rank+1)
			}
			pos.Cells[Square(file, rank)] = piece
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("parsing FEN: rank %d has %d files", rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("parsing FEN: invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				pos.Castling |= WhiteKingside
			case 'Q':
				pos.Castling |= WhiteQueenside
			case 'k':
				pos.Castling |= BlackKingside
			case 'q':
				pos.Castling |= BlackQueenside
			default:
				return nil, fmt.Errorf("parsing FEN: invalid castling flag %q", ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := SquareName(fields[3])
		if err != nil {
			return nil, fmt.Errorf("parsing FEN: invalid en-passant square %q", fields[3])
		}
		pos.EnPassantFile = sq % 8
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("parsing FEN: invalid halfmove clock %q", fields[4])
	}
	pos.HalfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("parsing FEN: invalid fullmove number %q", fields[5])
	}
	pos.FullmoveNumber = fullmove

	return pos, nil
}

// ValidFEN reports whether fen parses as a six-field FEN string.
func ValidFEN(fen string) bool {
	_, err := ParseFEN(fen)
	return err == nil
}
