package position

import (
	"fmt"
	"math/big"
	"strings"
)

// The compact encoding packs a position into a variable-length bitstring,
// exploiting cells whose contents follow from the castling rights: the four
// rights imply king and rook placement, so those cells are not encoded at
// all. The bitstring is reversed before integer conversion so that trailing
// empty cells collapse into dropped leading zeros. Halfmove and fullmove
// counters are not encoded; two positions differing only in clocks share an
// id.

var roleBits = map[Role]string{
	Pawn:   "000",
	King:   "001",
	Queen:  "100",
	Rook:   "101",
	Knight: "110",
	Bishop: "111",
}

// Compress returns the compact base64url id of the position.
func (p *Position) Compress() (string, error) {
	bits, err := p.bitstring()
	if err != nil {
		return "", err
	}
	n, ok := new(big.Int).SetString(reverseString(bits), 2)
	if !ok {
		return "", fmt.Errorf("internal error: bad bitstring %q", bits)
	}
	return intToB64(n), nil
}

func (p *Position) bitstring() (string, error) {
	var b strings.Builder
	b.WriteByte('0' + byte(p.SideToMove))
	for _, right := range []Castling{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		if p.Castling.Has(right) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	// King squares are explicit only when the castling rights don't pin
	// them to their home squares.
	for _, color := range []Color{White, Black} {
		if p.castleable(color) {
			continue
		}
		sq, err := p.kingSquare(color)
		if err != nil {
			return "", fmt.Errorf("compressing position: %w", err)
		}
		writeBits(&b, sq, 6)
	}

	if p.EnPassantFile < 0 {
		b.WriteByte('0')
	} else {
		b.WriteByte('1')
		writeBits(&b, p.EnPassantFile, 3)
	}

	for sq, cell := range p.Cells {
		if p.deterministicCell(sq, cell) {
			continue
		}
		if cell == Empty {
			b.WriteByte('0')
			continue
		}
		b.WriteByte('1')
		b.WriteByte('0' + byte(cell.Color()))
		role := roleBits[cell.Role()]
		switch {
		case cell.Role() == Pawn:
			b.WriteByte('0')
		case sq < 8 || sq >= 56:
			// Back ranks can't hold pawns, so the leading role bit
			// is implied.
			b.WriteString(role[1:])
		default:
			b.WriteString(role)
		}
	}

	return b.String(), nil
}

func (p *Position) castleable(color Color) bool {
	if color == White {
		return p.Castling.Has(WhiteKingside) || p.Castling.Has(WhiteQueenside)
	}
	return p.Castling.Has(BlackKingside) || p.Castling.Has(BlackQueenside)
}

// deterministicCell reports whether the cell's contents follow from the
// castling rights and so are omitted from the encoding.
func (p *Position) deterministicCell(sq int, cell Piece) bool {
	if cell != Empty && cell.Role() == King {
		return true
	}
	switch sq {
	case 0:
		return p.Castling.Has(WhiteQueenside)
	case 7:
		return p.Castling.Has(WhiteKingside)
	case 56:
		return p.Castling.Has(BlackQueenside)
	case 63:
		return p.Castling.Has(BlackKingside)
	}
	return false
}

// Decompress restores a position from its compact base64url id.
func Decompress(id string) (*Position, error) {
	n, err := b64ToInt(id)
	if err != nil {
		return nil, fmt.Errorf("decompressing position: %w", err)
	}
	bits := reverseString(n.Text(2))

	r := bitReader{bits: bits}
	pos := &Position{EnPassantFile: -1, FullmoveNumber: 1}

	pos.SideToMove = Color(r.read(1))
	pos.Castling = Castling(r.read(4))

	if pos.castleable(White) {
		pos.Cells[Square(4, 0)] = WhiteKing
		if pos.Castling.Has(WhiteKingside) {
			pos.Cells[Square(7, 0)] = WhiteRook
		}
		if pos.Castling.Has(WhiteQueenside) {
			pos.Cells[Square(0, 0)] = WhiteRook
		}
	} else {
		pos.Cells[r.read(6)] = WhiteKing
	}

	if pos.castleable(Black) {
		pos.Cells[Square(4, 7)] = BlackKing
		if pos.Castling.Has(BlackKingside) {
			pos.Cells[Square(7, 7)] = BlackRook
		}
		if pos.Castling.Has(BlackQueenside) {
			pos.Cells[Square(0, 7)] = BlackRook
		}
	} else {
		pos.Cells[r.read(6)] = BlackKing
	}

	if r.read(1) == 1 {
		pos.EnPassantFile = r.read(3)
	}

	sq := 0
	for !r.done() {
		if sq > 63 {
			return nil, fmt.Errorf("decompressing position: trailing bits")
		}
		if pos.Cells[sq] != Empty {
			sq++
			continue
		}
		if r.read(1) == 1 {
			piece, err := r.readPiece(sq)
			if err != nil {
				return nil, fmt.Errorf("decompressing position: %w", err)
			}
			pos.Cells[sq] = piece
		}
		sq++
	}

	return pos, nil
}

type bitReader struct {
	bits string
	off  int
}

func (r *bitReader) done() bool {
	return r.off >= len(r.bits)
}

// read consumes n bits. Bits past the end of the string read as zero: every
// trailing zero of the reversed bitstring was dropped as a leading zero of
// the integer form, so any zero suffix of the encoding may be cut short —
// not just trailing empty cells but king squares and the en-passant flag
// too.
func (r *bitReader) read(n int) int {
	v := 0
	for i := 0; i < n; i++ {
		v <<= 1
		if r.off+i < len(r.bits) && r.bits[r.off+i] == '1' {
			v |= 1
		}
	}
	r.off += n
	return v
}

// readPiece consumes a piece encoding for the given square. Kings never
// appear here (they are deterministic), so on the back ranks the leading
// role bit is implied and elsewhere a leading zero role bit can only mean a
// pawn.
func (r *bitReader) readPiece(sq int) (Piece, error) {
	color := Color(r.read(1))
	var role Role
	switch {
	case sq < 8 || sq >= 56:
		role = Role(4 | r.read(2))
	case r.read(1) == 0:
		role = Pawn
	default:
		role = Role(4 | r.read(2))
	}
	return NewPiece(role, color)
}

func writeBits(b *strings.Builder, v, n int) {
	for i := n - 1; i >= 0; i-- {
		if v&(1<<i) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
