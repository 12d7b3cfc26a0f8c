package position

import (
	"fmt"
	"strings"
)

// Castling holds the four castling rights as bits, white kingside in the
// high bit down to black queenside in the low bit.
type Castling uint8

const (
	WhiteKingside  Castling = 8
	WhiteQueenside Castling = 4
	BlackKingside  Castling = 2
	BlackQueenside Castling = 1
)

func (c Castling) Has(right Castling) bool {
	return c&right != 0
}

// Position is a full board state. Cells are indexed a1=0 through h8=63,
// rank-major. EnPassantFile is -1 when no en-passant capture is possible.
type Position struct {
	Cells          [64]Piece
	SideToMove     Color
	Castling       Castling
	EnPassantFile  int
	HalfmoveClock  int
	FullmoveNumber int
}

// Square converts file (0-7 for a-h) and rank (0-7 for 1-8) to a cell index.
func Square(file, rank int) int {
	return rank*8 + file
}

// SquareName parses a name like "e4" into a cell index.
func SquareName(name string) (int, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, fmt.Errorf("invalid square: %q", name)
	}
	return Square(int(name[0]-'a'), int(name[1]-'1')), nil
}

func (p *Position) At(file, rank int) Piece {
	return p.Cells[Square(file, rank)]
}

// Initial returns the standard starting position.
func Initial() *Position {
	pos := &Position{
		Castling:       WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside,
		EnPassantFile:  -1,
		FullmoveNumber: 1,
	}
	backRank := []Piece{WhiteRook, WhiteKnight, WhiteBishop, WhiteQueen, WhiteKing, WhiteBishop, WhiteKnight, WhiteRook}
	for file := 0; file < 8; file++ {
		pos.Cells[Square(file, 0)] = backRank[file]
		pos.Cells[Square(file, 1)] = WhitePawn
		pos.Cells[Square(file, 6)] = BlackPawn
		pos.Cells[Square(file, 7)] = backRank[file] + 6
	}
	return pos
}

func (p *Position) kingSquare(color Color) (int, error) {
	want := WhiteKing
	if color == Black {
		want = BlackKing
	}
	for i, cell := range p.Cells {
		if cell == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no %s king on the board", color)
}

// ASCIIBoard renders the position as a bordered text board with
// coordinates, white's side at the bottom.
func (p *Position) ASCIIBoard() string {
	var b strings.Builder
	rule := "   " + strings.Repeat("+---", 8) + "+\n"
	b.WriteString(rule)
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&b, " %d |", rank+1)
		for file := 0; file < 8; file++ {
			cell := p.At(file, rank)
			if cell == Empty {
				b.WriteString("   |")
			} else {
				fmt.Fprintf(&b, " %c |", cell.Rune())
			}
		}
		b.WriteByte('\n')
		b.WriteString(rule)
	}
	b.WriteString("     a   b   c   d   e   f   g   h  ")
	return b.String()
}
