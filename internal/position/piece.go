// Package position models a chess position: the board contents, side to
// move, castling rights and en-passant state. It serializes positions to
// and from FEN and to a compact base64url id used for short permalinks.
// Move legality is out of scope; callers bring their own rules engine.
package position

import "fmt"

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type Role uint8

// Role codes match the 3-bit layout of the compact encoding:
// pawn 000, king 001, queen 100, rook 101, knight 110, bishop 111.
const (
	Pawn   Role = 0
	King   Role = 1
	Queen  Role = 4
	Rook   Role = 5
	Knight Role = 6
	Bishop Role = 7
)

// Piece identifies a colored piece on a cell. The zero value is an empty
// cell.
type Piece uint8

const (
	Empty Piece = iota
	WhitePawn
	WhiteKing
	WhiteQueen
	WhiteRook
	WhiteKnight
	WhiteBishop
	BlackPawn
	BlackKing
	BlackQueen
	BlackRook
	BlackKnight
	BlackBishop
)

var roleOrder = []Role{Pawn, King, Queen, Rook, Knight, Bishop}

func NewPiece(role Role, color Color) (Piece, error) {
	for i, r := range roleOrder {
		if r == role {
			return Piece(1 + int(color)*6 + i), nil
		}
	}
	return Empty, fmt.Errorf("invalid role: %d", role)
}

func (p Piece) Color() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

func (p Piece) Role() Role {
	if p == Empty {
		return Pawn
	}
	return roleOrder[(int(p)-1)%6]
}

var fenByPiece = map[Piece]byte{
	WhitePawn: 'P', WhiteKing: 'K', WhiteQueen: 'Q',
	WhiteRook: 'R', WhiteKnight: 'N', WhiteBishop: 'B',
	BlackPawn: 'p', BlackKing: 'k', BlackQueen: 'q',
	BlackRook: 'r', BlackKnight: 'n', BlackBishop: 'b',
}

var pieceByFEN = map[byte]Piece{
	'P': WhitePawn, 'K': WhiteKing, 'Q': WhiteQueen,
	'R': WhiteRook, 'N': WhiteKnight, 'B': WhiteBishop,
	'p': BlackPawn, 'k': BlackKing, 'q': BlackQueen,
	'r': BlackRook, 'n': BlackKnight, 'b': BlackBishop,
}

var runeByPiece = map[Piece]rune{
	WhitePawn: '♙', WhiteKing: '♔', WhiteQueen: '♕',
	WhiteRook: '♖', WhiteKnight: '♘', WhiteBishop: '♗',
	BlackPawn: '♟', BlackKing: '♚', BlackQueen: '♛',
	BlackRook: '♜', BlackKnight: '♞', BlackBishop: '♝',
}

// FEN returns the piece's single-letter FEN form, or 0 for an empty cell.
func (p Piece) FEN() byte {
	return fenByPiece[p]
}

// Rune returns the unicode chess glyph, or a space for an empty cell.
func (p Piece) Rune() rune {
	if p == Empty {
		return ' '
	}
	return runeByPiece[p]
}
