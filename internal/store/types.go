package store

import "chessbook/internal/annotation"

type PositionSummary struct {
	ID        annotation.ID
	FEN       string
	MoveCount int
}
