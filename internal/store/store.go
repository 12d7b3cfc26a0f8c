// Package store defines the authoritative annotation store: records of
// annotated candidate moves keyed by FEN position.
package store

import (
	"context"
	"errors"

	"chessbook/internal/annotation"
)

// ErrNotFound is returned by Save when the record id is unknown.
var ErrNotFound = errors.New("record not found")

type Store interface {
	Close(ctx context.Context) error

	// Get returns the annotation record for the position, creating an
	// empty record on first sight of an unseen FEN.
	Get(ctx context.Context, fen string) (*annotation.Record, error)

	// Save overwrites the stored catalog for the record id wholesale and
	// returns the canonical post-save record.
	Save(ctx context.Context, id annotation.ID, catalog *annotation.Catalog) (*annotation.Record, error)

	// List returns every position holding at least one annotated move.
	List(ctx context.Context) ([]PositionSummary, error)
}
