package postgres

import (
	"context"
	"fmt"
)

func (c *Client) ensureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS positions (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    fen        TEXT NOT NULL,
    created_at TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_position_fen UNIQUE (fen)
);

CREATE TABLE IF NOT EXISTS moves (
    position_id BIGINT NOT NULL REFERENCES positions(id) ON DELETE CASCADE,
    move        TEXT NOT NULL,
    rate        INTEGER,
    comment     TEXT,
    ord         INTEGER NOT NULL,
    CONSTRAINT uq_move_per_position UNIQUE (position_id, move)
);

CREATE INDEX IF NOT EXISTS idx_moves_position ON moves (position_id, ord);
`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring postgres schema: %w", err)
	}
	return nil
}
