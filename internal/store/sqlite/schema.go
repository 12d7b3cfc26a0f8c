package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) ensureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS positions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		fen        TEXT NOT NULL,
		created_at TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_position_fen UNIQUE (fen)
	);

	CREATE TABLE IF NOT EXISTS moves (
		position_id INTEGER NOT NULL REFERENCES positions(id) ON DELETE CASCADE,
		move        TEXT NOT NULL,
		rate        INTEGER,
		comment     TEXT,
		ord         INTEGER NOT NULL,
		CONSTRAINT uq_move_per_position UNIQUE (position_id, move)
	);

	CREATE INDEX IF NOT EXISTS idx_moves_position ON moves (position_id, ord);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
