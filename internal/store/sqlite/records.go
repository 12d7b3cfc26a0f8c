package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"chessbook/internal/annotation"
	"chessbook/internal/store"
)

func (c *Client) Get(ctx context.Context, fen string) (*annotation.Record, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `SELECT id FROM positions WHERE fen = ?`, fen).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// First sight of this position: create its empty record.
		if _, err := c.db.ExecContext(ctx,
			`INSERT INTO positions (fen) VALUES (?) ON CONFLICT (fen) DO NOTHING`, fen); err != nil {
			return nil, fmt.Errorf("creating position record: %w", err)
		}
		err = c.db.QueryRowContext(ctx, `SELECT id FROM positions WHERE fen = ?`, fen).Scan(&id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting position record: %w", err)
	}

	catalog, err := c.readCatalog(ctx, id)
	if err != nil {
		return nil, err
	}
	return &annotation.Record{ID: recordID(id), Moves: catalog}, nil
}

func (c *Client) Save(ctx context.Context, id annotation.ID, catalog *annotation.Catalog) (*annotation.Record, error) {
	numID, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return nil, store.ErrNotFound
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM positions WHERE id = ?`, numID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking position record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM moves WHERE position_id = ?`, numID); err != nil {
		return nil, fmt.Errorf("clearing move catalog: %w", err)
	}

	for ord, move := range catalog.Moves() {
		a, _ := catalog.Get(move)
		var rate sql.NullInt64
		if a.Rate != nil {
			rate = sql.NullInt64{Int64: int64(*a.Rate), Valid: true}
		}
		var comment sql.NullString
		if a.Comment != "" {
			comment = sql.NullString{String: a.Comment, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (position_id, move, rate, comment, ord) VALUES (?, ?, ?, ?, ?)`,
			numID, move, rate, comment, ord); err != nil {
			return nil, fmt.Errorf("saving move %q: %w", move, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing move catalog: %w", err)
	}

	saved, err := c.readCatalog(ctx, numID)
	if err != nil {
		return nil, err
	}
	return &annotation.Record{ID: recordID(numID), Moves: saved}, nil
}

func (c *Client) List(ctx context.Context) ([]store.PositionSummary, error) {
	query := `
	SELECT p.id, p.fen, COUNT(m.move)
	FROM positions p
	JOIN moves m ON m.position_id = p.id
	GROUP BY p.id, p.fen
	ORDER BY p.id
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	defer rows.Close()

	summaries := []store.PositionSummary{}
	for rows.Next() {
		var id int64
		var s store.PositionSummary
		if err := rows.Scan(&id, &s.FEN, &s.MoveCount); err != nil {
			return nil, fmt.Errorf("scanning position summary: %w", err)
		}
		s.ID = recordID(id)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating position summaries: %w", err)
	}

	return summaries, nil
}

func (c *Client) readCatalog(ctx context.Context, id int64) (*annotation.Catalog, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT move, rate, comment FROM moves WHERE position_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("reading move catalog: %w", err)
	}
	defer rows.Close()

	catalog := annotation.NewCatalog()
	for rows.Next() {
		var move string
		var rate sql.NullInt64
		var comment sql.NullString
		if err := rows.Scan(&move, &rate, &comment); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		var a annotation.MoveAnnotation
		if rate.Valid {
			a.Rate = annotation.Rate(int(rate.Int64))
		}
		a.Comment = comment.String
		catalog.Set(move, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}

	return catalog, nil
}

func recordID(id int64) annotation.ID {
	return annotation.ID(strconv.FormatInt(id, 10))
}
