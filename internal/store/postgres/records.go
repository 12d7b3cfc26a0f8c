package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"chessbook/internal/annotation"
	"chessbook/internal/store"
)

func (c *Client) Get(ctx context.Context, fen string) (*annotation.Record, error) {
	var id int64
	err := c.pool.QueryRow(ctx,
		`INSERT INTO positions (fen) VALUES ($1)
		 ON CONFLICT (fen) DO UPDATE SET fen = EXCLUDED.fen
		 RETURNING id`, fen).Scan(&id)
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

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int
	err = tx.QueryRow(ctx, `SELECT 1 FROM positions WHERE id = $1`, numID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking position record: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM moves WHERE position_id = $1`, numID); err != nil {
		return nil, fmt.Errorf("clearing move catalog: %w", err)
	}

	for ord, move := range catalog.Moves() {
		a, _ := catalog.Get(move)
		var rate *int
		if a.Rate != nil {
			rate = a.Rate
		}
		var comment *string
		if a.Comment != "" {
			comment = &a.Comment
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO moves (position_id, move, rate, comment, ord) VALUES ($1, $2, $3, $4, $5)`,
			numID, move, rate, comment, ord); err != nil {
			return nil, fmt.Errorf("saving move %q: %w", move, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
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

	rows, err := c.pool.Query(ctx, query)
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
	rows, err := c.pool.Query(ctx,
		`SELECT move, rate, comment FROM moves WHERE position_id = $1 ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("reading move catalog: %w", err)
	}
	defer rows.Close()

	catalog := annotation.NewCatalog()
	for rows.Next() {
		var move string
		var rate *int
		var comment *string
		if err := rows.Scan(&move, &rate, &comment); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		var a annotation.MoveAnnotation
		a.Rate = rate
		if comment != nil {
			a.Comment = *comment
		}
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
