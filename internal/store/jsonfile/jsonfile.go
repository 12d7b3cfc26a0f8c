// Package jsonfile is a single-file annotation store. Record ids are the
// compact base64url encoding of the position itself, so ids are stable
// across restarts and self-certifying: any id that decodes to a position is
// a valid save target. Only positions with a non-empty catalog are written
// to disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"chessbook/internal/annotation"
	"chessbook/internal/position"
	"chessbook/internal/store"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	mu       sync.Mutex
	filename string
	data     map[annotation.ID]*annotation.Catalog
}

func New(filename string) (*Client, error) {
	c := &Client{
		filename: filename,
		data:     make(map[annotation.ID]*annotation.Catalog),
	}

	raw, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading annotation db: %w", err)
	}
	if err := json.Unmarshal(raw, &c.data); err != nil {
		return nil, fmt.Errorf("parsing annotation db: %w", err)
	}
	return c, nil
}

func (c *Client) Close(ctx context.Context) error {
	return nil
}

func (c *Client) Get(ctx context.Context, fen string) (*annotation.Record, error) {
	pos, err := position.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("getting position record: %w", err)
	}
	id, err := pos.Compress()
	if err != nil {
		return nil, fmt.Errorf("getting position record: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	catalog, ok := c.data[annotation.ID(id)]
	if !ok {
		catalog = annotation.NewCatalog()
		c.data[annotation.ID(id)] = catalog
	}
	return &annotation.Record{ID: annotation.ID(id), Moves: catalog.Clone()}, nil
}

func (c *Client) Save(ctx context.Context, id annotation.ID, catalog *annotation.Catalog) (*annotation.Record, error) {
	if _, err := position.Decompress(string(id)); err != nil {
		return nil, store.ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[id] = catalog.Clone()
	if err := c.flush(); err != nil {
		return nil, err
	}
	return &annotation.Record{ID: id, Moves: catalog.Clone()}, nil
}

func (c *Client) List(ctx context.Context) ([]store.PositionSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	summaries := []store.PositionSummary{}
	for id, catalog := range c.data {
		if catalog.Len() == 0 {
			continue
		}
		pos, err := position.Decompress(string(id))
		if err != nil {
			return nil, fmt.Errorf("decoding stored position id %q: %w", id, err)
		}
		summaries = append(summaries, store.PositionSummary{
			ID:        id,
			FEN:       pos.FEN(),
			MoveCount: catalog.Len(),
		})
	}
	return summaries, nil
}

// flush persists all non-empty catalogs, caller holds the lock.
func (c *Client) flush() error {
	persisted := make(map[annotation.ID]*annotation.Catalog, len(c.data))
	for id, catalog := range c.data {
		if catalog.Len() > 0 {
			persisted[id] = catalog
		}
	}
	raw, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("encoding annotation db: %w", err)
	}
	if err := writeFileAtomic(c.filename, raw, 0o600); err != nil {
		return fmt.Errorf("writing annotation db: %w", err)
	}
	return nil
}

// writeFileAtomic writes data via a temp file in the same directory and a
// rename, so readers never observe a partial db.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".chessbook-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
