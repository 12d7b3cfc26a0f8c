// Package client is the request/response client for the remote annotation
// store. It performs exactly two operations, fetch-by-position and save,
// and never retries: retry policy belongs to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chessbook/internal/annotation"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the annotation store at baseURL. A nil httpc
// gets a client with a sane timeout.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// FetchByPosition looks up, or lazily creates, the annotation record for
// the position. The FEN travels as a single percent-encoded path segment.
func (c *Client) FetchByPosition(ctx context.Context, fen string) (*annotation.Record, error) {
	target := c.baseURL + "/api/position/fen/" + url.PathEscape(fen)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request: %w", err)
	}
	return c.do("fetching position record", req)
}

// Save overwrites the stored catalog for the record id wholesale and
// returns the store's canonical post-save record.
func (c *Client) Save(ctx context.Context, id annotation.ID, catalog *annotation.Catalog) (*annotation.Record, error) {
	body, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("encoding move catalog: %w", err)
	}

	target := c.baseURL + "/api/position/save/" + url.PathEscape(string(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do("saving move catalog", req)
}

func (c *Client) do(op string, req *http.Request) (*annotation.Record, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &StoreError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(snippet)),
		}
	}

	var rec annotation.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, &StoreError{Op: op, Status: resp.StatusCode, Message: fmt.Sprintf("undecodable response: %v", err)}
	}
	if rec.Moves == nil {
		rec.Moves = annotation.NewCatalog()
	}
	return &rec, nil
}
