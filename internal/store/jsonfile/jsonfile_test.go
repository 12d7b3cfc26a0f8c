package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chessbook/internal/annotation"
	"chessbook/internal/position"
	"chessbook/internal/store"
)

func TestGetAssignsStableIDs(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ctx := context.Background()

	rec, err := c.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	again, err := c.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID == "" || rec.ID != again.ID {
		t.Fatalf("expected stable id, got %q then %q", rec.ID, again.ID)
	}

	if _, err := c.Get(ctx, "not a fen"); err == nil {
		t.Fatalf("expected error for malformed FEN")
	}
}

func TestSavePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	c, err := New(dbPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rec, err := c.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	catalog := annotation.NewCatalog()
	catalog.Set("e4", annotation.MoveAnnotation{Rate: annotation.Rate(1), Comment: "main line"})
	catalog.Set("d4", annotation.MoveAnnotation{})
	saved, err := c.Save(ctx, rec.ID, catalog)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !saved.Moves.Equal(catalog) {
		t.Fatalf("post-save catalog differs from request")
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	rec2, err := reopened.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rec2.Moves.Equal(catalog) {
		t.Fatalf("catalog lost across reopen")
	}
	if rec2.Moves.Moves()[0] != "e4" {
		t.Fatalf("insertion order lost across reopen: %v", rec2.Moves.Moves())
	}
}

func TestEmptyCatalogsAreNotPersisted(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	c, err := New(dbPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rec, err := c.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := c.Save(ctx, rec.ID, annotation.NewCatalog()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	raw, err := os.ReadFile(dbPath)
	if err != nil {
		t.Fatalf("expected db file, got %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected empty db, got %s", raw)
	}

	summaries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(summaries))
	}
}

func TestSaveAcceptsIssuedIDs(t *testing.T) {
	// Sparse positions compress to ids whose zero suffix is collapsed;
	// Save must still accept the id Get just handed out.
	fens := []string{
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"r3k3/8/8/8/8/8/8/4K3 b q - 0 1",
		"8/8/4k3/8/8/4K3/8/8 w - - 0 1",
	}
	c, err := New(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ctx := context.Background()

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			rec, err := c.Get(ctx, fen)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			catalog := annotation.NewCatalog()
			catalog.Set("Kd2", annotation.MoveAnnotation{Rate: annotation.Rate(0)})
			saved, err := c.Save(ctx, rec.ID, catalog)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !saved.Moves.Equal(catalog) {
				t.Fatalf("post-save catalog differs from request")
			}
		})
	}
}

func TestSaveRejectsUndecodableID(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err = c.Save(context.Background(), "***", annotation.NewCatalog())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReconstructsFEN(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ctx := context.Background()

	rec, err := c.Get(ctx, position.InitialFEN)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	catalog := annotation.NewCatalog()
	catalog.Set("e4", annotation.MoveAnnotation{Rate: annotation.Rate(1)})
	if _, err := c.Save(ctx, rec.ID, catalog); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	summaries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].FEN != position.InitialFEN {
		t.Fatalf("expected %q, got %q", position.InitialFEN, summaries[0].FEN)
	}
}
