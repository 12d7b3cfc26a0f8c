package main

import (
	"context"
	"fmt"

	"chessbook/internal/config"
	"chessbook/internal/store"
	"chessbook/internal/store/jsonfile"
	"chessbook/internal/store/postgres"
	"chessbook/internal/store/sqlite"
)

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.Storage.DSN)
	case "postgres":
		return postgres.New(ctx, cfg.Storage.DSN)
	case "jsonfile":
		return jsonfile.New(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
