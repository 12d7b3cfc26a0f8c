// Package mcp exposes the annotation store to MCP clients, so an assistant
// can look up and edit the move book alongside the web UI.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"chessbook/internal/store"
)

type Server struct {
	db  store.Store
	mcp *sdk.Server
}

func NewServer(db store.Store, version string) *Server {
	s := &Server{
		db: db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "chessbook",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
