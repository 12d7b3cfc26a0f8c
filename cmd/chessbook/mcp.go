package main

import (
	"context"

	"github.com/spf13/cobra"

	"chessbook/internal/config"
	"chessbook/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("chessbook.yaml")
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	server := mcp.NewServer(db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
