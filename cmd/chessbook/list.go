package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chessbook/internal/config"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every position holding annotated moves",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
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

	positions, err := db.List(ctx)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		fmt.Fprintln(os.Stdout, "No positions found.")
		return nil
	}

	for _, p := range positions {
		fmt.Fprintf(os.Stdout, "%s  %d move(s)  %s\n", p.ID, p.MoveCount, p.FEN)
	}
	return nil
}
