package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chessbook/internal/client"
	"chessbook/internal/position"
)

func showCmd() *cobra.Command {
	var serverURL string
	var fen string
	var board bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the annotated moves for a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(serverURL, fen, board)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "http://127.0.0.1:8000", "Annotation server URL")
	cmd.Flags().StringVar(&fen, "fen", position.InitialFEN, "Position in FEN notation")
	cmd.Flags().BoolVar(&board, "board", false, "Print the board diagram")
	return cmd
}

func runShow(serverURL, fen string, board bool) error {
	ctx := context.Background()

	pos, err := position.ParseFEN(fen)
	if err != nil {
		return err
	}

	rec, err := client.New(serverURL, nil).FetchByPosition(ctx, fen)
	if err != nil {
		return err
	}

	if board {
		fmt.Fprintln(os.Stdout, pos.ASCIIBoard())
	}

	if rec.Moves.Len() == 0 {
		fmt.Fprintln(os.Stdout, "No annotated moves.")
		return nil
	}
	for _, move := range rec.Moves.Moves() {
		a, _ := rec.Moves.Get(move)
		fmt.Fprintf(os.Stdout, "%s [%s]\n", move, a.Class())
		for _, line := range strings.Split(strings.ReplaceAll(a.Comment, "\r\n", "\n"), "\n") {
			if line != "" {
				fmt.Fprintf(os.Stdout, "    %s\n", line)
			}
		}
	}
	return nil
}
