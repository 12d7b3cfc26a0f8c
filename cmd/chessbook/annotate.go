package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chessbook/internal/annotation"
	"chessbook/internal/client"
	"chessbook/internal/position"
)

func annotateCmd() *cobra.Command {
	var serverURL string
	var fen string
	var move string
	var rate int
	var comment string
	var remove bool
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Add, update, or delete a move annotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ratePtr *int
			if cmd.Flags().Changed("rate") {
				ratePtr = &rate
			}
			return runAnnotate(serverURL, fen, move, ratePtr, comment, remove)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "http://127.0.0.1:8000", "Annotation server URL")
	cmd.Flags().StringVar(&fen, "fen", position.InitialFEN, "Position in FEN notation")
	cmd.Flags().StringVar(&move, "move", "", "Move in short algebraic notation")
	cmd.Flags().IntVar(&rate, "rate", 0, "Signed rating: positive best, negative mistake, zero playable")
	cmd.Flags().StringVar(&comment, "comment", "", "Commentary text")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the move instead of annotating it")
	return cmd
}

func runAnnotate(serverURL, fen, move string, rate *int, comment string, remove bool) error {
	if strings.TrimSpace(move) == "" {
		return fmt.Errorf("--move is required")
	}

	ctx := context.Background()
	c := client.New(serverURL, nil)

	rec, err := c.FetchByPosition(ctx, fen)
	if err != nil {
		return err
	}

	if remove {
		rec.Moves.Delete(move)
	} else {
		rec.Moves.Set(move, annotation.MoveAnnotation{Rate: rate, Comment: comment})
	}

	saved, err := c.Save(ctx, rec.ID, rec.Moves)
	if err != nil {
		return err
	}

	fmt.Printf("Position %s now holds %d annotated move(s).\n", saved.ID, saved.Moves.Len())
	return nil
}
