package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"chessbook/internal/annotation"
	"chessbook/internal/position"
)

type GetPositionInput struct {
	FEN string `json:"fen" jsonschema:"position in FEN notation"`
}

type AnnotateMoveInput struct {
	FEN     string `json:"fen" jsonschema:"position in FEN notation"`
	Move    string `json:"move" jsonschema:"candidate move in short algebraic notation"`
	Rate    *int   `json:"rate,omitempty" jsonschema:"signed rating: positive best, negative mistake, zero playable, omitted unrated"`
	Comment string `json:"comment,omitempty" jsonschema:"free-text commentary"`
}

type DeleteMoveInput struct {
	FEN  string `json:"fen" jsonschema:"position in FEN notation"`
	Move string `json:"move" jsonschema:"move to remove from the catalog"`
}

type ListPositionsInput struct{}

type MoveOutput struct {
	Move    string `json:"move"`
	Rate    *int   `json:"rate,omitempty"`
	Comment string `json:"comment,omitempty"`
	Class   string `json:"class"`
}

type PositionOutput struct {
	ID    string       `json:"id"`
	FEN   string       `json:"fen"`
	Moves []MoveOutput `json:"moves"`
}

type PositionSummaryOutput struct {
	ID        string `json:"id"`
	FEN       string `json:"fen"`
	MoveCount int    `json:"move_count"`
}

type ListPositionsOutput struct {
	Positions []PositionSummaryOutput `json:"positions"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_position",
		Description: "Retrieve the annotated move catalog for a position",
	}, s.handleGetPosition)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "annotate_move",
		Description: "Add or update a candidate move's rating and commentary",
	}, s.handleAnnotateMove)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "delete_move",
		Description: "Remove a candidate move from a position's catalog",
	}, s.handleDeleteMove)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_positions",
		Description: "List every position holding annotated moves",
	}, s.handleListPositions)
}

func (s *Server) handleGetPosition(ctx context.Context, req *sdk.CallToolRequest, input GetPositionInput) (*sdk.CallToolResult, PositionOutput, error) {
	if !position.ValidFEN(input.FEN) {
		return nil, PositionOutput{}, fmt.Errorf("malformed FEN")
	}
	rec, err := s.db.Get(ctx, input.FEN)
	if err != nil {
		return nil, PositionOutput{}, err
	}
	return nil, positionOutputFromRecord(input.FEN, rec), nil
}

func (s *Server) handleAnnotateMove(ctx context.Context, req *sdk.CallToolRequest, input AnnotateMoveInput) (*sdk.CallToolResult, PositionOutput, error) {
	if !position.ValidFEN(input.FEN) {
		return nil, PositionOutput{}, fmt.Errorf("malformed FEN")
	}
	if input.Move == "" {
		return nil, PositionOutput{}, fmt.Errorf("move is required")
	}

	rec, err := s.db.Get(ctx, input.FEN)
	if err != nil {
		return nil, PositionOutput{}, err
	}
	rec.Moves.Set(input.Move, annotation.MoveAnnotation{Rate: input.Rate, Comment: input.Comment})

	saved, err := s.db.Save(ctx, rec.ID, rec.Moves)
	if err != nil {
		return nil, PositionOutput{}, err
	}
	return nil, positionOutputFromRecord(input.FEN, saved), nil
}

func (s *Server) handleDeleteMove(ctx context.Context, req *sdk.CallToolRequest, input DeleteMoveInput) (*sdk.CallToolResult, PositionOutput, error) {
	if !position.ValidFEN(input.FEN) {
		return nil, PositionOutput{}, fmt.Errorf("malformed FEN")
	}
	if input.Move == "" {
		return nil, PositionOutput{}, fmt.Errorf("move is required")
	}

	rec, err := s.db.Get(ctx, input.FEN)
	if err != nil {
		return nil, PositionOutput{}, err
	}
	rec.Moves.Delete(input.Move)

	saved, err := s.db.Save(ctx, rec.ID, rec.Moves)
	if err != nil {
		return nil, PositionOutput{}, err
	}
	return nil, positionOutputFromRecord(input.FEN, saved), nil
}

func (s *Server) handleListPositions(ctx context.Context, req *sdk.CallToolRequest, input ListPositionsInput) (*sdk.CallToolResult, ListPositionsOutput, error) {
	summaries, err := s.db.List(ctx)
	if err != nil {
		return nil, ListPositionsOutput{}, err
	}

	output := make([]PositionSummaryOutput, 0, len(summaries))
	for _, summary := range summaries {
		output = append(output, PositionSummaryOutput{
			ID:        string(summary.ID),
			FEN:       summary.FEN,
			MoveCount: summary.MoveCount,
		})
	}
	return nil, ListPositionsOutput{Positions: output}, nil
}

func positionOutputFromRecord(fen string, rec *annotation.Record) PositionOutput {
	out := PositionOutput{
		ID:    string(rec.ID),
		FEN:   fen,
		Moves: make([]MoveOutput, 0, rec.Moves.Len()),
	}
	for _, move := range rec.Moves.Moves() {
		a, _ := rec.Moves.Get(move)
		out.Moves = append(out.Moves, MoveOutput{
			Move:    move,
			Rate:    a.Rate,
			Comment: a.Comment,
			Class:   string(a.Class()),
		})
	}
	return out
}
