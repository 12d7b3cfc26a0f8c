// Package annotation holds the core data model for per-position move
// annotations: a rated, commented catalog of candidate moves keyed by the
// move's short algebraic notation.
package annotation

import (
	"encoding/json"
	"fmt"
)

// Class is the categorical reading of a move's rating. The wire format keeps
// the signed integer; only the sign (or its absence) matters for display.
type Class string

const (
	ClassBest     Class = "best"
	ClassMistake  Class = "mistake"
	ClassPlayable Class = "playable"
	ClassUnrated  Class = "unrated"
)

type MoveAnnotation struct {
	Rate    *int   `json:"rate,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Class maps the rating to its category: positive is best, negative is a
// mistake, zero is playable, absent is unrated.
func (a MoveAnnotation) Class() Class {
	switch {
	case a.Rate == nil:
		return ClassUnrated
	case *a.Rate > 0:
		return ClassBest
	case *a.Rate < 0:
		return ClassMistake
	default:
		return ClassPlayable
	}
}

func (a MoveAnnotation) Equal(b MoveAnnotation) bool {
	if a.Comment != b.Comment {
		return false
	}
	if (a.Rate == nil) != (b.Rate == nil) {
		return false
	}
	return a.Rate == nil || *a.Rate == *b.Rate
}

// Rate is a convenience for building annotations with a present rating.
func Rate(n int) *int {
	return &n
}

// ID is the store-assigned record identifier. It is opaque to the client;
// stores that use numeric ids emit bare JSON numbers, so both forms decode.
type ID string

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty record id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshaling record id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unmarshaling record id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Record is one position's annotation catalog as last seen from the store.
// It is replaced wholesale every time a fetch or save round trip resolves.
type Record struct {
	ID    ID       `json:"id"`
	Moves *Catalog `json:"moves"`
}

// MarshalJSON never emits null moves: a record without a catalog encodes it
// as an empty object, since a nil *Catalog bypasses the catalog's own
// marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	type record Record
	out := record(r)
	if out.Moves == nil {
		out.Moves = NewCatalog()
	}
	return json.Marshal(out)
}

// Clone returns a deep copy so optimistic edits never alias store state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return &Record{ID: r.ID, Moves: r.Moves.Clone()}
}
