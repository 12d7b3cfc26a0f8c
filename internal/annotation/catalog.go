package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Catalog is an insertion-ordered mapping from move (short algebraic
// notation) to its annotation. Order is display-significant and survives
// JSON round trips: the catalog marshals as an object whose keys appear in
// insertion order and decodes back preserving the order found on the wire.
type Catalog struct {
	order []string
	moves map[string]MoveAnnotation
}

func NewCatalog() *Catalog {
	return &Catalog{moves: make(map[string]MoveAnnotation)}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

func (c *Catalog) Has(move string) bool {
	if c == nil {
		return false
	}
	_, ok := c.moves[move]
	return ok
}

func (c *Catalog) Get(move string) (MoveAnnotation, bool) {
	if c == nil {
		return MoveAnnotation{}, false
	}
	a, ok := c.moves[move]
	return a, ok
}

// Set upserts the annotation for move. An existing move keeps its position
// in the order; a new move is appended.
func (c *Catalog) Set(move string, a MoveAnnotation) {
	if c.moves == nil {
		c.moves = make(map[string]MoveAnnotation)
	}
	if _, ok := c.moves[move]; !ok {
		c.order = append(c.order, move)
	}
	c.moves[move] = a
}

// Delete removes move from the catalog. Deleting an absent move is a no-op.
func (c *Catalog) Delete(move string) {
	if c == nil {
		return
	}
	if _, ok := c.moves[move]; !ok {
		return
	}
	delete(c.moves, move)
	for i, m := range c.order {
		if m == move {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Moves returns the move keys in insertion order.
func (c *Catalog) Moves() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Clone() *Catalog {
	out := NewCatalog()
	if c == nil {
		return out
	}
	for _, move := range c.order {
		out.Set(move, c.moves[move])
	}
	return out
}

// Equal reports whether both catalogs hold the same moves with the same
// annotations in the same order.
func (c *Catalog) Equal(other *Catalog) bool {
	if c.Len() != other.Len() {
		return false
	}
	if c == nil || other == nil {
		// Equal lengths with a nil side means both are empty.
		return true
	}
	for i, move := range c.order {
		if other.order[i] != move {
			return false
		}
		if !c.moves[move].Equal(other.moves[move]) {
			return false
		}
	}
	return true
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	if c == nil || len(c.order) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, move := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(move)
		if err != nil {
			return nil, fmt.Errorf("marshaling move key %q: %w", move, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.moves[move])
		if err != nil {
			return nil, fmt.Errorf("marshaling annotation for %q: %w", move, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding catalog: expected object, got %v", tok)
	}

	c.order = nil
	c.moves = make(map[string]MoveAnnotation)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding catalog key: %w", err)
		}
		move, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding catalog key: expected string, got %v", tok)
		}
		var a MoveAnnotation
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("decoding annotation for %q: %w", move, err)
		}
		c.Set(move, a)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding catalog: %w", err)
	}
	return nil
}
