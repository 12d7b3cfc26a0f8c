package annotation

import (
	"encoding/json"
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	c := NewCatalog()
	c.Set("e4", MoveAnnotation{Rate: Rate(1)})
	c.Set("d4", MoveAnnotation{Rate: Rate(0)})
	c.Set("f3", MoveAnnotation{Rate: Rate(-2)})

	t.Run("insertion order is kept", func(t *testing.T) {
		moves := c.Moves()
		want := []string{"e4", "d4", "f3"}
		if len(moves) != len(want) {
			t.Fatalf("expected %d moves, got %d", len(want), len(moves))
		}
		for i := range want {
			if moves[i] != want[i] {
				t.Fatalf("expected %q at %d, got %q", want[i], i, moves[i])
			}
		}
	})

	t.Run("upsert keeps position", func(t *testing.T) {
		c := c.Clone()
		c.Set("d4", MoveAnnotation{Comment: "closed game"})
		if c.Moves()[1] != "d4" {
			t.Fatalf("expected d4 to stay second, got %v", c.Moves())
		}
		if c.Len() != 3 {
			t.Fatalf("expected 3 moves, got %d", c.Len())
		}
	})

	t.Run("delete compacts order", func(t *testing.T) {
		c := c.Clone()
		c.Delete("d4")
		moves := c.Moves()
		if len(moves) != 2 || moves[0] != "e4" || moves[1] != "f3" {
			t.Fatalf("unexpected order after delete: %v", moves)
		}
	})

	t.Run("delete of absent move is a no-op", func(t *testing.T) {
		before := c.Clone()
		after := c.Clone()
		after.Delete("Nf3")
		if !before.Equal(after) {
			t.Fatalf("expected catalog unchanged")
		}
	})
}

func TestCatalogEqual(t *testing.T) {
	t.Run("nil equals empty", func(t *testing.T) {
		var nilCat *Catalog
		if !nilCat.Equal(NewCatalog()) {
			t.Fatalf("expected nil catalog to equal empty one")
		}
		if !NewCatalog().Equal(nilCat) {
			t.Fatalf("expected empty catalog to equal nil one")
		}
	})

	t.Run("nil differs from populated", func(t *testing.T) {
		var nilCat *Catalog
		c := NewCatalog()
		c.Set("e4", MoveAnnotation{Rate: Rate(1)})
		if nilCat.Equal(c) || c.Equal(nilCat) {
			t.Fatalf("expected nil catalog to differ from populated one")
		}
	})
}

func TestCatalogJSON(t *testing.T) {
	t.Run("marshals in insertion order", func(t *testing.T) {
		c := NewCatalog()
		c.Set("Nf3", MoveAnnotation{Rate: Rate(1), Comment: "flexible"})
		c.Set("e4", MoveAnnotation{})
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := `{"Nf3":{"rate":1,"comment":"flexible"},"e4":{}}`
		if string(data) != want {
			t.Fatalf("expected %s, got %s", want, data)
		}
	})

	t.Run("empty catalog marshals to empty object", func(t *testing.T) {
		data, err := json.Marshal(NewCatalog())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "{}" {
			t.Fatalf("expected {}, got %s", data)
		}
	})

	t.Run("record with nil catalog marshals moves as empty object", func(t *testing.T) {
		// encoding/json writes null for a nil *Catalog without consulting
		// its marshaler; the record marshaler normalizes it away.
		data, err := json.Marshal(&Record{ID: "1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := `{"id":"1","moves":{}}`
		if string(data) != want {
			t.Fatalf("expected %s, got %s", want, data)
		}
	})

	t.Run("unmarshal preserves wire order", func(t *testing.T) {
		var c Catalog
		body := `{"c4":{"rate":0},"e4":{"rate":1,"comment":"main line"},"h4":{"rate":-3,"comment":"weakens\nthe kingside"}}`
		if err := json.Unmarshal([]byte(body), &c); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		moves := c.Moves()
		if len(moves) != 3 || moves[0] != "c4" || moves[1] != "e4" || moves[2] != "h4" {
			t.Fatalf("unexpected order: %v", moves)
		}
		a, ok := c.Get("h4")
		if !ok || a.Rate == nil || *a.Rate != -3 {
			t.Fatalf("unexpected annotation for h4: %+v", a)
		}
		if a.Comment != "weakens\nthe kingside" {
			t.Fatalf("unexpected comment: %q", a.Comment)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		c := NewCatalog()
		c.Set("e4", MoveAnnotation{Rate: Rate(1), Comment: "main line"})
		c.Set("a3", MoveAnnotation{})
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		var back Catalog
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !c.Equal(&back) {
			t.Fatalf("round trip changed the catalog")
		}
	})

	t.Run("rejects non-object", func(t *testing.T) {
		var c Catalog
		if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
			t.Fatalf("expected error")
		}
	})
}
