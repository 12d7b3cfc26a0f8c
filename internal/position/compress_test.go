package position

import "testing"

func TestCompressRoundTrip(t *testing.T) {
	// Clocks are not part of the compact encoding, so every test FEN
	// carries the decompressed defaults.
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
		"8/8/4k3/8/8/4K3/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"r3k3/8/8/8/8/8/8/4K3 b q - 0 1",
		"8/3P4/4k3/8/8/4K3/8/8 w - - 0 1",
		"rnbq1bnr/ppppkppp/8/4p3/8/5N2/PPPPPPPP/RNBQKB1R w KQ - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("parsing %q: %v", fen, err)
			}
			id, err := pos.Compress()
			if err != nil {
				t.Fatalf("compressing: %v", err)
			}
			back, err := Decompress(id)
			if err != nil {
				t.Fatalf("decompressing %q: %v", id, err)
			}
			if got := back.FEN(); got != fen {
				t.Fatalf("expected %q, got %q (id %q)", fen, got, id)
			}
		})
	}
}

func TestCompressStability(t *testing.T) {
	t.Run("clocks do not change the id", func(t *testing.T) {
		a, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 17 42")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		idA, err := a.Compress()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		idB, err := b.Compress()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if idA != idB {
			t.Fatalf("expected identical ids, got %q and %q", idA, idB)
		}
	})

	t.Run("different positions get different ids", func(t *testing.T) {
		a, err := Initial().Compress()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		after, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, err := after.Compress()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a == b {
			t.Fatalf("expected distinct ids")
		}
	})

	t.Run("kingless board does not compress", func(t *testing.T) {
		pos := &Position{EnPassantFile: -1, FullmoveNumber: 1}
		if _, err := pos.Compress(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid id digits are rejected", func(t *testing.T) {
		if _, err := Decompress("not*valid"); err == nil {
			t.Fatalf("expected error")
		}
		if _, err := Decompress(""); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestB64(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A", "A"},
		{"BA", "BA"},
		{"_", "_"},
		{"Jx2-", "Jx2-"},
	}
	for _, tc := range cases {
		n, err := b64ToInt(tc.in)
		if err != nil {
			t.Fatalf("decoding %q: %v", tc.in, err)
		}
		if got := intToB64(n); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
