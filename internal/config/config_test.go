package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		path := writeTempConfig(t, "project: my-repertoire\nversion: 1\nstorage:\n  backend: sqlite\n  dsn: sqlite://book.db\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "my-repertoire" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Server.Listen != DefaultListen || cfg.Server.Port != DefaultPort {
			t.Fatalf("expected default server address, got %s:%d", cfg.Server.Listen, cfg.Server.Port)
		}
	})

	t.Run("explicit server address", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nstorage:\n  backend: jsonfile\n  path: book.json\nserver:\n  listen: 0.0.0.0\n  port: 9000\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Listen != "0.0.0.0" || cfg.Server.Port != 9000 {
			t.Fatalf("unexpected server address: %s:%d", cfg.Server.Listen, cfg.Server.Port)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\nstorage:\n  backend: sqlite\n  dsn: sqlite://book.db\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\nstorage:\n  backend: sqlite\n  dsn: sqlite://book.db\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing backend", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nstorage:\n  backend: redis\n  dsn: redis://\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("sqlite without dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nstorage:\n  backend: sqlite\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("jsonfile without path", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nstorage:\n  backend: jsonfile\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nstorage:\n  backend: jsonfile\n  path: book.json\nserver:\n  port: 70000\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chessbook.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
