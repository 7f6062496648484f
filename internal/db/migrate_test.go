package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func columnCount(t *testing.T, path, table, column string) int {
	t.Helper()
	conn, err := Open(path, 1, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	var n int
	err = conn.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		t.Fatalf("pragma_table_info: %v", err)
	}
	return n
}

func TestMigrate_FreshDatabaseTwice(t *testing.T) {
	path := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		conn, err := Open(path, 1, 1)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := Migrate(ctx, conn); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
		conn.Close()
	}

	if n := columnCount(t, path, "todos", "completed"); n != 1 {
		t.Errorf("completed column count: got %d, want 1", n)
	}

	conn, err := Open(path, 1, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()
	var tables int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'todos')`).Scan(&tables); err != nil {
		t.Fatalf("sqlite_master: %v", err)
	}
	if tables != 2 {
		t.Errorf("tables: got %d, want 2", tables)
	}
}

func TestMigrate_LegacyTodosWithoutCompleted(t *testing.T) {
	path := openTestDB(t)
	ctx := context.Background()

	conn, err := Open(path, 1, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	legacy := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT UNIQUE NOT NULL, password TEXT NOT NULL, created_at DATETIME DEFAULT CURRENT_TIMESTAMP)`,
		`CREATE TABLE todos (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL, task TEXT NOT NULL, created_at DATETIME DEFAULT CURRENT_TIMESTAMP)`,
		`INSERT INTO users (username, password) VALUES ('alice', 'hash')`,
		`INSERT INTO todos (user_id, task) VALUES (1, 'buy milk')`,
	}
	for _, stmt := range legacy {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("legacy setup %q: %v", stmt, err)
		}
	}

	if err := Migrate(ctx, conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := Migrate(ctx, conn); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}

	var task string
	var completed int
	if err := conn.QueryRow(`SELECT task, completed FROM todos WHERE id = 1`).Scan(&task, &completed); err != nil {
		t.Fatalf("select legacy row: %v", err)
	}
	if task != "buy milk" || completed != 0 {
		t.Errorf("legacy row: got (%q, %d), want (\"buy milk\", 0)", task, completed)
	}
	conn.Close()

	if n := columnCount(t, path, "todos", "completed"); n != 1 {
		t.Errorf("completed column count: got %d, want 1", n)
	}
}
