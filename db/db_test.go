// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn := openMemoryDB(t)

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() first run: %v", err)
	}
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() second run: %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := openMemoryDB(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema(): %v", err)
	}

	if err := Seed(conn); err != nil {
		t.Fatalf("Seed() first run: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("Seed() second run: %v", err)
	}

	var teams int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM teams`).Scan(&teams); err != nil {
		t.Fatal(err)
	}
	if teams != 5 {
		t.Errorf("expected 5 teams after double seed, got %d", teams)
	}

	var locks int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM phase_locks`).Scan(&locks); err != nil {
		t.Fatal(err)
	}
	if locks != 4 {
		t.Errorf("expected 4 lock rows, got %d", locks)
	}
}

func TestSeedPreservesEdits(t *testing.T) {
	conn := openMemoryDB(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema(): %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("Seed(): %v", err)
	}

	// Admin edits must survive the seed pass on the next boot.
	if _, err := conn.Exec(`UPDATE teams SET name = 'Vega Prime' WHERE id = 1`); err != nil {
		t.Fatal(err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("Seed() after edit: %v", err)
	}

	var name string
	if err := conn.QueryRow(`SELECT name FROM teams WHERE id = 1`).Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "Vega Prime" {
		t.Errorf("seed clobbered admin edit: name = %q", name)
	}
}
