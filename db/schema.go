// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/cooperativeimpactlab/cibola-portal/cliparse"
)

// Open connects to the configured database. The DDL and every query in the
// store are written against the intersection of PostgreSQL and SQLite, so
// either driver works unchanged.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}
	if cfg.DatabaseType == "sqlite" {
		// modernc's driver serializes writes; one connection avoids
		// table-lock errors under concurrent handlers.
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Teams
CREATE TABLE IF NOT EXISTS teams (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE
);

-- Voters (created lazily on first authentication)
CREATE TABLE IF NOT EXISTS voters (
    voter_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    team_id INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (name, team_id)
);

CREATE INDEX IF NOT EXISTS idx_voters_team_id ON voters(team_id);

-- Ballots: at most one per (voter, phase, criterion); criterion is '' for
-- slider phases. Resubmission overwrites the row, no history retained.
CREATE TABLE IF NOT EXISTS votes (
    voter_id TEXT NOT NULL,
    team_id INTEGER NOT NULL,
    phase INTEGER NOT NULL,
    criterion TEXT NOT NULL DEFAULT '',
    vote_type TEXT NOT NULL CHECK (vote_type IN ('ranking', 'slider')),
    vote_data TEXT NOT NULL,
    ts TIMESTAMP NOT NULL,
    PRIMARY KEY (voter_id, phase, criterion)
);

CREATE INDEX IF NOT EXISTS idx_votes_phase ON votes(phase);

-- Ranked-choice criteria; rounds is a JSON array of round numbers
CREATE TABLE IF NOT EXISTS criteria (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT '',
    rounds TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

-- Gate flags, one row per phase, default open
CREATE TABLE IF NOT EXISTS phase_locks (
    phase INTEGER PRIMARY KEY,
    phase_name TEXT NOT NULL DEFAULT '',
    is_locked BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMP NOT NULL
);

-- Signed manual adjustments, phase-independent
CREATE TABLE IF NOT EXISTS bonus_points (
    id TEXT PRIMARY KEY,
    team_id INTEGER NOT NULL,
    points INTEGER NOT NULL,
    reason TEXT NOT NULL,
    awarded_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bonus_points_team_id ON bonus_points(team_id);
`
