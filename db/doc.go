// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection, schema creation, and seeding.

# Opening a Connection

Open picks the driver from the configuration:

	conn, err := db.Open(cfg)

DATABASE_TYPE selects "sqlite" (modernc.org/sqlite, pure Go) or "postgres"
(lib/pq). Every statement in the application is written against the SQL
dialect both engines share: $N placeholders, ON CONFLICT upserts, explicit
timestamps passed from Go, JSON stored as TEXT.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Tables: teams, voters, votes, criteria, phase_locks, bonus_points.
Safe to call repeatedly; all DDL uses IF NOT EXISTS.

# Seeding

Seed inserts the five fixed teams, an open lock row per phase, and the
default final-phase criteria:

	if err := db.Seed(conn); err != nil {
		log.Fatal(err)
	}

Seeding uses ON CONFLICT DO NOTHING throughout, so it runs on every boot
without clobbering admin edits.
*/
package db
