// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8230)
  - DatabaseURL: Connection string or SQLite path (default: cibola.db)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminPassword: Shared admin secret (required)

# CLI Flags

	-p, --port             Server port
	-d, --database-url     Database URL or file path
	-t, --database-type    Database engine
	--admin-password       Admin password

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_PASSWORD → --admin-password

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_PASSWORD must be provided
  - DATABASE_URL must be provided when DATABASE_TYPE is postgres
*/
package cliparse
