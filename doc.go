// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Cibola election portal API.

The portal runs the State of Cibola Campaign Playbook assessment: five fixed
teams evaluated across four phases, three scored with 1-5 sliders and the
final phase with ranked-choice ballots, plus admin-awarded bonus points.

# Starting the Server

The server reads environment variables, a .env file, or CLI flags:

	ADMIN_PASSWORD=secret go run main.go

Or with flags:

	go run main.go -p 8230 -t sqlite -d cibola.db --admin-password secret

# Configuration

Required settings:

  - ADMIN_PASSWORD (--admin-password): Shared admin secret
  - DATABASE_URL (-d): Connection string (required for postgres)

Optional settings:

  - PORT (-p): Server port (default: 8230)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (session, votes, results, admin, export, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - models: Domain and request/response types, fixed phase and metric catalogs
  - session: Voter identity resolution
  - ballot: Ballot validation and submission
  - gate: Phase lock state and visibility
  - tabulate: Leaderboard and analytics computation
  - export: CSV and printable report rendering
  - store: Typed storage with change notification
  - apperr: Error taxonomy shared across layers
  - auth: Voter IDs, confirmation numbers, admin password check
  - db: Schema creation and seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
