// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Cibola portal API.

# Handler Types

Each handler is a struct with injected dependencies:

  - SessionHandler: Voter authentication via team code + first name
  - VotesHandler: Ballot submission, ballot history, phase status
  - ResultsHandler: Leaderboards, analytics, reference data
  - AdminHandler: Phase locks, teams, criteria, voters, bonus points, monitoring
  - ExportHandler: CSV and printable report downloads
  - EventsHandler: Server-sent change notifications

Handlers are created via constructor functions:

	votesHandler := handlers.NewVotesHandler(st, validator, gateKeeper)

# Voting Flow

Voters authenticate once and carry their voter_id on every request:

	POST /session    → Resolve (returns voter_id)
	GET  /phases     → Phases (lock state, visibility, cast ballots)
	POST /votes      → Submit (201 new, 200 resubmission)
	GET  /votes/mine → Mine

Voter operations require the X-Voter-ID header.

# Ballot Shapes

Phases 1-3 take slider ballots: one 1-5 score per (opponent, metric) pair,
with every opponent confirmed. Phase 4 takes ranked-choice ballots: a full
ordering of opponents per criterion. Validation lives in the ballot package;
handlers only translate errors onto HTTP statuses.

# Admin Operations

Admin endpoints sit behind the X-Admin-Password header:

	POST   /admin/phases/{phase}/toggle → lock or unlock a phase
	PUT    /admin/teams/{id}            → rename or recode a team
	POST   /admin/criteria              → create or edit a criterion
	DELETE /admin/voters/{id}           → remove a voter registration
	POST   /admin/bonus                 → award signed bonus points
	GET    /admin/monitoring            → turnout and recent-ballot feed

# Live Updates

GET /events?table=votes streams a server-sent event whenever the named
table changes. Events carry no payload; clients re-fetch on receipt.
*/
package handlers
