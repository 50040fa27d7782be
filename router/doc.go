// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Cibola portal API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Voter operations (require X-Voter-ID except /session):

	POST /session    - Authenticate with team code + first name
	GET  /phases     - Phase status for this voter
	POST /votes      - Submit or resubmit a ballot
	GET  /votes/mine - Cast ballots

Results and reference data (public):

	GET /results                       - Grand total leaderboard
	GET /results/phase/{phase}         - Single-phase standings
	GET /results/round/{round}         - Alias of phase standings
	GET /results/criterion/{criterion} - Per-criterion standings
	GET /analytics                     - Slider score distributions
	GET /teams                         - Team list
	GET /metrics                       - Slider metric definitions
	GET /criteria                      - Active ranked-choice criteria

Live updates:

	GET /events?table=votes - Server-sent change notifications

Admin (require X-Admin-Password):

	POST   /admin/login
	GET    /admin/phases
	POST   /admin/phases/{phase}/toggle
	PUT    /admin/teams/{id}
	GET    /admin/criteria
	POST   /admin/criteria
	GET    /admin/voters
	DELETE /admin/voters/{id}
	GET    /admin/bonus
	POST   /admin/bonus
	DELETE /admin/bonus/{id}
	GET    /admin/monitoring
	GET    /admin/export/results.csv
	GET    /admin/export/analytics.csv
	GET    /admin/export/report.txt

# Handler Initialization

The router builds the service graph and injects it into handlers:

	gateKeeper := gate.New(st)
	validator := ballot.NewValidator(st, gateKeeper)
	votesHandler := handlers.NewVotesHandler(st, validator, gateKeeper)
*/
package router
