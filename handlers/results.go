// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
	"github.com/cooperativeimpactlab/cibola-portal/tabulate"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// load pulls the full ballot set for recomputation. Tabulation is always a
// fresh fold over everything in scope; cheap at this system's ballot counts.
func (h *ResultsHandler) load(w http.ResponseWriter) ([]models.Team, []models.Vote, bool) {
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return nil, nil, false
	}
	votes, err := h.store.Votes()
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.TaxonomyError(w, err)
		return nil, nil, false
	}
	return teams, votes, true
}

// Leaderboard handles GET /results: the grand total across all phases,
// including bonus points.
func (h *ResultsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	teams, votes, ok := h.load(w)
	if !ok {
		return
	}
	bonuses, err := h.store.BonusPoints()
	if err != nil {
		slog.Error("failed to load bonus points", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	results := tabulate.Leaderboard(teams, votes, bonuses, tabulate.Scope{})
	middleware.JSONResponse(w, http.StatusOK, results)
}

// ByPhase handles GET /results/phase/{phase}. Scoped views exclude bonus
// points, which are phase-independent.
func (h *ResultsHandler) ByPhase(w http.ResponseWriter, r *http.Request) {
	phase, err := strconv.Atoi(r.PathValue("phase"))
	if err != nil || phase < 1 || phase > models.PhaseCount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid phase")
		return
	}

	teams, votes, ok := h.load(w)
	if !ok {
		return
	}
	results := tabulate.Leaderboard(teams, votes, nil, tabulate.Scope{Phase: phase})
	middleware.JSONResponse(w, http.StatusOK, results)
}

// ByRound handles GET /results/round/{round}. Rounds and phases are the
// same unit; the alias serves the criteria-based ballot views.
func (h *ResultsHandler) ByRound(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil || round < 1 || round > models.PhaseCount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid round")
		return
	}

	teams, votes, ok := h.load(w)
	if !ok {
		return
	}
	results := tabulate.Leaderboard(teams, votes, nil, tabulate.Scope{Phase: round})
	middleware.JSONResponse(w, http.StatusOK, results)
}

// ByCriterion handles GET /results/criterion/{criterion}. Ballots cast
// under since-deactivated criteria remain in scope.
func (h *ResultsHandler) ByCriterion(w http.ResponseWriter, r *http.Request) {
	criterion := r.PathValue("criterion")
	if criterion == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "criterion is required")
		return
	}

	teams, votes, ok := h.load(w)
	if !ok {
		return
	}
	results := tabulate.Leaderboard(teams, votes, nil, tabulate.Scope{Criterion: criterion})
	middleware.JSONResponse(w, http.StatusOK, results)
}

// Analytics handles GET /analytics: the slider reporting grid.
func (h *ResultsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	teams, votes, ok := h.load(w)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, tabulate.Analytics(teams, votes))
}

// Teams handles GET /teams.
func (h *ResultsHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, teams)
}

// Metrics handles GET /metrics: the fixed slider metric definitions.
func (h *ResultsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.Metrics)
}

// Criteria handles GET /criteria: active criteria for ballot selection.
func (h *ResultsHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.store.Criteria(true)
	if err != nil {
		slog.Error("failed to load criteria", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, criteria)
}
