// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/ballot"
	"github.com/cooperativeimpactlab/cibola-portal/gate"
	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

type VotesHandler struct {
	store     *store.Store
	validator *ballot.Validator
	gate      *gate.Keeper
}

func NewVotesHandler(st *store.Store, validator *ballot.Validator, gk *gate.Keeper) *VotesHandler {
	return &VotesHandler{store: st, validator: validator, gate: gk}
}

// requireVoter resolves the X-Voter-ID header to a voter row.
func (h *VotesHandler) requireVoter(w http.ResponseWriter, r *http.Request) (models.Voter, bool) {
	voterID := r.Header.Get("X-Voter-ID")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return models.Voter{}, false
	}
	voter, err := h.store.VoterByID(voterID)
	if err != nil {
		slog.Warn("unknown voter", "voter_id", voterID, "error", err)
		middleware.TaxonomyError(w, fmt.Errorf("%w: unknown voter", apperr.ErrInvalidCredential))
		return models.Voter{}, false
	}
	return voter, true
}

// Submit handles POST /votes: gate check, shape check, then upsert,
// returning a confirmation receipt.
func (h *VotesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.requireVoter(w, r)
	if !ok {
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.validator.Submit(voter, req)
	if err != nil {
		slog.Warn("ballot rejected", "voter_id", voter.VoterID, "phase", req.Phase, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("ballot recorded", "voter_id", voter.VoterID, "phase", req.Phase,
		"criterion", req.Criterion, "updated", resp.Updated)

	status := http.StatusCreated
	if resp.Updated {
		status = http.StatusOK
	}
	middleware.JSONResponse(w, status, resp)
}

// Mine handles GET /votes/mine: every ballot the voter has cast.
func (h *VotesHandler) Mine(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.requireVoter(w, r)
	if !ok {
		return
	}

	votes, err := h.store.VotesByVoter(voter.VoterID)
	if err != nil {
		slog.Error("failed to load votes", "voter_id", voter.VoterID, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}

// Phases handles GET /phases: the per-voter view of every phase, covering
// lock state, monotonic-order visibility, what the voter already cast, and
// the criteria in scope for ranking phases.
func (h *VotesHandler) Phases(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.requireVoter(w, r)
	if !ok {
		return
	}

	locks, err := h.gate.Statuses()
	if err != nil {
		slog.Error("failed to load phase locks", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	locked := map[int]bool{}
	for _, l := range locks {
		locked[l.Phase] = l.Locked
	}

	votes, err := h.store.VotesByVoter(voter.VoterID)
	if err != nil {
		slog.Error("failed to load votes", "voter_id", voter.VoterID, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	voted := map[int]bool{}
	votedKeys := map[int][]string{}
	for _, v := range votes {
		voted[v.Phase] = true
		key := fmt.Sprintf("%d", v.Phase)
		if v.Criterion != "" {
			key = fmt.Sprintf("%d-%s", v.Phase, v.Criterion)
		}
		votedKeys[v.Phase] = append(votedKeys[v.Phase], key)
	}

	criteria, err := h.store.Criteria(true)
	if err != nil {
		slog.Error("failed to load criteria", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	statuses := make([]models.PhaseStatus, 0, len(models.Phases))
	for _, p := range models.Phases {
		ps := models.PhaseStatus{
			Phase:     p.ID,
			Name:      p.Name,
			Type:      p.Type,
			Locked:    locked[p.ID],
			Visible:   gate.Visible(p.ID, locked, voted),
			Voted:     voted[p.ID],
			VotedKeys: votedKeys[p.ID],
		}
		if p.Type == models.VoteTypeRanking {
			for _, c := range criteria {
				if c.AppliesToRound(p.ID) {
					ps.Criteria = append(ps.Criteria, c.ID)
				}
			}
		}
		statuses = append(statuses, ps)
	}

	middleware.JSONResponse(w, http.StatusOK, statuses)
}
