// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/session"
)

type SessionHandler struct {
	resolver *session.Resolver
}

func NewSessionHandler(resolver *session.Resolver) *SessionHandler {
	return &SessionHandler{resolver: resolver}
}

// Resolve handles POST /session: team code + first name in, stable voter
// identity out. First sight of a (name, team) pair creates the voter.
func (h *SessionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, team, err := h.resolver.Resolve(req.TeamCode, req.FirstName)
	if err != nil {
		slog.Warn("session resolve failed", "team_code", req.TeamCode, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("voter authenticated", "voter_id", voter.VoterID, "team", team.Name)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		VoterID:  voter.VoterID,
		Name:     voter.Name,
		TeamID:   voter.TeamID,
		TeamName: team.Name,
		TeamCode: team.Code,
	})
}
