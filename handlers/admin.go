// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/cooperativeimpactlab/cibola-portal/auth"
	"github.com/cooperativeimpactlab/cibola-portal/cliparse"
	"github.com/cooperativeimpactlab/cibola-portal/gate"
	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

type AdminHandler struct {
	store *store.Store
	gate  *gate.Keeper
	cfg   cliparse.Config
}

func NewAdminHandler(st *store.Store, gk *gate.Keeper, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, gate: gk, cfg: cfg}
}

// Login handles POST /admin/login. The shared password is the whole trust
// model; success just tells the client to keep sending it.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !auth.CheckAdminPassword(req.Password, h.cfg.AdminPassword) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect password. Access denied.")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// TogglePhase handles POST /admin/phases/{phase}/toggle.
func (h *AdminHandler) TogglePhase(w http.ResponseWriter, r *http.Request) {
	phase, err := strconv.Atoi(r.PathValue("phase"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid phase")
		return
	}

	locked, err := h.gate.Toggle(phase)
	if err != nil {
		slog.Error("failed to toggle phase lock", "phase", phase, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("phase lock toggled", "phase", phase, "locked", locked)
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"phase":     phase,
		"is_locked": locked,
	})
}

// PhaseLocks handles GET /admin/phases.
func (h *AdminHandler) PhaseLocks(w http.ResponseWriter, r *http.Request) {
	locks, err := h.gate.Statuses()
	if err != nil {
		slog.Error("failed to load phase locks", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, locks)
}

// UpdateTeam handles PUT /admin/teams/{id}: rename or recode. Team identity
// is immutable once ballots reference it, so only name and code change.
func (h *AdminHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var req models.TeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Name == "" || req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and code are required")
		return
	}

	if _, err := h.store.TeamByID(id); err != nil {
		middleware.TaxonomyError(w, err)
		return
	}

	team := models.Team{ID: id, Name: req.Name, Code: req.Code}
	if err := h.store.UpsertTeam(team); err != nil {
		slog.Error("failed to update team", "team_id", id, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("team updated", "team_id", id, "name", req.Name)
	middleware.JSONResponse(w, http.StatusOK, team)
}

// Criteria handles GET /admin/criteria: all criteria, inactive included.
func (h *AdminHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.store.Criteria(false)
	if err != nil {
		slog.Error("failed to load criteria", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, criteria)
}

// UpsertCriterion handles POST /admin/criteria: create or edit. Historical
// ballots keep their criterion id; deactivation only hides the criterion
// from new ballots.
func (h *AdminHandler) UpsertCriterion(w http.ResponseWriter, r *http.Request) {
	var req models.CriterionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" || len(req.Rounds) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id, name, and rounds are required")
		return
	}
	for _, round := range req.Rounds {
		if round < 1 || round > models.PhaseCount {
			middleware.ErrorResponse(w, http.StatusBadRequest, "rounds must be between 1 and 4")
			return
		}
	}

	criterion := models.Criterion{
		ID:           req.ID,
		Name:         req.Name,
		Icon:         req.Icon,
		Rounds:       req.Rounds,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	if err := h.store.UpsertCriterion(criterion); err != nil {
		slog.Error("failed to upsert criterion", "criterion", req.ID, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("criterion saved", "criterion", req.ID, "active", req.IsActive)
	middleware.JSONResponse(w, http.StatusOK, criterion)
}

// Voters handles GET /admin/voters: the registry with team names and ballot
// counts.
func (h *AdminHandler) Voters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.store.Voters()
	if err != nil {
		slog.Error("failed to load voters", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	votes, err := h.store.Votes()
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	teamNames := map[int64]string{}
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	voteCounts := map[string]int{}
	for _, v := range votes {
		voteCounts[v.VoterID]++
	}

	type voterRow struct {
		models.Voter
		TeamName  string `json:"team_name"`
		VoteCount int    `json:"vote_count"`
	}
	rows := make([]voterRow, 0, len(voters))
	for _, v := range voters {
		rows = append(rows, voterRow{
			Voter:     v,
			TeamName:  teamNames[v.TeamID],
			VoteCount: voteCounts[v.VoterID],
		})
	}
	middleware.JSONResponse(w, http.StatusOK, rows)
}

// DeleteVoter handles DELETE /admin/voters/{id}. Ballots are not cascaded;
// they stay in the tabulation, orphaned by voter_id.
func (h *AdminHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id is required")
		return
	}
	if err := h.store.DeleteVoter(voterID); err != nil {
		middleware.TaxonomyError(w, err)
		return
	}
	slog.Info("voter deleted", "voter_id", voterID)
	w.WriteHeader(http.StatusNoContent)
}

// Bonuses handles GET /admin/bonus.
func (h *AdminHandler) Bonuses(w http.ResponseWriter, r *http.Request) {
	bonuses, err := h.store.BonusPoints()
	if err != nil {
		slog.Error("failed to load bonus points", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, bonuses)
}

// AddBonus handles POST /admin/bonus: a signed adjustment with a required
// reason. No edit path; delete and re-add.
func (h *AdminHandler) AddBonus(w http.ResponseWriter, r *http.Request) {
	var req models.BonusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" || req.Points == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "points and reason are required")
		return
	}
	if _, err := h.store.TeamByID(req.TeamID); err != nil {
		middleware.TaxonomyError(w, err)
		return
	}

	bonus := models.BonusPoint{
		ID:        uuid.NewString(),
		TeamID:    req.TeamID,
		Points:    req.Points,
		Reason:    req.Reason,
		AwardedBy: "Admin",
		CreatedAt: time.Now(),
	}
	if err := h.store.InsertBonus(bonus); err != nil {
		slog.Error("failed to add bonus", "team_id", req.TeamID, "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	slog.Info("bonus awarded", "team_id", req.TeamID, "points", req.Points)
	middleware.JSONResponse(w, http.StatusCreated, bonus)
}

// DeleteBonus handles DELETE /admin/bonus/{id}.
func (h *AdminHandler) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bonus id is required")
		return
	}
	if err := h.store.DeleteBonus(id); err != nil {
		middleware.TaxonomyError(w, err)
		return
	}
	slog.Info("bonus deleted", "bonus_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Monitoring handles GET /admin/monitoring: per-team turnout per phase,
// overall progress, and the recent-ballot feed.
func (h *AdminHandler) Monitoring(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	voters, err := h.store.Voters()
	if err != nil {
		slog.Error("failed to load voters", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	votes, err := h.store.Votes()
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	votersByTeam := map[int64]int{}
	voterNames := map[string]string{}
	for _, v := range voters {
		votersByTeam[v.TeamID]++
		voterNames[v.VoterID] = v.Name
	}
	teamNames := map[int64]string{}
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	// One expected ballot per voter per phase. Criteria-split ranking
	// ballots count once toward turnout.
	votedPhases := map[string]map[int]bool{}
	for _, v := range votes {
		if votedPhases[v.VoterID] == nil {
			votedPhases[v.VoterID] = map[int]bool{}
		}
		votedPhases[v.VoterID][v.Phase] = true
	}
	votedByTeamPhase := map[int64]map[int]int{}
	for _, v := range voters {
		for phase := range votedPhases[v.VoterID] {
			if votedByTeamPhase[v.TeamID] == nil {
				votedByTeamPhase[v.TeamID] = map[int]int{}
			}
			votedByTeamPhase[v.TeamID][phase]++
		}
	}

	turnout := []models.TeamTurnout{}
	for _, t := range teams {
		for _, p := range models.Phases {
			row := models.TeamTurnout{
				TeamID:   t.ID,
				TeamName: t.Name,
				Phase:    p.ID,
				Voters:   votersByTeam[t.ID],
				Voted:    votedByTeamPhase[t.ID][p.ID],
			}
			if row.Voters > 0 {
				row.Percentage = row.Voted * 100 / row.Voters
			}
			turnout = append(turnout, row)
		}
	}

	recent := []models.RecentVote{}
	for i, v := range votes {
		if i == 15 {
			break
		}
		name := voterNames[v.VoterID]
		if name == "" {
			name = "Unknown"
		}
		phaseName := ""
		if p, ok := models.PhaseByID(v.Phase); ok {
			phaseName = p.Name
		}
		recent = append(recent, models.RecentVote{
			VoterID:   v.VoterID,
			VoterName: name,
			TeamName:  teamNames[v.TeamID],
			Phase:     v.Phase,
			PhaseName: phaseName,
			VoteType:  v.VoteType,
			Timestamp: v.Timestamp,
			Submitted: humanize.Time(v.Timestamp),
		})
	}

	totalVoted := 0
	for _, phases := range votedPhases {
		totalVoted += len(phases)
	}
	resp := models.MonitoringResponse{
		TotalVoters:   len(voters),
		TotalVotes:    totalVoted,
		ExpectedVotes: len(voters) * models.PhaseCount,
		Turnout:       turnout,
		Recent:        recent,
	}
	if resp.ExpectedVotes > 0 {
		resp.Percentage = resp.TotalVotes * 100 / resp.ExpectedVotes
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
