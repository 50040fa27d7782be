// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/testutil"
)

func TestSubmitVote(t *testing.T) {
	st, mux, _ := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)
	scores, confirmed := testutil.SliderScores(t, st, voter.TeamID, 4)

	body := models.SubmitVoteRequest{
		Phase:     1,
		VoteType:  models.VoteTypeSlider,
		Scores:    scores,
		Confirmed: confirmed,
	}

	// First submission: 201 with a confirmation number.
	req := testutil.MakeRequest("POST", "/votes", body, voterHeaders(voter.VoterID))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Confirmation == "" {
		t.Error("expected a confirmation number")
	}
	if resp.Updated {
		t.Error("first submission reported as update")
	}

	// Resubmission: 200 and updated flag.
	req = testutil.MakeRequest("POST", "/votes", body, voterHeaders(voter.VoterID))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if !resp.Updated {
		t.Error("resubmission should report updated")
	}
}

func TestSubmitVoteRejections(t *testing.T) {
	st, mux, _ := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)
	scores, confirmed := testutil.SliderScores(t, st, voter.TeamID, 4)

	tests := []struct {
		name           string
		headers        map[string]string
		body           models.SubmitVoteRequest
		expectedStatus int
	}{
		{
			name:           "missing voter header",
			headers:        nil,
			body:           models.SubmitVoteRequest{Phase: 1, VoteType: models.VoteTypeSlider, Scores: scores, Confirmed: confirmed},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown voter",
			headers:        voterHeaders("NOVA47-GHOST-000000"),
			body:           models.SubmitVoteRequest{Phase: 1, VoteType: models.VoteTypeSlider, Scores: scores, Confirmed: confirmed},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "incomplete scores",
			headers:        voterHeaders(voter.VoterID),
			body:           models.SubmitVoteRequest{Phase: 1, VoteType: models.VoteTypeSlider, Scores: map[string]int{models.ScoreKey(2, "strategy"): 3}, Confirmed: confirmed},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "wrong vote type for phase",
			headers:        voterHeaders(voter.VoterID),
			body:           models.SubmitVoteRequest{Phase: 1, VoteType: models.VoteTypeRanking, Rankings: []int64{2, 3, 4, 5}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown phase",
			headers:        voterHeaders(voter.VoterID),
			body:           models.SubmitVoteRequest{Phase: 7, VoteType: models.VoteTypeSlider, Scores: scores, Confirmed: confirmed},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/votes", tt.body, tt.headers)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestSubmitVoteLockedPhase(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)
	scores, confirmed := testutil.SliderScores(t, st, voter.TeamID, 4)

	// Lock phase 1 through the admin endpoint.
	req := testutil.MakeRequest("POST", "/admin/phases/1/toggle", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{
		Phase:     1,
		VoteType:  models.VoteTypeSlider,
		Scores:    scores,
		Confirmed: confirmed,
	}, voterHeaders(voter.VoterID))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestVotesMine(t *testing.T) {
	st, mux, _ := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)
	other := testutil.CreateTestVoter(t, st, "Lee", 2)

	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(2, "strategy"): 3}})
	testutil.SubmitTestVote(t, st, other, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(1, "strategy"): 5}})

	req := testutil.MakeRequest("GET", "/votes/mine", nil, voterHeaders(voter.VoterID))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var votes []models.Vote
	testutil.AssertJSON(t, w, &votes)
	if len(votes) != 1 {
		t.Fatalf("expected only own ballots, got %d", len(votes))
	}
	if votes[0].VoterID != voter.VoterID {
		t.Errorf("ballot belongs to %q", votes[0].VoterID)
	}
}

func TestPhases(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)

	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(2, "strategy"): 3}})

	// Lock phase 2: phase 1 stays visible for this voter (already voted),
	// phase 2 shows locked.
	req := testutil.MakeRequest("POST", "/admin/phases/2/toggle", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/phases", nil, voterHeaders(voter.VoterID))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var statuses []models.PhaseStatus
	testutil.AssertJSON(t, w, &statuses)
	if len(statuses) != models.PhaseCount {
		t.Fatalf("expected %d phases, got %d", models.PhaseCount, len(statuses))
	}

	byPhase := map[int]models.PhaseStatus{}
	for _, s := range statuses {
		byPhase[s.Phase] = s
	}

	if !byPhase[1].Voted || !byPhase[1].Visible {
		t.Errorf("phase 1 = %+v, want voted and visible", byPhase[1])
	}
	if !byPhase[2].Locked {
		t.Error("phase 2 should report locked")
	}
	if len(byPhase[4].Criteria) != 3 {
		t.Errorf("phase 4 criteria = %v, want the three seeded ids", byPhase[4].Criteria)
	}
	if byPhase[1].VotedKeys[0] != "1" {
		t.Errorf("phase 1 voted keys = %v", byPhase[1].VotedKeys)
	}
}

func TestPhasesVisibilityRule(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)

	// Locking phase 2 hides phase 1 from voters with no ballot there.
	req := testutil.MakeRequest("POST", "/admin/phases/2/toggle", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/phases", nil, voterHeaders(voter.VoterID))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var statuses []models.PhaseStatus
	testutil.AssertJSON(t, w, &statuses)
	for _, s := range statuses {
		if s.Phase == 1 && s.Visible {
			t.Error("phase 1 should be hidden once phase 2 is locked")
		}
		if s.Phase == 3 && !s.Visible {
			t.Error("phase 3 should stay visible")
		}
	}
}
