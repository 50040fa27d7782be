// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/testutil"
)

func TestExportResultsCSV(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 5)
	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(1, "strategy"): 5}})
	if err := st.InsertBonus(models.BonusPoint{
		ID: "b1", TeamID: 1, Points: 2, Reason: "Canvassing",
		AwardedBy: "Admin", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("InsertBonus() error = %v", err)
	}

	req := testutil.MakeRequest("GET", "/admin/export/results.csv", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "results.csv") {
		t.Errorf("content disposition = %q", cd)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected header + 5 rows, got %d", len(records))
	}
	if records[0][0] != "Rank" || records[0][1] != "Team" {
		t.Errorf("header = %v", records[0])
	}
	// Team 1: 5 slider + 2 bonus on top.
	if records[1][1] != "Vega" || records[1][2] != "7" {
		t.Errorf("top row = %v", records[1])
	}
}

func TestExportAnalyticsCSV(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 5)
	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(1, "strategy"): 4}})

	req := testutil.MakeRequest("GET", "/admin/export/analytics.csv", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	// Header plus the full 5x3x3 grid.
	if len(records) != 1+5*3*3 {
		t.Fatalf("expected full grid, got %d records", len(records))
	}
	if records[0][0] != "Team" || records[0][2] != "Metric" {
		t.Errorf("header = %v", records[0])
	}
}

func TestExportReport(t *testing.T) {
	st, mux, cfg := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 5)
	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(2, "strategy"): 5}})

	req := testutil.MakeRequest("GET", "/admin/export/report.txt", nil, adminHeaders(cfg))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if !strings.Contains(body, "Campaign Playbook Election Results") {
		t.Errorf("report missing title:\n%s", body)
	}
	if !strings.Contains(body, "1st. Spence: 5 points") {
		t.Errorf("report missing standings line:\n%s", body)
	}
	if !strings.Contains(body, "5th.") {
		t.Errorf("report should list every team:\n%s", body)
	}
}
