// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cooperativeimpactlab/cibola-portal/auth"
	"github.com/cooperativeimpactlab/cibola-portal/cliparse"
	"github.com/cooperativeimpactlab/cibola-portal/db"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
// and seed data. Every test gets its own database; no cleanup needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}

	return conn
}

// NewStore is SetupTestDB wrapped in a store.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8230,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		AdminPassword: "test-admin-password",
	}
}

// CreateTestVoter registers a voter on the given team and returns the voter.
func CreateTestVoter(t *testing.T, st *store.Store, name string, teamID int64) models.Voter {
	t.Helper()

	team, err := st.TeamByID(teamID)
	if err != nil {
		t.Fatalf("Failed to look up team %d: %v", teamID, err)
	}
	voter := models.Voter{
		VoterID:   auth.NewVoterID(team.Code, name, time.Now()),
		Name:      name,
		TeamID:    teamID,
		CreatedAt: time.Now(),
	}
	if err := st.InsertVoter(voter); err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
	return voter
}

// SubmitTestVote writes a ballot row directly, bypassing validation.
func SubmitTestVote(t *testing.T, st *store.Store, voter models.Voter, phase int, criterion, voteType string, data models.VoteData) {
	t.Helper()

	err := st.UpsertVote(models.Vote{
		VoterID:   voter.VoterID,
		TeamID:    voter.TeamID,
		Phase:     phase,
		Criterion: criterion,
		VoteType:  voteType,
		VoteData:  data,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to submit test vote: %v", err)
	}
}

// SliderScores builds a full slider ballot scoring every opponent of teamID
// at the given value on every metric.
func SliderScores(t *testing.T, st *store.Store, teamID int64, value int) (map[string]int, []int64) {
	t.Helper()

	teams, err := st.Teams()
	if err != nil {
		t.Fatalf("Failed to load teams: %v", err)
	}
	scores := map[string]int{}
	var confirmed []int64
	for _, team := range teams {
		if team.ID == teamID {
			continue
		}
		confirmed = append(confirmed, team.ID)
		for _, m := range models.Metrics {
			scores[models.ScoreKey(team.ID, m.ID)] = value
		}
	}
	return scores, confirmed
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
