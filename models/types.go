// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Vote type constants
const (
	VoteTypeRanking = "ranking"
	VoteTypeSlider  = "slider"
)

// Slider score bounds (inclusive)
const (
	SliderMin = 1
	SliderMax = 5
)

// PhaseCount is the number of assessment phases in the competition.
const PhaseCount = 4

// Phase is one ordered stage of the competition. The four phases are fixed
// at build time; only their lock flags live in the database.
type Phase struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // VoteTypeRanking or VoteTypeSlider
}

// Phases lists the assessment phases in order. Phases 1-3 collect slider
// scores on every metric; phase 4 collects ranked-choice ballots.
var Phases = []Phase{
	{ID: 1, Name: "Opening Pitch", Type: VoteTypeSlider},
	{ID: 2, Name: "Field Operations", Type: VoteTypeSlider},
	{ID: 3, Name: "Debate Night", Type: VoteTypeSlider},
	{ID: 4, Name: "Final Playbook", Type: VoteTypeRanking},
}

// PhaseByID returns the phase definition for the given id.
func PhaseByID(id int) (Phase, bool) {
	for _, p := range Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// Metric is one axis of slider evaluation, fixed in code and active across
// all slider phases.
type Metric struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Question     string         `json:"question"`
	Descriptions map[int]string `json:"descriptions"`
}

// Metrics lists the slider evaluation metrics.
var Metrics = []Metric{
	{
		ID:       "strategy",
		Name:     "Strategic Clarity",
		Question: "How clear and coherent is the team's campaign strategy?",
		Descriptions: map[int]string{
			1: "No discernible strategy; actions appear improvised",
			2: "A strategy exists but is muddled or inconsistent",
			3: "A workable strategy with some gaps in reasoning",
			4: "A clear strategy with well-justified choices",
			5: "An exceptional strategy that anticipates the field",
		},
	},
	{
		ID:       "execution",
		Name:     "Execution",
		Question: "How well did the team deliver on its plan?",
		Descriptions: map[int]string{
			1: "Plan largely unexecuted or abandoned",
			2: "Partial delivery with significant misses",
			3: "Solid delivery of the core plan",
			4: "Strong delivery including the difficult parts",
			5: "Flawless delivery under pressure",
		},
	},
	{
		ID:       "messaging",
		Name:     "Message Discipline",
		Question: "How persuasive and consistent is the team's message?",
		Descriptions: map[int]string{
			1: "Message is confused or contradictory",
			2: "Message drifts between audiences",
			3: "Consistent message with uneven persuasive force",
			4: "Consistent and persuasive across audiences",
			5: "A message other teams end up responding to",
		},
	},
}

// MetricByID returns the metric definition for the given id.
func MetricByID(id string) (Metric, bool) {
	for _, m := range Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Domain types

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Voter struct {
	VoterID   string    `json:"voter_id"`
	Name      string    `json:"name"`
	TeamID    int64     `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Criterion is a configurable evaluation axis for ranked-choice phases,
// scoped to a subset of rounds. Deactivating a criterion hides it from new
// ballots but never deletes or reinterprets ballots cast under it.
type Criterion struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Rounds       []int  `json:"rounds"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// AppliesToRound reports whether the criterion is in scope for a round.
func (c Criterion) AppliesToRound(round int) bool {
	for _, r := range c.Rounds {
		if r == round {
			return true
		}
	}
	return false
}

// VoteData is the payload of a ballot. Exactly one of Rankings or Scores is
// populated, matching the ballot's vote type.
type VoteData struct {
	// Rankings holds team ids best-first, one per opposing team.
	Rankings []int64 `json:"rankings,omitempty"`
	// Scores maps "{team_id}-{metric_id}" to a score in [SliderMin, SliderMax].
	Scores map[string]int `json:"scores,omitempty"`
}

// Vote is one voter's ballot for one (phase, criterion) unit. Criterion is
// empty except on ranked phases that have active criteria in scope.
type Vote struct {
	VoterID   string    `json:"voter_id"`
	TeamID    int64     `json:"team_id"` // the voter's own team
	Phase     int       `json:"phase"`
	Criterion string    `json:"criterion,omitempty"`
	VoteType  string    `json:"vote_type"`
	VoteData  VoteData  `json:"vote_data"`
	Timestamp time.Time `json:"timestamp"`
}

// BonusPoint is an admin-issued signed adjustment to a team's total,
// independent of any phase. Append-only apart from deletion.
type BonusPoint struct {
	ID        string    `json:"id"`
	TeamID    int64     `json:"team_id"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	AwardedBy string    `json:"awarded_by"`
	CreatedAt time.Time `json:"created_at"`
}

// PhaseLock is the gate flag for one phase.
type PhaseLock struct {
	Phase     int       `json:"phase"`
	Name      string    `json:"phase_name"`
	Locked    bool      `json:"is_locked"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoreKey builds the "{team_id}-{metric_id}" key used in slider payloads.
func ScoreKey(teamID int64, metricID string) string {
	return fmt.Sprintf("%d-%s", teamID, metricID)
}

// ParseScoreKey splits a slider payload key into team id and metric id.
func ParseScoreKey(key string) (int64, string, error) {
	teamPart, metricID, ok := strings.Cut(key, "-")
	if !ok {
		return 0, "", fmt.Errorf("malformed score key %q", key)
	}
	teamID, err := strconv.ParseInt(teamPart, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed score key %q: %w", key, err)
	}
	return teamID, metricID, nil
}

// Request types

type SessionRequest struct {
	TeamCode  string `json:"team_code"`
	FirstName string `json:"first_name"`
}

type SubmitVoteRequest struct {
	Phase     int    `json:"phase"`
	Criterion string `json:"criterion,omitempty"`
	VoteType  string `json:"vote_type"`
	// Rankings for ranking ballots: opposing team ids best-first.
	Rankings []int64 `json:"rankings,omitempty"`
	// Scores for slider ballots: "{team_id}-{metric_id}" -> score.
	Scores map[string]int `json:"scores,omitempty"`
	// Confirmed lists the team ids the voter locked in before submitting.
	// Required for slider ballots; must equal the set of scored teams.
	Confirmed []int64 `json:"confirmed,omitempty"`
}

type BonusRequest struct {
	TeamID int64  `json:"team_id"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type TeamRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CriterionRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Rounds       []int  `json:"rounds"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Response types

type SessionResponse struct {
	VoterID  string `json:"voter_id"`
	Name     string `json:"name"`
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	TeamCode string `json:"team_code"`
}

type SubmitVoteResponse struct {
	Confirmation string `json:"confirmation"`
	Updated      bool   `json:"updated"`
	Message      string `json:"message"`
}

// PhaseStatus is the per-voter view of one phase: its gate state, whether
// the monotonic-order rule still offers it, and what the voter already cast.
type PhaseStatus struct {
	Phase     int      `json:"phase"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Locked    bool     `json:"locked"`
	Visible   bool     `json:"visible"`
	Voted     bool     `json:"voted"`
	Criteria  []string `json:"criteria,omitempty"` // active criterion ids in scope
	VotedKeys []string `json:"voted_keys,omitempty"`
}

// TeamResult is one leaderboard row.
type TeamResult struct {
	Team          Team           `json:"team"`
	RankingPoints int            `json:"ranking_points"`
	SliderPoints  int            `json:"slider_points"`
	BonusPoints   int            `json:"bonus_points"`
	TotalPoints   int            `json:"total_points"`
	Rank          int            `json:"rank"` // 1-indexed
	Breakdown     map[string]int `json:"breakdown,omitempty"`
}

// MetricAnalytics is the derived reporting view for one (team, phase,
// metric) cell of the slider grid.
type MetricAnalytics struct {
	TeamID       int64       `json:"team_id"`
	TeamName     string      `json:"team_name"`
	Phase        int         `json:"phase"`
	PhaseName    string      `json:"phase_name"`
	MetricID     string      `json:"metric_id"`
	MetricName   string      `json:"metric_name"`
	Average      float64     `json:"average"`
	Total        int         `json:"total"`
	VoteCount    int         `json:"vote_count"`
	Distribution map[int]int `json:"distribution"` // score value -> count
}

// TeamTurnout is the monitoring view of one team's participation in a phase.
type TeamTurnout struct {
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name"`
	Phase      int    `json:"phase"`
	Voters     int    `json:"voters"`
	Voted      int    `json:"voted"`
	Percentage int    `json:"percentage"`
}

// RecentVote is one row of the monitoring feed.
type RecentVote struct {
	VoterID   string    `json:"voter_id"`
	VoterName string    `json:"voter_name"`
	TeamName  string    `json:"team_name"`
	Phase     int       `json:"phase"`
	PhaseName string    `json:"phase_name"`
	VoteType  string    `json:"vote_type"`
	Timestamp time.Time `json:"timestamp"`
	Submitted string    `json:"submitted"` // relative, e.g. "2 minutes ago"
}

type MonitoringResponse struct {
	TotalVoters   int           `json:"total_voters"`
	TotalVotes    int           `json:"total_votes"`
	ExpectedVotes int           `json:"expected_votes"`
	Percentage    int           `json:"percentage"`
	Turnout       []TeamTurnout `json:"turnout"`
	Recent        []RecentVote  `json:"recent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
