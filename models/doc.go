// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Fixed Catalogs

The phase schedule and slider metrics are compile-time constants:

  - Phases: four phases, 1-3 slider, 4 ranking
  - Metrics: strategy, execution, messaging, each with 1-5 descriptions

Look up by id with PhaseByID and MetricByID.

# Domain Types

  - Team: fixed competitor with a join code
  - Voter: lazily created identity, unique per (name, team)
  - Vote: one ballot keyed by (voter, phase, criterion)
  - VoteData: rankings (ordered team ids) or scores (score-key → 1-5)
  - Criterion: admin-editable ranked-choice judging dimension
  - PhaseLock: gate flag per phase
  - BonusPoint: signed manual adjustment with reason

Score keys pair a team with a metric; build and split them with ScoreKey
and ParseScoreKey.

# Request Types

  - SessionRequest: team_code, first_name
  - SubmitVoteRequest: phase, criterion, vote_type, rankings, scores, confirmed
  - BonusRequest, TeamRequest, CriterionRequest, AdminLoginRequest

# Response Types

  - SessionResponse: voter_id and team identity
  - SubmitVoteResponse: confirmation number, updated flag
  - PhaseStatus: per-voter lock, visibility, and cast-ballot state
  - TeamResult: leaderboard row with point breakdown
  - MetricAnalytics: per (team, phase, metric) slider statistics
  - MonitoringResponse: turnout rows and recent-ballot feed
  - ErrorResponse: error, message

# Constants

Ballot styles:

	VoteTypeRanking = "ranking"
	VoteTypeSlider  = "slider"

Slider bounds:

	SliderMin = 1
	SliderMax = 5
*/
package models
