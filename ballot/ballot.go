// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ballot validates and writes ballots. A submission passes the gate
// check, then the shape check for its vote type, then lands as a single
// upsert keyed (voter_id, phase, criterion); resubmission overwrites.
package ballot

import (
	"errors"
	"fmt"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/auth"
	"github.com/cooperativeimpactlab/cibola-portal/gate"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

type Validator struct {
	store *store.Store
	gate  *gate.Keeper
	now   func() time.Time
}

func NewValidator(st *store.Store, gk *gate.Keeper) *Validator {
	return &Validator{store: st, gate: gk, now: time.Now}
}

// Submit validates and persists one ballot for the given voter. On success
// it returns the confirmation receipt; on failure the error wraps one of
// the apperr sentinels and no state has changed.
func (v *Validator) Submit(voter models.Voter, req models.SubmitVoteRequest) (models.SubmitVoteResponse, error) {
	phase, ok := models.PhaseByID(req.Phase)
	if !ok {
		return models.SubmitVoteResponse{}, fmt.Errorf("%w: unknown phase %d", apperr.ErrInvalidInput, req.Phase)
	}
	if req.VoteType != phase.Type {
		return models.SubmitVoteResponse{}, fmt.Errorf("%w: phase %d takes %s ballots", apperr.ErrInvalidInput, phase.ID, phase.Type)
	}

	criterion, err := v.resolveCriterion(phase, req.Criterion)
	if err != nil {
		return models.SubmitVoteResponse{}, err
	}

	// Gate check. Locked means locked: voters with a prior ballot cannot
	// update it either.
	open, err := v.gate.IsOpen(phase.ID)
	if err != nil {
		return models.SubmitVoteResponse{}, err
	}
	if !open {
		return models.SubmitVoteResponse{}, fmt.Errorf("%w: phase %d", apperr.ErrGateLocked, phase.ID)
	}

	teams, err := v.store.Teams()
	if err != nil {
		return models.SubmitVoteResponse{}, err
	}
	var teamCode string
	opponents := map[int64]bool{}
	for _, t := range teams {
		if t.ID == voter.TeamID {
			teamCode = t.Code
			continue
		}
		opponents[t.ID] = true
	}
	if teamCode == "" {
		return models.SubmitVoteResponse{}, fmt.Errorf("%w: voter team %d", apperr.ErrNotFound, voter.TeamID)
	}

	var data models.VoteData
	switch phase.Type {
	case models.VoteTypeRanking:
		if err := validateRanking(req.Rankings, opponents); err != nil {
			return models.SubmitVoteResponse{}, err
		}
		data.Rankings = req.Rankings
	case models.VoteTypeSlider:
		if err := validateSlider(req.Scores, req.Confirmed, opponents); err != nil {
			return models.SubmitVoteResponse{}, err
		}
		data.Scores = req.Scores
	}

	_, err = v.store.VoteByKey(voter.VoterID, phase.ID, criterion)
	updated := err == nil
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return models.SubmitVoteResponse{}, err
	}

	vote := models.Vote{
		VoterID:   voter.VoterID,
		TeamID:    voter.TeamID,
		Phase:     phase.ID,
		Criterion: criterion,
		VoteType:  phase.Type,
		VoteData:  data,
		Timestamp: v.now(),
	}
	if err := v.store.UpsertVote(vote); err != nil {
		return models.SubmitVoteResponse{}, err
	}

	message := "Ballot submitted successfully"
	if updated {
		message = "Ballot updated successfully"
	}
	return models.SubmitVoteResponse{
		Confirmation: auth.ConfirmationNumber(phase.ID, teamCode),
		Updated:      updated,
		Message:      message,
	}, nil
}

// resolveCriterion normalizes the ballot's criterion against the phase.
// Slider phases never carry one. Ranking phases carry one exactly when
// active criteria are scoped to the round; the submitted id must be among
// them.
func (v *Validator) resolveCriterion(phase models.Phase, criterion string) (string, error) {
	if phase.Type == models.VoteTypeSlider {
		if criterion != "" {
			return "", fmt.Errorf("%w: slider phases take no criterion", apperr.ErrInvalidInput)
		}
		return "", nil
	}

	criteria, err := v.store.Criteria(true)
	if err != nil {
		return "", err
	}
	scoped := []models.Criterion{}
	for _, c := range criteria {
		if c.AppliesToRound(phase.ID) {
			scoped = append(scoped, c)
		}
	}
	if len(scoped) == 0 {
		if criterion != "" {
			return "", fmt.Errorf("%w: phase %d has no criteria", apperr.ErrInvalidInput, phase.ID)
		}
		return "", nil
	}
	for _, c := range scoped {
		if c.ID == criterion {
			return criterion, nil
		}
	}
	return "", fmt.Errorf("%w: unknown criterion %q for phase %d", apperr.ErrInvalidInput, criterion, phase.ID)
}

// validateRanking requires exactly one entry per opposing team: no
// duplicates, no unknown ids, never the voter's own team.
func validateRanking(rankings []int64, opponents map[int64]bool) error {
	if len(rankings) != len(opponents) {
		return fmt.Errorf("%w: expected %d ranked teams, got %d", apperr.ErrIncompleteBallot, len(opponents), len(rankings))
	}
	seen := map[int64]bool{}
	for _, id := range rankings {
		if !opponents[id] {
			return fmt.Errorf("%w: team %d is not rankable", apperr.ErrIncompleteBallot, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: team %d ranked twice", apperr.ErrIncompleteBallot, id)
		}
		seen[id] = true
	}
	return nil
}

// validateSlider requires a score for every (opposing team, metric) pair,
// each inside [SliderMin, SliderMax], no stray keys, and an explicit
// confirmation for every scored team. The confirmation set is the
// server-side form of the UI's per-team lock-in toggles.
func validateSlider(scores map[string]int, confirmed []int64, opponents map[int64]bool) error {
	expected := len(opponents) * len(models.Metrics)
	if len(scores) != expected {
		return fmt.Errorf("%w: expected %d scores, got %d", apperr.ErrIncompleteBallot, expected, len(scores))
	}
	for key, score := range scores {
		teamID, metricID, err := models.ParseScoreKey(key)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrIncompleteBallot, err)
		}
		if !opponents[teamID] {
			return fmt.Errorf("%w: team %d is not scorable", apperr.ErrIncompleteBallot, teamID)
		}
		if _, ok := models.MetricByID(metricID); !ok {
			return fmt.Errorf("%w: unknown metric %q", apperr.ErrIncompleteBallot, metricID)
		}
		if score < models.SliderMin || score > models.SliderMax {
			return fmt.Errorf("%w: score %d for %s outside %d-%d", apperr.ErrIncompleteBallot,
				score, key, models.SliderMin, models.SliderMax)
		}
	}
	// With the counts equal and every key valid, each pair is present
	// exactly once. Confirmation must cover each opponent exactly once.
	confirmedSet := map[int64]bool{}
	for _, id := range confirmed {
		if !opponents[id] || confirmedSet[id] {
			return fmt.Errorf("%w: bad confirmation for team %d", apperr.ErrIncompleteBallot, id)
		}
		confirmedSet[id] = true
	}
	if len(confirmedSet) != len(opponents) {
		return fmt.Errorf("%w: all %d teams must be confirmed before submission", apperr.ErrIncompleteBallot, len(opponents))
	}
	return nil
}
