// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session maps a (team code, display name) pair to a stable voter
// identity, creating one on first sight.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/auth"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

type Resolver struct {
	store *store.Store
	now   func() time.Time
}

func NewResolver(st *store.Store) *Resolver {
	return &Resolver{store: st, now: time.Now}
}

// Resolve authenticates a voter. The team code is matched
// case-insensitively; the name is trimmed and must be non-empty. If a voter
// with the same name already exists on the team, their voter_id is reused:
// identity must be stable across sessions so ballot uniqueness per voter
// holds. Otherwise a new voter is persisted.
func (r *Resolver) Resolve(teamCode, name string) (models.Voter, models.Team, error) {
	team, err := r.store.TeamByCode(strings.TrimSpace(teamCode))
	if errors.Is(err, apperr.ErrNotFound) {
		return models.Voter{}, models.Team{}, apperr.ErrInvalidCredential
	}
	if err != nil {
		return models.Voter{}, models.Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Voter{}, models.Team{}, apperr.ErrInvalidInput
	}

	voter, err := r.store.VoterByNameTeam(name, team.ID)
	if err == nil {
		return voter, team, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return models.Voter{}, models.Team{}, err
	}

	now := r.now()
	voter = models.Voter{
		VoterID:   auth.NewVoterID(team.Code, name, now),
		Name:      name,
		TeamID:    team.ID,
		CreatedAt: now,
	}
	if err := r.store.InsertVoter(voter); err != nil {
		return models.Voter{}, models.Team{}, err
	}
	return voter, team, nil
}
