// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package gate holds the phase lock state machine. Each phase is OPEN or
// LOCKED; the only transition is an administrator toggle. While a phase is
// locked the ballot validator rejects every submission for it, updates
// included.
package gate

import (
	"errors"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

type Keeper struct {
	store *store.Store
}

func New(st *store.Store) *Keeper {
	return &Keeper{store: st}
}

// IsOpen reports whether the phase accepts ballots. A phase with no lock row
// is open: unlocked is the initial state of every unit.
func (k *Keeper) IsOpen(phase int) (bool, error) {
	lock, err := k.store.PhaseLock(phase)
	if errors.Is(err, apperr.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !lock.Locked, nil
}

// Toggle flips the lock flag for a phase and returns the new locked state.
// Concurrent admin toggles resolve last-write-wins with no warning.
func (k *Keeper) Toggle(phase int) (bool, error) {
	p, ok := models.PhaseByID(phase)
	if !ok {
		return false, apperr.ErrInvalidInput
	}

	locked := false
	lock, err := k.store.PhaseLock(phase)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		// no row yet: phase was open, toggle locks it
	case err != nil:
		return false, err
	default:
		locked = lock.Locked
	}

	newState := !locked
	if err := k.store.SetPhaseLock(phase, p.Name, newState); err != nil {
		return false, err
	}
	return newState, nil
}

// Statuses returns the lock row for every phase, in phase order.
func (k *Keeper) Statuses() ([]models.PhaseLock, error) {
	return k.store.PhaseLocks()
}

// Visible reports whether a phase should still be offered to a voter.
// Phases are consumed in order: once any later phase has been locked,
// earlier phases disappear from selection, except for voters who already
// hold a ballot there.
func Visible(phase int, locked map[int]bool, voted map[int]bool) bool {
	if voted[phase] {
		return true
	}
	for later := phase + 1; later <= models.PhaseCount; later++ {
		if locked[later] {
			return false
		}
	}
	return true
}
