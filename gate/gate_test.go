// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/gate"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/testutil"
)

func TestToggle(t *testing.T) {
	gk := gate.New(testutil.NewStore(t))

	open, err := gk.IsOpen(1)
	require.NoError(t, err)
	assert.True(t, open, "phases start open")

	locked, err := gk.Toggle(1)
	require.NoError(t, err)
	assert.True(t, locked)

	open, err = gk.IsOpen(1)
	require.NoError(t, err)
	assert.False(t, open)

	locked, err = gk.Toggle(1)
	require.NoError(t, err)
	assert.False(t, locked)

	open, err = gk.IsOpen(1)
	require.NoError(t, err)
	assert.True(t, open)
}

func TestToggleUnknownPhase(t *testing.T) {
	gk := gate.New(testutil.NewStore(t))

	_, err := gk.Toggle(9)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestToggleIsIndependentPerPhase(t *testing.T) {
	gk := gate.New(testutil.NewStore(t))

	_, err := gk.Toggle(2)
	require.NoError(t, err)

	for _, phase := range []int{1, 3, 4} {
		open, err := gk.IsOpen(phase)
		require.NoError(t, err)
		assert.True(t, open, "phase %d should stay open", phase)
	}
}

func TestStatuses(t *testing.T) {
	gk := gate.New(testutil.NewStore(t))

	_, err := gk.Toggle(3)
	require.NoError(t, err)

	locks, err := gk.Statuses()
	require.NoError(t, err)
	require.Len(t, locks, models.PhaseCount)

	for _, lock := range locks {
		assert.Equal(t, lock.Phase == 3, lock.Locked, "phase %d", lock.Phase)
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		phase  int
		locked map[int]bool
		voted  map[int]bool
		want   bool
	}{
		{"nothing locked", 1, map[int]bool{}, map[int]bool{}, true},
		{"own phase locked", 2, map[int]bool{2: true}, map[int]bool{}, true},
		{"later phase locked hides earlier", 1, map[int]bool{2: true}, map[int]bool{}, false},
		{"last phase locked hides all earlier", 3, map[int]bool{4: true}, map[int]bool{}, false},
		{"voted keeps closed phase visible", 1, map[int]bool{2: true}, map[int]bool{1: true}, true},
		{"final phase never hidden by later", 4, map[int]bool{1: true, 2: true, 3: true}, map[int]bool{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Visible(tt.phase, tt.locked, tt.voted))
		})
	}
}
