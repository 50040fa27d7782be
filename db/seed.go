// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/models"
)

var seedTeams = []models.Team{
	{ID: 1, Name: "Vega", Code: "NOVA47"},
	{ID: 2, Name: "Spence", Code: "ORBIT92"},
	{ID: 3, Name: "Sterling", Code: "COSMO38"},
	{ID: 4, Name: "Strongbow", Code: "LUNAR65"},
	{ID: 5, Name: "Thorne", Code: "ASTRO21"},
}

var seedCriteria = []models.Criterion{
	{ID: "creativity", Name: "Creativity", Icon: "🎨", Rounds: []int{4},
		Description: "Originality and innovative thinking", DisplayOrder: 1, IsActive: true},
	{ID: "effectiveness", Name: "Effectiveness", Icon: "⚡", Rounds: []int{4},
		Description: "Impact and measurable results", DisplayOrder: 2, IsActive: true},
	{ID: "adaptation", Name: "Adaptation", Icon: "🔄", Rounds: []int{4},
		Description: "Ability to adjust and improve based on feedback", DisplayOrder: 3, IsActive: true},
}

// Seed inserts the fixed teams, one open lock row per phase, and the default
// criteria. Existing rows are left untouched, so running it on every boot is
// safe and admin edits survive restarts.
func Seed(db *sql.DB) error {
	for _, t := range seedTeams {
		_, err := db.Exec(`
			INSERT INTO teams (id, name, code) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, t.ID, t.Name, t.Code)
		if err != nil {
			return fmt.Errorf("failed to seed team %q: %w", t.Name, err)
		}
	}

	now := time.Now()
	for _, p := range models.Phases {
		_, err := db.Exec(`
			INSERT INTO phase_locks (phase, phase_name, is_locked, updated_at)
			VALUES ($1, $2, FALSE, $3)
			ON CONFLICT (phase) DO NOTHING
		`, p.ID, p.Name, now)
		if err != nil {
			return fmt.Errorf("failed to seed lock for phase %d: %w", p.ID, err)
		}
	}

	for _, c := range seedCriteria {
		rounds, err := json.Marshal(c.Rounds)
		if err != nil {
			return fmt.Errorf("failed to encode rounds for %q: %w", c.ID, err)
		}
		_, err = db.Exec(`
			INSERT INTO criteria (id, name, icon, rounds, description, display_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.Name, c.Icon, string(rounds), c.Description, c.DisplayOrder, c.IsActive)
		if err != nil {
			return fmt.Errorf("failed to seed criterion %q: %w", c.ID, err)
		}
	}

	return nil
}
