// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/apperr"
	"github.com/cooperativeimpactlab/cibola-portal/models"
)

// Table names, used as subscription keys.
const (
	TableTeams       = "teams"
	TableVoters      = "voters"
	TableVotes       = "votes"
	TableCriteria    = "criteria"
	TablePhaseLocks  = "phase_locks"
	TableBonusPoints = "bonus_points"
)

// Store is the catalog store: typed reads, upsert-on-conflict writes, and
// per-table change notification. All queries stay inside the SQL dialect
// shared by PostgreSQL and SQLite.
type Store struct {
	db       *sql.DB
	notifier notifier
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Subscribe registers fn to run after any successful mutation of the named
// table. No payload is delivered; consumers re-fetch. The returned function
// cancels the subscription.
func (s *Store) Subscribe(table string, fn func()) func() {
	return s.notifier.subscribe(table, fn)
}

// wrapErr folds driver errors into the shared taxonomy: missing rows become
// ErrNotFound, everything else ErrStorageUnavailable.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("%w: %v", apperr.ErrStorageUnavailable, err)
}

// Teams

func (s *Store) Teams() ([]models.Team, error) {
	rows, err := s.db.Query(`SELECT id, name, code FROM teams ORDER BY id`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Code); err != nil {
			return nil, wrapErr(err)
		}
		teams = append(teams, t)
	}
	return teams, wrapErr(rows.Err())
}

func (s *Store) TeamByID(id int64) (models.Team, error) {
	var t models.Team
	err := s.db.QueryRow(`SELECT id, name, code FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Code)
	return t, wrapErr(err)
}

// TeamByCode looks a team up by its access code, case-insensitively.
func (s *Store) TeamByCode(code string) (models.Team, error) {
	var t models.Team
	err := s.db.QueryRow(`SELECT id, name, code FROM teams WHERE UPPER(code) = UPPER($1)`, code).
		Scan(&t.ID, &t.Name, &t.Code)
	return t, wrapErr(err)
}

func (s *Store) UpsertTeam(t models.Team) error {
	_, err := s.db.Exec(`
		INSERT INTO teams (id, name, code) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = $2, code = $3
	`, t.ID, t.Name, t.Code)
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TableTeams)
	return nil
}

// Voters

func (s *Store) Voters() ([]models.Voter, error) {
	rows, err := s.db.Query(`
		SELECT voter_id, name, team_id, created_at FROM voters ORDER BY created_at
	`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.VoterID, &v.Name, &v.TeamID, &v.CreatedAt); err != nil {
			return nil, wrapErr(err)
		}
		voters = append(voters, v)
	}
	return voters, wrapErr(rows.Err())
}

func (s *Store) VoterByID(voterID string) (models.Voter, error) {
	var v models.Voter
	err := s.db.QueryRow(`
		SELECT voter_id, name, team_id, created_at FROM voters WHERE voter_id = $1
	`, voterID).Scan(&v.VoterID, &v.Name, &v.TeamID, &v.CreatedAt)
	return v, wrapErr(err)
}

// VoterByNameTeam finds an existing voter by exact name within a team. This
// lookup is what keeps voter identity stable across sessions.
func (s *Store) VoterByNameTeam(name string, teamID int64) (models.Voter, error) {
	var v models.Voter
	err := s.db.QueryRow(`
		SELECT voter_id, name, team_id, created_at
		FROM voters WHERE name = $1 AND team_id = $2
	`, name, teamID).Scan(&v.VoterID, &v.Name, &v.TeamID, &v.CreatedAt)
	return v, wrapErr(err)
}

func (s *Store) InsertVoter(v models.Voter) error {
	_, err := s.db.Exec(`
		INSERT INTO voters (voter_id, name, team_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.VoterID, v.Name, v.TeamID, v.CreatedAt)
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TableVoters)
	return nil
}

// DeleteVoter removes the voter row only. Ballots cast under the voter_id
// remain and stay tabulable.
func (s *Store) DeleteVoter(voterID string) error {
	res, err := s.db.Exec(`DELETE FROM voters WHERE voter_id = $1`, voterID)
	if err != nil {
		return wrapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	s.notifier.notify(TableVoters)
	return nil
}

// Votes

const voteColumns = `voter_id, team_id, phase, criterion, vote_type, vote_data, ts`

func (s *Store) scanVotes(rows *sql.Rows) ([]models.Vote, error) {
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var data string
		if err := rows.Scan(&v.VoterID, &v.TeamID, &v.Phase, &v.Criterion, &v.VoteType, &data, &v.Timestamp); err != nil {
			return nil, wrapErr(err)
		}
		if err := json.Unmarshal([]byte(data), &v.VoteData); err != nil {
			return nil, fmt.Errorf("corrupt vote_data for %s/P%d: %w", v.VoterID, v.Phase, err)
		}
		votes = append(votes, v)
	}
	return votes, wrapErr(rows.Err())
}

// Votes returns every ballot, newest first.
func (s *Store) Votes() ([]models.Vote, error) {
	rows, err := s.db.Query(`SELECT ` + voteColumns + ` FROM votes ORDER BY ts DESC`)
	if err != nil {
		return nil, wrapErr(err)
	}
	return s.scanVotes(rows)
}

func (s *Store) VotesByVoter(voterID string) ([]models.Vote, error) {
	rows, err := s.db.Query(`
		SELECT `+voteColumns+` FROM votes WHERE voter_id = $1 ORDER BY ts DESC
	`, voterID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return s.scanVotes(rows)
}

func (s *Store) VoteByKey(voterID string, phase int, criterion string) (models.Vote, error) {
	rows, err := s.db.Query(`
		SELECT `+voteColumns+` FROM votes
		WHERE voter_id = $1 AND phase = $2 AND criterion = $3
	`, voterID, phase, criterion)
	if err != nil {
		return models.Vote{}, wrapErr(err)
	}
	votes, err := s.scanVotes(rows)
	if err != nil {
		return models.Vote{}, err
	}
	if len(votes) == 0 {
		return models.Vote{}, apperr.ErrNotFound
	}
	return votes[0], nil
}

// UpsertVote writes a ballot with conflict target (voter_id, phase,
// criterion): insert if absent, overwrite if present. The whole payload is
// one row, so a failed submission never leaves a half-written ballot.
func (s *Store) UpsertVote(v models.Vote) error {
	data, err := json.Marshal(v.VoteData)
	if err != nil {
		return fmt.Errorf("failed to encode vote_data: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO votes (voter_id, team_id, phase, criterion, vote_type, vote_data, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (voter_id, phase, criterion)
		DO UPDATE SET team_id = $2, vote_type = $5, vote_data = $6, ts = $7
	`, v.VoterID, v.TeamID, v.Phase, v.Criterion, v.VoteType, string(data), v.Timestamp)
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TableVotes)
	return nil
}

// Criteria

func (s *Store) Criteria(activeOnly bool) ([]models.Criterion, error) {
	q := `SELECT id, name, icon, rounds, description, display_order, is_active
	      FROM criteria ORDER BY display_order`
	if activeOnly {
		q = `SELECT id, name, icon, rounds, description, display_order, is_active
		     FROM criteria WHERE is_active ORDER BY display_order`
	}
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	criteria := []models.Criterion{}
	for rows.Next() {
		var c models.Criterion
		var rounds string
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &rounds, &c.Description, &c.DisplayOrder, &c.IsActive); err != nil {
			return nil, wrapErr(err)
		}
		if err := json.Unmarshal([]byte(rounds), &c.Rounds); err != nil {
			return nil, fmt.Errorf("corrupt rounds for criterion %q: %w", c.ID, err)
		}
		criteria = append(criteria, c)
	}
	return criteria, wrapErr(rows.Err())
}

func (s *Store) UpsertCriterion(c models.Criterion) error {
	rounds, err := json.Marshal(c.Rounds)
	if err != nil {
		return fmt.Errorf("failed to encode rounds: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO criteria (id, name, icon, rounds, description, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = $2, icon = $3, rounds = $4, description = $5,
			display_order = $6, is_active = $7
	`, c.ID, c.Name, c.Icon, string(rounds), c.Description, c.DisplayOrder, c.IsActive)
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TableCriteria)
	return nil
}

// Phase locks

func (s *Store) PhaseLocks() ([]models.PhaseLock, error) {
	rows, err := s.db.Query(`
		SELECT phase, phase_name, is_locked, updated_at FROM phase_locks ORDER BY phase
	`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	locks := []models.PhaseLock{}
	for rows.Next() {
		var l models.PhaseLock
		if err := rows.Scan(&l.Phase, &l.Name, &l.Locked, &l.UpdatedAt); err != nil {
			return nil, wrapErr(err)
		}
		locks = append(locks, l)
	}
	return locks, wrapErr(rows.Err())
}

func (s *Store) PhaseLock(phase int) (models.PhaseLock, error) {
	var l models.PhaseLock
	err := s.db.QueryRow(`
		SELECT phase, phase_name, is_locked, updated_at FROM phase_locks WHERE phase = $1
	`, phase).Scan(&l.Phase, &l.Name, &l.Locked, &l.UpdatedAt)
	return l, wrapErr(err)
}

// SetPhaseLock writes the lock flag and stamps updated_at. Last write wins
// between concurrent admin sessions.
func (s *Store) SetPhaseLock(phase int, name string, locked bool) error {
	_, err := s.db.Exec(`
		INSERT INTO phase_locks (phase, phase_name, is_locked, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phase) DO UPDATE SET is_locked = $3, updated_at = $4
	`, phase, name, locked, time.Now())
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TablePhaseLocks)
	return nil
}

// Bonus points

func (s *Store) BonusPoints() ([]models.BonusPoint, error) {
	rows, err := s.db.Query(`
		SELECT id, team_id, points, reason, awarded_by, created_at
		FROM bonus_points ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	bonuses := []models.BonusPoint{}
	for rows.Next() {
		var b models.BonusPoint
		if err := rows.Scan(&b.ID, &b.TeamID, &b.Points, &b.Reason, &b.AwardedBy, &b.CreatedAt); err != nil {
			return nil, wrapErr(err)
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, wrapErr(rows.Err())
}

func (s *Store) InsertBonus(b models.BonusPoint) error {
	_, err := s.db.Exec(`
		INSERT INTO bonus_points (id, team_id, points, reason, awarded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, b.ID, b.TeamID, b.Points, b.Reason, b.AwardedBy, b.CreatedAt)
	if err != nil {
		return wrapErr(err)
	}
	s.notifier.notify(TableBonusPoints)
	return nil
}

func (s *Store) DeleteBonus(id string) error {
	res, err := s.db.Exec(`DELETE FROM bonus_points WHERE id = $1`, id)
	if err != nil {
		return wrapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	s.notifier.notify(TableBonusPoints)
	return nil
}
