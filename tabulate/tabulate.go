// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"fmt"
	"math"
	"sort"

	"github.com/cooperativeimpactlab/cibola-portal/models"
)

// Scope restricts the ballot set fed to a fold. The zero Scope matches
// every ballot.
type Scope struct {
	Phase     int    // 0 = all phases
	Criterion string // "" = all criteria
}

func (s Scope) matches(v models.Vote) bool {
	if s.Phase != 0 && v.Phase != s.Phase {
		return false
	}
	if s.Criterion != "" && v.Criterion != s.Criterion {
		return false
	}
	return true
}

// Leaderboard folds ballots and bonus entries into one result row per team,
// ranked descending by total points. It is pure: same inputs, same output.
//
// Ranking ballots pay N+1-i points to the team at 0-indexed rank i, N being
// the number of ranked opponents (4 opponents pay 5,4,3,2). Slider ballots
// pay each raw score to the scored team. Bonus entries add their signed sum.
// Ties break by ascending team id. Entries naming a team absent from the
// team set are skipped; an empty scope yields all-zero rows.
//
// Callers producing scoped views pass nil bonuses: bonus points are
// phase-independent and belong only to the grand total.
func Leaderboard(teams []models.Team, votes []models.Vote, bonuses []models.BonusPoint, sc Scope) []models.TeamResult {
	byTeam := make(map[int64]*models.TeamResult, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &models.TeamResult{Team: t, Breakdown: map[string]int{}}
	}

	for _, v := range votes {
		if !sc.matches(v) {
			continue
		}
		switch v.VoteType {
		case models.VoteTypeRanking:
			n := len(v.VoteData.Rankings)
			for i, teamID := range v.VoteData.Rankings {
				row, ok := byTeam[teamID]
				if !ok {
					continue
				}
				points := n + 1 - i
				row.RankingPoints += points
				row.Breakdown[breakdownKey(v)] += points
			}
		case models.VoteTypeSlider:
			for key, score := range v.VoteData.Scores {
				teamID, _, err := models.ParseScoreKey(key)
				if err != nil {
					continue
				}
				row, ok := byTeam[teamID]
				if !ok {
					continue
				}
				row.SliderPoints += score
				row.Breakdown[breakdownKey(v)] += score
			}
		}
	}

	for _, b := range bonuses {
		if row, ok := byTeam[b.TeamID]; ok {
			row.BonusPoints += b.Points
		}
	}

	results := make([]models.TeamResult, 0, len(byTeam))
	for _, row := range byTeam {
		row.TotalPoints = row.RankingPoints + row.SliderPoints + row.BonusPoints
		if len(row.Breakdown) == 0 {
			row.Breakdown = nil
		}
		results = append(results, *row)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		// Deterministic tie-break: lower team id wins.
		return a.Team.ID < b.Team.ID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

func breakdownKey(v models.Vote) string {
	if v.Criterion != "" {
		return fmt.Sprintf("%s-R%d", v.Criterion, v.Phase)
	}
	return fmt.Sprintf("P%d", v.Phase)
}

// Analytics derives the reporting grid for slider ballots: one cell per
// (team, slider phase, metric) with mean, total, vote count, and the
// distribution of discrete score values. Derived view only; the ballots
// remain the single source of truth.
func Analytics(teams []models.Team, votes []models.Vote) []models.MetricAnalytics {
	cells := []models.MetricAnalytics{}

	for _, team := range teams {
		for _, phase := range models.Phases {
			if phase.Type != models.VoteTypeSlider {
				continue
			}
			for _, metric := range models.Metrics {
				cell := models.MetricAnalytics{
					TeamID:       team.ID,
					TeamName:     team.Name,
					Phase:        phase.ID,
					PhaseName:    phase.Name,
					MetricID:     metric.ID,
					MetricName:   metric.Name,
					Distribution: map[int]int{},
				}
				for s := models.SliderMin; s <= models.SliderMax; s++ {
					cell.Distribution[s] = 0
				}

				key := models.ScoreKey(team.ID, metric.ID)
				for _, v := range votes {
					if v.VoteType != models.VoteTypeSlider || v.Phase != phase.ID {
						continue
					}
					score, ok := v.VoteData.Scores[key]
					if !ok {
						continue
					}
					cell.Total += score
					cell.VoteCount++
					if score >= models.SliderMin && score <= models.SliderMax {
						cell.Distribution[score]++
					}
				}
				if cell.VoteCount > 0 {
					// One decimal, matching the reporting UI.
					cell.Average = math.Round(float64(cell.Total)/float64(cell.VoteCount)*10) / 10
				}
				cells = append(cells, cell)
			}
		}
	}
	return cells
}
