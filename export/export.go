// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders tabulation output as CSV and as a printable text
// report. It consumes plain result rows and never touches storage.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cooperativeimpactlab/cibola-portal/models"
)

// WriteResultsCSV writes the leaderboard with rank, team, and the point
// breakdown columns.
func WriteResultsCSV(w io.Writer, results []models.TeamResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Rank", "Team", "Total Points", "Slider Points", "Ranking Points", "Bonus Points"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Team.Name,
			strconv.Itoa(r.TotalPoints),
			strconv.Itoa(r.SliderPoints),
			strconv.Itoa(r.RankingPoints),
			strconv.Itoa(r.BonusPoints),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnalyticsCSV writes the per (team, phase, metric) slider analysis.
func WriteAnalyticsCSV(w io.Writer, cells []models.MetricAnalytics) error {
	cw := csv.NewWriter(w)
	header := []string{"Team", "Phase", "Metric", "Average", "Total",
		"5 Stars", "4 Stars", "3 Stars", "2 Stars", "1 Star", "Total Votes"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range cells {
		record := []string{
			c.TeamName,
			c.PhaseName,
			c.MetricName,
			strconv.FormatFloat(c.Average, 'f', 1, 64),
			strconv.Itoa(c.Total),
			strconv.Itoa(c.Distribution[5]),
			strconv.Itoa(c.Distribution[4]),
			strconv.Itoa(c.Distribution[3]),
			strconv.Itoa(c.Distribution[2]),
			strconv.Itoa(c.Distribution[1]),
			strconv.Itoa(c.VoteCount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes the printable results listing.
func WriteReport(w io.Writer, results []models.TeamResult, generatedAt time.Time) error {
	if _, err := fmt.Fprintf(w, "State of Cibola — Campaign Playbook Election Results\nGenerated: %s\n\n",
		generatedAt.Format("January 2, 2006 15:04 MST")); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s. %s: %d points\n",
			humanize.Ordinal(r.Rank), r.Team.Name, r.TotalPoints); err != nil {
			return err
		}
	}
	return nil
}
