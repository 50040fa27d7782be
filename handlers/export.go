// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/export"
	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/store"
	"github.com/cooperativeimpactlab/cibola-portal/tabulate"
)

type ExportHandler struct {
	store *store.Store
}

func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

func (h *ExportHandler) leaderboard(w http.ResponseWriter) ([]models.TeamResult, bool) {
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return nil, false
	}
	votes, err := h.store.Votes()
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.TaxonomyError(w, err)
		return nil, false
	}
	bonuses, err := h.store.BonusPoints()
	if err != nil {
		slog.Error("failed to load bonus points", "error", err)
		middleware.TaxonomyError(w, err)
		return nil, false
	}
	return tabulate.Leaderboard(teams, votes, bonuses, tabulate.Scope{}), true
}

// ResultsCSV handles GET /admin/export/results.csv.
func (h *ExportHandler) ResultsCSV(w http.ResponseWriter, r *http.Request) {
	results, ok := h.leaderboard(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	if err := export.WriteResultsCSV(w, results); err != nil {
		slog.Error("failed to write results csv", "error", err)
	}
}

// AnalyticsCSV handles GET /admin/export/analytics.csv.
func (h *ExportHandler) AnalyticsCSV(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.Teams()
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}
	votes, err := h.store.Votes()
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.TaxonomyError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="analytics.csv"`)
	if err := export.WriteAnalyticsCSV(w, tabulate.Analytics(teams, votes)); err != nil {
		slog.Error("failed to write analytics csv", "error", err)
	}
}

// Report handles GET /admin/export/report.txt: the printable standings.
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	results, ok := h.leaderboard(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
	if err := export.WriteReport(w, results, time.Now()); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}
