// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/cooperativeimpactlab/cibola-portal/ballot"
	"github.com/cooperativeimpactlab/cibola-portal/cliparse"
	"github.com/cooperativeimpactlab/cibola-portal/gate"
	"github.com/cooperativeimpactlab/cibola-portal/handlers"
	"github.com/cooperativeimpactlab/cibola-portal/middleware"
	"github.com/cooperativeimpactlab/cibola-portal/session"
	"github.com/cooperativeimpactlab/cibola-portal/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize core services and handlers
	gateKeeper := gate.New(st)
	resolver := session.NewResolver(st)
	validator := ballot.NewValidator(st, gateKeeper)

	sessionHandler := handlers.NewSessionHandler(resolver)
	votesHandler := handlers.NewVotesHandler(st, validator, gateKeeper)
	resultsHandler := handlers.NewResultsHandler(st)
	adminHandler := handlers.NewAdminHandler(st, gateKeeper, cfg)
	exportHandler := handlers.NewExportHandler(st)
	eventsHandler := handlers.NewEventsHandler(st)

	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminPassword, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter session and ballot operations
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.Resolve))
	mux.HandleFunc("GET /phases", middleware.WithLogging(votesHandler.Phases))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votesHandler.Submit))
	mux.HandleFunc("GET /votes/mine", middleware.WithLogging(votesHandler.Mine))

	// Results and reference data (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.Leaderboard))
	mux.HandleFunc("GET /results/phase/{phase}", middleware.WithLogging(resultsHandler.ByPhase))
	mux.HandleFunc("GET /results/round/{round}", middleware.WithLogging(resultsHandler.ByRound))
	mux.HandleFunc("GET /results/criterion/{criterion}", middleware.WithLogging(resultsHandler.ByCriterion))
	mux.HandleFunc("GET /analytics", middleware.WithLogging(resultsHandler.Analytics))
	mux.HandleFunc("GET /teams", middleware.WithLogging(resultsHandler.Teams))
	mux.HandleFunc("GET /metrics", middleware.WithLogging(resultsHandler.Metrics))
	mux.HandleFunc("GET /criteria", middleware.WithLogging(resultsHandler.Criteria))

	// Change notification stream
	mux.HandleFunc("GET /events", eventsHandler.Stream)

	// Admin operations
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/phases", admin(adminHandler.PhaseLocks))
	mux.HandleFunc("POST /admin/phases/{phase}/toggle", admin(adminHandler.TogglePhase))
	mux.HandleFunc("PUT /admin/teams/{id}", admin(adminHandler.UpdateTeam))
	mux.HandleFunc("GET /admin/criteria", admin(adminHandler.Criteria))
	mux.HandleFunc("POST /admin/criteria", admin(adminHandler.UpsertCriterion))
	mux.HandleFunc("GET /admin/voters", admin(adminHandler.Voters))
	mux.HandleFunc("DELETE /admin/voters/{id}", admin(adminHandler.DeleteVoter))
	mux.HandleFunc("GET /admin/bonus", admin(adminHandler.Bonuses))
	mux.HandleFunc("POST /admin/bonus", admin(adminHandler.AddBonus))
	mux.HandleFunc("DELETE /admin/bonus/{id}", admin(adminHandler.DeleteBonus))
	mux.HandleFunc("GET /admin/monitoring", admin(adminHandler.Monitoring))

	// Exports (admin)
	mux.HandleFunc("GET /admin/export/results.csv", admin(exportHandler.ResultsCSV))
	mux.HandleFunc("GET /admin/export/analytics.csv", admin(exportHandler.AnalyticsCSV))
	mux.HandleFunc("GET /admin/export/report.txt", admin(exportHandler.Report))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cibola-portal API v1"))
	})

	return mux
}
