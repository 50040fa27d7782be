// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/cooperativeimpactlab/cibola-portal/cliparse"
	"github.com/cooperativeimpactlab/cibola-portal/router"
	"github.com/cooperativeimpactlab/cibola-portal/store"
	"github.com/cooperativeimpactlab/cibola-portal/testutil"
)

// setupServer wires a fresh seeded store into the full route table, so
// handler tests exercise routing and middleware too.
func setupServer(t *testing.T) (*store.Store, http.Handler, cliparse.Config) {
	t.Helper()
	st := testutil.NewStore(t)
	cfg := testutil.GetTestConfig()
	return st, router.NewRouter(st, cfg), cfg
}

func adminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Password": cfg.AdminPassword}
}

func voterHeaders(voterID string) map[string]string {
	return map[string]string{"X-Voter-ID": voterID}
}
