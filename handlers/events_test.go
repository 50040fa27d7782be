// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cooperativeimpactlab/cibola-portal/models"
	"github.com/cooperativeimpactlab/cibola-portal/testutil"
)

func TestEventsStreamBadTable(t *testing.T) {
	_, mux, _ := setupServer(t)

	for _, path := range []string{"/events", "/events?table=voters_secret", "/events?table="} {
		req := testutil.MakeRequest("GET", path, nil, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestEventsStream(t *testing.T) {
	st, mux, _ := setupServer(t)
	voter := testutil.CreateTestVoter(t, st, "Dana", 1)

	ctx, cancel := context.WithCancel(context.Background())
	req := testutil.MakeRequest("GET", "/events?table=votes", nil, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		mux.ServeHTTP(w, req)
		close(done)
	}()

	// Give the handler time to register its subscription, then mutate.
	time.Sleep(100 * time.Millisecond)
	testutil.SubmitTestVote(t, st, voter, 1, "", models.VoteTypeSlider,
		models.VoteData{Scores: map[string]int{models.ScoreKey(2, "strategy"): 3}})
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate on context cancellation")
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event: ready") {
		t.Errorf("missing ready event:\n%s", body)
	}
	if !strings.Contains(body, "event: change\ndata: votes") {
		t.Errorf("missing change event:\n%s", body)
	}
}
