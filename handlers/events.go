// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cooperativeimpactlab/cibola-portal/store"
)

// watchableTables lists the tables a client may subscribe to over SSE.
var watchableTables = map[string]bool{
	store.TableTeams:       true,
	store.TableVotes:       true,
	store.TableCriteria:    true,
	store.TablePhaseLocks:  true,
	store.TableBonusPoints: true,
}

type EventsHandler struct {
	store *store.Store
}

func NewEventsHandler(st *store.Store) *EventsHandler {
	return &EventsHandler{store: st}
}

// Stream handles GET /events?table=votes: a server-sent event per change to
// the named table. Events carry no payload; clients re-fetch on receipt.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if !watchableTables[table] {
		http.Error(w, "unknown table", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Buffered so a notify during a slow write is not dropped; coalescing
	// beyond one pending event is fine for re-fetch semantics.
	changes := make(chan struct{}, 1)
	unsubscribe := h.store.Subscribe(table, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	fmt.Fprintf(w, "event: ready\ndata: %s\n\n", table)
	flusher.Flush()

	slog.Info("event stream opened", "table", table, "remote", r.RemoteAddr)
	for {
		select {
		case <-r.Context().Done():
			slog.Info("event stream closed", "table", table, "remote", r.RemoteAddr)
			return
		case <-changes:
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", table)
			flusher.Flush()
		}
	}
}
