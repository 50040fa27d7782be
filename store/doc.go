// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides typed storage access with change notification.

# Queries

Store wraps *sql.DB with typed reads and upsert-on-conflict writes for
each table:

	st := store.New(conn)
	teams, err := st.Teams()
	err = st.UpsertVote(vote)

Storage failures map onto the apperr taxonomy: missing rows return
apperr.ErrNotFound, everything else wraps apperr.ErrStorageUnavailable.

# Ballot Keys

Votes are keyed by (voter_id, phase, criterion); UpsertVote overwrites on
conflict, so resubmission never grows the table. Slider ballots use the
empty criterion.

# Change Notification

Every successful mutation fires the subscribers registered for its table:

	unsubscribe := st.Subscribe(store.TableVotes, func() { refresh() })
	defer unsubscribe()

Callbacks carry no payload; subscribers re-fetch. The registry is purely
in-process.
*/
package store
