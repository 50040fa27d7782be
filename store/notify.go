// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "sync"

// notifier is an in-process, per-table invalidation registry. Callbacks
// carry no payload; a fired callback means "this table changed, re-fetch".
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

func (n *notifier) subscribe(table string, fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[string]map[int]func())
	}
	if n.subs[table] == nil {
		n.subs[table] = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.subs[table][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[table], id)
	}
}

func (n *notifier) notify(table string) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs[table]))
	for _, fn := range n.subs[table] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	// Run outside the lock so a callback may unsubscribe itself.
	for _, fn := range fns {
		fn()
	}
}
