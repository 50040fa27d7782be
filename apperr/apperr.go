// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apperr defines the error taxonomy shared by the session resolver,
// ballot validator, gate, and store. Every user-facing failure wraps one of
// these sentinels so handlers can map errors to HTTP statuses uniformly.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredential: unknown team code or bad admin password.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidInput: a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIncompleteBallot: a ballot payload is partial or out of range.
	ErrIncompleteBallot = errors.New("incomplete ballot")
	// ErrGateLocked: the target phase is closed to submissions.
	ErrGateLocked = errors.New("phase locked")
	// ErrStorageUnavailable: transient backend failure; the caller may
	// resubmit the identical request (writes are idempotent upserts).
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound: reference to a missing team, voter, or criterion.
	ErrNotFound = errors.New("not found")
)

// HTTPStatus maps a taxonomy error to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrIncompleteBallot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrGateLocked):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
