// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package state implements the entity store: the authoritative in-memory
// collections of clients, projects, time entries and invoices, plus the
// single optional active timer.
//
// Every transition is total. A rejected operation returns a sentinel error
// and leaves the state untouched; no operation panics. Readers take deep
// snapshots via Store.Snapshot, so derivations never observe a
// half-applied transition.
//
// # Thread Safety
//
// Store is safe for concurrent use. State values returned by Snapshot are
// owned by the caller.
package state

import (
	"errors"
	"fmt"
)

// Sentinel errors for store transitions.
var (
	// ErrNotFound is returned when an update or delete names an
	// identifier that is not present in the store. The state is
	// unchanged.
	ErrNotFound = errors.New("entity not found")

	// ErrTimerAlreadyRunning is returned by StartTimer when a timer is
	// active. The running timer is never overwritten.
	ErrTimerAlreadyRunning = errors.New("a timer is already running")

	// ErrTimerNotRunning is returned by StopTimer when no timer is
	// active. Callers typically treat this as benign.
	ErrTimerNotRunning = errors.New("no timer is running")

	// ErrInvalidTransition is returned when an invoice status change is
	// not permitted by the lifecycle (draft -> sent -> paid/overdue).
	ErrInvalidTransition = errors.New("invalid invoice status transition")
)

// ValidationError wraps a go-playground/validator failure for an inbound
// entity payload. The transition it guards is rejected before any state
// mutation.
type ValidationError struct {
	// Entity is the kind of entity that failed validation.
	Entity string

	// Err is the underlying validator error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
