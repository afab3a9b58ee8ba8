// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/timekeep/services/tracker/ident"
)

// validate is the validator instance for inbound entity payloads.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// StoreOption is a functional option for configuring a Store.
type StoreOption func(*Store)

// Store owns the entity state and applies transitions to it.
//
// The store is an injected value, never a package-level singleton: the
// caller constructs it (usually from a persisted snapshot) and hands it to
// whatever surfaces need it. There is exactly one writer path (the
// transition methods); readers use Snapshot.
//
// Thread Safety: Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	state  State
	ids    ident.Generator
	clock  func() time.Time
	logger *slog.Logger
}

// NewStore creates a Store with the given options.
//
// Default configuration:
//   - empty initial state
//   - UUID identifier generator
//   - time.Now clock
//   - no logging
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		ids:   ident.UUIDGenerator{},
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithState seeds the store from a persisted snapshot.
//
// The active timer is intentionally dropped: a timer is never restored as
// running across process restarts, even if one was persisted.
func WithState(st State) StoreOption {
	return func(s *Store) {
		st.Timer = nil
		s.state = st
	}
}

// WithGenerator sets a custom identifier generator.
func WithGenerator(g ident.Generator) StoreOption {
	return func(s *Store) {
		s.ids = g
	}
}

// WithClock sets the wall-clock source used by StartTimer.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLogger sets the logger for transition events. Nil disables logging.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// Snapshot returns a deep copy of the current state.
//
// Outputs:
//
//	State - Caller-owned copy. Mutating it never affects the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) logTransition(op string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(op, args...)
	}
}

// --- Clients ---

// AddClient validates and prepends a new client.
//
// An empty ID is filled in from the identifier generator. Returns the
// stored client.
func (s *Store) AddClient(c Client) (Client, error) {
	if err := validate.Struct(c); err != nil {
		return Client{}, &ValidationError{Entity: "client", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.ids.New(ident.KindClient)
	}
	s.state.Clients = append([]Client{c}, s.state.Clients...)
	s.logTransition("client added", slog.String("id", c.ID))
	return c, nil
}

// UpdateClient replaces the client with a matching identifier.
// Returns ErrNotFound (state unchanged) if the identifier is absent.
func (s *Store) UpdateClient(c Client) error {
	if err := validate.Struct(c); err != nil {
		return &ValidationError{Entity: "client", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Clients {
		if s.state.Clients[i].ID == c.ID {
			s.state.Clients[i] = c
			s.logTransition("client updated", slog.String("id", c.ID))
			return nil
		}
	}
	return ErrNotFound
}

// DeleteClient removes a client and cascades: every project and time entry
// referencing it is removed as well.
func (s *Store) DeleteClient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	clients := s.state.Clients[:0:0]
	for _, c := range s.state.Clients {
		if c.ID == id {
			found = true
			continue
		}
		clients = append(clients, c)
	}
	if !found {
		return ErrNotFound
	}
	s.state.Clients = clients

	projects := s.state.Projects[:0:0]
	for _, p := range s.state.Projects {
		if p.ClientID != id {
			projects = append(projects, p)
		}
	}
	s.state.Projects = projects

	entries := s.state.Entries[:0:0]
	for _, e := range s.state.Entries {
		if e.ClientID != id {
			entries = append(entries, e)
		}
	}
	s.state.Entries = entries

	s.logTransition("client deleted", slog.String("id", id))
	return nil
}

// --- Projects ---

// AddProject validates and prepends a new project. The owning client must
// exist.
func (s *Store) AddProject(p Project) (Project, error) {
	if err := validate.Struct(p); err != nil {
		return Project{}, &ValidationError{Entity: "project", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Client(p.ClientID); !ok {
		return Project{}, ErrNotFound
	}
	if p.ID == "" {
		p.ID = s.ids.New(ident.KindProject)
	}
	s.state.Projects = append([]Project{p}, s.state.Projects...)
	s.logTransition("project added", slog.String("id", p.ID))
	return p, nil
}

// UpdateProject replaces the project with a matching identifier.
func (s *Store) UpdateProject(p Project) error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Entity: "project", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == p.ID {
			s.state.Projects[i] = p
			s.logTransition("project updated", slog.String("id", p.ID))
			return nil
		}
	}
	return ErrNotFound
}

// DeleteProject removes a project and every time entry referencing it.
// The owning client is untouched.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	projects := s.state.Projects[:0:0]
	for _, p := range s.state.Projects {
		if p.ID == id {
			found = true
			continue
		}
		projects = append(projects, p)
	}
	if !found {
		return ErrNotFound
	}
	s.state.Projects = projects

	entries := s.state.Entries[:0:0]
	for _, e := range s.state.Entries {
		if e.ProjectID != id {
			entries = append(entries, e)
		}
	}
	s.state.Entries = entries

	s.logTransition("project deleted", slog.String("id", id))
	return nil
}

// --- Time entries ---

// AddEntry validates and prepends a new manual time entry.
// DurationMS is derived from Start/End, clamped to zero if negative.
func (s *Store) AddEntry(e TimeEntry) (TimeEntry, error) {
	if err := validate.Struct(e); err != nil {
		return TimeEntry{}, &ValidationError{Entity: "entry", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = s.ids.New(ident.KindEntry)
	}
	e.deriveDuration()
	s.state.Entries = append([]TimeEntry{cloneEntry(e)}, s.state.Entries...)
	s.logTransition("entry added", slog.String("id", e.ID))
	return e, nil
}

// UpdateEntry replaces the entry with a matching identifier and re-derives
// its stored duration from the edited Start/End.
func (s *Store) UpdateEntry(e TimeEntry) error {
	if err := validate.Struct(e); err != nil {
		return &ValidationError{Entity: "entry", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Entries {
		if s.state.Entries[i].ID == e.ID {
			e.deriveDuration()
			s.state.Entries[i] = cloneEntry(e)
			s.logTransition("entry updated", slog.String("id", e.ID))
			return nil
		}
	}
	return ErrNotFound
}

// DeleteEntry removes a single time entry.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	entries := s.state.Entries[:0:0]
	for _, e := range s.state.Entries {
		if e.ID == id {
			found = true
			continue
		}
		entries = append(entries, e)
	}
	if !found {
		return ErrNotFound
	}
	s.state.Entries = entries
	s.logTransition("entry deleted", slog.String("id", id))
	return nil
}

// --- Active timer ---

// TimerSelection carries the optional client/project selection for a new
// timer.
type TimerSelection struct {
	ClientID  string
	ProjectID string
	Notes     string
	Billable  bool
}

// StartTimer installs the active timer with the current instant as start.
//
// Outputs:
//
//	ActiveTimer - The installed timer.
//	error - ErrTimerAlreadyRunning if a timer is active. The running
//	timer's start instant is left unchanged.
func (s *Store) StartTimer(sel TimerSelection) (ActiveTimer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Timer != nil {
		return ActiveTimer{}, ErrTimerAlreadyRunning
	}
	t := ActiveTimer{
		ClientID:  sel.ClientID,
		ProjectID: sel.ProjectID,
		Notes:     sel.Notes,
		Billable:  sel.Billable,
		Start:     s.clock(),
	}
	s.state.Timer = &t
	s.logTransition("timer started", slog.Time("start", t.Start))
	return t, nil
}

// StopTimer finalizes the active timer into a new time entry.
//
// Description:
//
//	Computes duration = max(0, end - start), falls back to the sentinel
//	unassigned identifiers when no client/project was selected, prepends
//	the synthesized entry, and clears the timer.
//
// Outputs:
//
//	*TimeEntry - The synthesized entry, nil when no timer was running.
//	error - ErrTimerNotRunning when no timer is active (no state change).
func (s *Store) StopTimer(end time.Time) (*TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.state.Timer
	if t == nil {
		return nil, ErrTimerNotRunning
	}
	duration := end.Sub(t.Start).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	clientID := t.ClientID
	if clientID == "" {
		clientID = UnassignedClientID
	}
	projectID := t.ProjectID
	if projectID == "" {
		projectID = UnassignedProjectID
	}
	endCopy := end
	entry := TimeEntry{
		ID:         s.ids.New(ident.KindEntry),
		ClientID:   clientID,
		ProjectID:  projectID,
		Start:      t.Start,
		End:        &endCopy,
		DurationMS: duration,
		Notes:      t.Notes,
		Billable:   t.Billable,
	}
	s.state.Entries = append([]TimeEntry{entry}, s.state.Entries...)
	s.state.Timer = nil
	s.logTransition("timer stopped",
		slog.String("entry", entry.ID),
		slog.Int64("duration_ms", duration))
	out := cloneEntry(entry)
	return &out, nil
}

// ResetTimer unconditionally clears the active timer without creating an
// entry. Resetting when no timer is running is a no-op.
func (s *Store) ResetTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Timer = nil
	s.logTransition("timer reset")
}

// Timer returns a copy of the active timer, if one is running.
func (s *Store) Timer() (ActiveTimer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Timer == nil {
		return ActiveTimer{}, false
	}
	return *s.state.Timer, true
}

// --- Invoices ---

// AddInvoice validates and prepends a new invoice.
func (s *Store) AddInvoice(inv Invoice) (Invoice, error) {
	if err := validate.Struct(inv); err != nil {
		return Invoice{}, &ValidationError{Entity: "invoice", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = s.ids.New(ident.KindInvoice)
	}
	if inv.Status == "" {
		inv.Status = StatusDraft
	}
	s.state.Invoices = append([]Invoice{cloneInvoice(inv)}, s.state.Invoices...)
	s.logTransition("invoice added",
		slog.String("id", inv.ID),
		slog.String("number", inv.Number))
	return inv, nil
}

// UpdateInvoice replaces the invoice with a matching identifier.
func (s *Store) UpdateInvoice(inv Invoice) error {
	if err := validate.Struct(inv); err != nil {
		return &ValidationError{Entity: "invoice", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID == inv.ID {
			s.state.Invoices[i] = cloneInvoice(inv)
			s.logTransition("invoice updated", slog.String("id", inv.ID))
			return nil
		}
	}
	return ErrNotFound
}

// MarkInvoice moves an invoice to a new lifecycle status.
//
// Outputs:
//
//	error - ErrNotFound for an unknown invoice, ErrInvalidTransition when
//	the lifecycle forbids the move. Totals are never recomputed.
func (s *Store) MarkInvoice(id string, status InvoiceStatus) error {
	if !status.Valid() {
		return ErrInvalidTransition
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID != id {
			continue
		}
		if !s.state.Invoices[i].Status.CanTransition(status) {
			return ErrInvalidTransition
		}
		s.state.Invoices[i].Status = status
		s.logTransition("invoice marked",
			slog.String("id", id),
			slog.String("status", string(status)))
		return nil
	}
	return ErrNotFound
}

// DeleteInvoice removes a single invoice.
func (s *Store) DeleteInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	invoices := s.state.Invoices[:0:0]
	for _, inv := range s.state.Invoices {
		if inv.ID == id {
			found = true
			continue
		}
		invoices = append(invoices, inv)
	}
	if !found {
		return ErrNotFound
	}
	s.state.Invoices = invoices
	s.logTransition("invoice deleted", slog.String("id", id))
	return nil
}
