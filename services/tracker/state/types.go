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
	"time"
)

// Sentinel identifiers used when a timer is stopped without a client or
// project selection. Derivations render these as "Unassigned".
const (
	UnassignedClientID  = "client_unassigned"
	UnassignedProjectID = "project_unassigned"
)

// Client is a billable party. Projects, time entries and invoices reference
// it by identifier; they never own it.
type Client struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Address  string  `json:"address,omitempty"`
	Rate     float64 `json:"rate,omitempty" validate:"gte=0"`
	Archived bool    `json:"archived,omitempty"`
}

// Project belongs to exactly one client. A non-zero Rate overrides the
// client's default rate for billing purposes.
type Project struct {
	ID       string  `json:"id"`
	ClientID string  `json:"client_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Rate     float64 `json:"rate,omitempty" validate:"gte=0"`
	Archived bool    `json:"archived,omitempty"`
}

// TimeEntry is a finalized unit of tracked work.
//
// DurationMS is stored, not recomputed on read: it is derived from
// Start/End when the entry is created or edited, clamped to zero if the
// interval is negative.
type TimeEntry struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"client_id" validate:"required"`
	ProjectID  string     `json:"project_id" validate:"required"`
	Start      time.Time  `json:"start" validate:"required"`
	End        *time.Time `json:"end,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	Notes      string     `json:"notes,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Billable   bool       `json:"billable"`
}

// deriveDuration re-stores DurationMS from Start/End.
// Entries without an End keep whatever duration they carry.
func (e *TimeEntry) deriveDuration() {
	if e.End == nil {
		return
	}
	d := e.End.Sub(e.Start).Milliseconds()
	if d < 0 {
		d = 0
	}
	e.DurationMS = d
}

// InvoiceStatus is the invoice lifecycle state.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// Valid reports whether s is a known lifecycle state.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle permits moving to next.
// The legal graph is draft -> sent -> paid, with sent -> overdue as an
// alternate branch and overdue -> paid allowed for late settlement.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusSent
	case StatusSent:
		return next == StatusPaid || next == StatusOverdue
	case StatusOverdue:
		return next == StatusPaid
	}
	return false
}

// LineItem is one invoice line: all entries for a single project over the
// invoiced period, collapsed into hours at a resolved rate.
type LineItem struct {
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is an immutable financial snapshot. Subtotal, Tax and Total are
// computed once at creation and never re-derived, even if the underlying
// entries change afterwards.
type Invoice struct {
	ID        string        `json:"id"`
	Number    string        `json:"number"`
	ClientID  string        `json:"client_id" validate:"required"`
	IssueDate time.Time     `json:"issue_date"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	TaxRate   float64       `json:"tax_rate" validate:"gte=0,lte=100"`
	Status    InvoiceStatus `json:"status"`
	Lines     []LineItem    `json:"lines"`
	Subtotal  float64       `json:"subtotal"`
	Tax       float64       `json:"tax"`
	Total     float64       `json:"total"`
}

// ActiveTimer is the single in-progress, not-yet-finalized work interval.
// At most one exists process-wide. Client and project selection are
// optional until the timer is stopped.
type ActiveTimer struct {
	ClientID  string    `json:"client_id,omitempty"`
	ProjectID string    `json:"project_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Billable  bool      `json:"billable"`
	Start     time.Time `json:"start"`
}

// State is the full entity snapshot: the four collections plus the
// optional active timer. All listing operations observe newest-first
// ordering because add transitions prepend.
type State struct {
	Clients  []Client    `json:"clients"`
	Projects []Project   `json:"projects"`
	Entries  []TimeEntry `json:"entries"`
	Invoices []Invoice   `json:"invoices"`
	Timer    *ActiveTimer `json:"timer,omitempty"`
}

// Client returns the client with the given identifier.
func (s State) Client(id string) (Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// Project returns the project with the given identifier.
func (s State) Project(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Entry returns the time entry with the given identifier.
func (s State) Entry(id string) (TimeEntry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return TimeEntry{}, false
}

// Invoice returns the invoice with the given identifier.
func (s State) Invoice(id string) (Invoice, bool) {
	for _, inv := range s.Invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return Invoice{}, false
}

// Clone returns a deep copy of the state. Derivations operate on clones so
// a reader never observes a partially-applied transition.
func (s State) Clone() State {
	out := State{
		Clients:  make([]Client, len(s.Clients)),
		Projects: make([]Project, len(s.Projects)),
		Entries:  make([]TimeEntry, len(s.Entries)),
		Invoices: make([]Invoice, len(s.Invoices)),
	}
	copy(out.Clients, s.Clients)
	copy(out.Projects, s.Projects)
	for i, e := range s.Entries {
		out.Entries[i] = cloneEntry(e)
	}
	for i, inv := range s.Invoices {
		out.Invoices[i] = cloneInvoice(inv)
	}
	if s.Timer != nil {
		t := *s.Timer
		out.Timer = &t
	}
	return out
}

func cloneEntry(e TimeEntry) TimeEntry {
	if e.End != nil {
		end := *e.End
		e.End = &end
	}
	if e.Tags != nil {
		tags := make([]string, len(e.Tags))
		copy(tags, e.Tags)
		e.Tags = tags
	}
	return e
}

func cloneInvoice(inv Invoice) Invoice {
	if inv.DueDate != nil {
		due := *inv.DueDate
		inv.DueDate = &due
	}
	if inv.Lines != nil {
		lines := make([]LineItem, len(inv.Lines))
		copy(lines, inv.Lines)
		inv.Lines = lines
	}
	return inv
}
