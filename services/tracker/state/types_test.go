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
	"testing"
	"time"
)

func TestInvoiceStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusPaid, false},
		{StatusDraft, StatusOverdue, false},
		{StatusSent, StatusPaid, true},
		{StatusSent, StatusOverdue, true},
		{StatusSent, StatusDraft, false},
		{StatusOverdue, StatusPaid, true},
		{StatusOverdue, StatusSent, false},
		{StatusPaid, StatusSent, false},
		{StatusPaid, StatusOverdue, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestInvoiceStatus_Valid(t *testing.T) {
	for _, s := range []InvoiceStatus{StatusDraft, StatusSent, StatusPaid, StatusOverdue} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false, want true", s)
		}
	}
	if InvoiceStatus("cancelled").Valid() {
		t.Error("Valid(cancelled) = true, want false")
	}
}

func TestState_Lookups(t *testing.T) {
	s := State{
		Clients:  []Client{{ID: "client_1", Name: "Acme"}},
		Projects: []Project{{ID: "project_1", ClientID: "client_1", Name: "Site"}},
	}

	t.Run("present", func(t *testing.T) {
		if c, ok := s.Client("client_1"); !ok || c.Name != "Acme" {
			t.Errorf("Client(client_1) = %v, %v", c, ok)
		}
		if p, ok := s.Project("project_1"); !ok || p.Name != "Site" {
			t.Errorf("Project(project_1) = %v, %v", p, ok)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if _, ok := s.Client("client_2"); ok {
			t.Error("Client(client_2) = ok, want missing")
		}
		if _, ok := s.Entry("entry_1"); ok {
			t.Error("Entry(entry_1) = ok, want missing")
		}
		if _, ok := s.Invoice("inv_1"); ok {
			t.Error("Invoice(inv_1) = ok, want missing")
		}
	})
}

func TestState_Clone_DeepCopies(t *testing.T) {
	end := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	due := end.AddDate(0, 0, 14)
	orig := State{
		Entries: []TimeEntry{{
			ID:   "entry_1",
			End:  &end,
			Tags: []string{"deep"},
		}},
		Invoices: []Invoice{{
			ID:      "inv_1",
			DueDate: &due,
			Lines:   []LineItem{{ProjectID: "project_1", Amount: 10}},
		}},
		Timer: &ActiveTimer{Notes: "running"},
	}

	clone := orig.Clone()
	*clone.Entries[0].End = end.Add(time.Hour)
	clone.Entries[0].Tags[0] = "mutated"
	*clone.Invoices[0].DueDate = due.AddDate(1, 0, 0)
	clone.Invoices[0].Lines[0].Amount = 99
	clone.Timer.Notes = "mutated"

	if !orig.Entries[0].End.Equal(end) {
		t.Error("clone shares entry End pointer")
	}
	if orig.Entries[0].Tags[0] != "deep" {
		t.Error("clone shares entry Tags slice")
	}
	if !orig.Invoices[0].DueDate.Equal(due) {
		t.Error("clone shares invoice DueDate pointer")
	}
	if orig.Invoices[0].Lines[0].Amount != 10 {
		t.Error("clone shares invoice Lines slice")
	}
	if orig.Timer.Notes != "running" {
		t.Error("clone shares Timer pointer")
	}
}
