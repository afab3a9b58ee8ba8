// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"testing"
	"time"

	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func fixtureState() state.State {
	return state.State{
		Clients: []state.Client{
			{ID: "client_1", Name: "Acme", Rate: 100},
			{ID: "client_2", Name: "Bravo"},
		},
		Projects: []state.Project{
			{ID: "project_1", ClientID: "client_1", Name: "Site"},
			{ID: "project_2", ClientID: "client_2", Name: "Site"},
		},
		Invoices: []state.Invoice{
			{ID: "inv_1", Number: "INV-2025-0001", ClientID: "client_1"},
		},
	}
}

func TestParseWhen(t *testing.T) {
	t.Run("plain date parses at local midnight", func(t *testing.T) {
		got, err := parseWhen("2025-03-10")
		if err != nil {
			t.Fatalf("parseWhen() error = %v", err)
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("parseWhen() = %v, want %v", got, want)
		}
	})

	t.Run("rfc3339 parses with time", func(t *testing.T) {
		got, err := parseWhen("2025-03-10T09:30:00Z")
		if err != nil {
			t.Fatalf("parseWhen() error = %v", err)
		}
		if got.Hour() != 9 || got.Minute() != 30 {
			t.Errorf("parseWhen() = %v, want 09:30 UTC", got)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := parseWhen("next tuesday"); err == nil {
			t.Error("parseWhen() accepted garbage input")
		}
	})
}

func TestParseRange(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		r, err := parseRange("2025-03-01", "2025-03-31")
		if err != nil {
			t.Fatalf("parseRange() error = %v", err)
		}
		if r.From == nil || r.To == nil {
			t.Fatal("parseRange() left a bound nil")
		}
	})

	t.Run("empty values leave bounds open", func(t *testing.T) {
		r, err := parseRange("", "")
		if err != nil {
			t.Fatalf("parseRange() error = %v", err)
		}
		if r.From != nil || r.To != nil {
			t.Error("parseRange() set a bound for empty input")
		}
	})

	t.Run("bad from is rejected", func(t *testing.T) {
		if _, err := parseRange("nope", ""); err == nil {
			t.Error("parseRange() accepted bad from value")
		}
	})
}

func TestResolveClient(t *testing.T) {
	st := fixtureState()

	t.Run("by id", func(t *testing.T) {
		c, err := resolveClient(st, "client_2")
		if err != nil {
			t.Fatalf("resolveClient() error = %v", err)
		}
		if c.Name != "Bravo" {
			t.Errorf("Name = %q, want Bravo", c.Name)
		}
	})

	t.Run("by case-insensitive name", func(t *testing.T) {
		c, err := resolveClient(st, "acme")
		if err != nil {
			t.Fatalf("resolveClient() error = %v", err)
		}
		if c.ID != "client_1" {
			t.Errorf("ID = %q, want client_1", c.ID)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		if _, err := resolveClient(st, "nobody"); err == nil {
			t.Error("resolveClient() found a client that does not exist")
		}
	})
}

func TestResolveProject_ScopedByClient(t *testing.T) {
	st := fixtureState()

	// Two projects share the name "Site"; the client scope disambiguates.
	p, err := resolveProject(st, "site", "client_2")
	if err != nil {
		t.Fatalf("resolveProject() error = %v", err)
	}
	if p.ID != "project_2" {
		t.Errorf("ID = %q, want project_2", p.ID)
	}

	// Without a scope the first match wins.
	p, err = resolveProject(st, "site", "")
	if err != nil {
		t.Fatalf("resolveProject() error = %v", err)
	}
	if p.ID != "project_1" {
		t.Errorf("ID = %q, want project_1", p.ID)
	}
}

func TestFindInvoice(t *testing.T) {
	st := fixtureState()

	if _, err := findInvoice(st, "inv_1"); err != nil {
		t.Errorf("findInvoice() by id failed: %v", err)
	}
	if _, err := findInvoice(st, "inv-2025-0001"); err != nil {
		t.Errorf("findInvoice() by number failed: %v", err)
	}
	if _, err := findInvoice(st, "INV-1999-9999"); err == nil {
		t.Error("findInvoice() found an invoice that does not exist")
	}
}

func TestLabels_DanglingReferences(t *testing.T) {
	st := fixtureState()
	if got := clientLabel(st, "client_deleted"); got != "Unassigned" {
		t.Errorf("clientLabel() = %q, want Unassigned", got)
	}
	if got := projectLabel(st, state.UnassignedProjectID); got != "Unassigned" {
		t.Errorf("projectLabel() = %q, want Unassigned", got)
	}
}
