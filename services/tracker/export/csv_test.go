// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func exportState() state.State {
	return state.State{
		Clients: []state.Client{
			{ID: "client_acme", Name: "Acme, Inc.", Rate: 100},
		},
		Projects: []state.Project{
			{ID: "project_site", ClientID: "client_acme", Name: "Site \"Redesign\""},
		},
	}
}

func TestText_HeaderAndFields(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	s := exportState()
	entries := []state.TimeEntry{{
		ID:         "entry_1",
		ClientID:   "client_acme",
		ProjectID:  "project_site",
		Start:      start,
		End:        &end,
		DurationMS: 90 * 60 * 1000,
		Notes:      "kickoff",
		Billable:   true,
	}}

	text, err := Text(s, entries)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	for i, want := range Header {
		if records[0][i] != want {
			t.Errorf("header[%d] = %s, want %s", i, records[0][i], want)
		}
	}

	row := records[1]
	want := []string{
		"entry_1",
		"Acme, Inc.",
		`Site "Redesign"`,
		"2025-03-10T09:00:00Z",
		"2025-03-10T10:30:00Z",
		"1.50",
		"yes",
		"kickoff",
		"100.00",
		"150.00",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestText_RoundTripAwkwardNotes(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	notes := "line one\nline two, with \"quotes\", commas\nand a trailing line"
	s := exportState()
	entries := []state.TimeEntry{{
		ID:        "entry_awkward",
		ClientID:  "client_acme",
		ProjectID: "project_site",
		Start:     start,
		Notes:     notes,
	}}

	text, err := Text(s, entries)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if got := records[1][7]; got != notes {
		t.Errorf("notes round-trip = %q, want %q", got, notes)
	}
}

func TestRow_SentinelsAndOpenEntries(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := exportState()

	t.Run("dangling references degrade to Unassigned", func(t *testing.T) {
		row := Row(s, state.TimeEntry{
			ID:        "entry_orphan",
			ClientID:  "client_deleted",
			ProjectID: "project_deleted",
			Start:     start,
		})
		if row[1] != UnassignedLabel || row[2] != UnassignedLabel {
			t.Errorf("names = %q, %q, want %q", row[1], row[2], UnassignedLabel)
		}
		if row[8] != "0.00" {
			t.Errorf("rate = %q, want 0.00", row[8])
		}
	})

	t.Run("timer sentinels degrade to Unassigned", func(t *testing.T) {
		row := Row(s, state.TimeEntry{
			ID:        "entry_timer",
			ClientID:  state.UnassignedClientID,
			ProjectID: state.UnassignedProjectID,
			Start:     start,
		})
		if row[1] != UnassignedLabel || row[2] != UnassignedLabel {
			t.Errorf("names = %q, %q, want %q", row[1], row[2], UnassignedLabel)
		}
	})

	t.Run("open entry has empty end and no token", func(t *testing.T) {
		row := Row(s, state.TimeEntry{
			ID:        "entry_open",
			ClientID:  "client_acme",
			ProjectID: "project_site",
			Start:     start,
		})
		if row[4] != "" {
			t.Errorf("end = %q, want empty", row[4])
		}
		if row[6] != "no" {
			t.Errorf("billable = %q, want no", row[6])
		}
	})
}

func TestText_EmptyEntrySet(t *testing.T) {
	text, err := Text(exportState(), nil)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want header only", len(records))
	}
}
