// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func billableEntry(id, client, project string, start time.Time, d time.Duration) state.TimeEntry {
	end := start.Add(d)
	return state.TimeEntry{
		ID:         id,
		ClientID:   client,
		ProjectID:  project,
		Start:      start,
		End:        &end,
		DurationMS: d.Milliseconds(),
		Billable:   true,
	}
}

func monthRange(year int, month time.Month) report.Range {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return report.Range{From: &from, To: &to}
}

// The canonical scenario: Acme at rate 100, one billable hour on a project
// with no override, 10% tax.
func TestBuild_AcmeScenario(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := state.State{
		Clients:  []state.Client{{ID: "client_acme", Name: "Acme", Rate: 100}},
		Projects: []state.Project{{ID: "project_site", ClientID: "client_acme", Name: "Site"}},
		Entries: []state.TimeEntry{
			billableEntry("entry_1", "client_acme", "project_site", start, time.Hour),
		},
	}

	issue := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	inv, err := Build(s, "client_acme", monthRange(2025, time.March), 10, issue, nil)
	require.NoError(t, err)

	require.Len(t, inv.Lines, 1)
	line := inv.Lines[0]
	assert.Equal(t, 1.0, line.Hours)
	assert.Equal(t, 100.0, line.Rate)
	assert.Equal(t, 100.0, line.Amount)
	assert.Contains(t, line.Description, "Site")

	assert.Equal(t, 100.0, inv.Subtotal)
	assert.Equal(t, 10.0, inv.Tax)
	assert.Equal(t, 110.0, inv.Total)
	assert.Equal(t, state.StatusDraft, inv.Status)
	assert.Equal(t, "INV-2025-0001", inv.Number)
}

func TestBuildLines_Filtering(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := state.State{
		Clients: []state.Client{
			{ID: "client_acme", Name: "Acme", Rate: 100},
			{ID: "client_other", Name: "Other", Rate: 80},
		},
		Projects: []state.Project{
			{ID: "project_site", ClientID: "client_acme", Name: "Site"},
		},
		Entries: []state.TimeEntry{
			billableEntry("entry_in", "client_acme", "project_site", start, time.Hour),
			billableEntry("entry_wrong_client", "client_other", "project_site", start, time.Hour),
			billableEntry("entry_out_of_range", "client_acme", "project_site", start.AddDate(0, -2, 0), time.Hour),
			func() state.TimeEntry {
				e := billableEntry("entry_nonbillable", "client_acme", "project_site", start, time.Hour)
				e.Billable = false
				return e
			}(),
		},
	}

	lines := BuildLines(s, "client_acme", monthRange(2025, time.March))
	require.Len(t, lines, 1)
	assert.Equal(t, 1.0, lines[0].Hours, "only the in-range billable entry counts")
}

func TestBuildLines_GroupsPerProject(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := state.State{
		Clients: []state.Client{{ID: "client_acme", Name: "Acme", Rate: 60}},
		Projects: []state.Project{
			{ID: "project_site", ClientID: "client_acme", Name: "Site", Rate: 90},
			{ID: "project_app", ClientID: "client_acme", Name: "App"},
		},
		Entries: []state.TimeEntry{
			// Newest-first store ordering: line order follows appearance.
			billableEntry("entry_3", "client_acme", "project_app", start.Add(2*time.Hour), 30*time.Minute),
			billableEntry("entry_2", "client_acme", "project_site", start.Add(time.Hour), 45*time.Minute),
			billableEntry("entry_1", "client_acme", "project_site", start, 75*time.Minute),
		},
	}

	lines := BuildLines(s, "client_acme", monthRange(2025, time.March))
	require.Len(t, lines, 2)

	assert.Equal(t, "project_app", lines[0].ProjectID)
	assert.Equal(t, 0.5, lines[0].Hours)
	assert.Equal(t, 60.0, lines[0].Rate, "no override, client default applies")
	assert.Equal(t, 30.0, lines[0].Amount)

	assert.Equal(t, "project_site", lines[1].ProjectID)
	assert.Equal(t, 2.0, lines[1].Hours, "45m + 75m summed before rounding")
	assert.Equal(t, 90.0, lines[1].Rate, "project override wins")
	assert.Equal(t, 180.0, lines[1].Amount)
}

func TestBuildLines_RoundsOncePerGroup(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Three 100s entries: 300s = 0.0833... hours. Summing milliseconds
	// first then rounding once gives 0.08; rounding each entry to 0.03
	// first would give 0.09.
	s := state.State{
		Clients:  []state.Client{{ID: "client_acme", Name: "Acme", Rate: 100}},
		Projects: []state.Project{{ID: "project_site", ClientID: "client_acme", Name: "Site"}},
		Entries: []state.TimeEntry{
			billableEntry("entry_1", "client_acme", "project_site", start, 100*time.Second),
			billableEntry("entry_2", "client_acme", "project_site", start.Add(time.Hour), 100*time.Second),
			billableEntry("entry_3", "client_acme", "project_site", start.Add(2*time.Hour), 100*time.Second),
		},
	}

	lines := BuildLines(s, "client_acme", monthRange(2025, time.March))
	require.Len(t, lines, 1)
	assert.Equal(t, 0.08, lines[0].Hours)
}

func TestTotals_Consistency(t *testing.T) {
	lines := []state.LineItem{
		{Amount: 33.33},
		{Amount: 66.67},
		{Amount: 0.01},
	}

	subtotal, tax, total := Totals(lines, 19)
	assert.Equal(t, 100.01, subtotal)
	assert.Equal(t, Round2(subtotal*19/100), tax)
	assert.Equal(t, Round2(subtotal+tax), total)
}

func TestTotals_ZeroTaxRate(t *testing.T) {
	subtotal, tax, total := Totals([]state.LineItem{{Amount: 42}}, 0)
	assert.Equal(t, 42.0, subtotal)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 42.0, total)
}

func TestNumber_SequentialPerCount(t *testing.T) {
	issue := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty store starts at one", func(t *testing.T) {
		assert.Equal(t, "INV-2025-0001", Number(state.State{}, issue))
	})

	t.Run("sequence is count plus one", func(t *testing.T) {
		s := state.State{Invoices: make([]state.Invoice, 41)}
		assert.Equal(t, "INV-2025-0042", Number(s, issue))
	})
}

func TestBuild_UnknownClient(t *testing.T) {
	_, err := Build(state.State{}, "client_ghost", report.Range{}, 10, time.Now(), nil)
	assert.ErrorIs(t, err, ErrUnknownClient)
}

func TestBuild_EmptyPeriod(t *testing.T) {
	s := state.State{Clients: []state.Client{{ID: "client_acme", Name: "Acme"}}}
	inv, err := Build(s, "client_acme", monthRange(2025, time.March), 10, time.Now(), nil)
	require.NoError(t, err)
	assert.Empty(t, inv.Lines)
	assert.Equal(t, 0.0, inv.Total)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 is stored as 1.00499... in binary
		{1.015, 1.01},
		{2.675, 2.67},
		{100.555, 100.56},
		{0, 0},
		{-1.234, -1.23},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
