// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package invoice derives invoices from tracked time.
//
// An invoice is built by filtering billable entries for one client over a
// date range, collapsing them into one line item per project, and
// snapshotting the totals. Once built, an invoice is an immutable
// financial record: totals are never recomputed from the entries.
package invoice

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AleutianAI/timekeep/services/tracker/rates"
	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

const msPerHour = 3_600_000

// ErrUnknownClient is returned by Build when the client identifier is not
// present in the snapshot.
var ErrUnknownClient = errors.New("unknown client")

// Round2 rounds a currency or hour value to 2 decimal places. Rounding
// happens at the point of computation, not only at display time.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Number formats the human-readable sequential invoice number for the
// given snapshot and issue date: INV-<year>-<4-digit-sequence>.
//
// The sequence is count(existing invoices)+1. This is a documented
// limitation carried over deliberately: it is not collision-safe once
// invoices have been deleted.
func Number(s state.State, issue time.Time) string {
	return fmt.Sprintf("INV-%d-%04d", issue.Year(), len(s.Invoices)+1)
}

// BuildLines computes the line items for a client over a date range.
//
// Description:
//
//	Filters the snapshot's entries to billable ones matching the client
//	and range, then groups them by project. Each group becomes one line:
//	hours are summed in milliseconds and rounded to 2 decimals once per
//	group, the rate is resolved per entry with the last resolved rate
//	winning (rates only vary within a group on corrupted input, since the
//	resolver reads current state), and the description carries the
//	project's display name.
//
// Inputs:
//
//	s - State snapshot.
//	clientID - Client to invoice.
//	r - Date range per the report filtering contract.
//
// Outputs:
//
//	[]state.LineItem - One line per project, ordered by first appearance
//	in the entry collection. Empty when nothing matches.
func BuildLines(s state.State, clientID string, r report.Range) []state.LineItem {
	var order []string
	sums := make(map[string]int64)
	lineRates := make(map[string]float64)
	for _, e := range report.Filter(s.Entries, r) {
		if e.ClientID != clientID || !e.Billable {
			continue
		}
		if _, seen := sums[e.ProjectID]; !seen {
			order = append(order, e.ProjectID)
		}
		sums[e.ProjectID] += e.DurationMS
		lineRates[e.ProjectID] = rates.ForEntry(s, e)
	}

	lines := make([]state.LineItem, 0, len(order))
	for _, projectID := range order {
		hours := Round2(float64(sums[projectID]) / msPerHour)
		rate := lineRates[projectID]
		name := "Unassigned"
		if p, ok := s.Project(projectID); ok {
			name = p.Name
		}
		lines = append(lines, state.LineItem{
			ProjectID:   projectID,
			Description: fmt.Sprintf("%s: tracked time", name),
			Hours:       hours,
			Rate:        rate,
			Amount:      Round2(hours * rate),
		})
	}
	return lines
}

// Totals sums line amounts and applies the tax rate percentage.
//
// Invariants: subtotal = sum(line.amount), tax = round2(subtotal*rate/100),
// total = round2(subtotal+tax).
func Totals(lines []state.LineItem, taxRate float64) (subtotal, tax, total float64) {
	for _, l := range lines {
		subtotal += l.Amount
	}
	subtotal = Round2(subtotal)
	tax = Round2(subtotal * taxRate / 100)
	total = Round2(subtotal + tax)
	return subtotal, tax, total
}

// Build packages the derivation into a new draft invoice.
//
// Inputs:
//
//	s - State snapshot.
//	clientID - Client to invoice. Must exist in the snapshot.
//	r - Date range for entry selection.
//	taxRate - Tax percentage applied to the subtotal.
//	issue - Issue date; also selects the number's year.
//	due - Optional due date.
//
// Outputs:
//
//	state.Invoice - Draft invoice with frozen totals. ID is left empty
//	for the store to assign.
//	error - ErrUnknownClient when the client is absent.
func Build(s state.State, clientID string, r report.Range, taxRate float64, issue time.Time, due *time.Time) (state.Invoice, error) {
	if _, ok := s.Client(clientID); !ok {
		return state.Invoice{}, ErrUnknownClient
	}
	lines := BuildLines(s, clientID, r)
	subtotal, tax, total := Totals(lines, taxRate)
	return state.Invoice{
		Number:    Number(s, issue),
		ClientID:  clientID,
		IssueDate: issue,
		DueDate:   due,
		TaxRate:   taxRate,
		Status:    state.StatusDraft,
		Lines:     lines,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
	}, nil
}
