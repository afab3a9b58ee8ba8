// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report aggregates time entries into duration totals.
//
// Aggregations are pure functions over a snapshot: they are recomputed on
// demand from the canonical entry collection and never cached, so there is
// no second source of truth to go stale.
package report

import (
	"sort"
	"time"

	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// Range is a date-range filter over time entries.
//
// An entry matches when its start is at or after From and its end (or its
// start, when it has no end) is at or before To. A nil bound is infinite.
// To is widened through the end of its calendar day, so both boundary days
// are inclusive.
type Range struct {
	From *time.Time
	To   *time.Time
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Contains reports whether the entry falls inside the range.
func (r Range) Contains(e state.TimeEntry) bool {
	if r.From != nil && e.Start.Before(*r.From) {
		return false
	}
	if r.To != nil {
		end := e.Start
		if e.End != nil {
			end = *e.End
		}
		if end.After(EndOfDay(*r.To)) {
			return false
		}
	}
	return true
}

// Filter returns the entries that fall inside the range, preserving input
// order.
func Filter(entries []state.TimeEntry, r Range) []state.TimeEntry {
	out := make([]state.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}

// ByClient groups entries by client identifier and sums their stored
// durations in milliseconds.
//
// The mapping carries no ordering guarantee beyond each distinct key
// appearing exactly once; use SortedRows for display order.
func ByClient(entries []state.TimeEntry) map[string]int64 {
	out := make(map[string]int64)
	for _, e := range entries {
		out[e.ClientID] += e.DurationMS
	}
	return out
}

// ByProject groups entries by project identifier and sums their stored
// durations in milliseconds.
func ByProject(entries []state.TimeEntry) map[string]int64 {
	out := make(map[string]int64)
	for _, e := range entries {
		out[e.ProjectID] += e.DurationMS
	}
	return out
}

// Row is one aggregate line keyed by a client or project identifier.
type Row struct {
	Key        string
	DurationMS int64
}

// SortedRows flattens an aggregate mapping into rows sorted by duration
// descending, ties broken by key for determinism.
func SortedRows(m map[string]int64) []Row {
	rows := make([]Row, 0, len(m))
	for k, v := range m {
		rows = append(rows, Row{Key: k, DurationMS: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DurationMS != rows[j].DurationMS {
			return rows[i].DurationMS > rows[j].DurationMS
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
