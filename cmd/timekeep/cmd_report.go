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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func runReportClient(cmd *cobra.Command, args []string) {
	runReport(func(st state.State, entries []state.TimeEntry) ([]report.Row, func(string) string) {
		return report.SortedRows(report.ByClient(entries)), func(id string) string {
			return clientLabel(st, id)
		}
	})
}

func runReportProject(cmd *cobra.Command, args []string) {
	runReport(func(st state.State, entries []state.TimeEntry) ([]report.Row, func(string) string) {
		return report.SortedRows(report.ByProject(entries)), func(id string) string {
			return projectLabel(st, id)
		}
	})
}

// runReport filters entries by the shared range flags, aggregates them
// with the given grouping, and renders a duration table plus total.
func runReport(group func(state.State, []state.TimeEntry) ([]report.Row, func(string) string)) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	r, err := parseRange(rangeFrom, rangeTo)
	if err != nil {
		fail(err)
	}
	st := a.store.Snapshot()
	entries := report.Filter(st.Entries, r)
	rows, label := group(st, entries)
	if len(rows) == 0 {
		ux.Muted("No tracked time in this range.")
		return
	}

	var total int64
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		total += row.DurationMS
		table = append(table, []string{label(row.Key), ux.FormatDuration(row.DurationMS)})
	}
	fmt.Print(ux.Table([]string{"NAME", "TRACKED"}, table))
	fmt.Printf("\n%s %s\n",
		ux.Styles.Bold.Render("Total:"),
		ux.Styles.Highlight.Render(ux.FormatDuration(total)))
}
