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
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func runEntryAdd(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	client, err := resolveClient(st, entryClient)
	if err != nil {
		fail(err)
	}
	project, err := resolveProject(st, entryProject, client.ID)
	if err != nil {
		fail(err)
	}
	start, err := parseWhen(entryStart)
	if err != nil {
		fail(err)
	}
	var end *time.Time
	if entryEnd != "" {
		t, err := parseWhen(entryEnd)
		if err != nil {
			fail(err)
		}
		end = &t
	}

	e, err := a.store.AddEntry(state.TimeEntry{
		ClientID:  client.ID,
		ProjectID: project.ID,
		Start:     start,
		End:       end,
		Notes:     entryNotes,
		Tags:      entryTags,
		Billable:  entryBillable,
	})
	if err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Recorded %s on %s / %s (%s)",
		ux.FormatDuration(e.DurationMS), client.Name, project.Name, e.ID))
}

func runEntryList(cmd *cobra.Command, args []string) {
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
	clientID := ""
	if entryClient != "" {
		c, err := resolveClient(st, entryClient)
		if err != nil {
			fail(err)
		}
		clientID = c.ID
	}

	var rows [][]string
	for _, e := range report.Filter(st.Entries, r) {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		end := "(open)"
		if e.End != nil {
			end = e.End.Format("2006-01-02 15:04")
		}
		billable := ""
		if e.Billable {
			billable = string(ux.IconBullet)
		}
		rows = append(rows, []string{
			e.ID,
			clientLabel(st, e.ClientID),
			projectLabel(st, e.ProjectID),
			e.Start.Format("2006-01-02 15:04"),
			end,
			ux.FormatDuration(e.DurationMS),
			billable,
			e.Notes,
		})
	}
	if len(rows) == 0 {
		ux.Muted("No entries match.")
		return
	}
	fmt.Print(ux.Table(
		[]string{"ID", "CLIENT", "PROJECT", "START", "END", "DURATION", "BILL", "NOTES"},
		rows))
}

func runEntryUpdate(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	e, ok := st.Entry(args[0])
	if !ok {
		fail(fmt.Errorf("no entry with id %q", args[0]))
	}
	if cmd.Flags().Changed("start") {
		t, err := parseWhen(entryStart)
		if err != nil {
			fail(err)
		}
		e.Start = t
	}
	if cmd.Flags().Changed("end") {
		if entryEnd == "" {
			e.End = nil
		} else {
			t, err := parseWhen(entryEnd)
			if err != nil {
				fail(err)
			}
			e.End = &t
		}
	}
	if cmd.Flags().Changed("notes") {
		e.Notes = entryNotes
	}
	if cmd.Flags().Changed("billable") {
		e.Billable = entryBillable
	}

	// UpdateEntry re-derives the stored duration from start/end.
	if err := a.store.UpdateEntry(e); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	updated, _ := a.store.Snapshot().Entry(e.ID)
	ux.Success(fmt.Sprintf("Updated entry %s (%s)", e.ID, ux.FormatDuration(updated.DurationMS)))
}

func runEntryRm(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	if err := a.store.DeleteEntry(args[0]); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Deleted entry %s", args[0]))
}
