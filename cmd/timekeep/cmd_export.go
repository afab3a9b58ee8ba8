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
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/export"
	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// runExport renders the selected entries as CSV. The core only shapes the
// payload; writing it to a file is this command's job as the export
// collaborator.
func runExport(cmd *cobra.Command, args []string) {
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
	if entryClient != "" {
		c, err := resolveClient(st, entryClient)
		if err != nil {
			fail(err)
		}
		filtered := make([]state.TimeEntry, 0, len(entries))
		for _, e := range entries {
			if e.ClientID == c.ID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	text, err := export.Text(st, entries)
	if err != nil {
		fail(err)
	}

	if exportOut == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(exportOut, []byte(text), 0644); err != nil {
		fail(fmt.Errorf("write %s: %w", exportOut, err))
	}
	ux.Success(fmt.Sprintf("Exported %d entries to %s", len(entries), exportOut))
}
