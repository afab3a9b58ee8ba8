// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package export renders time entries as delimited text.
//
// The output is RFC 4180 CSV: any field containing a comma, quote or
// newline is quoted with doubled internal quotes. Re-parsing the produced
// text with a standard CSV parser reconstructs the original field values
// exactly. The core only produces the payload; file-save mechanics belong
// to the caller.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/AleutianAI/timekeep/services/tracker/rates"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// UnassignedLabel is substituted for dangling or sentinel client/project
// references so a corrupted snapshot degrades gracefully instead of
// failing the export.
const UnassignedLabel = "Unassigned"

const msPerHour = 3_600_000

// Header is the first CSV row.
var Header = []string{
	"id", "client", "project", "start", "end",
	"hours", "billable", "notes", "rate", "amount",
}

// MIMEType is the content-type hint handed to the export collaborator.
const MIMEType = "text/csv"

// Row renders one entry as CSV fields, resolving display names and the
// effective rate against the snapshot.
func Row(s state.State, e state.TimeEntry) []string {
	clientName := UnassignedLabel
	if c, ok := s.Client(e.ClientID); ok {
		clientName = c.Name
	}
	projectName := UnassignedLabel
	if p, ok := s.Project(e.ProjectID); ok {
		projectName = p.Name
	}

	end := ""
	if e.End != nil {
		end = e.End.Format(time.RFC3339)
	}
	billable := "no"
	if e.Billable {
		billable = "yes"
	}

	hours := float64(e.DurationMS) / msPerHour
	rate := rates.ForEntry(s, e)

	return []string{
		e.ID,
		clientName,
		projectName,
		e.Start.Format(time.RFC3339),
		end,
		strconv.FormatFloat(hours, 'f', 2, 64),
		billable,
		e.Notes,
		strconv.FormatFloat(rate, 'f', 2, 64),
		strconv.FormatFloat(rate*hours, 'f', 2, 64),
	}
}

// Text renders the given entries as a CSV document with a header row.
//
// Inputs:
//
//	s - Snapshot used to resolve names and rates.
//	entries - Entries to render, already filtered by the caller.
//
// Outputs:
//
//	string - The CSV payload.
//	error - Non-nil only if the underlying writer fails.
func Text(s state.State, entries []state.TimeEntry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write(Row(s, e)); err != nil {
			return "", fmt.Errorf("write entry %s: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
