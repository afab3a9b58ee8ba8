// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package rates resolves the effective hourly billing rate.
//
// Precedence is fixed: a project's non-zero override beats its client's
// default rate, which beats zero. Invoice amounts depend on this order, so
// it must not change.
package rates

import (
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// Effective returns the hourly rate for the given project and/or client.
//
// Description:
//
//	Returns the project's override rate when the project exists and has a
//	non-zero rate; otherwise the client's default rate when the client
//	exists; otherwise 0. Unknown or sentinel identifiers resolve to the
//	next precedence level rather than failing.
//
// Inputs:
//
//	s - State snapshot to resolve against.
//	projectID - Optional project identifier ("" to skip).
//	clientID - Optional client identifier ("" to skip).
//
// Outputs:
//
//	float64 - The effective hourly rate, 0 when neither is set.
func Effective(s state.State, projectID, clientID string) float64 {
	if projectID != "" {
		if p, ok := s.Project(projectID); ok && p.Rate != 0 {
			return p.Rate
		}
	}
	if clientID != "" {
		if c, ok := s.Client(clientID); ok {
			return c.Rate
		}
	}
	return 0
}

// ForEntry resolves the effective rate for a time entry using its own
// client and project references.
func ForEntry(s state.State, e state.TimeEntry) float64 {
	return Effective(s, e.ProjectID, e.ClientID)
}
