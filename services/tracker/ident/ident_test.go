// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ident

import (
	"strings"
	"testing"
)

func TestNew_Prefix(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindClient, "client_"},
		{KindProject, "project_"},
		{KindEntry, "entry_"},
		{KindInvoice, "inv_"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			id := New(tt.kind)
			if !strings.HasPrefix(id, tt.want) {
				t.Errorf("New(%s) = %s, want prefix %s", tt.kind, id, tt.want)
			}
			if len(id) <= len(tt.want) {
				t.Errorf("New(%s) = %s, want non-empty suffix", tt.kind, id)
			}
		})
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(KindEntry)
		if seen[id] {
			t.Fatalf("duplicate identifier generated: %s", id)
		}
		seen[id] = true
	}
}
