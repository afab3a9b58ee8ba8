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
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func runProjectAdd(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	client, err := resolveClient(a.store.Snapshot(), projectClient)
	if err != nil {
		fail(err)
	}
	p, err := a.store.AddProject(state.Project{
		ClientID: client.ID,
		Name:     args[0],
		Rate:     projectRate,
	})
	if err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Added project %s for %s (%s)", p.Name, client.Name, p.ID))
}

func runProjectList(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	var rows [][]string
	for _, p := range st.Projects {
		if p.Archived && !showArchived {
			continue
		}
		name := p.Name
		if p.Archived {
			name += " (archived)"
		}
		rate := "-"
		if p.Rate != 0 {
			rate = ux.FormatMoney(p.Rate)
		}
		rows = append(rows, []string{p.ID, name, clientLabel(st, p.ClientID), rate})
	}
	if len(rows) == 0 {
		ux.Muted("No projects yet. Add one with: timekeep project add <name> --client <client>")
		return
	}
	fmt.Print(ux.Table([]string{"ID", "NAME", "CLIENT", "RATE"}, rows))
}

func runProjectUpdate(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	p, err := resolveProject(a.store.Snapshot(), args[0], "")
	if err != nil {
		fail(err)
	}
	if cmd.Flags().Changed("name") {
		p.Name = projectName
	}
	if cmd.Flags().Changed("rate") {
		p.Rate = projectRate
	}
	if err := a.store.UpdateProject(p); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Updated project %s", p.Name))
}

func runProjectArchive(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	p, err := resolveProject(a.store.Snapshot(), args[0], "")
	if err != nil {
		fail(err)
	}
	unarchive, _ := cmd.Flags().GetBool("unarchive")
	p.Archived = !unarchive
	if err := a.store.UpdateProject(p); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	if unarchive {
		ux.Success(fmt.Sprintf("Unarchived project %s", p.Name))
	} else {
		ux.Success(fmt.Sprintf("Archived project %s", p.Name))
	}
}

func runProjectRm(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	p, err := resolveProject(a.store.Snapshot(), args[0], "")
	if err != nil {
		fail(err)
	}
	if err := a.store.DeleteProject(p.ID); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Warning(fmt.Sprintf("Deleted project %s and all of its entries", p.Name))
}
