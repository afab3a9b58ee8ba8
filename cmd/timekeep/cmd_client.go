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

func runClientAdd(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	c, err := a.store.AddClient(state.Client{
		Name:    args[0],
		Address: clientAddress,
		Rate:    clientRate,
	})
	if err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Added client %s (%s)", c.Name, c.ID))
}

func runClientList(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	var rows [][]string
	for _, c := range st.Clients {
		if c.Archived && !showArchived {
			continue
		}
		name := c.Name
		if c.Archived {
			name += " (archived)"
		}
		rows = append(rows, []string{c.ID, name, ux.FormatMoney(c.Rate), c.Address})
	}
	if len(rows) == 0 {
		ux.Muted("No clients yet. Add one with: timekeep client add <name>")
		return
	}
	fmt.Print(ux.Table([]string{"ID", "NAME", "RATE", "ADDRESS"}, rows))
}

func runClientUpdate(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	c, err := resolveClient(a.store.Snapshot(), args[0])
	if err != nil {
		fail(err)
	}
	if cmd.Flags().Changed("name") {
		c.Name = clientName
	}
	if cmd.Flags().Changed("address") {
		c.Address = clientAddress
	}
	if cmd.Flags().Changed("rate") {
		c.Rate = clientRate
	}
	if err := a.store.UpdateClient(c); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Updated client %s", c.Name))
}

func runClientArchive(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	c, err := resolveClient(a.store.Snapshot(), args[0])
	if err != nil {
		fail(err)
	}
	unarchive, _ := cmd.Flags().GetBool("unarchive")
	c.Archived = !unarchive
	if err := a.store.UpdateClient(c); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	if unarchive {
		ux.Success(fmt.Sprintf("Unarchived client %s", c.Name))
	} else {
		ux.Success(fmt.Sprintf("Archived client %s", c.Name))
	}
}

func runClientRm(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	c, err := resolveClient(a.store.Snapshot(), args[0])
	if err != nil {
		fail(err)
	}
	if err := a.store.DeleteClient(c.ID); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Warning(fmt.Sprintf("Deleted client %s and all of its projects and entries", c.Name))
}
