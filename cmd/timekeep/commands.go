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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	clientAddress string
	clientRate    float64
	clientName    string
	showArchived  bool

	projectClient string
	projectRate   float64
	projectName   string

	entryClient   string
	entryProject  string
	entryStart    string
	entryEnd      string
	entryNotes    string
	entryTags     []string
	entryBillable bool

	timerClient   string
	timerProject  string
	timerNotes    string
	timerBillable bool

	rangeFrom string
	rangeTo   string

	invoiceClient string
	invoiceTax    float64
	invoiceDueIn  int

	exportOut string

	rootCmd = &cobra.Command{
		Use:   "timekeep",
		Short: "A cli to track time against clients and projects and derive invoices",
		Long: `Timekeep is a local, single-user time tracker: it records billable
				work intervals against clients and projects, aggregates them into
				reports, and derives invoices from tracked time.`,
	}

	// --- Clients ---
	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}
	clientAddCmd = &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new client",
		Args:  cobra.ExactArgs(1),
		Run:   runClientAdd, // Defined in cmd_client.go
	}
	clientListCmd = &cobra.Command{
		Use:   "list",
		Short: "List clients (newest first)",
		Run:   runClientList, // Defined in cmd_client.go
	}
	clientUpdateCmd = &cobra.Command{
		Use:   "update [client]",
		Short: "Update a client's name, address or default rate",
		Args:  cobra.ExactArgs(1),
		Run:   runClientUpdate, // Defined in cmd_client.go
	}
	clientArchiveCmd = &cobra.Command{
		Use:   "archive [client]",
		Short: "Archive a client (hidden from default listings, data kept)",
		Args:  cobra.ExactArgs(1),
		Run:   runClientArchive, // Defined in cmd_client.go
	}
	clientRmCmd = &cobra.Command{
		Use:   "rm [client]",
		Short: "Delete a client AND its projects and time entries",
		Args:  cobra.ExactArgs(1),
		Run:   runClientRm, // Defined in cmd_client.go
	}

	// --- Projects ---
	projectCmd = &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectAddCmd = &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new project for a client",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectAdd, // Defined in cmd_project.go
	}
	projectListCmd = &cobra.Command{
		Use:   "list",
		Short: "List projects (newest first)",
		Run:   runProjectList, // Defined in cmd_project.go
	}
	projectUpdateCmd = &cobra.Command{
		Use:   "update [project]",
		Short: "Update a project's name or rate override",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectUpdate, // Defined in cmd_project.go
	}
	projectArchiveCmd = &cobra.Command{
		Use:   "archive [project]",
		Short: "Archive a project (hidden from default listings, data kept)",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectArchive, // Defined in cmd_project.go
	}
	projectRmCmd = &cobra.Command{
		Use:   "rm [project]",
		Short: "Delete a project AND its time entries",
		Args:  cobra.ExactArgs(1),
		Run:   runProjectRm, // Defined in cmd_project.go
	}

	// --- Time entries ---
	entryCmd = &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
	}
	entryAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Record a finished work interval",
		Run:   runEntryAdd, // Defined in cmd_entry.go
	}
	entryListCmd = &cobra.Command{
		Use:   "list",
		Short: "List time entries (newest first)",
		Run:   runEntryList, // Defined in cmd_entry.go
	}
	entryUpdateCmd = &cobra.Command{
		Use:   "update [entry-id]",
		Short: "Edit an entry; duration is re-derived from start/end",
		Args:  cobra.ExactArgs(1),
		Run:   runEntryUpdate, // Defined in cmd_entry.go
	}
	entryRmCmd = &cobra.Command{
		Use:   "rm [entry-id]",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		Run:   runEntryRm, // Defined in cmd_entry.go
	}

	// --- Timer ---
	timerCmd = &cobra.Command{
		Use:   "timer",
		Short: "Track work as it happens",
		Long: `timer start runs an interactive session showing elapsed time at
				one-second granularity. Press s to stop and record an entry,
				r to reset (discard), q to quit. A timer is never resumed
				across sessions: quitting discards it.`,
	}
	timerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start a timer and watch it (s: stop, r: reset, q: quit)",
		Run:   runTimerStart, // Defined in cmd_timer.go
	}
	timerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show whether a timer is running in this session",
		Run:   runTimerStatus, // Defined in cmd_timer.go
	}

	// --- Reports ---
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Aggregate tracked time",
	}
	reportClientCmd = &cobra.Command{
		Use:   "client",
		Short: "Total tracked time per client",
		Run:   runReportClient, // Defined in cmd_report.go
	}
	reportProjectCmd = &cobra.Command{
		Use:   "project",
		Short: "Total tracked time per project",
		Run:   runReportProject, // Defined in cmd_report.go
	}

	// --- Invoices ---
	invoiceCmd = &cobra.Command{
		Use:   "invoice",
		Short: "Derive and manage invoices",
	}
	invoiceCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Build a draft invoice from billable entries",
		Run:   runInvoiceCreate, // Defined in cmd_invoice.go
	}
	invoiceListCmd = &cobra.Command{
		Use:   "list",
		Short: "List invoices (newest first)",
		Run:   runInvoiceList, // Defined in cmd_invoice.go
	}
	invoiceShowCmd = &cobra.Command{
		Use:   "show [invoice]",
		Short: "Show an invoice with its line items",
		Args:  cobra.ExactArgs(1),
		Run:   runInvoiceShow, // Defined in cmd_invoice.go
	}
	invoiceMarkCmd = &cobra.Command{
		Use:   "mark [invoice] [sent|paid|overdue]",
		Short: "Advance an invoice through its lifecycle",
		Args:  cobra.ExactArgs(2),
		Run:   runInvoiceMark, // Defined in cmd_invoice.go
	}
	invoiceRmCmd = &cobra.Command{
		Use:   "rm [invoice]",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		Run:   runInvoiceRm, // Defined in cmd_invoice.go
	}

	// --- Export ---
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export time entries as CSV",
		Run:   runExport, // Defined in cmd_export.go
	}
)

// init runs when the Go program starts
func init() {
	// client commands
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientUpdateCmd)
	clientCmd.AddCommand(clientArchiveCmd)
	clientCmd.AddCommand(clientRmCmd)
	clientAddCmd.Flags().StringVar(&clientAddress, "address", "", "Postal address printed on invoices")
	clientAddCmd.Flags().Float64Var(&clientRate, "rate", 0, "Default hourly rate")
	clientListCmd.Flags().BoolVar(&showArchived, "all", false, "Include archived clients")
	clientUpdateCmd.Flags().StringVar(&clientName, "name", "", "New display name")
	clientUpdateCmd.Flags().StringVar(&clientAddress, "address", "", "New postal address")
	clientUpdateCmd.Flags().Float64Var(&clientRate, "rate", 0, "New default hourly rate")
	clientArchiveCmd.Flags().Bool("unarchive", false, "Bring the client back into default listings")

	// project commands
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectArchiveCmd)
	projectCmd.AddCommand(projectRmCmd)
	projectAddCmd.Flags().StringVar(&projectClient, "client", "", "Owning client (id or name)")
	projectAddCmd.Flags().Float64Var(&projectRate, "rate", 0, "Hourly rate override (0 uses the client default)")
	projectAddCmd.MarkFlagRequired("client")
	projectListCmd.Flags().BoolVar(&showArchived, "all", false, "Include archived projects")
	projectUpdateCmd.Flags().StringVar(&projectName, "name", "", "New display name")
	projectUpdateCmd.Flags().Float64Var(&projectRate, "rate", 0, "New hourly rate override")
	projectArchiveCmd.Flags().Bool("unarchive", false, "Bring the project back into default listings")

	// entry commands
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryUpdateCmd)
	entryCmd.AddCommand(entryRmCmd)
	entryAddCmd.Flags().StringVar(&entryClient, "client", "", "Client (id or name)")
	entryAddCmd.Flags().StringVar(&entryProject, "project", "", "Project (id or name)")
	entryAddCmd.Flags().StringVar(&entryStart, "start", "", "Start (2006-01-02 or RFC 3339)")
	entryAddCmd.Flags().StringVar(&entryEnd, "end", "", "End (2006-01-02 or RFC 3339)")
	entryAddCmd.Flags().StringVar(&entryNotes, "notes", "", "Free-form notes")
	entryAddCmd.Flags().StringSliceVar(&entryTags, "tag", nil, "Tag (repeatable)")
	entryAddCmd.Flags().BoolVar(&entryBillable, "billable", true, "Count toward invoices")
	entryAddCmd.MarkFlagRequired("client")
	entryAddCmd.MarkFlagRequired("project")
	entryAddCmd.MarkFlagRequired("start")
	entryListCmd.Flags().StringVar(&rangeFrom, "from", "", "Only entries starting on or after this date")
	entryListCmd.Flags().StringVar(&rangeTo, "to", "", "Only entries ending on or before this date")
	entryListCmd.Flags().StringVar(&entryClient, "client", "", "Only entries for this client")
	entryUpdateCmd.Flags().StringVar(&entryStart, "start", "", "New start (2006-01-02 or RFC 3339)")
	entryUpdateCmd.Flags().StringVar(&entryEnd, "end", "", "New end (2006-01-02 or RFC 3339)")
	entryUpdateCmd.Flags().StringVar(&entryNotes, "notes", "", "New notes")
	entryUpdateCmd.Flags().BoolVar(&entryBillable, "billable", true, "Count toward invoices")

	// timer commands
	rootCmd.AddCommand(timerCmd)
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStatusCmd)
	timerStartCmd.Flags().StringVar(&timerClient, "client", "", "Client (id or name); optional until stop")
	timerStartCmd.Flags().StringVar(&timerProject, "project", "", "Project (id or name); optional until stop")
	timerStartCmd.Flags().StringVar(&timerNotes, "notes", "", "Notes carried onto the recorded entry")
	timerStartCmd.Flags().BoolVar(&timerBillable, "billable", true, "Count toward invoices")

	// report commands
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportClientCmd)
	reportCmd.AddCommand(reportProjectCmd)
	reportCmd.PersistentFlags().StringVar(&rangeFrom, "from", "", "Range start date (inclusive)")
	reportCmd.PersistentFlags().StringVar(&rangeTo, "to", "", "Range end date (inclusive, whole day)")

	// invoice commands
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceMarkCmd)
	invoiceCmd.AddCommand(invoiceRmCmd)
	invoiceCreateCmd.Flags().StringVar(&invoiceClient, "client", "", "Client to invoice (id or name)")
	invoiceCreateCmd.Flags().StringVar(&rangeFrom, "from", "", "Period start date (inclusive)")
	invoiceCreateCmd.Flags().StringVar(&rangeTo, "to", "", "Period end date (inclusive, whole day)")
	invoiceCreateCmd.Flags().Float64Var(&invoiceTax, "tax", -1, "Tax percentage (default from config)")
	invoiceCreateCmd.Flags().IntVar(&invoiceDueIn, "due-in", 0, "Days until due (default from config)")
	invoiceCreateCmd.MarkFlagRequired("client")

	// export command
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&rangeFrom, "from", "", "Only entries starting on or after this date")
	exportCmd.Flags().StringVar(&rangeTo, "to", "", "Only entries ending on or before this date")
	exportCmd.Flags().StringVar(&entryClient, "client", "", "Only entries for this client")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output filename (default: stdout)")
}
