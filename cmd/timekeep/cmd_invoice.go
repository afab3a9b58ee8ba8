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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/timekeep/cmd/timekeep/config"
	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/invoice"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

func runInvoiceCreate(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	client, err := resolveClient(st, invoiceClient)
	if err != nil {
		fail(err)
	}
	r, err := parseRange(rangeFrom, rangeTo)
	if err != nil {
		fail(err)
	}

	taxRate := invoiceTax
	if taxRate < 0 {
		taxRate = config.Global.Invoicing.TaxRatePercent
	}
	dueIn := invoiceDueIn
	if dueIn <= 0 {
		dueIn = config.Global.Invoicing.DueInDays
	}
	issue := time.Now()
	var due *time.Time
	if dueIn > 0 {
		d := issue.AddDate(0, 0, dueIn)
		due = &d
	}

	draft, err := invoice.Build(st, client.ID, r, taxRate, issue, due)
	if err != nil {
		fail(err)
	}
	if len(draft.Lines) == 0 {
		ux.Warning("No billable entries in this period; invoice not created.")
		return
	}
	inv, err := a.store.AddInvoice(draft)
	if err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Created %s for %s: %s %s",
		inv.Number, client.Name,
		ux.FormatMoney(inv.Total), config.Global.Invoicing.Currency))
}

func runInvoiceList(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	if len(st.Invoices) == 0 {
		ux.Muted("No invoices yet. Create one with: timekeep invoice create --client <client>")
		return
	}
	var rows [][]string
	for _, inv := range st.Invoices {
		rows = append(rows, []string{
			inv.Number,
			clientLabel(st, inv.ClientID),
			inv.IssueDate.Format("2006-01-02"),
			string(inv.Status),
			ux.FormatMoney(inv.Total),
			inv.ID,
		})
	}
	fmt.Print(ux.Table([]string{"NUMBER", "CLIENT", "ISSUED", "STATUS", "TOTAL", "ID"}, rows))
}

func runInvoiceShow(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	inv, err := findInvoice(st, args[0])
	if err != nil {
		fail(err)
	}

	currency := config.Global.Invoicing.Currency
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s\n", clientLabel(st, inv.ClientID))
	fmt.Fprintf(&b, "Issued: %s", inv.IssueDate.Format("2006-01-02"))
	if inv.DueDate != nil {
		fmt.Fprintf(&b, "   Due: %s", inv.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "\nStatus: %s\n\n", inv.Status)

	var lines [][]string
	for _, l := range inv.Lines {
		lines = append(lines, []string{
			l.Description,
			fmt.Sprintf("%.2f", l.Hours),
			ux.FormatMoney(l.Rate),
			ux.FormatMoney(l.Amount),
		})
	}
	b.WriteString(ux.Table([]string{"DESCRIPTION", "HOURS", "RATE", "AMOUNT"}, lines))
	fmt.Fprintf(&b, "\nSubtotal: %s %s\n", ux.FormatMoney(inv.Subtotal), currency)
	fmt.Fprintf(&b, "Tax (%.1f%%): %s %s\n", inv.TaxRate, ux.FormatMoney(inv.Tax), currency)
	fmt.Fprintf(&b, "Total: %s %s\n", ux.FormatMoney(inv.Total), currency)

	ux.Box(inv.Number, b.String())
}

func runInvoiceMark(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	inv, err := findInvoice(a.store.Snapshot(), args[0])
	if err != nil {
		fail(err)
	}
	status := state.InvoiceStatus(strings.ToLower(args[1]))
	if err := a.store.MarkInvoice(inv.ID, status); err != nil {
		fail(fmt.Errorf("mark %s as %s: %w", inv.Number, status, err))
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Success(fmt.Sprintf("Marked %s as %s", inv.Number, status))
}

func runInvoiceRm(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	inv, err := findInvoice(a.store.Snapshot(), args[0])
	if err != nil {
		fail(err)
	}
	if err := a.store.DeleteInvoice(inv.ID); err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}
	ux.Warning(fmt.Sprintf("Deleted invoice %s", inv.Number))
}

// findInvoice accepts an invoice identifier or a human-readable number
// (INV-2025-0001).
func findInvoice(st state.State, ref string) (state.Invoice, error) {
	if inv, ok := st.Invoice(ref); ok {
		return inv, nil
	}
	for _, inv := range st.Invoices {
		if strings.EqualFold(inv.Number, ref) {
			return inv, nil
		}
	}
	return state.Invoice{}, fmt.Errorf("no invoice matches %q", ref)
}
