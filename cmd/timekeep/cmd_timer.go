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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// tickMsg is the one-second cooperative tick driving the elapsed display.
// Ticking is a pure read of wall-clock time against the stored start
// instant; it never mutates state.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// timerModel is the interactive timer session. The timer lives exactly as
// long as this program: stopping records an entry, resetting or quitting
// discards the interval.
type timerModel struct {
	app     *app
	timer   state.ActiveTimer
	client  string
	project string
	now     time.Time
	outcome string
	failure error
}

func (m timerModel) Init() tea.Cmd {
	return tick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			entry, err := m.app.store.StopTimer(time.Now())
			if err != nil {
				m.failure = err
				return m, tea.Quit
			}
			if err := m.app.persist(); err != nil {
				m.failure = err
				return m, tea.Quit
			}
			m.outcome = fmt.Sprintf("Recorded %s (%s)",
				ux.FormatDuration(entry.DurationMS), entry.ID)
			return m, tea.Quit
		case "r":
			m.app.store.ResetTimer()
			if err := m.app.persist(); err != nil {
				m.failure = err
				return m, tea.Quit
			}
			m.outcome = "Timer reset, no entry recorded"
			return m, tea.Quit
		case "q", "ctrl+c":
			// A quit discards the interval: timers are never resumed
			// across sessions.
			m.outcome = "Timer discarded"
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.outcome != "" || m.failure != nil {
		return ""
	}
	elapsed := m.now.Sub(m.timer.Start)
	if elapsed < 0 {
		elapsed = 0
	}
	target := m.client
	if m.project != "" {
		target += " / " + m.project
	}
	if target == "" {
		target = "Unassigned"
	}
	header := fmt.Sprintf("%s %s", ux.IconTimer.Render(), ux.Styles.Title.Render("Tracking "+target))
	clock := ux.Styles.Highlight.Render(ux.FormatDuration(elapsed.Milliseconds()))
	help := ux.Styles.Muted.Render("s: stop and record   r: reset   q: quit (discard)")
	return fmt.Sprintf("%s\n\n  %s\n\n%s\n", header, clock, help)
}

func runTimerStart(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	st := a.store.Snapshot()
	sel := state.TimerSelection{
		Notes:    timerNotes,
		Billable: timerBillable,
	}
	clientDisplay := ""
	projectDisplay := ""
	if timerClient != "" {
		c, err := resolveClient(st, timerClient)
		if err != nil {
			fail(err)
		}
		sel.ClientID = c.ID
		clientDisplay = c.Name
	}
	if timerProject != "" {
		p, err := resolveProject(st, timerProject, sel.ClientID)
		if err != nil {
			fail(err)
		}
		sel.ProjectID = p.ID
		projectDisplay = p.Name
	}

	t, err := a.store.StartTimer(sel)
	if err != nil {
		fail(err)
	}
	if err := a.persist(); err != nil {
		fail(err)
	}

	model := timerModel{
		app:     a,
		timer:   t,
		client:  clientDisplay,
		project: projectDisplay,
		now:     time.Now(),
	}
	out, err := tea.NewProgram(model).Run()
	if err != nil {
		fail(fmt.Errorf("timer session: %w", err))
	}
	final := out.(timerModel)
	if final.failure != nil {
		fail(final.failure)
	}
	ux.Success(final.outcome)
}

func runTimerStatus(cmd *cobra.Command, args []string) {
	a, err := openApp(context.Background())
	if err != nil {
		fail(err)
	}
	defer a.close()

	t, running := a.store.Timer()
	if !running {
		ux.Muted("No timer is running. Timers live inside a 'timer start' session.")
		return
	}
	elapsed := time.Since(t.Start).Milliseconds()
	ux.Info(fmt.Sprintf("Timer running for %s", ux.FormatDuration(elapsed)))
}
