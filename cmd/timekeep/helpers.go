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
	"strings"
	"time"

	"github.com/AleutianAI/timekeep/cmd/timekeep/config"
	"github.com/AleutianAI/timekeep/pkg/logging"
	"github.com/AleutianAI/timekeep/pkg/ux"
	"github.com/AleutianAI/timekeep/services/tracker/report"
	"github.com/AleutianAI/timekeep/services/tracker/state"
	"github.com/AleutianAI/timekeep/services/tracker/storage"
)

// app bundles the collaborators every command needs: the loaded config,
// the snapshot database, and the in-memory entity store seeded from it.
//
// The active timer is intentionally absent after openApp: persisted
// timers are never restored as running. Timer commands operate within a
// single interactive session (see cmd_timer.go).
type app struct {
	ctx      context.Context
	logger   *logging.Logger
	snapshot *storage.SnapshotStore
	store    *state.Store
}

// openApp loads the config, opens the snapshot database, and seeds the
// entity store from the persisted state.
//
// Outputs:
//
//	*app - Ready-to-use application context. Caller must close() it.
//	error - Non-nil when the config or the database cannot be opened.
func openApp(ctx context.Context) (*app, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(config.Global.Logging.Level),
		LogDir:  config.Global.Logging.LogDir,
		Service: "cli",
	})
	snap, err := storage.Open(storage.Config{
		Path:       config.Global.Storage.DataDir,
		SyncWrites: true,
		Logger:     logger.Slog(),
	})
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	st, err := snap.Load(ctx)
	if err != nil {
		snap.Close()
		logger.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &app{
		ctx:      ctx,
		logger:   logger,
		snapshot: snap,
		store:    state.NewStore(state.WithState(st), state.WithLogger(logger.Slog())),
	}, nil
}

// persist hands the full current snapshot back to storage. Called after
// every mutating command.
func (a *app) persist() error {
	return a.snapshot.Save(a.ctx, a.store.Snapshot())
}

func (a *app) close() {
	if err := a.snapshot.Close(); err != nil {
		a.logger.Warn("closing snapshot database", "error", err.Error())
	}
	a.logger.Close()
}

// fail prints the error and exits non-zero. Commands use it instead of
// returning errors so cobra does not re-print usage on runtime failures.
func fail(err error) {
	ux.Error(err.Error())
	os.Exit(1)
}

// parseWhen parses a date or timestamp flag value. Accepts a plain date
// (2006-01-02, midnight local) or a full RFC 3339 timestamp.
func parseWhen(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want 2006-01-02 or RFC 3339)", value)
	}
	return t, nil
}

// parseRange converts the optional --from/--to flag values into a report
// range. Empty values leave the corresponding bound open.
func parseRange(from, to string) (report.Range, error) {
	var r report.Range
	if from != "" {
		t, err := parseWhen(from)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if to != "" {
		t, err := parseWhen(to)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	return r, nil
}

// resolveClient finds a client by identifier or exact (case-insensitive)
// name.
func resolveClient(st state.State, ref string) (state.Client, error) {
	if c, ok := st.Client(ref); ok {
		return c, nil
	}
	for _, c := range st.Clients {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return state.Client{}, fmt.Errorf("no client matches %q", ref)
}

// resolveProject finds a project by identifier or exact (case-insensitive)
// name. When clientID is non-empty, name matches are limited to that
// client's projects.
func resolveProject(st state.State, ref, clientID string) (state.Project, error) {
	if p, ok := st.Project(ref); ok {
		return p, nil
	}
	for _, p := range st.Projects {
		if clientID != "" && p.ClientID != clientID {
			continue
		}
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return state.Project{}, fmt.Errorf("no project matches %q", ref)
}

// clientLabel renders a client reference for display, degrading to the
// sentinel label for dangling identifiers.
func clientLabel(st state.State, id string) string {
	if c, ok := st.Client(id); ok {
		return c.Name
	}
	return "Unassigned"
}

// projectLabel renders a project reference for display.
func projectLabel(st state.State, id string) string {
	if p, ok := st.Project(id); ok {
		return p.Name
	}
	return "Unassigned"
}
