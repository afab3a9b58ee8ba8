// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage persists entity snapshots in an embedded BadgerDB.
//
// The core hands the full state snapshot to this package after every
// transition; at startup the snapshot is read back to seed the store.
// Malformed or absent persisted data falls back to the empty initial
// state rather than failing — the snapshot is replaceable, the process
// is not.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/timekeep/services/tracker/state"
)

// snapshotKey is the fixed key the current snapshot lives under.
var snapshotKey = []byte("snapshot/current")

// Config holds configuration for the snapshot store.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger is the logger for storage operations.
	// If nil, BadgerDB's internal logging is disabled and load warnings
	// are dropped.
	Logger *slog.Logger
}

// DefaultConfig returns production defaults: durable synchronous writes at
// the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryConfig returns a configuration for testing: no disk I/O, no
// sync.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// SnapshotStore persists and restores full state snapshots.
//
// Thread Safety: safe for concurrent use; BadgerDB transactions provide
// isolation.
type SnapshotStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open creates the snapshot store with the given configuration.
//
// Description:
//
//	Opens a BadgerDB database at the configured path, creating the
//	directory if needed, or in memory when InMemory is set.
//
// Outputs:
//
//	*SnapshotStore - The opened store. Caller must Close it.
//	error - Non-nil if the path is missing or the database cannot open.
func Open(cfg Config) (*SnapshotStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent storage")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	return &SnapshotStore{db: db, logger: cfg.Logger}, nil
}

// OpenInMemory opens an in-memory store for testing.
func OpenInMemory() (*SnapshotStore, error) {
	return Open(InMemoryConfig())
}

// Save persists the full snapshot, replacing any previous one.
//
// Inputs:
//
//	ctx - Context for cancellation (checked before the write).
//	st - The snapshot, including the active timer if one is running.
//
// Outputs:
//
//	error - Non-nil if marshalling or the write transaction fails.
func (s *SnapshotStore) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load restores the most recent snapshot.
//
// Description:
//
//	Reads the snapshot key and unmarshals it. An absent key or a payload
//	that fails to unmarshal yields the empty initial state with a nil
//	error; corruption is logged, never fatal. The caller is responsible
//	for dropping the persisted active timer (state.WithState does this).
//
// Outputs:
//
//	state.State - The restored snapshot, or the zero State.
//	error - Non-nil only for transaction-level failures.
func (s *SnapshotStore) Load(ctx context.Context) (state.State, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, fmt.Errorf("context cancelled: %w", err)
	}
	var st state.State
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // First run: empty state
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &st); err != nil {
				if s.logger != nil {
					s.logger.Warn("discarding malformed snapshot",
						slog.String("error", err.Error()))
				}
				st = state.State{}
			}
			return nil
		})
	})
	if err != nil {
		return state.State{}, fmt.Errorf("read snapshot: %w", err)
	}
	return st, nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
