// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
)

type TimekeepConfig struct {
	// Storage: where the badger snapshot database lives
	Storage StorageConfig `yaml:"storage"`

	// Invoicing: defaults applied when building invoices
	Invoicing InvoicingConfig `yaml:"invoicing"`

	// Logging: level and optional log file directory
	Logging LoggingConfig `yaml:"logging"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"` // e.g. ~/.timekeep/data
}

type InvoicingConfig struct {
	TaxRatePercent float64 `yaml:"tax_rate_percent"` // e.g. 19.0
	DueInDays      int     `yaml:"due_in_days"`      // e.g. 30
	Currency       string  `yaml:"currency"`         // e.g. EUR, USD; display only
}

type LoggingConfig struct {
	Level  string `yaml:"level"`   // debug, info, warn, error
	LogDir string `yaml:"log_dir"` // empty disables file logging
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() TimekeepConfig {
	return TimekeepConfig{
		Storage: StorageConfig{
			DataDir: filepath.Join(configDir(), "data"),
		},
		Invoicing: InvoicingConfig{
			TaxRatePercent: 0,
			DueInDays:      30,
			Currency:       "USD",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// configDir returns ~/.timekeep, falling back to a relative directory
// when the home directory cannot be determined.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timekeep"
	}
	return filepath.Join(home, ".timekeep")
}
