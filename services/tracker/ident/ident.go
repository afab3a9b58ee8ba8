// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ident generates opaque entity identifiers.
//
// Identifiers are kind-prefixed strings ("client_", "project_", "entry_",
// "inv_") followed by a random UUID suffix. The prefix makes identifiers
// self-describing in logs and exports; the exact suffix format is not a
// compatibility contract, only uniqueness is.
package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the entity kind tag prefixed onto generated identifiers.
type Kind string

const (
	KindClient  Kind = "client"
	KindProject Kind = "project"
	KindEntry   Kind = "entry"
	KindInvoice Kind = "inv"
)

// Generator produces unique identifiers for new entities.
//
// The state store accepts a Generator so tests can substitute a
// deterministic implementation.
type Generator interface {
	New(kind Kind) string
}

// UUIDGenerator is the production Generator backed by random UUIDs.
//
// Thread Safety: safe for concurrent use.
type UUIDGenerator struct{}

// New returns a fresh identifier of the form "<kind>_<uuid>".
func (UUIDGenerator) New(kind Kind) string {
	return fmt.Sprintf("%s_%s", kind, uuid.NewString())
}

// New returns a fresh identifier using the default UUID generator.
func New(kind Kind) string {
	return UUIDGenerator{}.New(kind)
}
