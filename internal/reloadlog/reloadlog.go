// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package reloadlog keeps the history of catalog load attempts.
//
// Every Initialize and Reload appends a models.LoadReport, successful or
// not, so operators can see when the catalog last changed and how many rows
// each load rejected. Two backends share the Store interface: a BadgerDB
// store that survives restarts and an in-memory ring used when no path is
// configured and in tests.
package reloadlog

import (
	"context"
	"fmt"

	"github.com/tomtom215/catalogd/internal/models"
)

// DefaultMaxEntries bounds the history when no limit is configured.
const DefaultMaxEntries = 200

// Store records load reports. Implementations are safe for concurrent use.
type Store interface {
	// Append records a report, trimming the oldest entries past the limit.
	Append(ctx context.Context, report *models.LoadReport) error

	// Recent returns up to limit reports, newest first.
	Recent(ctx context.Context, limit int) ([]models.LoadReport, error)

	// Last returns the newest report, or nil when the log is empty.
	Last(ctx context.Context) (*models.LoadReport, error)

	Close() error
}

// Config selects and sizes the backend.
type Config struct {
	// Path is the BadgerDB directory. Empty selects the in-memory store.
	Path string

	// MaxEntries is the number of reports retained.
	MaxEntries int
}

// Open returns the store described by cfg.
func Open(cfg Config) (Store, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.Path == "" {
		return NewMemoryStore(cfg.MaxEntries), nil
	}
	s, err := OpenBadger(cfg.Path, cfg.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("open reload log: %w", err)
	}
	return s, nil
}
