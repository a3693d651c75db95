// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package reloadlog

import (
	"context"
	"sync"

	"github.com/tomtom215/catalogd/internal/models"
)

// MemoryStore keeps the newest reports in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	reports    []models.LoadReport // oldest first
	maxEntries int
}

// NewMemoryStore returns an empty store retaining maxEntries reports.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{maxEntries: maxEntries}
}

// Append stores a copy of report.
func (s *MemoryStore) Append(_ context.Context, report *models.LoadReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, *report)
	if excess := len(s.reports) - s.maxEntries; excess > 0 {
		s.reports = append(s.reports[:0:0], s.reports[excess:]...)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]models.LoadReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.reports)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.LoadReport, 0, n)
	for i := len(s.reports) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.reports[i])
	}
	return out, nil
}

// Last returns the newest report, or nil when none is stored.
func (s *MemoryStore) Last(_ context.Context) (*models.LoadReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return nil, nil
	}
	r := s.reports[len(s.reports)-1]
	return &r, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
