// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package reloadlog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/catalogd/internal/models"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func report(i int, success bool) *models.LoadReport {
	r := &models.LoadReport{
		ID:         fmt.Sprintf("load-%02d", i),
		Trigger:    "manual",
		Generation: uint64(i),
		Products:   100 + i,
		Duplicates: i % 3,
		StartedAt:  baseTime.Add(time.Duration(i) * time.Minute),
		FinishedAt: baseTime.Add(time.Duration(i)*time.Minute + 50*time.Millisecond),
		Duration:   50 * time.Millisecond,
		Success:    success,
	}
	if !success {
		r.Generation = 0
		r.Error = "products source missing"
	}
	return r
}

func newInMemoryBadger(t *testing.T, maxEntries int) *BadgerStore {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db, maxEntries)
}

// runStoreContract exercises behavior both backends must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T, maxEntries int) Store) {
	ctx := context.Background()

	t.Run("empty log", func(t *testing.T) {
		s := newStore(t, 5)
		last, err := s.Last(ctx)
		if err != nil {
			t.Fatalf("Last() error = %v", err)
		}
		if last != nil {
			t.Errorf("Last() = %+v, want nil", last)
		}
		recent, err := s.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(recent) != 0 {
			t.Errorf("Recent() returned %d reports, want 0", len(recent))
		}
	})

	t.Run("newest first", func(t *testing.T) {
		s := newStore(t, 10)
		for i := 1; i <= 3; i++ {
			if err := s.Append(ctx, report(i, i != 2)); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		recent, err := s.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(recent) != 3 {
			t.Fatalf("Recent() returned %d reports, want 3", len(recent))
		}
		for i, want := range []string{"load-03", "load-02", "load-01"} {
			if recent[i].ID != want {
				t.Errorf("Recent()[%d].ID = %s, want %s", i, recent[i].ID, want)
			}
		}
		if recent[1].Success || recent[1].Error == "" {
			t.Errorf("failed report not preserved: %+v", recent[1])
		}

		last, err := s.Last(ctx)
		if err != nil {
			t.Fatalf("Last() error = %v", err)
		}
		if last == nil || last.ID != "load-03" || last.Products != 103 {
			t.Errorf("Last() = %+v, want load-03", last)
		}
	})

	t.Run("limit", func(t *testing.T) {
		s := newStore(t, 10)
		for i := 1; i <= 4; i++ {
			if err := s.Append(ctx, report(i, true)); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}
		recent, err := s.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(recent) != 2 || recent[0].ID != "load-04" || recent[1].ID != "load-03" {
			t.Errorf("Recent(2) = %v", ids(recent))
		}
	})

	t.Run("trims oldest", func(t *testing.T) {
		s := newStore(t, 3)
		for i := 1; i <= 5; i++ {
			if err := s.Append(ctx, report(i, true)); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}
		recent, err := s.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		got := ids(recent)
		want := []string{"load-05", "load-04", "load-03"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("Recent() = %v, want %v", got, want)
		}
	})

	t.Run("stored copy is independent", func(t *testing.T) {
		s := newStore(t, 3)
		r := report(1, true)
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		r.Products = 0

		last, err := s.Last(ctx)
		if err != nil {
			t.Fatalf("Last() error = %v", err)
		}
		if last.Products != 101 {
			t.Errorf("Last().Products = %d, want 101", last.Products)
		}
	})
}

func ids(reports []models.LoadReport) []string {
	out := make([]string, len(reports))
	for i := range reports {
		out[i] = reports[i].ID
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(_ *testing.T, maxEntries int) Store {
		return NewMemoryStore(maxEntries)
	})
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T, maxEntries int) Store {
		return newInMemoryBadger(t, maxEntries)
	})
}

func TestBadgerStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "reloads")

	s, err := OpenBadger(dir, 10)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Append(ctx, report(7, true)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(dir, 10)
	if err != nil {
		t.Fatalf("OpenBadger() reopen error = %v", err)
	}
	defer reopened.Close()

	last, err := reopened.Last(ctx)
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last == nil || last.ID != "load-07" {
		t.Fatalf("Last() = %+v, want load-07", last)
	}
	if last.Duration != 50*time.Millisecond || !last.StartedAt.Equal(report(7, true).StartedAt) {
		t.Errorf("timing fields not round-tripped: %+v", last)
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	s := newInMemoryBadger(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Append(ctx, report(1, true)); err == nil {
		t.Error("Append() with canceled context should fail")
	}
	if _, err := s.Recent(ctx, 1); err == nil {
		t.Error("Recent() with canceled context should fail")
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(Config{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open() with empty path = %T, want *MemoryStore", s)
	}

	s, err = Open(Config{Path: filepath.Join(t.TempDir(), "log"), MaxEntries: 2})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	bs, ok := s.(*BadgerStore)
	if !ok {
		t.Fatalf("Open() with path = %T, want *BadgerStore", s)
	}
	if bs.maxEntries != 2 {
		t.Errorf("maxEntries = %d, want 2", bs.maxEntries)
	}
}
