// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package reloadlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/catalogd/internal/models"
)

// Keys sort by start time: "reload:<unix-nanos, zero padded>:<report id>".
const reportKeyPrefix = "reload:"

// BadgerStore persists load reports in BadgerDB.
type BadgerStore struct {
	db         *badger.DB
	ownsDB     bool
	maxEntries int

	// mu serializes Append so trimming sees a stable count.
	mu sync.Mutex
}

// OpenBadger opens (or creates) a BadgerDB at path and returns a store that
// owns it.
func OpenBadger(path string, maxEntries int) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	s := NewBadgerStore(db, maxEntries)
	s.ownsDB = true
	return s, nil
}

// NewBadgerStore wraps an already open database. Close does not close db.
func NewBadgerStore(db *badger.DB, maxEntries int) *BadgerStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &BadgerStore{db: db, maxEntries: maxEntries}
}

func reportKey(r *models.LoadReport) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", reportKeyPrefix, r.StartedAt.UnixNano(), r.ID))
}

// Append stores report and trims the history to the configured size.
func (s *BadgerStore) Append(ctx context.Context, report *models.LoadReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(reportKey(report), data)
	}); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return s.trim()
}

// trim deletes the oldest reports beyond maxEntries. Must hold s.mu.
func (s *BadgerStore) trim() error {
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reportKeyPrefix)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		if excess := len(keys) - s.maxEntries; excess > 0 {
			stale = keys[:excess]
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan reports: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete report: %w", err)
			}
		}
		return nil
	})
}

// Recent returns up to limit reports, newest first. A non-positive limit
// returns every retained report.
func (s *BadgerStore) Recent(ctx context.Context, limit int) ([]models.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var reports []models.LoadReport
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reportKeyPrefix)
		// Reverse iteration starts at the last key <= seek key.
		seek := append([]byte(reportKeyPrefix), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(reports) >= limit {
				break
			}
			var r models.LoadReport
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode report: %w", err)
			}
			reports = append(reports, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	return reports, nil
}

// Last returns the newest report, or nil when none is stored.
func (s *BadgerStore) Last(ctx context.Context) (*models.LoadReport, error) {
	reports, err := s.Recent(ctx, 1)
	if err != nil || len(reports) == 0 {
		return nil, err
	}
	return &reports[0], nil
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
