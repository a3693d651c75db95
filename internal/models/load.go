// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package models

import "time"

// LoadReport describes one catalog load attempt.
type LoadReport struct {
	// ID is unique per attempt.
	ID string `json:"id"`

	// Trigger is what started the load (startup, manual, watcher).
	Trigger string `json:"trigger"`

	// Generation is the snapshot generation produced by a successful load.
	// Zero for failed attempts.
	Generation uint64 `json:"generation"`

	ProductRows int `json:"product_rows"`
	StockRows   int `json:"stock_rows"`

	// Products is the number of distinct SKUs held after deduplication.
	Products int `json:"products"`

	// Searchable is the number of active, non-deleted products.
	Searchable int `json:"searchable"`

	// SkippedRows counts malformed product and stock rows.
	SkippedRows int `json:"skipped_rows"`

	// Duplicates counts product rows that overwrote an earlier row for the same SKU.
	Duplicates int `json:"duplicates"`

	// OrphanStock counts stock rows whose SKU has no product.
	OrphanStock int `json:"orphan_stock"`

	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration_ns"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SkippedOrDuplicate is the number of rows that did not survive as-is.
func (r *LoadReport) SkippedOrDuplicate() int {
	return r.SkippedRows + r.Duplicates
}
