// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing is returned when a configured source file does not exist.
	ErrSourceMissing = errors.New("ingest source missing")

	// ErrEmptySource is returned when a source holds no data rows.
	ErrEmptySource = errors.New("ingest source is empty")

	// ErrMalformedSource is returned when a source cannot be decoded at all,
	// or when none of its rows are usable.
	ErrMalformedSource = errors.New("ingest source is malformed")
)

// DataLoadError reports a source that could not produce a catalog.
type DataLoadError struct {
	// Source is the path being read.
	Source string
	// Reason is a short human-readable description.
	Reason string
	// Err is one of the sentinel errors above, or an underlying I/O error.
	Err error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data load %s: %s", e.Source, e.Reason)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func loadError(source, reason string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Reason: reason, Err: err}
}

// rowError describes why a single row was skipped.
type rowError struct {
	field  string
	reason string
}

func (e *rowError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.reason)
}
