// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"strings"
)

// rowsToRecords turns a header plus data rows into records. Fully blank
// rows are dropped. Short rows leave trailing columns empty.
func rowsToRecords(path string, header []string, rows [][]string) ([]record, error) {
	columns := make([]string, len(header))
	hasSKU := false
	for i, h := range header {
		columns[i] = normalizeColumn(h)
		if columns[i] == colSKU {
			hasSKU = true
		}
	}
	if !hasSKU {
		return nil, loadError(path, "header has no sku column", ErrMalformedSource)
	}

	recs := make([]record, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		rec := make(record, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(row) {
				continue
			}
			rec[col] = row[i]
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// firstNonBlank splits rows into the first non-blank row and the rest.
func firstNonBlank(rows [][]string) (header []string, rest [][]string, ok bool) {
	for i, row := range rows {
		if !blankRow(row) {
			return row, rows[i+1:], true
		}
	}
	return nil, nil, false
}
