// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readCSV decodes a delimited file. Rows the CSV reader rejects are kept
// as malformed records so they are counted as skipped.
func readCSV(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, "open failed", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, loadError(path, "unreadable header", errors.Join(ErrMalformedSource, err))
	}

	var (
		rows    [][]string
		broken  []int
		lineErr *csv.ParseError
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.As(err, &lineErr) {
			broken = append(broken, len(rows))
			rows = append(rows, nil)
			continue
		}
		if err != nil {
			return nil, loadError(path, "read failed", err)
		}
		rows = append(rows, row)
	}

	recs, err := rowsToRecords(path, header, withoutNil(rows))
	if err != nil {
		return nil, err
	}
	return spliceMalformed(recs, rows, broken), nil
}

func withoutNil(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			out = append(out, row)
		}
	}
	return out
}

// spliceMalformed reinserts a malformed record at each broken row position
// so that row numbers in logs follow the file.
func spliceMalformed(recs []record, rows [][]string, broken []int) []record {
	if len(broken) == 0 {
		return recs
	}
	out := make([]record, 0, len(recs)+len(broken))
	next := 0
	for _, row := range rows {
		if row == nil {
			out = append(out, malformedRecord("unparseable csv line"))
			continue
		}
		if blankRow(row) {
			continue
		}
		out = append(out, recs[next])
		next++
	}
	return out
}
