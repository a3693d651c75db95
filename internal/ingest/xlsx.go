// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX decodes a workbook. Products come from a sheet named
// "products", or else the first sheet that is not the stock sheet.
func readXLSX(path string) (products, stock []record, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, loadError(path, "invalid workbook", errors.Join(ErrMalformedSource, err))
	}
	defer f.Close()

	productSheet, stockSheet := pickSheets(f.GetSheetList())
	if productSheet != "" {
		if products, err = sheetRecords(f, path, productSheet); err != nil {
			return nil, nil, err
		}
	}
	if stockSheet != "" {
		if stock, err = sheetRecords(f, path, stockSheet); err != nil {
			return nil, nil, err
		}
	}
	return products, stock, nil
}

func pickSheets(sheets []string) (productSheet, stockSheet string) {
	for _, sh := range sheets {
		switch strings.ToLower(strings.TrimSpace(sh)) {
		case "stock", "inventory":
			if stockSheet == "" {
				stockSheet = sh
			}
		case "products":
			productSheet = sh
		}
	}
	if productSheet == "" {
		for _, sh := range sheets {
			if sh != stockSheet {
				productSheet = sh
				break
			}
		}
	}
	return productSheet, stockSheet
}

func sheetRecords(f *excelize.File, path, sheet string) ([]record, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadError(path, "unreadable sheet "+sheet, errors.Join(ErrMalformedSource, err))
	}
	header, rest, ok := firstNonBlank(rows)
	if !ok {
		return nil, nil
	}
	return rowsToRecords(path+"#"+sheet, header, rest)
}
