// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/catalogd/internal/models"
)

// Format selects a source decoder.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat returns the Format named by s. An empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown ingest format %q", s)
	}
}

// detectFormat picks a format from the file extension.
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("cannot detect format of %q", path)
	}
}

// Source names the files a catalog is loaded from.
type Source struct {
	// ProductsPath is required.
	ProductsPath string

	// StockPath is optional. JSON and XLSX product files may embed stock
	// rows, in which case StockPath may be left empty.
	StockPath string

	Format Format
}

// Result is the decoded contents of a Source.
type Result struct {
	Products []models.Product
	Stock    []models.Stock

	ProductRows     int
	StockRows       int
	SkippedProducts int
	SkippedStock    int
}

// Skipped returns the total number of malformed rows.
func (r *Result) Skipped() int {
	return r.SkippedProducts + r.SkippedStock
}

// Loader reads a Source.
type Loader struct {
	source Source
	logger zerolog.Logger
}

// NewLoader creates a loader for source.
func NewLoader(source Source, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// Source returns the configured source.
func (l *Loader) Source() Source {
	return l.source
}

// Load reads and decodes the source. Any error is a *DataLoadError unless
// ctx was cancelled.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	productsPath := l.source.ProductsPath
	if productsPath == "" {
		return nil, loadError("", "products path not configured", ErrSourceMissing)
	}
	if err := checkFile(productsPath); err != nil {
		return nil, err
	}
	if l.source.StockPath != "" && l.source.StockPath != productsPath {
		if err := checkFile(l.source.StockPath); err != nil {
			return nil, err
		}
	}

	format, err := l.formatFor(productsPath)
	if err != nil {
		return nil, loadError(productsPath, "unsupported format", err)
	}

	res := &Result{}
	productRecs, stockRecs, err := readTables(productsPath, format, l.source.StockPath == "" || l.source.StockPath == productsPath)
	if err != nil {
		return nil, err
	}

	if l.source.StockPath != "" && l.source.StockPath != productsPath {
		stockFormat, ferr := l.formatFor(l.source.StockPath)
		if ferr != nil {
			return nil, loadError(l.source.StockPath, "unsupported format", ferr)
		}
		stockRecs, err = readStockTable(l.source.StockPath, stockFormat)
		if err != nil {
			return nil, err
		}
	}

	if len(productRecs) == 0 {
		return nil, loadError(productsPath, "no product rows", ErrEmptySource)
	}

	if err := l.decodeProducts(ctx, productRecs, res); err != nil {
		return nil, err
	}
	if len(res.Products) == 0 {
		return nil, loadError(productsPath, fmt.Sprintf("all %d product rows malformed", res.ProductRows), ErrMalformedSource)
	}
	if err := l.decodeStock(ctx, stockRecs, res); err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("products_path", productsPath).
		Str("stock_path", l.source.StockPath).
		Str("format", string(format)).
		Int("product_rows", res.ProductRows).
		Int("stock_rows", res.StockRows).
		Int("skipped", res.Skipped()).
		Msg("Ingest source decoded")

	return res, nil
}

func (l *Loader) formatFor(path string) (Format, error) {
	if l.source.Format != "" && l.source.Format != FormatAuto {
		return l.source.Format, nil
	}
	return detectFormat(path)
}

// checkEvery is the number of rows decoded between context checks.
const checkEvery = 1024

func (l *Loader) decodeProducts(ctx context.Context, recs []record, res *Result) error {
	res.Products = make([]models.Product, 0, len(recs))
	for i, rec := range recs {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		res.ProductRows++
		p, err := parseProduct(rec)
		if err != nil {
			res.SkippedProducts++
			l.logger.Debug().Int("row", i+1).Str("sku", p.SKU).Err(err).Msg("Skipping malformed product row")
			continue
		}
		res.Products = append(res.Products, p)
	}
	return nil
}

func (l *Loader) decodeStock(ctx context.Context, recs []record, res *Result) error {
	res.Stock = make([]models.Stock, 0, len(recs))
	for i, rec := range recs {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		res.StockRows++
		s, err := parseStock(rec)
		if err != nil {
			res.SkippedStock++
			l.logger.Debug().Int("row", i+1).Str("sku", s.SKU).Err(err).Msg("Skipping malformed stock row")
			continue
		}
		res.Stock = append(res.Stock, s)
	}
	return nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return loadError(path, "file not found", ErrSourceMissing)
		}
		return loadError(path, "stat failed", err)
	}
	if info.IsDir() {
		return loadError(path, "is a directory", ErrMalformedSource)
	}
	return nil
}

// readTables decodes the products file. When embeddedStock is true, stock
// rows held in the same file (JSON "stock" array, XLSX "stock" sheet) are
// returned as well.
func readTables(path string, format Format, embeddedStock bool) (products, stock []record, err error) {
	switch format {
	case FormatCSV:
		products, err = readCSV(path)
		return products, nil, err
	case FormatJSON:
		products, stock, err = readJSON(path)
	case FormatXLSX:
		products, stock, err = readXLSX(path)
	default:
		return nil, nil, loadError(path, "unsupported format", fmt.Errorf("%q", format))
	}
	if !embeddedStock {
		stock = nil
	}
	return products, stock, err
}

// readStockTable decodes a dedicated stock file.
func readStockTable(path string, format Format) ([]record, error) {
	switch format {
	case FormatCSV:
		return readCSV(path)
	case FormatJSON:
		products, stock, err := readJSON(path)
		if err != nil {
			return nil, err
		}
		// A dedicated stock file is usually a bare array.
		if len(stock) == 0 {
			return products, nil
		}
		return stock, nil
	case FormatXLSX:
		products, stock, err := readXLSX(path)
		if err != nil {
			return nil, err
		}
		if len(stock) == 0 {
			return products, nil
		}
		return stock, nil
	default:
		return nil, loadError(path, "unsupported format", fmt.Errorf("%q", format))
	}
}
