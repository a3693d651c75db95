// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func load(t *testing.T, src Source) (*Result, error) {
	t.Helper()
	return NewLoader(src, zerolog.Nop()).Load(context.Background())
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	products := writeFile(t, dir, "products.csv", `sku,displayName,category,brand,price,keywords,isActive,orderLastMonth
ANCHW200,Anchovy 200g,Seafood,Ortiz,9.5,anchovy|fish,true,500
ANCHW150,Anchovy 150g,Seafood,Ortiz,,anchovy,true,
,No SKU,Seafood,,,,,
BAD1,bro"ken,Seafood
OIL1,Olive Oil,Pantry,Ortiz,12,oil|olive,yes,10
`)
	stock := writeFile(t, dir, "stock.csv", `sku,warehouse,availableQuantity,costUnit
ANCHW200,WH1,10,case
ANCHW200,WH2,5,case
OIL1,WH1,abc,bottle
`)

	res, err := load(t, Source{ProductsPath: products, StockPath: stock})
	require.NoError(t, err)

	skus := make([]string, 0, len(res.Products))
	for _, p := range res.Products {
		skus = append(skus, p.SKU)
	}
	assert.Equal(t, []string{"ANCHW200", "ANCHW150", "OIL1"}, skus)
	assert.Equal(t, 5, res.ProductRows)
	assert.Equal(t, 2, res.SkippedProducts, "empty sku and bare quote rows")
	assert.Nil(t, res.Products[1].Price)

	assert.Equal(t, 3, res.StockRows)
	assert.Equal(t, 1, res.SkippedStock)
	assert.Len(t, res.Stock, 2)
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeFile(t, dir, "catalog.json", `{
  "products": [
    {"sku": "ANCHW200", "displayName": "Anchovy", "price": 9.5, "keywords": ["anchovy", "fish"], "isActive": true, "orderLastMonth": 500},
    {"sku": "OIL1", "display_name": "Olive Oil", "price": null, "is_deleted": true},
    "not an object"
  ],
  "stock": [
    {"sku": "ANCHW200", "warehouse": "WH1", "availableQuantity": 3}
  ]
}`)

	res, err := load(t, Source{ProductsPath: path})
	require.NoError(t, err)

	require.Len(t, res.Products, 2)
	assert.Equal(t, 1, res.SkippedProducts)
	assert.Equal(t, []string{"anchovy", "fish"}, res.Products[0].Keywords)
	assert.Equal(t, 500, *res.Products[0].OrderLastMonth)
	assert.Nil(t, res.Products[1].Price)
	assert.True(t, res.Products[1].IsDeleted)

	require.Len(t, res.Stock, 1)
	assert.Equal(t, 3, res.Stock[0].AvailableQuantity)
}

func TestLoad_JSONBareArray(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	products := writeFile(t, dir, "products.json", `[{"sku": "A"}, {"sku": "B"}]`)
	stock := writeFile(t, dir, "stock.json", `[{"sku": "A", "warehouse": "W", "qty": 2}]`)

	res, err := load(t, Source{ProductsPath: products, StockPath: stock})
	require.NoError(t, err)
	assert.Len(t, res.Products, 2)
	require.Len(t, res.Stock, 1)
	assert.Equal(t, 2, res.Stock[0].AvailableQuantity)
}

func TestLoad_XLSX(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Products"))
	require.NoError(t, f.SetSheetRow("Products", "A1", &[]interface{}{"SKU", "Display Name", "Category", "Price"}))
	require.NoError(t, f.SetSheetRow("Products", "A2", &[]interface{}{"ANCHW200", "Anchovy", "Seafood", 9.5}))
	require.NoError(t, f.SetSheetRow("Products", "A3", &[]interface{}{"OIL1", "Olive Oil", "Pantry", "n/a"}))
	_, err := f.NewSheet("Stock")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Stock", "A1", &[]interface{}{"sku", "warehouse", "quantity"}))
	require.NoError(t, f.SetSheetRow("Stock", "A2", &[]interface{}{"ANCHW200", "WH1", 4}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := load(t, Source{ProductsPath: path})
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "ANCHW200", res.Products[0].SKU)
	assert.Equal(t, 1, res.SkippedProducts)
	require.Len(t, res.Stock, 1)
	assert.Equal(t, 4, res.Stock[0].AvailableQuantity)
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	empty := writeFile(t, dir, "empty.csv", "")
	headerOnly := writeFile(t, dir, "header.csv", "sku,displayName\n")
	noSKU := writeFile(t, dir, "nosku.csv", "name,price\nA,1\n")
	allBad := writeFile(t, dir, "bad.csv", "sku,price\n,1\nX,abc\n")
	badJSON := writeFile(t, dir, "bad.json", "{not json")
	scalarJSON := writeFile(t, dir, "scalar.json", "42")
	unknownExt := writeFile(t, dir, "products.txt", "sku\nA\n")

	tests := []struct {
		name   string
		src    Source
		target error
	}{
		{"missing products path", Source{}, ErrSourceMissing},
		{"missing file", Source{ProductsPath: filepath.Join(dir, "nope.csv")}, ErrSourceMissing},
		{"missing stock file", Source{ProductsPath: headerOnly, StockPath: filepath.Join(dir, "nope.csv")}, ErrSourceMissing},
		{"empty file", Source{ProductsPath: empty}, ErrEmptySource},
		{"header only", Source{ProductsPath: headerOnly}, ErrEmptySource},
		{"no sku column", Source{ProductsPath: noSKU}, ErrMalformedSource},
		{"every row malformed", Source{ProductsPath: allBad}, ErrMalformedSource},
		{"invalid json", Source{ProductsPath: badJSON}, ErrMalformedSource},
		{"scalar json", Source{ProductsPath: scalarJSON}, ErrMalformedSource},
		{"directory", Source{ProductsPath: dir}, ErrMalformedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.src)
			require.Error(t, err)

			var dle *DataLoadError
			require.True(t, errors.As(err, &dle), "want *DataLoadError, got %T", err)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		_, err := load(t, Source{ProductsPath: unknownExt})
		var dle *DataLoadError
		assert.True(t, errors.As(err, &dle))
	})

	t.Run("explicit format overrides extension", func(t *testing.T) {
		res, err := load(t, Source{ProductsPath: unknownExt, Format: FormatCSV})
		require.NoError(t, err)
		assert.Len(t, res.Products, 1)
	})
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "p.csv", "sku\nA\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(Source{ProductsPath: path}, zerolog.Nop()).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatAuto, "CSV": FormatCSV, "json": FormatJSON, " xlsx ": FormatXLSX, "auto": FormatAuto} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("parquet")
	assert.Error(t, err)
}
