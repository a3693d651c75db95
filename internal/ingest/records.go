// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tomtom215/catalogd/internal/models"
)

// record is one source row keyed by normalized column name.
type record map[string]string

// colMalformed marks a row the decoder could not split into columns.
// Its value is the decoder's error text.
const colMalformed = "_malformed"

func malformedRecord(reason string) record {
	return record{colMalformed: reason}
}

// Normalized column names. Aliases map onto these in columnAliases.
const (
	colSKU            = "sku"
	colDisplayName    = "displayname"
	colDescription    = "description"
	colCategory       = "category"
	colWebCategory    = "webcategory"
	colWebSubCategory = "websubcategory"
	colBrand          = "brand"
	colVendor         = "vendor"
	colVendorName     = "vendorname"
	colUnits          = "units"
	colAccSet         = "accset"
	colSFPreferred    = "issfpreferred"
	colImageURL       = "imageurl"
	colAvailability   = "availability"
	colPrice          = "price"
	colKeywords       = "keywords"
	colSynonyms       = "synonyms"
	colAllergens      = "allergens"
	colIngredients    = "ingredients"
	colActive         = "isactive"
	colDeleted        = "isdeleted"
	colOrderLastMonth = "orderlastmonth"

	colWarehouse = "warehouse"
	colQuantity  = "availablequantity"
	colCostUnit  = "costunit"
)

var columnAliases = map[string]string{
	"name":            colDisplayName,
	"title":           colDisplayName,
	"productname":     colDisplayName,
	"image":           colImageURL,
	"imagelink":       colImageURL,
	"tags":            colKeywords,
	"active":          colActive,
	"deleted":         colDeleted,
	"sfpreferred":     colSFPreferred,
	"orders":          colOrderLastMonth,
	"orderslastmonth": colOrderLastMonth,
	"quantity":        colQuantity,
	"qty":             colQuantity,
	"available":       colQuantity,
	"unit":            colCostUnit,
	"location":        colWarehouse,
}

// normalizeColumn lowercases a header and drops everything but letters and digits.
func normalizeColumn(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	key := b.String()
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

func (r record) get(col string) string {
	return strings.TrimSpace(r[col])
}

// parseProduct converts a record into a Product.
func parseProduct(r record) (models.Product, error) {
	p := models.Product{
		SKU:            r.get(colSKU),
		DisplayName:    r.get(colDisplayName),
		Description:    r.get(colDescription),
		Category:       r.get(colCategory),
		WebCategory:    r.get(colWebCategory),
		WebSubCategory: r.get(colWebSubCategory),
		Brand:          r.get(colBrand),
		Vendor:         r.get(colVendor),
		VendorName:     r.get(colVendorName),
		Units:          r.get(colUnits),
		AccSet:         r.get(colAccSet),
		ImageURL:       r.get(colImageURL),
		Availability:   models.ParseAvailability(r.get(colAvailability)),
	}

	if reason, bad := r[colMalformed]; bad {
		return p, &rowError{field: "row", reason: reason}
	}
	if p.SKU == "" {
		return p, &rowError{field: colSKU, reason: "empty"}
	}

	var err error
	if p.IsSFPreferred, err = parseBool(r.get(colSFPreferred), false); err != nil {
		return p, &rowError{field: colSFPreferred, reason: err.Error()}
	}
	if p.IsActive, err = parseBool(r.get(colActive), true); err != nil {
		return p, &rowError{field: colActive, reason: err.Error()}
	}
	if p.IsDeleted, err = parseBool(r.get(colDeleted), false); err != nil {
		return p, &rowError{field: colDeleted, reason: err.Error()}
	}

	if raw := r.get(colPrice); raw != "" {
		price, perr := parsePrice(raw)
		if perr != nil {
			return p, &rowError{field: colPrice, reason: perr.Error()}
		}
		p.Price = &price
	}

	if raw := r.get(colOrderLastMonth); raw != "" {
		n, nerr := parseCount(raw)
		if nerr != nil {
			return p, &rowError{field: colOrderLastMonth, reason: nerr.Error()}
		}
		p.OrderLastMonth = &n
	}

	p.Keywords = collectKeywords(r)
	return p, nil
}

// parseStock converts a record into a Stock row.
func parseStock(r record) (models.Stock, error) {
	s := models.Stock{
		SKU:       r.get(colSKU),
		Warehouse: r.get(colWarehouse),
		CostUnit:  r.get(colCostUnit),
	}
	if reason, bad := r[colMalformed]; bad {
		return s, &rowError{field: "row", reason: reason}
	}
	if s.SKU == "" {
		return s, &rowError{field: colSKU, reason: "empty"}
	}

	raw := r.get(colQuantity)
	if raw == "" {
		return s, nil
	}
	n, err := parseCount(raw)
	if err != nil {
		return s, &rowError{field: colQuantity, reason: err.Error()}
	}
	s.AvailableQuantity = n
	return s, nil
}

// collectKeywords merges explicit and derived tag columns, keeping first
// occurrence order and dropping case-insensitive duplicates.
func collectKeywords(r record) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, col := range []string{colKeywords, colSynonyms, colAllergens, colIngredients} {
		for _, kw := range splitList(r[col]) {
			key := strings.ToLower(kw)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ';' || r == ','
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type parseErr string

func (e parseErr) Error() string { return string(e) }

func parseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	default:
		return false, parseErr("invalid boolean " + strconv.Quote(s))
	}
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, parseErr("invalid number " + strconv.Quote(s))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseErr("non-finite number " + strconv.Quote(s))
	}
	if v < 0 {
		return 0, parseErr("negative value")
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	// Spreadsheet exports often write whole numbers as "12.0".
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && !math.IsNaN(f) && math.Abs(f) <= math.MaxInt32 && f == math.Trunc(f) {
		if f < 0 {
			return 0, parseErr("negative value")
		}
		return int(f), nil
	}
	return 0, parseErr("invalid integer " + strconv.Quote(s))
}
