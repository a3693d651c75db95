// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package models

import "strings"

// Availability is the stock state advertised for a product.
type Availability string

const (
	// AvailabilityInStock means at least one warehouse can ship the product.
	AvailabilityInStock Availability = "IN_STOCK"
	// AvailabilityOutOfStock means no warehouse can ship the product.
	AvailabilityOutOfStock Availability = "OUT_OF_STOCK"
	// AvailabilityUnknown is used when the ingest source carries no usable value.
	AvailabilityUnknown Availability = "UNKNOWN"
)

// ParseAvailability normalizes free-form availability text from an ingest source.
// Unrecognized values map to AvailabilityUnknown.
func ParseAvailability(s string) Availability {
	switch strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, " ", "_"))) {
	case "IN_STOCK", "INSTOCK", "AVAILABLE":
		return AvailabilityInStock
	case "OUT_OF_STOCK", "OUTOFSTOCK", "UNAVAILABLE", "SOLD_OUT":
		return AvailabilityOutOfStock
	default:
		return AvailabilityUnknown
	}
}

// Valid reports whether a is one of the enumerated values.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityOutOfStock, AvailabilityUnknown:
		return true
	default:
		return false
	}
}

// Product is a single catalog entry, unique by SKU.
type Product struct {
	SKU            string       `json:"sku"`
	DisplayName    string       `json:"display_name"`
	Description    string       `json:"description,omitempty"`
	Category       string       `json:"category,omitempty"`
	WebCategory    string       `json:"web_category,omitempty"`
	WebSubCategory string       `json:"web_sub_category,omitempty"`
	Brand          string       `json:"brand,omitempty"`
	Vendor         string       `json:"vendor,omitempty"`
	VendorName     string       `json:"vendor_name,omitempty"`
	Units          string       `json:"units,omitempty"`
	AccSet         string       `json:"accset,omitempty"`
	IsSFPreferred  bool         `json:"is_sf_preferred"`
	ImageURL       string       `json:"image_url,omitempty"`
	Availability   Availability `json:"availability"`

	// Price is nil for unpriced products.
	Price *float64 `json:"price,omitempty"`

	// Keywords holds explicit tags followed by derived synonym, allergen
	// and ingredient tags, in ingest order.
	Keywords []string `json:"keywords,omitempty"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`

	// OrderLastMonth is nil when the source has no ordering signal.
	OrderLastMonth *int `json:"order_last_month,omitempty"`
}

// Searchable reports whether the product belongs in default search results.
func (p *Product) Searchable() bool {
	return p.IsActive && !p.IsDeleted
}

// Orders returns OrderLastMonth, or -1 when the product has no ordering signal
// so that unsignalled products sort after products with zero orders.
func (p *Product) Orders() int {
	if p.OrderLastMonth == nil {
		return -1
	}
	return *p.OrderLastMonth
}

// Clone returns a deep copy so callers cannot mutate loaded records.
func (p *Product) Clone() Product {
	c := *p
	if p.Price != nil {
		v := *p.Price
		c.Price = &v
	}
	if p.OrderLastMonth != nil {
		v := *p.OrderLastMonth
		c.OrderLastMonth = &v
	}
	if p.Keywords != nil {
		c.Keywords = append([]string(nil), p.Keywords...)
	}
	return c
}

// Stock is one warehouse row for a SKU. A product may have zero or more.
type Stock struct {
	SKU               string `json:"sku"`
	Warehouse         string `json:"warehouse"`
	AvailableQuantity int    `json:"available_quantity"`
	CostUnit          string `json:"cost_unit,omitempty"`
}

// TotalAvailable sums AvailableQuantity across rows.
func TotalAvailable(rows []Stock) int {
	total := 0
	for _, r := range rows {
		total += r.AvailableQuantity
	}
	return total
}

// StockLevel is the warehouse breakdown of one product.
type StockLevel struct {
	SKU            string  `json:"sku"`
	Warehouses     []Stock `json:"warehouses"`
	TotalAvailable int     `json:"total_available"`
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
