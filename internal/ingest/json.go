// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package ingest

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// readJSON decodes either a bare array of product objects or an object
// holding "products" and optional "stock" arrays.
func readJSON(path string) (products, stock []record, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, loadError(path, "open failed", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, loadError(path, "invalid json", errors.Join(ErrMalformedSource, err))
	}

	switch v := doc.(type) {
	case []interface{}:
		return objectsToRecords(v), nil, nil
	case map[string]interface{}:
		for key, val := range v {
			arr, ok := val.([]interface{})
			if !ok {
				continue
			}
			switch normalizeColumn(key) {
			case "products", "items", "catalog":
				products = objectsToRecords(arr)
			case "stock", "inventory":
				stock = objectsToRecords(arr)
			}
		}
		if products == nil && stock == nil {
			return nil, nil, loadError(path, "object has no products array", ErrMalformedSource)
		}
		return products, stock, nil
	default:
		return nil, nil, loadError(path, "top-level value must be an array or object", ErrMalformedSource)
	}
}

func objectsToRecords(items []interface{}) []record {
	recs := make([]record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			recs = append(recs, malformedRecord("row is not a json object"))
			continue
		}
		rec := make(record, len(obj))
		for k, v := range obj {
			s, ok := scalarString(v)
			if !ok {
				continue
			}
			rec[normalizeColumn(k)] = s
		}
		recs = append(recs, rec)
	}
	return recs
}

// scalarString renders a JSON value the way a CSV cell would hold it.
// Arrays are joined with "|". Nested objects are not representable.
func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := scalarString(el); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "|"), true
	default:
		return "", false
	}
}
