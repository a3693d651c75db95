// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package ingest reads product and stock rows from flat files.

Supported formats:
  - CSV: one file for products, one for stock; first row is the header
  - JSON: an array of product objects, or an object with "products" and
    optional "stock" arrays
  - XLSX: first sheet holds products; a sheet named "stock" (any case)
    holds stock rows

Column names are matched case-insensitively with punctuation ignored, so
"displayName", "display_name" and "Display Name" all address the same
field.

Malformed rows (empty SKU, unparseable number or flag, negative quantity)
are skipped and counted in Result. Source-level problems (missing file,
unreadable file, no data rows, every row malformed) fail with a
*DataLoadError so callers can tell a failed load apart from an empty
catalog.

Keywords are assembled in order from the "keywords", "synonyms",
"allergens" and "ingredients" columns. Each column may hold several
values separated by "|", ";" or ",".
*/
package ingest
