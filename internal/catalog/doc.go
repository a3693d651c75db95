// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package catalog is the entry point callers use to query the product index.

A Catalog owns the ingest loader, the current snapshot (record store plus
index), the search and recommendation engines, and the result caches. It is
constructed explicitly and has its own lifecycle:

	cat, err := catalog.New(cfg, reloads, logger)
	if err != nil {
	    return err
	}
	if err := cat.Initialize(ctx); err != nil {
	    return err // the catalog never reports ready after a failed first load
	}
	defer cat.Shutdown(ctx)

	res, meta, err := cat.Search(ctx, search.Request{Query: "anchovy"})

# Snapshots

Initialize and Reload build a complete store and index off to the side and
publish them with a single atomic pointer swap. Readers load the pointer once
per call, so a request always sees one consistent generation even while a
reload is running. Reloads are serialized; a failed reload leaves the previous
snapshot serving.

# Caching

Search and recommendation results are memoized in separate expiring caches
with separate TTLs. Cache keys include the snapshot generation, so a result
computed against an old snapshot can never be served after a swap. After each
successful reload a catalog.reloaded event is published on an in-process
watermill bus; its subscriber purges both caches to reclaim memory early.

# Errors

Every query returns ErrNotReady until the first successful load. Unknown
SKUs are not errors: GetProduct returns nil and recommendation calls return
an empty result.
*/
package catalog
