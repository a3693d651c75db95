// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package main is the entry point for the catalogd server.

catalogd loads a product catalog and its per-warehouse stock from local
files (CSV, JSON or XLSX), indexes it in memory and answers search and
fallback recommendation queries over a small JSON HTTP API.

# Application Architecture

	RootSupervisor ("catalogd")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── Catalog watcher (reloads on source file change)
	│   └── Cache sweeper
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. .env file (optional, godotenv)
 2. Configuration: koanf defaults, config file, environment
 3. Logging: zerolog, JSON or console output
 4. Reload log: BadgerDB when reload_log.path is set, memory otherwise
 5. Catalog: first load of the source files
 6. Supervisor tree and HTTP server

A failed first load does not stop the process. The server starts with
/api/v1/health/ready answering 503 and recovers on the next successful
reload, whether triggered by the watcher or by POST /api/v1/catalog/reload.

# Configuration

Priority: environment variables > config file > defaults.

	CATALOG_PRODUCTS_PATH=/data/products.csv
	CATALOG_STOCK_PATH=/data/stock.csv
	CATALOG_FORMAT=auto          # auto, csv, json, xlsx
	CATALOG_WATCH=true
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	RELOAD_LOG_PATH=/data/reloads

The config file is searched at CONFIG_PATH, then ./config.yaml, then
/etc/catalogd/config.yaml.

# Signal Handling

SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
in-flight requests for server.shutdown_timeout, then the catalog and the
reload log are closed.
*/
package main
