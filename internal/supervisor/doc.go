// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

/*
Package supervisor runs catalogd's long-lived services under a suture v4
supervisor tree.

# Overview

	RootSupervisor ("catalogd")
	├── CatalogSupervisor ("catalog-layer")
	│   ├── WatcherService (if catalog.watch is enabled)
	│   └── SweeperService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own. A watcher that keeps failing (for
example because the source directory was removed) enters backoff while the
HTTP server keeps answering from the last loaded catalog.

Supervisor events (service start, failure, restart, backoff) are logged
through sutureslog. The slog logger is bridged to zerolog by
logging.NewSlogLogger so every line shares the same format.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCatalogService(services.NewSweeperService(cat, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 15*time.Second, logger))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

See the services subpackage for the service implementations.
*/
package supervisor
