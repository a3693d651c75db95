// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package services provides suture.Service wrappers for catalogd's
// background work: the HTTP server, the catalog source watcher and the
// cache sweeper.
//
// Every service returns ctx.Err() when its context is canceled and
// implements fmt.Stringer so suture can name it in its logs.
package services
