// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

// Package logging provides the zerolog-based structured logging used across catalogd.
//
// A single global logger is configured at startup from the logging section of
// the service configuration. Components derive child loggers tagged with a
// "component" field and keep them for their lifetime:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logger := logging.WithComponent("catalog")
//	logger.Info().Int("products", n).Msg("Catalog loaded")
//
// # Request Context
//
// HTTP middleware stores a request ID in the request context. Ctx returns a
// logger that carries it, so handler logs can be correlated:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Search rejected")
//
// # slog Bridge
//
// The supervisor tree (sutureslog) and the event bus (watermill) accept
// *slog.Logger. NewSlogLogger returns one that writes through zerolog, so
// every log line shares the same format and level.
package logging
