// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheSweeper removes expired entries from the catalog caches and reports
// how many it removed.
type CacheSweeper interface {
	SweepCaches() int
}

// SweeperService runs CacheSweeper on a fixed interval. Expired entries are
// never served either way; sweeping only bounds memory held by keys nobody
// asks for again.
type SweeperService struct {
	sweeper  CacheSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSweeperService creates a sweeper. A non-positive interval defaults to
// one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSweeperService(sweeper CacheSweeper, interval time.Duration, logger zerolog.Logger) *SweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweeperService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweeper").Logger(),
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Cache sweeper running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.SweepCaches(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("Expired cache entries swept")
			}
		}
	}
}

// String returns the service name for logging.
func (s *SweeperService) String() string {
	return s.name
}
