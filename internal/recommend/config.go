// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package recommend

import "fmt"

// Config contains configuration for the recommendation engine.
type Config struct {
	// DefaultLimit applies when a request gives no positive limit.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of products returned.
	// Default: 50.
	MaxLimit int `json:"max_limit"`

	// IncludeInactive admits inactive (but not deleted) products to
	// candidate pools.
	// Default: false, matching default search behavior.
	IncludeInactive bool `json:"include_inactive"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:    10,
		MaxLimit:        50,
		IncludeInactive: false,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be positive, got %d", c.MaxLimit)
	}
	if c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default_limit (%d) must not exceed max_limit (%d)", c.DefaultLimit, c.MaxLimit)
	}
	return nil
}
