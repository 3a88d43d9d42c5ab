/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig limits the number of API requests, since every crawl reads many files from IPFS.
type RateLimitConfig struct {
	// Requests is the number of requests allowed per Interval. 0 disables rate limiting.
	Requests int `koanf:"requests"`
	// Interval is the period Requests applies to.
	Interval time.Duration `koanf:"interval"`
	// Burst is the number of requests allowed at once.
	Burst int `koanf:"burst"`
}

func (c RateLimitConfig) enabled() bool {
	return c.Requests > 0 && c.Interval > 0
}

// rateLimiterStore uses a single token bucket for all callers.
type rateLimiterStore struct {
	limiter *rate.Limiter
}

// Allow ignores the callers' identifier.
func (s *rateLimiterStore) Allow(_ string) (bool, error) {
	return s.limiter.Allow(), nil
}

func newRateLimiterStore(config RateLimitConfig) *rateLimiterStore {
	// e.g. 60 requests per minute allows a request every second
	return &rateLimiterStore{
		limiter: rate.NewLimiter(rate.Limit(config.Requests)*rate.Every(config.Interval), config.Burst),
	}
}

// newRateLimiter creates an echo middleware that limits all requests, except for the status and metrics endpoints.
func newRateLimiter(config RateLimitConfig) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		// Returning true means skipping the middleware
		Skipper: func(c echo.Context) bool {
			return isOperationalEndpoint(c.Request().URL.Path)
		},
		IdentifierExtractor: func(_ echo.Context) (string, error) {
			return "", nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrExtractorError.Code,
				Message:  middleware.ErrExtractorError.Message,
				Internal: err,
			}
		},
		DenyHandler: func(_ echo.Context, _ string, err error) error {
			return &echo.HTTPError{
				Code:     middleware.ErrRateLimitExceeded.Code,
				Message:  middleware.ErrRateLimitExceeded.Message,
				Internal: err,
			}
		},
		Store: newRateLimiterStore(config),
	})
}
