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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func Test_newRateLimiter(t *testing.T) {
	setup := func() *echo.Echo {
		e := echo.New()
		e.Use(newRateLimiter(RateLimitConfig{Requests: 1, Interval: time.Hour, Burst: 1}))
		handler := func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		}
		e.GET("/operations", handler)
		e.GET("/status", handler)
		e.GET("/metrics", handler)
		return e
	}
	serve := func(e *echo.Echo, path string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	t.Run("limits requests", func(t *testing.T) {
		e := setup()

		assert.Equal(t, http.StatusNoContent, serve(e, "/operations"))
		assert.Equal(t, http.StatusTooManyRequests, serve(e, "/operations"))
	})
	t.Run("status and metrics are not limited", func(t *testing.T) {
		e := setup()

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusNoContent, serve(e, "/status"))
			assert.Equal(t, http.StatusNoContent, serve(e, "/metrics"))
		}
		assert.Equal(t, http.StatusNoContent, serve(e, "/operations"))
	})
}

func TestRateLimitConfig_enabled(t *testing.T) {
	assert.True(t, RateLimitConfig{Requests: 1, Interval: time.Second}.enabled())
	assert.False(t, RateLimitConfig{Requests: 0, Interval: time.Second}.enabled())
	assert.False(t, RateLimitConfig{Requests: 1}.enabled())
}
