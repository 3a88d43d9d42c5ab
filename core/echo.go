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
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// EchoServer is the HTTP server the engines' APIs are served on.
type EchoServer interface {
	EchoRouter
	Start(address string) error
	Shutdown(ctx context.Context) error
}

// EchoRouter is what APIs register their routes on.
type EchoRouter interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route

	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

	Use(middleware ...echo.MiddlewareFunc)
}

var httpServerLogger = logrus.StandardLogger().WithField(LogFieldModule, "http-server")

// isOperationalEndpoint reports whether the path is a status or metrics endpoint,
// which are polled by monitoring and exempt from request logging and rate limiting.
func isOperationalEndpoint(path string) bool {
	return path == "/metrics" || path == "/status" || strings.HasPrefix(path, "/status/")
}

// requestLogger logs every request with its resulting status code and duration. It must be the outermost
// middleware, so it sees the status code errors are mapped to.
func requestLogger(logger *logrus.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isOperationalEndpoint(c.Request().URL.Path) {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				status = GetHTTPStatusCode(err, c)
			}
			logger.WithContext(c.Request().Context()).WithFields(logrus.Fields{
				"remote_ip": c.RealIP(),
				"method":    c.Request().Method,
				"uri":       c.Request().RequestURI,
				"status":    status,
				"duration":  time.Since(start).String(),
			}).Info("request")
			return err
		}
	}
}

func createEchoServer(cfg HTTPConfig) (*echo.Echo, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = CreateHTTPErrorHandler()
	// Reverse proxies must set the X-Forwarded-For header to the original client IP.
	echoServer.IPExtractor = echo.ExtractIPFromXFFHeader()

	echoServer.Use(requestLogger(httpServerLogger))
	if cfg.RateLimit.enabled() {
		echoServer.Use(newRateLimiter(cfg.RateLimit))
	}
	return echoServer, nil
}
