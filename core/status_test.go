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

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusTestServer(t *testing.T) *echo.Echo {
	system := NewSystem()
	statusEngine := NewStatusEngine(system)
	system.RegisterEngine(statusEngine)
	system.RegisterEngine(NewMetricsEngine())
	server := echo.New()
	statusEngine.(Routable).Routes(server)
	return server
}

func TestStatus_Routes(t *testing.T) {
	server := newStatusTestServer(t)

	t.Run("liveness", func(t *testing.T) {
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
	t.Run("diagnostics as text", func(t *testing.T) {
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Status\n"+
			"\tRegistered engines: Status,Metrics\n"+
			"\tVersion: development\n"+
			"\tOS/Arch: "+OSArch()+"\n"+
			"\tTracing: false", rec.Body.String())
	})
	t.Run("diagnostics as JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)

		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"Status":{"Registered engines":"Status,Metrics","Version":"development","OS/Arch":"`+OSArch()+`","Tracing":"false"}}`, rec.Body.String())
	})
}

func TestStatus_Diagnostics(t *testing.T) {
	t.Run("no engines", func(t *testing.T) {
		diagnostics := NewStatusEngine(NewSystem()).(Diagnosable).Diagnostics()

		require.Len(t, diagnostics, 4)
		assert.Equal(t, "Registered engines", diagnostics[0].Name())
		assert.Equal(t, "none", diagnostics[0].String())
		assert.Equal(t, Version(), diagnostics[1].String())
	})
}
