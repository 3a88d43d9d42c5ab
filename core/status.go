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
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const statusEngineName = "Status"

// NewStatusEngine creates the engine serving /status (liveness) and /status/diagnostics.
func NewStatusEngine(system *System) Engine {
	return &status{system: system}
}

type status struct {
	system *System
}

func (s *status) Name() string {
	return statusEngineName
}

func (s *status) Routes(router EchoRouter) {
	router.GET("/status", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "OK")
	})
	router.GET("/status/diagnostics", s.diagnostics)
}

// diagnostics renders the diagnostics of all engines as indented text,
// or as JSON object per engine when the client accepts JSON.
func (s *status) diagnostics(ctx echo.Context) error {
	if strings.Contains(ctx.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return ctx.JSON(http.StatusOK, s.collect())
	}
	var lines []string
	s.visit(func(name string, results []DiagnosticResult) {
		lines = append(lines, name)
		for _, result := range results {
			lines = append(lines, fmt.Sprintf("\t%s: %s", result.Name(), result.String()))
		}
	})
	return ctx.String(http.StatusOK, strings.Join(lines, "\n"))
}

func (s *status) collect() map[string]map[string]string {
	result := make(map[string]map[string]string)
	s.visit(func(name string, results []DiagnosticResult) {
		values := make(map[string]string, len(results))
		for _, r := range results {
			values[r.Name()] = r.String()
		}
		result[name] = values
	})
	return result
}

func (s *status) visit(fn func(name string, results []DiagnosticResult)) {
	s.system.VisitEngines(func(engine Engine) {
		if viewable, ok := engine.(ViewableDiagnostics); ok {
			fn(viewable.Name(), viewable.Diagnostics())
		}
	})
}

func (s *status) Diagnostics() []DiagnosticResult {
	var engines []string
	s.system.VisitEngines(func(engine Engine) {
		if named, ok := engine.(Named); ok {
			engines = append(engines, named.Name())
		}
	})
	return []DiagnosticResult{
		&GenericDiagnosticResult{Title: "Registered engines", Value: engines},
		&GenericDiagnosticResult{Title: "Version", Value: Version()},
		&GenericDiagnosticResult{Title: "OS/Arch", Value: OSArch()},
		&GenericDiagnosticResult{Title: "Tracing", Value: TracingEnabled()},
	}
}
