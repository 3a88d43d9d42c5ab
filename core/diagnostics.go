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
	"strings"
	"time"
)

// DiagnosticResult is a named piece of information on the state of an engine, shown on /status/diagnostics.
type DiagnosticResult interface {
	Name() string
	String() string
}

// GenericDiagnosticResult is a DiagnosticResult holding any value.
// Lists are shown comma separated, durations in Go notation, nil and empty lists as "none".
type GenericDiagnosticResult struct {
	Title string
	Value interface{}
}

func (r *GenericDiagnosticResult) Name() string {
	return r.Title
}

func (r *GenericDiagnosticResult) String() string {
	switch value := r.Value.(type) {
	case nil:
		return "none"
	case []string:
		if len(value) == 0 {
			return "none"
		}
		return strings.Join(value, ",")
	case time.Duration:
		if value == 0 {
			return "disabled"
		}
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
