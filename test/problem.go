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

package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schneider.vip/problem"
)

// Problem is a helper struct to unmarshal RFC7807 error responses.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// AssertProblemResponse asserts the recorded response is a problem with the given status code, and returns it for further inspection.
func AssertProblemResponse(t *testing.T, rec *httptest.ResponseRecorder, statusCode int) Problem {
	t.Helper()
	assert.Equal(t, statusCode, rec.Code)
	assert.Equal(t, problem.ContentTypeJSON, rec.Header().Get("Content-Type"))
	var result Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, statusCode, result.Status)
	return result
}
