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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestResponseCode(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		assert.NoError(t, TestResponseCode(http.StatusOK, &http.Response{StatusCode: http.StatusOK}))
	})
	t.Run("mismatch", func(t *testing.T) {
		response := &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader("body"))}

		err := TestResponseCode(http.StatusOK, response)

		require.Error(t, err)
		assert.EqualError(t, err, "server returned HTTP 502 (expected: 200)")
		var httpErr HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.Equal(t, "body", string(httpErr.ResponseBody))
	})
	t.Run("error body is bounded", func(t *testing.T) {
		response := &http.Response{StatusCode: http.StatusInternalServerError, Body: io.NopCloser(strings.NewReader(strings.Repeat("a", maxErrorBodySize*2)))}

		err := TestResponseCode(http.StatusOK, response)

		var httpErr HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Len(t, httpErr.ResponseBody, maxErrorBodySize)
	})
	t.Run("no body", func(t *testing.T) {
		err := TestResponseCode(http.StatusOK, &http.Response{StatusCode: http.StatusNotFound})

		assert.EqualError(t, err, "server returned HTTP 404 (expected: 200)")
	})
}

func TestTestResponseCodeWithLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	request := httptest.NewRequest(http.MethodGet, "/api/v0/cat", nil)
	response := &http.Response{
		StatusCode: http.StatusInternalServerError,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("a", 150))),
		Request:    request,
	}

	err := TestResponseCodeWithLog(http.StatusOK, response, logger.WithField("test", "x"))

	assert.Error(t, err)
	require.Len(t, hook.Entries, 1)
	assert.Contains(t, hook.LastEntry().Message, "...(clipped)")
	assert.Contains(t, hook.LastEntry().Message, "len=150")
	assert.Equal(t, "/api/v0/cat", hook.LastEntry().Data[LogFieldRequestPath])
}

func TestReadResponseBody(t *testing.T) {
	response := func(body string) *http.Response {
		return &http.Response{Body: io.NopCloser(strings.NewReader(body))}
	}
	t.Run("within limit", func(t *testing.T) {
		body, err := ReadResponseBody(response("12345"), 5)

		require.NoError(t, err)
		assert.Equal(t, "12345", string(body))
	})
	t.Run("too large", func(t *testing.T) {
		body, err := ReadResponseBody(response("123456"), 5)

		assert.ErrorIs(t, err, ErrResponseTooLarge)
		assert.Nil(t, body)
	})
	t.Run("unlimited", func(t *testing.T) {
		body, err := ReadResponseBody(response("123456"), 0)

		require.NoError(t, err)
		assert.Equal(t, "123456", string(body))
	})
}
