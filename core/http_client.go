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
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// maxErrorBodySize bounds how much of an unexpected response is kept in an HTTPError.
const maxErrorBodySize = 4096

const maxLoggedBodySize = 100

// ErrResponseTooLarge is returned by ReadResponseBody when a body exceeds the given maximum size.
var ErrResponseTooLarge = errors.New("response body too large")

// HTTPRequestDoer is the Do method of http.Client.
type HTTPRequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPError is returned when a remote server responds with an unexpected status code.
type HTTPError struct {
	StatusCode int
	// ResponseBody holds (the start of) the body of the response.
	ResponseBody []byte
	expected     int
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("server returned HTTP %d (expected: %d)", e.StatusCode, e.expected)
}

// TestResponseCode returns an HTTPError if the status code of the response isn't the expected one.
func TestResponseCode(expectedStatusCode int, response *http.Response) error {
	return TestResponseCodeWithLog(expectedStatusCode, response, nil)
}

// TestResponseCodeWithLog is TestResponseCode, but also logs the clipped response body to the given logger (if not nil).
func TestResponseCodeWithLog(expectedStatusCode int, response *http.Response, logger *logrus.Entry) error {
	if response.StatusCode == expectedStatusCode {
		return nil
	}
	var body []byte
	if response.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
	}
	if logger != nil {
		if response.Request != nil {
			logger = logger.WithField(LogFieldRequestPath, response.Request.URL.Path)
		}
		logger.Infof("Unexpected HTTP response %d (len=%d): %s", response.StatusCode, len(body), clip(body))
	}
	return HTTPError{StatusCode: response.StatusCode, ResponseBody: body, expected: expectedStatusCode}
}

// ReadResponseBody reads the body of the response, which may be at most maxSize bytes (unlimited if maxSize <= 0).
// A larger body yields ErrResponseTooLarge.
func ReadResponseBody(response *http.Response, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(response.Body)
	}
	// one byte more than allowed, to detect a body that is too large
	body, err := io.ReadAll(io.LimitReader(response.Body, int64(maxSize)+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxSize {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrResponseTooLarge, maxSize)
	}
	return body, nil
}

func clip(body []byte) string {
	if len(body) <= maxLoggedBodySize {
		return string(body)
	}
	return string(body[:maxLoggedBodySize]) + "...(clipped)"
}
