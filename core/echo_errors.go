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
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"schneider.vip/problem"
)

// Keys of the echo context values API handlers set for the error handler.
const (
	// StatusCodeResolverContextKey holds the ErrorStatusCodeResolver of the API.
	StatusCodeResolverContextKey = "!!StatusCodeResolver"
	// OperationIDContextKey holds the name of the operation, used as problem title.
	OperationIDContextKey = "!!OperationId"
	// ModuleNameContextKey holds the name of the engine serving the operation.
	ModuleNameContextKey = "!!ModuleName"
)

const unmappedStatusCode = 0

// HTTPStatusCodeError is an error carrying the HTTP status code it should be returned with.
type HTTPStatusCodeError interface {
	error
	StatusCode() int
}

// ErrorStatusCodeResolver maps errors returned by an API to HTTP status codes.
type ErrorStatusCodeResolver interface {
	// ResolveStatusCode returns the status code for the error, or 0 when it doesn't know the error.
	ResolveStatusCode(err error) int
}

// Error returns an error with the given HTTP status code. The message is formatted as with fmt.Errorf,
// and the first error argument becomes its cause.
func Error(statusCode int, format string, args ...interface{}) error {
	return httpStatusCodeError{
		msg:        fmt.Errorf(format, args...).Error(),
		statusCode: statusCode,
		cause:      firstError(args),
	}
}

// InvalidInputError returns an error with status code 400 Bad Request, see Error.
func InvalidInputError(format string, args ...interface{}) error {
	return Error(http.StatusBadRequest, format, args...)
}

type httpStatusCodeError struct {
	msg        string
	statusCode int
	cause      error
}

func (e httpStatusCodeError) Error() string {
	return e.msg
}

func (e httpStatusCodeError) StatusCode() int {
	return e.statusCode
}

func (e httpStatusCodeError) Unwrap() error {
	return e.cause
}

func firstError(args []interface{}) error {
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			return err
		}
	}
	return nil
}

// ResolveStatusCode returns the status code of the first error in the mapping the given error matches (errors.Is),
// or 0 when there's none.
func ResolveStatusCode(err error, mapping map[error]int) int {
	for target, statusCode := range mapping {
		if errors.Is(err, target) {
			return statusCode
		}
	}
	return unmappedStatusCode
}

// GetHTTPStatusCode returns the status code for an error returned by an API handler:
// the status code the error (or one it wraps) carries, else the one the resolver of the operation maps it to,
// else 500 Internal Server Error.
func GetHTTPStatusCode(err error, ctx echo.Context) int {
	var statusCodeErr HTTPStatusCodeError
	if errors.As(err, &statusCodeErr) {
		return statusCodeErr.StatusCode()
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	if resolver, ok := ctx.Get(StatusCodeResolverContextKey).(ErrorStatusCodeResolver); ok {
		if statusCode := resolver.ResolveStatusCode(err); statusCode != unmappedStatusCode {
			return statusCode
		}
	}
	return http.StatusInternalServerError
}

// CreateHTTPErrorHandler returns an echo.HTTPErrorHandler that logs errors and writes them as RFC 7807 problems.
// Server errors are logged as error, client errors as warning.
func CreateHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		// e.g. a failed bind or an unknown route
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			err = httpStatusCodeError{msg: fmt.Sprintf("%v", echoErr.Message), statusCode: echoErr.Code, cause: echoErr}
		}
		title := operationTitle(ctx)
		statusCode := GetHTTPStatusCode(err, ctx)
		logger := contextLogger(ctx).WithError(err)
		if statusCode >= http.StatusInternalServerError {
			logger.Error(title)
		} else {
			logger.Warn(title)
		}
		if ctx.Response().Committed {
			logger.Warn("Unable to return error, response already committed")
			return
		}
		result := problem.New(problem.Title(title), problem.Status(statusCode), problem.Detail(err.Error()))
		if _, writeErr := result.WriteTo(ctx.Response()); writeErr != nil {
			logger.WithError(writeErr).Error("Unable to write problem response")
		}
	}
}

func operationTitle(ctx echo.Context) string {
	if operationID := ctx.Get(OperationIDContextKey); operationID != nil {
		return fmt.Sprintf("%v failed", operationID)
	}
	return "Operation failed"
}

// contextLogger returns a logger with the module and operation of the request, and its trace context.
func contextLogger(ctx echo.Context) *logrus.Entry {
	fields := logrus.Fields{LogFieldRequestURI: ctx.Request().RequestURI}
	if moduleName := ctx.Get(ModuleNameContextKey); moduleName != nil {
		fields[LogFieldModule] = moduleName
	}
	if operationID := ctx.Get(OperationIDContextKey); operationID != nil {
		fields[LogFieldOperation] = operationID
	}
	return logrus.StandardLogger().WithContext(ctx.Request().Context()).WithFields(fields)
}
