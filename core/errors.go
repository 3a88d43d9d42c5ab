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

// WrapError returns an error with the message "<err>: <cause>" that matches both err and cause
// with errors.Is and errors.As. A nil cause returns err itself.
func WrapError(err error, cause error) error {
	if cause == nil {
		return err
	}
	if err == nil {
		return cause
	}
	return &wrappedError{err: err, cause: cause}
}

type wrappedError struct {
	err   error
	cause error
}

func (w *wrappedError) Error() string {
	return w.err.Error() + ": " + w.cause.Error()
}

func (w *wrappedError) Unwrap() []error {
	return []error{w.err, w.cause}
}
