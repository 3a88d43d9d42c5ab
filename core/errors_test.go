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
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusError struct {
	code int
}

func (s statusError) Error() string {
	return fmt.Sprintf("status %d", s.code)
}

func TestWrapError(t *testing.T) {
	outer := errors.New("outer")
	cause := statusError{code: 503}

	err := WrapError(outer, cause)

	assert.EqualError(t, err, "outer: status 503")
	assert.ErrorIs(t, err, outer)
	assert.ErrorIs(t, err, cause)
	var target statusError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 503, target.code)
}

func TestWrapError_Nested(t *testing.T) {
	outer := errors.New("outer")
	cause := errors.New("cause")

	err := fmt.Errorf("crawl failed: %w", WrapError(outer, cause))

	assert.EqualError(t, err, "crawl failed: outer: cause")
	assert.ErrorIs(t, err, outer)
	assert.ErrorIs(t, err, cause)
}

func TestWrapError_Nil(t *testing.T) {
	outer := errors.New("outer")
	cause := errors.New("cause")

	assert.Same(t, outer, WrapError(outer, nil))
	assert.Same(t, cause, WrapError(nil, cause))
}
