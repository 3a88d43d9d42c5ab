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

package transactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_ContentHash(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		hash, err := Transaction{AnchorString: "2.QmRKxRkjDdwGhm9KAbuvw2nrrFsJtn8KHnwVeuQfRqhzuz"}.ContentHash()

		require.NoError(t, err)
		assert.Equal(t, "QmRKxRkjDdwGhm9KAbuvw2nrrFsJtn8KHnwVeuQfRqhzuz", hash)
	})
	t.Run("everything after the first dot", func(t *testing.T) {
		hash, err := Transaction{AnchorString: "1.abc.def"}.ContentHash()

		require.NoError(t, err)
		assert.Equal(t, "abc.def", hash)
	})
	t.Run("no dot", func(t *testing.T) {
		_, err := Transaction{AnchorString: "QmRKxRkjDdwGhm9KAbuvw2nrrFsJtn8KHnwVeuQfRqhzuz"}.ContentHash()

		assert.ErrorIs(t, err, ErrInvalidAnchorString)
	})
	t.Run("empty hash", func(t *testing.T) {
		_, err := Transaction{AnchorString: "1."}.ContentHash()

		assert.ErrorIs(t, err, ErrInvalidAnchorString)
	})
}

func TestTransaction_OperationCount(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		count, err := Transaction{AnchorString: "10000.hashA"}.OperationCount()

		require.NoError(t, err)
		assert.Equal(t, 10000, count)
	})
	t.Run("not a number", func(t *testing.T) {
		_, err := Transaction{AnchorString: "x.hashA"}.OperationCount()

		assert.ErrorIs(t, err, ErrInvalidAnchorString)
	})
	t.Run("negative", func(t *testing.T) {
		_, err := Transaction{AnchorString: "-1.hashA"}.OperationCount()

		assert.ErrorIs(t, err, ErrInvalidAnchorString)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := Transaction{AnchorString: ""}.OperationCount()

		assert.ErrorIs(t, err, ErrInvalidAnchorString)
	})
}
