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

package submitted

import (
	"context"
	"testing"
	"time"

	"github.com/nuts-foundation/ion-crawler/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlStore {
	store := NewSQLStore(storage.NewTestStorageEngine(t).GetSQLDatabase()).(*sqlStore)
	clock := time.UnixMilli(1000)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func suffixes(dids []SubmittedDID) []string {
	var result []string
	for _, did := range dids {
		result = append(result, did.DIDSuffix)
	}
	return result
}

func TestSQLStore_Enqueue(t *testing.T) {
	ctx := context.Background()
	t.Run("ok", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Enqueue(ctx, "EiA", []string{"type2", "type1", "type1"}, []byte(`{"id":"did:ion:EiA"}`))

		require.NoError(t, err)
		dids, err := store.FindByType(ctx, "", "type1")
		require.NoError(t, err)
		require.Len(t, dids, 1)
		assert.Equal(t, "EiA", dids[0].DIDSuffix)
		assert.Equal(t, []string{"type1", "type2"}, dids[0].Types)
		assert.JSONEq(t, `{"id":"did:ion:EiA"}`, string(dids[0].Document))
		assert.Equal(t, int64(2000), dids[0].SubmittedAt.UnixMilli())
	})
	t.Run("duplicate suffix", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Enqueue(ctx, "EiA", []string{"type1"}, []byte("{}")))

		err := store.Enqueue(ctx, "EiA", []string{"type2"}, []byte("{}"))

		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		dids, err := store.FindByType(ctx, "", "type2")
		require.NoError(t, err)
		assert.Empty(t, dids)
	})
	t.Run("database failure", func(t *testing.T) {
		store := newTestStore(t)
		underlying, _ := store.db.DB()
		require.NoError(t, underlying.Close())

		err := store.Enqueue(ctx, "EiA", []string{"type1"}, []byte("{}"))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestSQLStore_FindByType(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Enqueue(ctx, "A", []string{"type1", "type2"}, []byte("{}")))
	require.NoError(t, store.Enqueue(ctx, "B", []string{"type1"}, []byte("{}")))
	require.NoError(t, store.Enqueue(ctx, "C", []string{"type2"}, []byte("{}")))
	require.NoError(t, store.Enqueue(ctx, "D", []string{"type1", "type2", "type3"}, []byte("{}")))

	t.Run("single type", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "", "type1")

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "D"}, suffixes(dids))
	})
	t.Run("all types must match", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "", "type2", "type1")

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "D"}, suffixes(dids))
	})
	t.Run("unknown type", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "", "type4")

		require.NoError(t, err)
		assert.NotNil(t, dids)
		assert.Empty(t, dids)
	})
	t.Run("no types", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "")

		require.NoError(t, err)
		assert.Empty(t, dids)
	})
	t.Run("since includes the given DID", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "B", "type1")

		require.NoError(t, err)
		assert.Equal(t, []string{"B", "D"}, suffixes(dids))
	})
	t.Run("since a DID of another type", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "C", "type1")

		require.NoError(t, err)
		assert.Equal(t, []string{"D"}, suffixes(dids))
	})
	t.Run("unknown since", func(t *testing.T) {
		dids, err := store.FindByType(ctx, "unknown", "type1")

		require.NoError(t, err)
		assert.Empty(t, dids)
	})
}
