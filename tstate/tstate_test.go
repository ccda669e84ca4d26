// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/keys"
	"github.com/ava-labs/hellovm/state"
)

var (
	testKey = keys.EncodeChunks([]byte("key"), 1)
	testVal = []byte("value")

	key1    = keys.EncodeChunks([]byte("key1"), 1)
	key1str = string(key1)
	key2    = keys.EncodeChunks([]byte("key2"), 2)
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err, "unable to get value")
	require.Equal(testVal, val, "value was not saved correctly")
}

func TestGetValueNoStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "data should not exist")
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Write without Allocate cannot create a key
	tsv := ts.NewView(state.Keys{string(testKey): state.Write}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)

	tsv = ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(1, tsv.OpIndex(), "insert was not added as an operation")
	require.Equal(testVal, val, "value was not set correctly")

	// Check commit
	tsv.Commit()
	require.Equal(1, ts.OpIndex(), "insert was not added as an operation")
	require.Equal(1, ts.PendingChanges())
}

func TestInsertUpdate(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Existing keys only need Write
	tsv := ts.NewView(state.Keys{string(testKey): state.Write}, map[string][]byte{string(testKey): testVal})
	newVal := []byte("newValue")
	require.NoError(tsv.Insert(ctx, testKey, newVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(newVal, val)
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Value larger than the chunks allowed by the key
	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, testKey, make([]byte, 65)), ErrInvalidKeyValue)

	// Key without a chunk suffix
	require.ErrorIs(tsv.Insert(ctx, []byte{1}, testVal), ErrInvalidKeyValue)
	require.Zero(tsv.OpIndex())
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})

	// Removing a missing key is a no-op
	require.NoError(tsv.Remove(ctx, testKey))
	require.Zero(tsv.OpIndex())

	require.NoError(tsv.Insert(ctx, testKey, testVal))
	require.NoError(tsv.Remove(ctx, testKey))
	require.Equal(2, tsv.OpIndex())
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestDeleteCommitGet(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{string(testKey): testVal})
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()

	// Committed deletes shadow the storage handed to later views
	tsv = ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Nil(val)
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All, key2str: state.All}, map[string][]byte{key2str: testVal})

	require.NoError(tsv.Insert(ctx, key1, []byte("one")))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, key1, []byte("two")))
	require.NoError(tsv.Insert(ctx, key2, []byte("three")))
	require.NoError(tsv.Remove(ctx, key1))
	require.Equal(4, tsv.OpIndex())

	tsv.Rollback(ctx, restore)
	require.Equal(restore, tsv.OpIndex())

	val, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("one"), val)
	val, err = tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(testVal, val)

	// Roll back everything
	tsv.Rollback(ctx, 0)
	require.Zero(tsv.PendingChanges())
	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestRollbackAfterCommittedRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{key1str: testVal})
	require.NoError(tsv.Remove(ctx, key1))
	tsv.Commit()

	tsv = ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{key1str: testVal})
	require.NoError(tsv.Insert(ctx, key1, []byte("back")))
	tsv.Rollback(ctx, 0)

	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := memdb.New()
	require.NoError(db.Put(key2, testVal))

	tsv := ts.NewView(state.Keys{key1str: state.All, key2str: state.All}, map[string][]byte{key2str: testVal})
	require.NoError(tsv.Insert(ctx, key1, []byte("one")))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(ctx, batch, trace.Noop))
	require.NoError(batch.Write())

	val, err := db.Get(key1)
	require.NoError(err)
	require.Equal([]byte("one"), val)
	has, err := db.Has(key2)
	require.NoError(err)
	require.False(has)
}

func TestUncommittedViewInvisible(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, key1, []byte("one")))

	other := ts.NewView(state.Keys{key1str: state.Read}, map[string][]byte{})
	_, err := other.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(ts.PendingChanges())
}
