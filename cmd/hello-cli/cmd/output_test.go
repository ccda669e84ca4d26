// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/program"
	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"
)

type memState struct {
	db *memdb.Database
}

func (m memState) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return m.db.Get(key)
}

func (m memState) Insert(_ context.Context, key []byte, value []byte) error {
	return m.db.Put(key, value)
}

func (m memState) Remove(_ context.Context, key []byte) error {
	return m.db.Delete(key)
}

var _ state.Mutable = memState{}

func TestFormatOutput(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := memState{memdb.New()}

	out, err := (&actions.Hello{To: "world"}).Execute(ctx, mu)
	require.NoError(err)
	s, err := formatOutput(consts.HelloID, out)
	require.NoError(err)
	require.Equal(`["Hello", "world"]`, s)

	_, err = program.Increment(ctx, mu, 9)
	require.NoError(err)
	out, err = (&actions.GetState{}).Execute(ctx, mu)
	require.NoError(err)
	s, err = formatOutput(consts.GetStateID, out)
	require.NoError(err)
	require.Equal(formatState(&storage.State{Count: 9, LastIncr: 9}), s)

	out, err = (&actions.Increment{Amount: 1}).Execute(ctx, mu)
	require.NoError(err)
	s, err = formatOutput(consts.IncrementID, out)
	require.NoError(err)
	require.Equal("10", s)

	_, err = formatOutput(consts.IncrementID, []byte{1})
	require.Error(err)

	s, err = formatOutput(9, []byte{0xab})
	require.NoError(err)
	require.Equal("ab", s)
	require.Equal("unknown(9)", actionName(9))
}
