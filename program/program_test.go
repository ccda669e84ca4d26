// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func TestGreetings(t *testing.T) {
	for _, to := range []string{"Dev", "", "🌍", "two words"} {
		t.Run(to, func(t *testing.T) {
			require := require.New(t)
			require.Equal([]string{"Hello", to}, Hello(to))
			require.Equal([]string{"Goodbye", to}, Goodbye(to))
		})
	}
}

func TestGetStateFresh(t *testing.T) {
	require := require.New(t)

	s, err := GetState(context.Background(), state.MutableStorage{})
	require.NoError(err)
	require.Equal(&storage.State{Count: 0, LastIncr: 0}, s)
}

func TestIncrement(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	count, err := Increment(ctx, mu, 5)
	require.NoError(err)
	require.Equal(uint32(5), count)

	s, err := GetState(ctx, mu)
	require.NoError(err)
	require.Equal(&storage.State{Count: 5, LastIncr: 5}, s)
}

func TestIncrementSequence(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, err := Increment(ctx, mu, 3)
	require.NoError(err)
	count, err := Increment(ctx, mu, 4)
	require.NoError(err)
	require.Equal(uint32(7), count)

	s, err := GetState(ctx, mu)
	require.NoError(err)
	require.Equal(&storage.State{Count: 7, LastIncr: 4}, s)
}

func TestIncrementZero(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	// A zero increment on a fresh program still persists the record
	count, err := Increment(ctx, mu, 0)
	require.NoError(err)
	require.Zero(count)
	require.Len(mu, 1)

	_, err = Increment(ctx, mu, 9)
	require.NoError(err)
	count, err = Increment(ctx, mu, 0)
	require.NoError(err)
	require.Equal(uint32(9), count)

	s, err := GetState(ctx, mu)
	require.NoError(err)
	require.Equal(&storage.State{Count: 9, LastIncr: 0}, s)
}

func TestGetStateIdempotent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, err := Increment(ctx, mu, 11)
	require.NoError(err)

	first, err := GetState(ctx, mu)
	require.NoError(err)
	second, err := GetState(ctx, mu)
	require.NoError(err)
	require.Equal(first, second)
}

func TestIncrementOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, err := Increment(ctx, mu, consts.MaxUint32-1)
	require.NoError(err)

	// Reaching the max exactly is allowed
	count, err := Increment(ctx, mu, 1)
	require.NoError(err)
	require.Equal(consts.MaxUint32, count)
	before := mu[string(storage.StateKey())]

	_, err = Increment(ctx, mu, 1)
	require.ErrorIs(err, ErrCountOverflow)
	require.ErrorIs(err, smath.ErrOverflow)

	// Abort without mutation
	require.Equal(before, mu[string(storage.StateKey())])
	s, err := GetState(ctx, mu)
	require.NoError(err)
	require.Equal(&storage.State{Count: consts.MaxUint32, LastIncr: 1}, s)
}

func TestIncrementReadFault(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	errFault := errors.New("fault")

	mu := &faultyMutable{
		MutableStorage: state.MutableStorage{},
		getErr:         errFault,
	}
	_, err := Increment(ctx, mu, 1)
	require.ErrorIs(err, errFault)
	require.Empty(mu.MutableStorage)
}

func TestGetStateReadFault(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	errFault := errors.New("fault")

	im := state.NewMockImmutable(ctrl)
	im.EXPECT().GetValue(gomock.Any(), gomock.Any()).Return(nil, errFault)
	_, err := GetState(context.Background(), im)
	require.ErrorIs(err, errFault)
}

type faultyMutable struct {
	state.MutableStorage
	getErr error
}

func (f *faultyMutable) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MutableStorage.GetValue(ctx, key)
}
