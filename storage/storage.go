// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/hellovm/keys"
	"github.com/ava-labs/hellovm/state"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// State
// 0x0/ (state)
//   -> "STATE" => count|lastIncr
//
// The program owns exactly one key.

const (
	statePrefix byte = 0x0

	StateChunks uint16 = 1
)

var stateName = []byte("STATE")

// StateKey is [statePrefix] + "STATE" + [StateChunks]
func StateKey() []byte {
	k := make([]byte, 0, 1+len(stateName))
	k = append(k, statePrefix)
	k = append(k, stateName...)
	return keys.EncodeChunks(k, StateChunks)
}

// GetState returns the stored record, or the default record if nothing has
// been stored yet. Any other read failure is returned as-is.
func GetState(ctx context.Context, im state.Immutable) (*State, error) {
	return innerGetState(im.GetValue(ctx, StateKey()))
}

// GetStateFromState is used to serve RPC queries.
func GetStateFromState(ctx context.Context, f ReadState) (*State, error) {
	values, errs := f(ctx, [][]byte{StateKey()})
	return innerGetState(values[0], errs[0])
}

func innerGetState(v []byte, err error) (*State, error) {
	if errors.Is(err, database.ErrNotFound) {
		return NewDefaultState(), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseState(v)
}

// SetState replaces the stored record with [s].
func SetState(ctx context.Context, mu state.Mutable, s *State) error {
	return mu.Insert(ctx, StateKey(), s.Bytes())
}
