// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/program"
	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"
)

var _ Action = (*GetState)(nil)

type GetState struct{}

func (*GetState) GetTypeID() uint8 {
	return consts.GetStateID
}

func (*GetState) StateKeys() state.Keys {
	return state.Keys{
		string(storage.StateKey()): state.Read,
	}
}

func (*GetState) Size() int {
	return 0
}

func (*GetState) Marshal(*codec.Packer) {}

// Execute returns the encoded record. The output is decoded with
// [storage.ParseState].
func (*GetState) Execute(ctx context.Context, mu state.Mutable) ([]byte, error) {
	s, err := program.GetState(ctx, mu)
	if err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

func UnmarshalGetState(*codec.Packer) (Action, error) {
	return &GetState{}, nil
}
