// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/program"
	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"
)

var _ Action = (*Increment)(nil)

type Increment struct {
	Amount uint32 `json:"amount"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

// The first increment creates the key, so [state.Allocate] is always requested.
func (*Increment) StateKeys() state.Keys {
	return state.Keys{
		string(storage.StateKey()): state.All,
	}
}

func (*Increment) Size() int {
	return consts.Uint32Len
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackInt(i.Amount)
}

func (i *Increment) Execute(ctx context.Context, mu state.Mutable) ([]byte, error) {
	count, err := program.Increment(ctx, mu, i.Amount)
	if err != nil {
		return nil, err
	}
	return marshalCount(count), nil
}

func UnmarshalIncrement(p *codec.Packer) (Action, error) {
	var inc Increment
	inc.Amount = p.UnpackInt()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return &inc, nil
}

func marshalCount(count uint32) []byte {
	p := codec.NewWriter(consts.Uint32Len, consts.Uint32Len)
	p.PackInt(count)
	return p.Bytes()
}

// UnmarshalCount decodes the output of [Increment].
func UnmarshalCount(b []byte) (uint32, error) {
	if len(b) != consts.Uint32Len {
		return 0, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidOutput, consts.Uint32Len, len(b))
	}
	p := codec.NewReader(b, consts.Uint32Len)
	return p.UnpackInt(), p.Err()
}
