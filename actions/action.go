// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/state"
)

// Action is a single invocation of one of the program's entry points.
type Action interface {
	// GetTypeID uniquely identifies each supported [Action]. We use IDs to
	// avoid reflection.
	GetTypeID() uint8

	// StateKeys is the full enumeration of all database keys that could be
	// touched during execution, along with the permissions required.
	//
	// Execution fails if a key outside of this set is accessed.
	StateKeys() state.Keys

	// Size is the number of bytes it takes to represent this [Action]
	// (excluding the type prefix).
	Size() int

	// Marshal encodes an [Action] as bytes.
	Marshal(p *codec.Packer)

	// Execute runs the entry point against [mu]. An error aborts the whole
	// invocation and the caller must discard every change made to [mu].
	Execute(ctx context.Context, mu state.Mutable) (output []byte, err error)
}

var Registry = codec.NewTypeParser[Action]()

func init() {
	for id, f := range map[uint8]func(*codec.Packer) (Action, error){
		consts.HelloID:     UnmarshalHello,
		consts.GoodbyeID:   UnmarshalGoodbye,
		consts.IncrementID: UnmarshalIncrement,
		consts.GetStateID:  UnmarshalGetState,
	} {
		if err := Registry.Register(id, f); err != nil {
			panic(err)
		}
	}
}

// Marshal encodes [a] with its type prefix.
func Marshal(a Action) ([]byte, error) {
	size := consts.ByteLen + a.Size()
	p := codec.NewWriter(size, consts.MaxActionSize)
	p.PackByte(a.GetTypeID())
	a.Marshal(p)
	return p.Bytes(), p.Err()
}

// ParseAction decodes bytes produced by [Marshal].
func ParseAction(b []byte) (Action, error) {
	p := codec.NewReader(b, consts.MaxActionSize)
	typeID := p.UnpackByte()
	if err := p.Err(); err != nil {
		return nil, err
	}
	unmarshal, ok := Registry.LookupIndex(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, typeID)
	}
	a, err := unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrTrailingBytes
	}
	return a, nil
}
