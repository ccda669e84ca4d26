// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
)

// StateSize is the encoded size of [State].
const StateSize = 2 * consts.Uint32Len

// State is the only record the program persists.
//
// Count always equals the sum of every LastIncr ever committed.
type State struct {
	Count    uint32 `json:"count"`
	LastIncr uint32 `json:"lastIncr"`
}

// NewDefaultState returns the record observed before the first increment.
func NewDefaultState() *State {
	return &State{
		Count:    0,
		LastIncr: 0,
	}
}

func (s *State) Marshal(p *codec.Packer) {
	p.PackInt(s.Count)
	p.PackInt(s.LastIncr)
}

func (s *State) Bytes() []byte {
	p := codec.NewWriter(StateSize, StateSize)
	s.Marshal(p)
	return p.Bytes()
}

func UnmarshalState(p *codec.Packer) (*State, error) {
	var s State
	s.Count = p.UnpackInt()
	s.LastIncr = p.UnpackInt()
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return &s, nil
}

// ParseState decodes a stored value, rejecting short or oversized values.
func ParseState(b []byte) (*State, error) {
	if len(b) != StateSize {
		return nil, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidState, StateSize, len(b))
	}
	return UnmarshalState(codec.NewReader(b, StateSize))
}
