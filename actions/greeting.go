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
)

var (
	_ Action = (*Hello)(nil)
	_ Action = (*Goodbye)(nil)
)

type Hello struct {
	To string `json:"to"`
}

func (*Hello) GetTypeID() uint8 {
	return consts.HelloID
}

func (*Hello) StateKeys() state.Keys {
	return state.Keys{}
}

func (h *Hello) Size() int {
	return consts.Uint16Len + len(h.To)
}

func (h *Hello) Marshal(p *codec.Packer) {
	p.PackString(h.To)
}

func (h *Hello) Execute(context.Context, state.Mutable) ([]byte, error) {
	if err := VerifyGreeting(h.To); err != nil {
		return nil, err
	}
	return marshalGreeting(program.Hello(h.To))
}

func UnmarshalHello(p *codec.Packer) (Action, error) {
	to, err := unmarshalTo(p)
	if err != nil {
		return nil, err
	}
	return &Hello{To: to}, nil
}

type Goodbye struct {
	To string `json:"to"`
}

func (*Goodbye) GetTypeID() uint8 {
	return consts.GoodbyeID
}

func (*Goodbye) StateKeys() state.Keys {
	return state.Keys{}
}

func (g *Goodbye) Size() int {
	return consts.Uint16Len + len(g.To)
}

func (g *Goodbye) Marshal(p *codec.Packer) {
	p.PackString(g.To)
}

func (g *Goodbye) Execute(context.Context, state.Mutable) ([]byte, error) {
	if err := VerifyGreeting(g.To); err != nil {
		return nil, err
	}
	return marshalGreeting(program.Goodbye(g.To))
}

func UnmarshalGoodbye(p *codec.Packer) (Action, error) {
	to, err := unmarshalTo(p)
	if err != nil {
		return nil, err
	}
	return &Goodbye{To: to}, nil
}

// Empty text is a valid greeting target.
func unmarshalTo(p *codec.Packer) (string, error) {
	to := p.UnpackString(false)
	if err := p.Err(); err != nil {
		return "", err
	}
	if err := VerifyGreeting(to); err != nil {
		return "", err
	}
	return to, nil
}

// VerifyGreeting enforces [consts.MaxGreetingSize] on greeting text. Every
// path that invokes [Hello] or [Goodbye] applies it.
func VerifyGreeting(to string) error {
	if len(to) > consts.MaxGreetingSize {
		return fmt.Errorf("%w: %d bytes", ErrGreetingTooLong, len(to))
	}
	return nil
}

func marshalGreeting(words []string) ([]byte, error) {
	size := 0
	for _, w := range words {
		size += consts.Uint16Len + len(w)
	}
	p := codec.NewWriter(size, size)
	for _, w := range words {
		p.PackString(w)
	}
	return p.Bytes(), p.Err()
}

// UnmarshalGreeting decodes the output of [Hello] and [Goodbye].
func UnmarshalGreeting(b []byte) ([]string, error) {
	p := codec.NewReader(b, len(b))
	words := []string{
		p.UnpackString(true),
		p.UnpackString(false),
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, codec.ErrTrailingBytes)
	}
	return words, nil
}
