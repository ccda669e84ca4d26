// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/listeners"
)

func PackEventMessage(e *listeners.Event) ([]byte, error) {
	b, err := listeners.PackEvent(e)
	if err != nil {
		return nil, err
	}
	return append([]byte{EventMode}, b...), nil
}

func PackErrorMessage(err error) ([]byte, error) {
	msg := err.Error()
	size := consts.ByteLen + consts.Uint16Len + len(msg)
	p := codec.NewWriter(size, size)
	p.PackByte(ErrorMode)
	p.PackString(msg)
	return p.Bytes(), p.Err()
}

// UnpackMessage returns the event carried by [msg], or the error the server
// reported for a submitted action.
func UnpackMessage(msg []byte) (*listeners.Event, error, error) {
	if len(msg) == 0 {
		return nil, nil, ErrMessageMissing
	}
	switch msg[0] {
	case EventMode:
		e, err := listeners.UnpackEvent(msg[1:])
		return e, nil, err
	case ErrorMode:
		p := codec.NewReader(msg[1:], len(msg))
		s := p.UnpackString(true)
		if err := p.Err(); err != nil {
			return nil, nil, err
		}
		if !p.Empty() {
			return nil, nil, codec.ErrTrailingBytes
		}
		return nil, errors.New(s), nil
	default:
		return nil, nil, ErrUnknownMode
	}
}
