// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is used to tag logs, metrics, and the JSON-RPC service.
	Name = "hellovm"

	Version = "v0.1.0"

	// MaxGreetingSize bounds the text accepted by hello/goodbye.
	MaxGreetingSize = 256

	// MaxActionSize bounds the encoded form of a submitted action.
	MaxActionSize = 1 + 2 + MaxGreetingSize
)

// Action TypeIDs
const (
	HelloID     uint8 = 0
	GoodbyeID   uint8 = 1
	IncrementID uint8 = 2
	GetStateID  uint8 = 3
)
