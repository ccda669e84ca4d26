// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

const (
	Name              = "hellovm"
	JSONRPCEndpoint   = ""
	WebSocketEndpoint = "/ws"

	// Routes as exposed by the server package.
	JSONRPCPath   = "/ext/" + Name + JSONRPCEndpoint
	WebSocketPath = "/ext/" + Name + WebSocketEndpoint
)

const (
	EventMode byte = 0
	ErrorMode byte = 1
)
