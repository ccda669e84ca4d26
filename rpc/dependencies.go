// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/listeners"
	"github.com/ava-labs/hellovm/storage"
)

type VM interface {
	Logger() logging.Logger
	Tracer() trace.Tracer

	Invoke(ctx context.Context, action actions.Action) ([]byte, error)
	Submit(ctx context.Context, raw []byte) ([]byte, error)
	State(ctx context.Context) (*storage.State, error)

	Subscribe(backlog int) (uint64, <-chan *listeners.Event)
	Unsubscribe(id uint64)
}
