// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/storage"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

// NewJSONRPCClient creates a client for the node listening at [uri]
// (e.g. http://127.0.0.1:9650).
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCPath
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Hello(ctx context.Context, to string) ([]string, error) {
	resp := new(GreetingReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".hello",
		&GreetingArgs{To: to},
		resp,
	)
	return resp.Words, err
}

func (cli *JSONRPCClient) Goodbye(ctx context.Context, to string) ([]string, error) {
	resp := new(GreetingReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".goodbye",
		&GreetingArgs{To: to},
		resp,
	)
	return resp.Words, err
}

func (cli *JSONRPCClient) Increment(ctx context.Context, amount uint32) (uint32, error) {
	resp := new(IncrementReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".increment",
		&IncrementArgs{Amount: amount},
		resp,
	)
	return resp.Count, err
}

func (cli *JSONRPCClient) State(ctx context.Context) (*storage.State, error) {
	resp := new(StateReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".state",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	return &storage.State{Count: resp.Count, LastIncr: resp.LastIncr}, nil
}

// Submit sends an encoded action and returns its raw output.
func (cli *JSONRPCClient) Submit(ctx context.Context, action actions.Action) ([]byte, error) {
	raw, err := actions.Marshal(action)
	if err != nil {
		return nil, err
	}
	resp := new(SubmitReply)
	err = cli.requester.SendRequest(
		ctx,
		Name+".submit",
		&SubmitArgs{Action: codec.ToHex(raw)},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return codec.LoadHex(resp.Output, -1)
}
