// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workload

import (
	"context"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/rpc"
)

const eventTimeout = 10 * time.Second

// Network is a running hellovm endpoint.
type Network interface {
	URI() string
}

// Greetings checks both greeting entry points over JSON-RPC.
func Greetings(ctx context.Context, require *require.Assertions, uri string) {
	cli := rpc.NewJSONRPCClient(uri)

	words, err := cli.Hello(ctx, "world")
	require.NoError(err)
	require.Equal([]string{"Hello", "world"}, words)

	words, err = cli.Goodbye(ctx, "")
	require.NoError(err)
	require.Equal([]string{"Goodbye", ""}, words)
}

// Counter adds [amounts] and checks the stored record matches. The record
// may already hold a non-zero count.
func Counter(ctx context.Context, require *require.Assertions, uri string, amounts ...uint32) {
	cli := rpc.NewJSONRPCClient(uri)

	start, err := cli.State(ctx)
	require.NoError(err)

	expected := start.Count
	for _, amount := range amounts {
		expected += amount
		count, err := cli.Increment(ctx, amount)
		require.NoError(err)
		require.Equal(expected, count)
	}

	s, err := cli.State(ctx)
	require.NoError(err)
	require.Equal(expected, s.Count)
	if len(amounts) > 0 {
		require.Equal(amounts[len(amounts)-1], s.LastIncr)
	}
}

// Overflow checks that an increment past the u32 maximum is rejected
// without changing the stored record.
func Overflow(ctx context.Context, require *require.Assertions, uri string) {
	cli := rpc.NewJSONRPCClient(uri)

	if s, err := cli.State(ctx); err == nil && s.Count == 0 {
		_, err = cli.Increment(ctx, 1)
		require.NoError(err)
	}
	before, err := cli.State(ctx)
	require.NoError(err)
	_, err = cli.Increment(ctx, ^uint32(0)-before.Count+1)
	require.ErrorContains(err, "overflow")

	after, err := cli.State(ctx)
	require.NoError(err)
	require.Equal(before, after)
}

// Stream submits an increment over the websocket and waits for the
// matching event.
func Stream(ctx context.Context, require *require.Assertions, uri string) {
	cli := rpc.NewJSONRPCClient(uri)
	ws, err := rpc.NewWebSocketClient(uri)
	require.NoError(err)
	defer func() {
		require.NoError(ws.Close())
	}()

	before, err := cli.State(ctx)
	require.NoError(err)

	// The subscription is registered asynchronously so resubmit until an
	// event arrives.
	events := make(chan uint32, 1)
	go func() {
		for {
			e, serverErr, err := ws.Listen()
			if err != nil || serverErr != nil {
				close(events)
				return
			}
			if e.TypeID != consts.IncrementID {
				continue
			}
			count, err := actions.UnmarshalCount(e.Output)
			if err != nil {
				close(events)
				return
			}
			events <- count
			return
		}
	}()
	require.NoError(ws.Submit(&actions.Increment{Amount: 1}))

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(eventTimeout)
	for {
		select {
		case count, ok := <-events:
			require.True(ok)
			require.Greater(count, before.Count)
			return
		case <-ticker.C:
			require.NoError(ws.Submit(&actions.Increment{Amount: 1}))
		case <-timeout:
			require.FailNow("no event received")
		}
	}
}
