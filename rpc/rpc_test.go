// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/listeners"
	"github.com/ava-labs/hellovm/pubsub"
	"github.com/ava-labs/hellovm/server"
	"github.com/ava-labs/hellovm/storage"
	"github.com/ava-labs/hellovm/vm"
)

func newTestServer(t *testing.T) (*vm.VM, *pubsub.Server, *httptest.Server) {
	require := require.New(t)

	v, err := vm.New(logging.NoLog{}, trace.Noop, memdb.New(), prometheus.NewRegistry())
	require.NoError(err)
	handler, err := server.NewHandler(NewJSONRPCServer(v), Name)
	require.NoError(err)
	ws, pubsubServer := NewWebSocketServer(v, pubsub.NewDefaultServerConfig(), 16)
	t.Cleanup(ws.Close)

	mux := http.NewServeMux()
	mux.Handle(JSONRPCPath, handler)
	mux.Handle(WebSocketPath, pubsubServer)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return v, pubsubServer, srv
}

func TestJSONRPC(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, _, srv := newTestServer(t)
	cli := NewJSONRPCClient(srv.URL)

	words, err := cli.Hello(ctx, "world")
	require.NoError(err)
	require.Equal([]string{"Hello", "world"}, words)

	words, err = cli.Goodbye(ctx, "")
	require.NoError(err)
	require.Equal([]string{"Goodbye", ""}, words)

	s, err := cli.State(ctx)
	require.NoError(err)
	require.Equal(storage.NewDefaultState(), s)

	count, err := cli.Increment(ctx, 5)
	require.NoError(err)
	require.Equal(uint32(5), count)
	count, err = cli.Increment(ctx, 3)
	require.NoError(err)
	require.Equal(uint32(8), count)

	s, err = cli.State(ctx)
	require.NoError(err)
	require.Equal(&storage.State{Count: 8, LastIncr: 3}, s)

	_, err = cli.Increment(ctx, consts.MaxUint32)
	require.Error(err)
	s, err = cli.State(ctx)
	require.NoError(err)
	require.Equal(&storage.State{Count: 8, LastIncr: 3}, s)
}

func TestJSONRPCGreetingLimit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, _, srv := newTestServer(t)
	cli := NewJSONRPCClient(srv.URL)

	to := strings.Repeat("a", consts.MaxGreetingSize)
	words, err := cli.Hello(ctx, to)
	require.NoError(err)
	require.Equal([]string{"Hello", to}, words)

	_, err = cli.Goodbye(ctx, to+"a")
	require.ErrorContains(err, actions.ErrGreetingTooLong.Error())
	_, err = cli.Hello(ctx, strings.Repeat("a", 70_000))
	require.ErrorContains(err, actions.ErrGreetingTooLong.Error())
}

func TestJSONRPCSubmit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, _, srv := newTestServer(t)
	cli := NewJSONRPCClient(srv.URL)

	out, err := cli.Submit(ctx, &actions.Increment{Amount: 2})
	require.NoError(err)
	count, err := actions.UnmarshalCount(out)
	require.NoError(err)
	require.Equal(uint32(2), count)

	out, err = cli.Submit(ctx, &actions.GetState{})
	require.NoError(err)
	s, err := storage.ParseState(out)
	require.NoError(err)
	require.Equal(&storage.State{Count: 2, LastIncr: 2}, s)
}

func TestWebSocket(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	v, ps, srv := newTestServer(t)

	wcli, err := NewWebSocketClient(srv.URL)
	require.NoError(err)
	defer wcli.Close()

	require.Eventually(func() bool {
		return ps.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	_, err = v.Invoke(ctx, &actions.Hello{To: "world"})
	require.NoError(err)
	e, serr, err := wcli.Listen()
	require.NoError(err)
	require.NoError(serr)
	require.Equal(uint64(1), e.Seq)
	words, err := actions.UnmarshalGreeting(e.Output)
	require.NoError(err)
	require.Equal([]string{"Hello", "world"}, words)

	require.NoError(wcli.Submit(&actions.Increment{Amount: 7}))
	e, serr, err = wcli.Listen()
	require.NoError(err)
	require.NoError(serr)
	require.Equal(uint8(consts.IncrementID), e.TypeID)
	count, err := actions.UnmarshalCount(e.Output)
	require.NoError(err)
	require.Equal(uint32(7), count)

	require.NoError(wcli.Submit(&actions.Increment{Amount: consts.MaxUint32}))
	_, serr, err = wcli.Listen()
	require.NoError(err)
	require.ErrorContains(serr, "overflow")
}

func TestUnpackMessage(t *testing.T) {
	require := require.New(t)

	msg, err := PackEventMessage(&listeners.Event{Seq: 3, TypeID: consts.GetStateID, Output: make([]byte, storage.StateSize)})
	require.NoError(err)
	e, serr, err := UnpackMessage(msg)
	require.NoError(err)
	require.NoError(serr)
	require.Equal(uint64(3), e.Seq)

	msg, err = PackErrorMessage(errors.New("boom"))
	require.NoError(err)
	_, serr, err = UnpackMessage(msg)
	require.NoError(err)
	require.EqualError(serr, "boom")

	_, _, err = UnpackMessage(nil)
	require.ErrorIs(err, ErrMessageMissing)
	_, _, err = UnpackMessage([]byte{9})
	require.ErrorIs(err, ErrUnknownMode)
}
