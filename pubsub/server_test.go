// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServerPublish(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{}, NewDefaultServerConfig(), nil)
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(func() bool {
		return s.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Zero(s.Publish([]byte("dummy_msg")))
	_, msg, err := conn.ReadMessage()
	require.NoError(err)
	require.Equal([]byte("dummy_msg"), msg)

	require.NoError(conn.Close())
	require.Eventually(func() bool {
		return s.Connections() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServerCallback(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{}, NewDefaultServerConfig(), func(b []byte, c *Connection) {
		require.True(c.Send(append([]byte("echo:"), b...)))
	})
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(conn.WriteMessage(websocket.BinaryMessage, []byte("hi")))
	_, msg, err := conn.ReadMessage()
	require.NoError(err)
	require.Equal([]byte("echo:hi"), msg)
}

func TestConnectionSendFull(t *testing.T) {
	require := require.New(t)

	c := &Connection{send: make(chan []byte, 1)}
	require.False(c.Send([]byte{1}))

	c.active.Store(true)
	require.True(c.Send([]byte{1}))
	require.False(c.Send([]byte{2}))

	c.deactivate()
	require.False(c.Send([]byte{3}))
}
