// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/listeners"
)

type WebSocketClient struct {
	conn *websocket.Conn
	wl   sync.Mutex
	rl   sync.Mutex
	cl   sync.Once
}

// NewWebSocketClient dials the event stream of the node at [uri]
// (e.g. http://127.0.0.1:9650).
func NewWebSocketClient(uri string) (*WebSocketClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	uri = strings.Replace(uri, "http", "ws", 1)
	uri += WebSocketPath
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	// not using resp for now
	resp.Body.Close()
	return &WebSocketClient{conn: conn}, nil
}

// Submit sends [action] over the stream.
func (c *WebSocketClient) Submit(action actions.Action) error {
	raw, err := actions.Marshal(action)
	if err != nil {
		return err
	}
	c.wl.Lock()
	defer c.wl.Unlock()

	return c.conn.WriteMessage(websocket.BinaryMessage, raw)
}

// Listen blocks until the next message arrives. The second return value is
// the error reported for an action this client submitted.
func (c *WebSocketClient) Listen() (*listeners.Event, error, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, nil, err
	}
	return UnpackMessage(msg)
}

func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
