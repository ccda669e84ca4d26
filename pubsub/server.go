// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server maintains the set of active clients and sends messages to them.
//
// Mount it on an http server and connect with websocket.DefaultDialer.Dial().
type Server struct {
	log      logging.Logger
	config   *ServerConfig
	upgrader *websocket.Upgrader

	// conns a set of all our connections
	conns *Connections
	// Callback function when server receives a message
	callback Callback
}

// New returns a new Server instance. The callback function [f] is called
// by the server in response to messages if not nil.
func New(log logging.Logger, config *ServerConfig, f Callback) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns:    NewConnections(),
		callback: f,
	}
}

// ServeHTTP adds a connection to the server, and starts go routines for
// reading and writing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := &Connection{
		s:    s,
		conn: wsConn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
	conn.active.Store(true)
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Publish sends [msg] to every connection and returns the number of
// connections that could not accept it.
func (s *Server) Publish(msg []byte) int {
	dropped := 0
	for _, conn := range s.conns.Conns() {
		if !conn.Send(msg) {
			dropped++
			s.log.Verbo(
				"dropping message to subscribed connection due to too many pending messages",
			)
		}
	}
	return dropped
}

// Connections returns the number of active connections.
func (s *Server) Connections() int {
	return s.conns.Len()
}

func (s *Server) removeConnection(conn *Connection) {
	if s.conns.Remove(conn) {
		s.log.Debug("removed connection",
			zap.Int("remaining", s.conns.Len()),
		)
	}
}
