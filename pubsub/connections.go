// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
)

// Connections is the set of websocket clients a [Server] publishes
// invocation events to.
type Connections struct {
	lock  sync.RWMutex
	conns set.Set[*Connection]
}

// NewConnections returns an empty Connections instance.
func NewConnections() *Connections {
	return &Connections{}
}

// Conns returns a snapshot of all connections in [c]. Publishing iterates
// the snapshot so slow sends never hold the lock.
func (c *Connections) Conns() []*Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.conns.List()
}

// Add registers [conn] in [c]. Adding a connection twice is a no-op.
func (c *Connections) Add(conn *Connection) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.conns.Add(conn)
}

// Remove removes [conn] from [c] and reports whether it was present. Both
// pumps call it on exit, so only the first call returns true.
func (c *Connections) Remove(conn *Connection) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.conns.Contains(conn) {
		return false
	}
	c.conns.Remove(conn)
	return true
}

// Len returns the number of connections in [c].
func (c *Connections) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.conns.Len()
}
