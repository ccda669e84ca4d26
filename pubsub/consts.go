// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/units"
)

const (
	ReadBufferSize     = units.KiB
	WriteBufferSize    = units.KiB
	WriteWait          = 10 * time.Second
	PongWait           = 60 * time.Second
	PingPeriod         = (PongWait * 9) / 10
	MaxMessageSize     = 10 * units.KiB // bytes
	MaxPendingMessages = 1024
)

type ServerConfig struct {
	ReadBufferSize     int           `json:"readBufferSize"     yaml:"readBufferSize"`
	WriteBufferSize    int           `json:"writeBufferSize"    yaml:"writeBufferSize"`
	WriteWait          time.Duration `json:"writeWait"          yaml:"writeWait"`
	PongWait           time.Duration `json:"pongWait"           yaml:"pongWait"`
	PingPeriod         time.Duration `json:"pingPeriod"         yaml:"pingPeriod"`
	MaxMessageSize     int64         `json:"maxMessageSize"     yaml:"maxMessageSize"`
	MaxPendingMessages int           `json:"maxPendingMessages" yaml:"maxPendingMessages"`
}

func NewDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:     ReadBufferSize,
		WriteBufferSize:    WriteBufferSize,
		WriteWait:          WriteWait,
		PongWait:           PongWait,
		PingPeriod:         PingPeriod,
		MaxMessageSize:     MaxMessageSize,
		MaxPendingMessages: MaxPendingMessages,
	}
}
