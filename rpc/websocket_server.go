// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ava-labs/hellovm/pubsub"
)

// WebSocketServer streams every committed invocation to connected clients.
// Clients may also submit type-prefixed actions as binary messages; the
// outcome is observed as a streamed event or, on failure, an error message
// sent to the submitter only.
type WebSocketServer struct {
	vm VM
	s  *pubsub.Server

	subID uint64
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func NewWebSocketServer(vm VM, cfg *pubsub.ServerConfig, backlog int) (*WebSocketServer, *pubsub.Server) {
	w := &WebSocketServer{
		vm:   vm,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	w.s = pubsub.New(vm.Logger(), cfg, w.MessageCallback())
	id, events := vm.Subscribe(backlog)
	w.subID = id
	go func() {
		defer close(w.done)
		log := vm.Logger()
		for {
			select {
			case e := <-events:
				msg, err := PackEventMessage(e)
				if err != nil {
					log.Error("unable to pack event", zap.Error(err))
					continue
				}
				if dropped := w.s.Publish(msg); dropped > 0 {
					log.Debug("dropped event", zap.Uint64("seq", e.Seq), zap.Int("connections", dropped))
				}
			case <-w.stop:
				return
			}
		}
	}()
	return w, w.s
}

func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	log := w.vm.Logger()
	return func(msg []byte, c *pubsub.Connection) {
		ctx, span := w.vm.Tracer().Start(context.Background(), "WebSocketServer.Submit")
		defer span.End()

		if _, err := w.vm.Submit(ctx, msg); err != nil {
			log.Debug("failed to submit action",
				zap.Int("len", len(msg)),
				zap.Error(err),
			)
			resp, perr := PackErrorMessage(err)
			if perr != nil {
				log.Error("unable to pack error", zap.Error(perr))
				return
			}
			c.Send(resp)
		}
	}
}

// Close stops forwarding events.
func (w *WebSocketServer) Close() {
	w.once.Do(func() {
		w.vm.Unsubscribe(w.subID)
		close(w.stop)
		<-w.done
	})
}
