// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node assembles storage, the VM and its APIs into a runnable
// process.
package node

import (
	"context"
	"fmt"
	"net"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/hellovm/config"
	"github.com/ava-labs/hellovm/pebble"
	"github.com/ava-labs/hellovm/rpc"
	"github.com/ava-labs/hellovm/server"
	"github.com/ava-labs/hellovm/utils"
	"github.com/ava-labs/hellovm/vm"

	htrace "github.com/ava-labs/hellovm/trace"
)

const metricsBase = "metrics"

type Node struct {
	log      logging.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry

	db     *pebble.Database
	vm     *vm.VM
	ws     *rpc.WebSocketServer
	server server.Server

	listener net.Listener
}

// New opens the database in [cfg.DataDir] and binds the API listener. Call
// [Run] to serve and [Close] to release resources.
func New(log logging.Logger, cfg *config.Config) (*Node, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	n := &Node{
		log:      log,
		registry: prometheus.NewRegistry(),
	}
	errs := wrappers.Errs{}
	errs.Add(
		n.registry.Register(collectors.NewGoCollector()),
		n.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	if errs.Errored() {
		return nil, errs.Err
	}

	tracer, err := htrace.New(cfg.GetTraceConfig())
	if err != nil {
		return nil, err
	}
	n.tracer = tracer

	dbPath, err := utils.InitSubDirectory(cfg.DataDir, "pebble")
	if err != nil {
		_ = n.close()
		return nil, err
	}
	n.db, err = pebble.New(dbPath, cfg.Pebble, n.registry)
	if err != nil {
		_ = n.close()
		return nil, fmt.Errorf("%w: unable to open database", err)
	}

	n.vm, err = vm.New(log, tracer, n.db, n.registry)
	if err != nil {
		_ = n.close()
		return nil, err
	}

	n.listener, err = net.Listen("tcp", cfg.GetHTTPAddress())
	if err != nil {
		_ = n.close()
		return nil, err
	}
	n.server = server.New(
		log,
		n.listener,
		cfg.HTTP,
		cfg.AllowedOrigins,
		cfg.AllowedHosts,
		cfg.ShutdownTimeout,
	)
	if err := n.addRoutes(cfg); err != nil {
		_ = n.listener.Close()
		_ = n.close()
		return nil, err
	}
	return n, nil
}

func (n *Node) addRoutes(cfg *config.Config) error {
	jsonHandler, err := server.NewHandler(rpc.NewJSONRPCServer(n.vm), rpc.Name)
	if err != nil {
		return err
	}
	if err := n.server.AddRoute(jsonHandler, rpc.Name, rpc.JSONRPCEndpoint); err != nil {
		return err
	}

	ws, pubsubServer := rpc.NewWebSocketServer(n.vm, &cfg.Websocket, cfg.StreamBacklog)
	n.ws = ws
	if err := n.server.AddRoute(pubsubServer, rpc.Name, rpc.WebSocketEndpoint); err != nil {
		return err
	}

	if !cfg.MetricsEnabled {
		return nil
	}
	return n.server.AddRoute(
		promhttp.HandlerFor(n.registry, promhttp.HandlerOpts{}),
		metricsBase,
		"",
	)
}

// Address is the address the API is served on.
func (n *Node) Address() string {
	return n.listener.Addr().String()
}

func (n *Node) VM() *vm.VM {
	return n.vm
}

// Run serves the API until [ctx] is canceled or the server fails.
func (n *Node) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n.log.Info("serving API", zap.String("address", n.Address()))
		return n.server.Dispatch()
	})
	g.Go(func() error {
		<-gctx.Done()
		n.log.Info("shutting down API")
		return n.server.Shutdown()
	})
	return g.Wait()
}

// Close releases the database and tracer. It must be called after [Run]
// returns.
func (n *Node) Close() error {
	return n.close()
}

func (n *Node) close() error {
	errs := wrappers.Errs{}
	if n.ws != nil {
		n.ws.Close()
	}
	if n.db != nil {
		errs.Add(n.db.Close())
	}
	if n.tracer != nil {
		errs.Add(n.tracer.Close())
	}
	return errs.Err
}
