// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/listeners"
	"github.com/ava-labs/hellovm/storage"
	"github.com/ava-labs/hellovm/tstate"
)

// Database is the subset of an avalanchego database the VM needs.
type Database interface {
	database.KeyValueReader
	database.Batcher
}

// VM hosts the program. Invocations are serialized: each one reads a
// consistent snapshot of storage and either commits all of its writes or
// none of them.
type VM struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      Database
	metrics *Metrics

	// execution lock
	l   sync.Mutex
	seq *atomic.Uint64

	listeners *listeners.Listeners
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	db Database,
	registerer prometheus.Registerer,
) (*VM, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &VM{
		log:       log,
		tracer:    tracer,
		db:        db,
		metrics:   metrics,
		seq:       atomic.NewUint64(0),
		listeners: listeners.New(),
	}, nil
}

// Invoke executes [action] and commits its writes. If the action fails,
// nothing is written and the error is returned.
func (vm *VM) Invoke(ctx context.Context, action actions.Action) ([]byte, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Invoke")
	defer span.End()

	vm.l.Lock()
	defer vm.l.Unlock()

	scope := action.StateKeys()
	fetched := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := vm.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			vm.metrics.invocationsFailed.Inc()
			vm.log.Error("unable to read state",
				zap.Uint8("typeID", action.GetTypeID()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", ErrStorageFault, err)
		}
		fetched[k] = v
	}

	ts := tstate.New(len(scope))
	view := ts.NewView(scope, fetched)
	output, err := action.Execute(ctx, view)
	if err != nil {
		view.Rollback(ctx, 0)
		vm.metrics.invocationsFailed.Inc()
		vm.log.Debug("invocation aborted",
			zap.Uint8("typeID", action.GetTypeID()),
			zap.Error(err),
		)
		return nil, err
	}
	view.Commit()

	start := time.Now()
	changes := ts.PendingChanges()
	if changes > 0 {
		batch := vm.db.NewBatch()
		if err := ts.WriteChanges(ctx, batch, vm.tracer); err != nil {
			vm.metrics.invocationsFailed.Inc()
			return nil, fmt.Errorf("%w: %w", ErrStorageFault, err)
		}
		if err := batch.Write(); err != nil {
			vm.metrics.invocationsFailed.Inc()
			vm.log.Error("unable to commit invocation",
				zap.Uint8("typeID", action.GetTypeID()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", ErrStorageFault, err)
		}
	}
	vm.metrics.commitLatency.Observe(float64(time.Since(start)))
	vm.metrics.invocations.Inc()
	vm.metrics.stateChanges.Add(float64(changes))

	seq := vm.seq.Inc()
	if dropped := vm.listeners.Accept(&listeners.Event{
		Seq:    seq,
		TypeID: action.GetTypeID(),
		Output: output,
	}); dropped > 0 {
		vm.metrics.eventsDropped.Add(float64(dropped))
	}
	vm.log.Debug("invocation committed",
		zap.Uint64("seq", seq),
		zap.Uint8("typeID", action.GetTypeID()),
		zap.Int("changes", changes),
	)
	return output, nil
}

// Submit parses [raw] as a type-prefixed action and invokes it.
func (vm *VM) Submit(ctx context.Context, raw []byte) ([]byte, error) {
	action, err := actions.ParseAction(raw)
	if err != nil {
		return nil, err
	}
	return vm.Invoke(ctx, action)
}

// ReadState reads committed values. It never observes a partially applied
// invocation.
func (vm *VM) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	_, span := vm.tracer.Start(ctx, "VM.ReadState")
	defer span.End()

	vm.l.Lock()
	defer vm.l.Unlock()

	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		values[i], errs[i] = vm.db.Get(key)
	}
	return values, errs
}

// State returns the committed record.
func (vm *VM) State(ctx context.Context) (*storage.State, error) {
	return storage.GetStateFromState(ctx, vm.ReadState)
}

// Seq is the number of committed invocations since start.
func (vm *VM) Seq() uint64 {
	return vm.seq.Load()
}

// Subscribe returns a channel receiving every committed invocation. Events are
// dropped for subscribers that fall more than [backlog] events behind.
func (vm *VM) Subscribe(backlog int) (uint64, <-chan *listeners.Event) {
	c := make(listeners.Listener, backlog)
	return vm.listeners.AddListener(c), c
}

func (vm *VM) Unsubscribe(id uint64) {
	vm.listeners.RemoveListener(id)
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}
