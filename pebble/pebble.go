// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

type Config struct {
	CacheSize             int  `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync          int  `json:"bytesPerSync" yaml:"bytesPerSync"`
	WALBytesPerSync       int  `json:"walBytesPerSync" yaml:"walBytesPerSync"`
	MaxOpenFiles          int  `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	ConcurrentCompactions int  `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                  bool `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:             32 * units.MiB,
		BytesPerSync:          units.MiB,
		WALBytesPerSync:       units.MiB,
		MaxOpenFiles:          4_096,
		ConcurrentCompactions: 1,
		Sync:                  true,
	}
}

// Database is a durable key-value store backed by pebble. A missing key is
// reported as [database.ErrNotFound].
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    *pebble.WriteOptions

	closing chan struct{}
	closed  atomic.Bool
}

func New(file string, cfg Config, registerer prometheus.Registerer) (*Database, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	d := &Database{
		metrics: m,
		sync:    pebble.NoSync,
		closing: make(chan struct{}),
	}
	if cfg.Sync {
		d.sync = pebble.Sync
	}
	opts := &pebble.Options{
		Cache:           pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:    cfg.BytesPerSync,
		Comparer:        pebble.DefaultComparer,
		WALBytesPerSync: cfg.WALBytesPerSync,
		MaxOpenFiles:    cfg.MaxOpenFiles,
		MaxConcurrentCompactions: func() int {
			return cfg.ConcurrentCompactions
		},
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	d.db, err = pebble.Open(file, opts)
	if err != nil {
		return nil, err
	}
	go d.collectMetrics()
	return d, nil
}

func (db *Database) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return database.ErrClosed
	}
	close(db.closing)
	return updateError(db.db.Close())
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (db *Database) Get(key []byte) ([]byte, error) {
	if db.closed.Load() {
		return nil, database.ErrClosed
	}
	defer db.metrics.observeGet()()

	data, closer, err := db.db.Get(key)
	if err != nil {
		return nil, updateError(err)
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

func (db *Database) Put(key []byte, value []byte) error {
	if db.closed.Load() {
		return database.ErrClosed
	}
	return updateError(db.db.Set(key, value, db.sync))
}

func (db *Database) Delete(key []byte) error {
	if db.closed.Load() {
		return database.ErrClosed
	}
	return updateError(db.db.Delete(key, db.sync))
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func updateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pebble.ErrNotFound):
		return database.ErrNotFound
	case errors.Is(err, pebble.ErrClosed):
		return database.ErrClosed
	default:
		return err
	}
}
