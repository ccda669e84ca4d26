// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import "github.com/ava-labs/avalanchego/database"

var _ database.Batch = (*batch)(nil)

// batch buffers operations in memory and applies them atomically in [Write].
type batch struct {
	database.BatchOps

	db *Database
}

func (b *batch) Write() error {
	if b.db.closed.Load() {
		return database.ErrClosed
	}
	pb := b.db.db.NewBatch()
	defer pb.Close()

	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	return updateError(pb.Commit(b.db.sync))
}

func (b *batch) Inner() database.Batch {
	return b
}
