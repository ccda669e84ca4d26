// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program implements the entry points of the hello program.
//
// Entry points never hold state between calls. Everything durable goes
// through [storage.GetState] and [storage.SetState], and the caller is
// responsible for committing (or discarding) the [state.Mutable] it passes in.
package program

import (
	"context"
	"fmt"

	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	helloWord   = "Hello"
	goodbyeWord = "Goodbye"
)

func Hello(to string) []string {
	return []string{helloWord, to}
}

func Goodbye(to string) []string {
	return []string{goodbyeWord, to}
}

// Increment adds [incr] to the stored count, records [incr] as the last
// increment, and returns the new count.
//
// If the new count does not fit in a uint32, [ErrCountOverflow] is returned
// and nothing is written.
func Increment(ctx context.Context, mu state.Mutable, incr uint32) (uint32, error) {
	s, err := GetState(ctx, mu)
	if err != nil {
		return 0, err
	}
	count, err := smath.Add(s.Count, incr)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not increment (count=%d, incr=%d)",
			ErrCountOverflow,
			s.Count,
			incr,
		)
	}
	s.Count = count
	s.LastIncr = incr
	if err := storage.SetState(ctx, mu, s); err != nil {
		return 0, err
	}
	return s.Count, nil
}

func GetState(ctx context.Context, im state.Immutable) (*storage.State, error) {
	return storage.GetState(ctx, im)
}
