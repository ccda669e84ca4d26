// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrGreetingTooLong = errors.New("greeting is too long")
	ErrInvalidOutput   = errors.New("invalid output")
)
