// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrMissingDataDir = errors.New("missing data directory")
)
