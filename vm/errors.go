// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrStorageFault  = errors.New("storage fault")
	errKeyNotFetched = errors.New("key not fetched")
)
