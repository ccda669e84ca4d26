// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var ErrCountOverflow = fmt.Errorf("count %w", smath.ErrOverflow)
