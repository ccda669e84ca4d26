// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrInvalidStep         = errors.New("invalid step")
	ErrInvalidMethod       = errors.New("invalid method")
	ErrInvalidParamType    = errors.New("invalid param type")
	ErrFailedParamTypeCast = errors.New("failed to cast param type")
	ErrInvalidConfigFormat = errors.New("invalid config format")
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrAssertionFailed     = errors.New("assertion failed")
	ErrNoCommand           = errors.New("no command")
)
