// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/consts"
)

func TestParseUint32(t *testing.T) {
	require := require.New(t)

	v, err := ParseUint32(" 42 ")
	require.NoError(err)
	require.Equal(uint32(42), v)

	v, err = ParseUint32("4294967295")
	require.NoError(err)
	require.Equal(consts.MaxUint32, v)

	_, err = ParseUint32("")
	require.ErrorIs(err, ErrInputEmpty)
	_, err = ParseUint32("4294967296")
	require.Error(err)
	_, err = ParseUint32("-1")
	require.Error(err)
}

func TestValidateGreeting(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateGreeting(""))
	require.NoError(ValidateGreeting(strings.Repeat("a", consts.MaxGreetingSize)))
	require.ErrorIs(ValidateGreeting(strings.Repeat("a", consts.MaxGreetingSize+1)), ErrInputTooLarge)
}
