// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "db")
	require.NoError(err)
	require.Equal(filepath.Join(root, "db"), p)
	require.DirExists(p)

	// idempotent
	_, err = InitSubDirectory(root, "db")
	require.NoError(err)
}

func TestFormatWords(t *testing.T) {
	require := require.New(t)

	require.Equal(`["Hello", "world"]`, FormatWords([]string{"Hello", "world"}))
	require.Equal(`["Goodbye", ""]`, FormatWords([]string{"Goodbye", ""}))
	require.Equal("[]", FormatWords(nil))
}
