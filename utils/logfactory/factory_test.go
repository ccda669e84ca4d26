// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logfactory

import (
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestFactory(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	f := New(logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   1,
			MaxFiles:  1,
			MaxAge:    1,
			Directory: dir,
		},
		DisableWriterDisplaying: true,
		LogLevel:                logging.Info,
		DisplayLevel:            logging.Off,
		LogFormat:               logging.Plain,
	})

	log, err := f.Make("main")
	require.NoError(err)
	_, err = f.Make("main")
	require.Error(err)

	log.Info("hello")
	require.NoError(f.SetLogLevel("main", logging.Debug))
	require.NoError(f.SetDisplayLevel("main", logging.Info))
	require.Error(f.SetLogLevel("missing", logging.Debug))

	f.Close()
	require.FileExists(filepath.Join(dir, "main.log"))
}
