// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{Enabled: false, AppName: "hellovm"})
	require.NoError(err)
	ctx, span := tracer.Start(context.Background(), "VM.Invoke")
	require.NotNil(ctx)
	require.False(span.IsRecording())
	span.End()
	require.NoError(tracer.Close())
	require.Equal(trace.Noop, tracer)
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		Endpoint:        "http://127.0.0.1:1/api/v2/spans",
		AppName:         "hellovm",
		Agent:           "test",
		Version:         "v0.0.0",
	})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "VM.Invoke")
	require.True(span.IsRecording())
	span.End()

	// Export fails against the unreachable collector, shutdown must not hang
	_ = tracer.Close()
}
