// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tests holds the scenarios shared by every test network.
package tests

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/tests/registry"
	"github.com/ava-labs/hellovm/tests/workload"
)

var (
	_ = registry.Register("Greetings", func(t ginkgo.FullGinkgoTInterface, tn workload.Network) {
		workload.Greetings(context.Background(), require.New(t), tn.URI())
	})
	_ = registry.Register("Counter", func(t ginkgo.FullGinkgoTInterface, tn workload.Network) {
		workload.Counter(context.Background(), require.New(t), tn.URI(), 1, 10, 100)
	})
	_ = registry.Register("Overflow", func(t ginkgo.FullGinkgoTInterface, tn workload.Network) {
		workload.Overflow(context.Background(), require.New(t), tn.URI())
	})
	_ = registry.Register("Stream", func(t ginkgo.FullGinkgoTInterface, tn workload.Network) {
		workload.Stream(context.Background(), require.New(t), tn.URI())
	})
)
