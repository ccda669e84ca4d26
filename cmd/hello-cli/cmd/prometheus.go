// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hellovm/cli"
)

var prometheusCmd = &cobra.Command{
	Use: "prometheus",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var generatePrometheusCmd = &cobra.Command{
	Use: "generate [uris...]",
	RunE: func(_ *cobra.Command, args []string) error {
		uris := args
		if len(uris) == 0 {
			uris = []string{endpoint}
		}
		return cli.GeneratePrometheus(
			context.Background(),
			prometheusBaseURI,
			uris,
			prometheusOpenBrowser,
			startPrometheus,
			prometheusFile,
			prometheusData,
		)
	},
}
