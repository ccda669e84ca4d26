// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hellovm/rpc"
)

const defaultEndpoint = "http://127.0.0.1:9650"

var (
	endpoint string
	timeout  time.Duration

	watchCount int

	prometheusBaseURI     string
	prometheusOpenBrowser bool
	prometheusFile        string
	prometheusData        string
	startPrometheus       bool

	rootCmd = &cobra.Command{
		Use:        "hello-cli",
		Short:      "HelloVM CLI",
		SuggestFor: []string{"hello-cli", "hellocli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		helloCmd,
		goodbyeCmd,
		incrementCmd,
		stateCmd,
		submitCmd,
		watchCmd,
		prometheusCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		defaultEndpoint,
		"uri of the hellovm node",
	)
	rootCmd.PersistentFlags().DurationVar(
		&timeout,
		"timeout",
		30*time.Second,
		"request timeout",
	)
	rootCmd.SilenceErrors = true

	// watch
	watchCmd.PersistentFlags().IntVar(
		&watchCount,
		"count",
		0,
		"number of events to print before exiting (0 for unbounded)",
	)

	// prometheus
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusBaseURI,
		"prometheus-base-uri",
		"http://localhost:9090",
		"prometheus server location",
	)
	generatePrometheusCmd.PersistentFlags().BoolVar(
		&prometheusOpenBrowser,
		"prometheus-open-browser",
		true,
		"open browser to prometheus dashboard",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusFile,
		"prometheus-file",
		"/tmp/prometheus.yaml",
		"prometheus file location",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusData,
		"prometheus-data",
		"/tmp/prometheus",
		"prometheus data location",
	)
	generatePrometheusCmd.PersistentFlags().BoolVar(
		&startPrometheus,
		"prometheus-start",
		true,
		"start local prometheus server",
	)
	prometheusCmd.AddCommand(
		generatePrometheusCmd,
	)
}

func client() *rpc.JSONRPCClient {
	return rpc.NewJSONRPCClient(endpoint)
}

func Execute() error {
	return rootCmd.Execute()
}
