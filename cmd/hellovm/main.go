// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "hellovm" runs a node hosting the hello program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/utils/ulimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hellovm/cmd/hellovm/version"
	"github.com/ava-labs/hellovm/config"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/node"
	"github.com/ava-labs/hellovm/utils/logfactory"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:        consts.Name,
		Short:      "HelloVM node",
		SuggestFor: []string{consts.Name},
		RunE:       runFunc,
	}

	defaultConfigCmd = &cobra.Command{
		Use:   "default-config",
		Short: "Prints out the default config",
		RunE: func(*cobra.Command, []string) error {
			b, err := yaml.Marshal(config.NewDefaultConfig())
			if err != nil {
				return err
			}
			fmt.Print(string(b))
			return nil
		},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		version.NewCommand(),
		defaultConfigCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a yaml or json config file",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed %v\n", consts.Name, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runFunc(*cobra.Command, []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logConfig, err := cfg.GetLoggingConfig()
	if err != nil {
		return err
	}
	logFactory := logfactory.New(logConfig)
	defer logFactory.Close()
	log, err := logFactory.Make("main")
	if err != nil {
		return err
	}
	if err := ulimit.Set(ulimit.DefaultFDLimit, log); err != nil {
		return fmt.Errorf("%w: failed to set fd limit correctly", err)
	}

	n, err := node.New(log, cfg)
	if err != nil {
		log.Error("unable to start node", zap.Error(err))
		return err
	}
	log.Info("starting node",
		zap.String("version", consts.Version),
		zap.String("dataDir", cfg.DataDir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runErr := n.Run(ctx)
	if err := n.Close(); err != nil {
		log.Warn("unable to close node", zap.Error(err))
	}
	log.Info("node stopped", zap.Error(runErr))
	return runErr
}
