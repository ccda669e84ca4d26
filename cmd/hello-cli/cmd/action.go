// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/cli/prompt"
	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/utils"
)

var helloCmd = &cobra.Command{
	Use:   "hello [to]",
	Short: "Greet a recipient",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		to, err := greetingArg(args, "to")
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		words, err := client().Hello(ctx, to)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}hello:{{/}} %s\n", utils.FormatWords(words))
		return nil
	},
}

var goodbyeCmd = &cobra.Command{
	Use:   "goodbye [to]",
	Short: "Bid farewell to a recipient",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		to, err := greetingArg(args, "to")
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		words, err := client().Goodbye(ctx, to)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}goodbye:{{/}} %s\n", utils.FormatWords(words))
		return nil
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment [amount]",
	Short: "Add to the stored count",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			amount uint32
			err    error
		)
		if len(args) == 1 {
			amount, err = prompt.ParseUint32(args[0])
		} else {
			amount, err = prompt.Uint32("amount")
		}
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		count, err := client().Increment(ctx, amount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}count:{{/}} %d\n", count)
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the stored record",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s, err := client().State(ctx)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}state:{{/}} %s\n", formatState(s))
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit [action hex]",
	Short: "Submit a type-prefixed action",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if len(args) == 1 {
			raw, err = codec.LoadHex(args[0], -1)
		} else {
			raw, err = prompt.Bytes("action")
		}
		if err != nil {
			return err
		}
		action, err := actions.ParseAction(raw)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := client().Submit(ctx, action)
		if err != nil {
			return err
		}
		formatted, err := formatOutput(action.GetTypeID(), out)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}%s:{{/}} %s\n", actionName(action.GetTypeID()), formatted)
		return nil
	},
}

func greetingArg(args []string, label string) (string, error) {
	if len(args) == 1 {
		return args[0], prompt.ValidateGreeting(args[0])
	}
	return prompt.Greeting(label)
}
