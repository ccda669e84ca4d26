// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/hellovm/rpc"
	"github.com/ava-labs/hellovm/utils"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream committed invocations",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		scli, err := rpc.NewWebSocketClient(endpoint)
		if err != nil {
			return err
		}
		defer scli.Close()

		utils.Outf("{{yellow}}watching:{{/}} %s\n", endpoint)
		for seen := 0; watchCount == 0 || seen < watchCount; {
			e, serr, err := scli.Listen()
			if err != nil {
				return err
			}
			if serr != nil {
				utils.Outf("{{red}}error:{{/}} %v\n", serr)
				continue
			}
			formatted, err := formatOutput(e.TypeID, e.Output)
			if err != nil {
				return err
			}
			utils.Outf("{{cyan}}[%d]{{/}} {{green}}%s:{{/}} %s\n", e.Seq, actionName(e.TypeID), formatted)
			seen++
		}
		return nil
	},
}
