// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "hello-cli" implements the hellovm client operation interface.
package main

import (
	"os"

	"github.com/ava-labs/hellovm/cmd/hello-cli/cmd"
	"github.com/ava-labs/hellovm/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}hello-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
