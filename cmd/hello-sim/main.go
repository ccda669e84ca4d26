// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "hello-sim" runs the hello program against a local database without a
// node.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ava-labs/hellovm/cmd/hello-sim/cmd"
)

func main() {
	s := cmd.NewSimulator(os.Stdin, os.Stdout)
	if err := s.Execute(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
