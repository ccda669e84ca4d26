// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

var _ Cmd = (*interpreterCmd)(nil)

type interpreterCmd struct {
	cmd *argparse.Command
}

func newInterpreterCmd(parser *argparse.Parser) *interpreterCmd {
	return &interpreterCmd{
		cmd: parser.NewCommand("interpreter", "Read commands from a buffered stdin"),
	}
}

func (c *interpreterCmd) Happened() bool {
	return c.cmd.Happened()
}

// Run executes one simulator command per input line against the same
// database. Empty lines and lines starting with # are skipped.
func (c *interpreterCmd) Run(ctx context.Context, s *Simulator) error {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := s.interpret(ctx, line); err != nil {
			s.log.Debug("unable to interpret line",
				zap.String("line", line),
				zap.Error(err),
			)
			if _, werr := fmt.Fprintf(s.out, "error: %s\n", err); werr != nil {
				return werr
			}
		}
	}
	return scanner.Err()
}

func (s *Simulator) interpret(ctx context.Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return err
	}
	parser := argparse.NewParser("hello-sim", "hello program simulator")
	cmds := newCommands(parser, false)
	if err := parser.Parse(append([]string{"hello-sim"}, args...)); err != nil {
		return errors.New(parser.Usage(err))
	}
	return runHappened(ctx, s, cmds)
}
