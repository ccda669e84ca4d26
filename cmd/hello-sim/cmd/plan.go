// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"
)

var _ Cmd = (*runCmd)(nil)

type runCmd struct {
	cmd  *argparse.Command
	path *string
}

func newRunCmd(parser *argparse.Parser) *runCmd {
	c := &runCmd{
		cmd: parser.NewCommand("run", "Run a simulation plan"),
	}
	c.path = c.cmd.String("p", "plan", &argparse.Options{
		Help:     "path to a yaml or json plan (- for stdin)",
		Required: true,
	})
	return c
}

func (c *runCmd) Happened() bool {
	return c.cmd.Happened()
}

func (c *runCmd) Run(ctx context.Context, s *Simulator) error {
	var (
		planBytes []byte
		err       error
	)
	if *c.path == "-" {
		planBytes, err = io.ReadAll(s.in)
	} else {
		planBytes, err = os.ReadFile(*c.path)
	}
	if err != nil {
		return err
	}
	plan, err := unmarshalPlan(planBytes)
	if err != nil {
		return err
	}
	if err := verifyPlan(plan); err != nil {
		return err
	}
	return s.runPlan(ctx, plan)
}

func verifyPlan(plan *Plan) error {
	if len(plan.Steps) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, "no steps found")
	}
	for i, step := range plan.Steps {
		if _, err := buildAction(step.Method, step.Params); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
		if step.Require == nil || step.Require.Result == nil {
			continue
		}
		switch Operator(step.Require.Result.Operator) {
		case NumericGt, NumericLt, NumericGe, NumericLe, Eq, Ne:
		default:
			return fmt.Errorf("%w %d: %w: %q", ErrInvalidStep, i, ErrInvalidOperator, step.Require.Result.Operator)
		}
	}
	return nil
}

// runPlan executes every step in order and prints one response per step. A
// failed assertion stops the plan.
func (s *Simulator) runPlan(ctx context.Context, plan *Plan) error {
	s.log.Info("simulation",
		zap.String("name", plan.Name),
		zap.String("plan", plan.Description),
	)
	for i, step := range plan.Steps {
		s.log.Info("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("method", step.Method),
			zap.Any("params", step.Params),
		)

		resp := NewResponse(i)
		result, err := s.invoke(ctx, step.Method, step.Params)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = result
		}
		if err := resp.Print(s.out); err != nil {
			return err
		}

		if err := checkRequire(i, step.Require, result, err); err != nil {
			return err
		}
	}
	return nil
}

func checkRequire(i int, require *Require, result *Result, stepErr error) error {
	if require == nil {
		return nil
	}
	if len(require.Error) > 0 {
		if stepErr == nil || !strings.Contains(stepErr.Error(), require.Error) {
			return fmt.Errorf("%w: step %d: expected error %q, got %v", ErrAssertionFailed, i, require.Error, stepErr)
		}
		return nil
	}
	if stepErr != nil {
		return fmt.Errorf("%w: step %d failed: %w", ErrAssertionFailed, i, stepErr)
	}
	if require.Result == nil {
		return nil
	}
	ok, err := validateAssertion(result.Value(), require.Result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(
			"%w: step %d: %s %s %s",
			ErrAssertionFailed,
			i,
			result.Value(),
			require.Result.Operator,
			require.Result.Value,
		)
	}
	return nil
}
