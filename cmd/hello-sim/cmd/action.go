// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/storage"
)

var (
	_ Cmd = (*greetingCmd)(nil)
	_ Cmd = (*incrementCmd)(nil)
	_ Cmd = (*stateCmd)(nil)
)

type greetingCmd struct {
	cmd    *argparse.Command
	method string
	to     *string
}

func newHelloCmd(parser *argparse.Parser) *greetingCmd {
	return newGreetingCmd(parser, MethodHello, "Greet a recipient")
}

func newGoodbyeCmd(parser *argparse.Parser) *greetingCmd {
	return newGreetingCmd(parser, MethodGoodbye, "Bid farewell to a recipient")
}

func newGreetingCmd(parser *argparse.Parser, method string, help string) *greetingCmd {
	c := &greetingCmd{
		cmd:    parser.NewCommand(method, help),
		method: method,
	}
	c.to = c.cmd.String("t", "to", &argparse.Options{
		Help:    "recipient",
		Default: "",
	})
	return c
}

func (c *greetingCmd) Run(ctx context.Context, s *Simulator) error {
	return s.respond(ctx, 0, c.method, []Parameter{{Type: String, Value: *c.to}})
}

func (c *greetingCmd) Happened() bool {
	return c.cmd.Happened()
}

type incrementCmd struct {
	cmd    *argparse.Command
	amount *int
}

func newIncrementCmd(parser *argparse.Parser) *incrementCmd {
	c := &incrementCmd{
		cmd: parser.NewCommand(MethodIncrement, "Add to the stored count"),
	}
	c.amount = c.cmd.Int("a", "amount", &argparse.Options{
		Help:     "amount to add",
		Required: true,
	})
	return c
}

func (c *incrementCmd) Run(ctx context.Context, s *Simulator) error {
	return s.respond(ctx, 0, MethodIncrement, []Parameter{{Type: Uint32, Value: *c.amount}})
}

func (c *incrementCmd) Happened() bool {
	return c.cmd.Happened()
}

type stateCmd struct {
	cmd *argparse.Command
}

func newStateCmd(parser *argparse.Parser) *stateCmd {
	return &stateCmd{
		cmd: parser.NewCommand("state", "Show the stored record"),
	}
}

func (c *stateCmd) Run(ctx context.Context, s *Simulator) error {
	return s.respond(ctx, 0, MethodGetState, nil)
}

func (c *stateCmd) Happened() bool {
	return c.cmd.Happened()
}

// respond invokes a single method and prints the response.
func (s *Simulator) respond(ctx context.Context, id int, method string, params []Parameter) error {
	resp := NewResponse(id)
	result, err := s.invoke(ctx, method, params)
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = result
	}
	return resp.Print(s.out)
}

// buildAction converts a method and its plan parameters into an action.
func buildAction(method string, params []Parameter) (actions.Action, error) {
	switch method {
	case MethodHello, MethodGoodbye:
		to := ""
		if len(params) > 0 {
			if params[0].Type != String {
				return nil, fmt.Errorf("%w: %s expects %s", ErrInvalidParamType, method, String)
			}
			v, ok := params[0].Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrFailedParamTypeCast, params[0].Type)
			}
			to = v
		}
		if err := actions.VerifyGreeting(to); err != nil {
			return nil, err
		}
		if method == MethodHello {
			return &actions.Hello{To: to}, nil
		}
		return &actions.Goodbye{To: to}, nil
	case MethodIncrement:
		if len(params) != 1 || params[0].Type != Uint32 {
			return nil, fmt.Errorf("%w: %s expects one %s", ErrInvalidParamType, method, Uint32)
		}
		amount, err := toUint32(params[0].Value)
		if err != nil {
			return nil, err
		}
		return &actions.Increment{Amount: amount}, nil
	case MethodGetState:
		if len(params) != 0 {
			return nil, fmt.Errorf("%w: %s takes no params", ErrInvalidParamType, method)
		}
		return &actions.GetState{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
}

func (s *Simulator) invoke(ctx context.Context, method string, params []Parameter) (*Result, error) {
	action, err := buildAction(method, params)
	if err != nil {
		return nil, err
	}
	out, err := s.vm.Invoke(ctx, action)
	if err != nil {
		s.log.Debug("invocation failed",
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, err
	}

	result := &Result{Seq: s.vm.Seq()}
	switch action.GetTypeID() {
	case consts.HelloID, consts.GoodbyeID:
		result.Words, err = actions.UnmarshalGreeting(out)
	case consts.IncrementID:
		var count uint32
		count, err = actions.UnmarshalCount(out)
		result.Count = &count
	case consts.GetStateID:
		var st *storage.State
		st, err = storage.ParseState(out)
		if err == nil {
			result.Count = &st.Count
			result.LastIncr = &st.LastIncr
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
