// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
)

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type GreetingArgs struct {
	To string `json:"to"`
}

type GreetingReply struct {
	Words []string `json:"words"`
}

func (j *JSONRPCServer) Hello(req *http.Request, args *GreetingArgs, reply *GreetingReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Hello")
	defer span.End()

	out, err := j.vm.Invoke(ctx, &actions.Hello{To: args.To})
	if err != nil {
		return err
	}
	reply.Words, err = actions.UnmarshalGreeting(out)
	return err
}

func (j *JSONRPCServer) Goodbye(req *http.Request, args *GreetingArgs, reply *GreetingReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Goodbye")
	defer span.End()

	out, err := j.vm.Invoke(ctx, &actions.Goodbye{To: args.To})
	if err != nil {
		return err
	}
	reply.Words, err = actions.UnmarshalGreeting(out)
	return err
}

type IncrementArgs struct {
	Amount uint32 `json:"amount"`
}

type IncrementReply struct {
	Count uint32 `json:"count"`
}

func (j *JSONRPCServer) Increment(req *http.Request, args *IncrementArgs, reply *IncrementReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Increment")
	defer span.End()

	out, err := j.vm.Invoke(ctx, &actions.Increment{Amount: args.Amount})
	if err != nil {
		return err
	}
	reply.Count, err = actions.UnmarshalCount(out)
	return err
}

type StateReply struct {
	Count    uint32 `json:"count"`
	LastIncr uint32 `json:"lastIncr"`
}

func (j *JSONRPCServer) State(req *http.Request, _ *struct{}, reply *StateReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.State")
	defer span.End()

	s, err := j.vm.State(ctx)
	if err != nil {
		return err
	}
	reply.Count = s.Count
	reply.LastIncr = s.LastIncr
	return nil
}

type SubmitArgs struct {
	Action string `json:"action"`
}

type SubmitReply struct {
	TypeID uint8  `json:"typeId"`
	Output string `json:"output"`
}

// Submit invokes a hex-encoded, type-prefixed action.
func (j *JSONRPCServer) Submit(req *http.Request, args *SubmitArgs, reply *SubmitReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Submit")
	defer span.End()

	raw, err := codec.LoadHex(args.Action, -1)
	if err != nil {
		return fmt.Errorf("%w: unable to decode action", err)
	}
	if len(raw) == 0 || len(raw) > consts.MaxActionSize {
		return fmt.Errorf("%w: action is %d bytes", codec.ErrInvalidSize, len(raw))
	}
	out, err := j.vm.Submit(ctx, raw)
	if err != nil {
		return err
	}
	reply.TypeID = raw[0]
	reply.Output = codec.ToHex(out)
	return nil
}
