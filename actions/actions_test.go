// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/program"
	"github.com/ava-labs/hellovm/state"
	"github.com/ava-labs/hellovm/storage"
)

func TestParseAction(t *testing.T) {
	for _, tt := range []struct {
		name   string
		action Action
	}{
		{name: "hello", action: &Hello{To: "Dev"}},
		{name: "hello empty", action: &Hello{To: ""}},
		{name: "goodbye", action: &Goodbye{To: "Dev"}},
		{name: "increment", action: &Increment{Amount: 42}},
		{name: "increment zero", action: &Increment{Amount: 0}},
		{name: "get state", action: &GetState{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			b, err := Marshal(tt.action)
			require.NoError(err)
			require.Len(b, consts.ByteLen+tt.action.Size())
			require.Equal(tt.action.GetTypeID(), b[0])

			parsed, err := ParseAction(b)
			require.NoError(err)
			require.Equal(tt.action, parsed)
		})
	}
}

func TestParseActionInvalid(t *testing.T) {
	require := require.New(t)

	_, err := ParseAction(nil)
	require.Error(err)

	_, err = ParseAction([]byte{0xff})
	require.ErrorIs(err, ErrUnknownAction)

	b, err := Marshal(&Increment{Amount: 1})
	require.NoError(err)
	_, err = ParseAction(append(b, 0))
	require.ErrorIs(err, codec.ErrTrailingBytes)

	// Truncated amount
	_, err = ParseAction(b[:3])
	require.Error(err)
}

func TestGreetingTooLong(t *testing.T) {
	require := require.New(t)

	_, err := Marshal(&Hello{To: strings.Repeat("a", consts.MaxGreetingSize+1)})
	require.Error(err)

	// Bypass the writer limit to check the reader side
	p := codec.NewWriter(0, 1024)
	p.PackByte(consts.GoodbyeID)
	p.PackString(strings.Repeat("a", consts.MaxGreetingSize+1))
	require.NoError(p.Err())
	_, err = ParseAction(p.Bytes())
	require.Error(err)

	p = codec.NewReader(p.Bytes()[1:], 1024)
	_, err = UnmarshalGoodbye(p)
	require.ErrorIs(err, ErrGreetingTooLong)
}

func TestGreetingExecute(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	out, err := (&Hello{To: "Dev"}).Execute(ctx, nil)
	require.NoError(err)
	words, err := UnmarshalGreeting(out)
	require.NoError(err)
	require.Equal(program.Hello("Dev"), words)

	out, err = (&Goodbye{To: ""}).Execute(ctx, nil)
	require.NoError(err)
	words, err = UnmarshalGreeting(out)
	require.NoError(err)
	require.Equal([]string{"Goodbye", ""}, words)

	require.Empty((&Hello{}).StateKeys())
	require.Empty((&Goodbye{}).StateKeys())

	_, err = UnmarshalGreeting(append(out, 1))
	require.ErrorIs(err, ErrInvalidOutput)
}

func TestGreetingExecuteLimit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	atLimit := strings.Repeat("a", consts.MaxGreetingSize)
	for _, a := range []Action{&Hello{To: atLimit}, &Goodbye{To: atLimit}} {
		out, err := a.Execute(ctx, nil)
		require.NoError(err)
		words, err := UnmarshalGreeting(out)
		require.NoError(err)
		require.Equal(atLimit, words[1])

		b, err := Marshal(a)
		require.NoError(err)
		parsed, err := ParseAction(b)
		require.NoError(err)
		require.Equal(a, parsed)
	}

	for _, to := range []string{
		strings.Repeat("a", consts.MaxGreetingSize+1),
		strings.Repeat("a", 70_000),
	} {
		for _, a := range []Action{&Hello{To: to}, &Goodbye{To: to}} {
			_, err := a.Execute(ctx, nil)
			require.ErrorIs(err, ErrGreetingTooLong)
		}
	}
}

func TestIncrementExecute(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	out, err := (&Increment{Amount: 3}).Execute(ctx, mu)
	require.NoError(err)
	count, err := UnmarshalCount(out)
	require.NoError(err)
	require.Equal(uint32(3), count)

	out, err = (&GetState{}).Execute(ctx, mu)
	require.NoError(err)
	s, err := storage.ParseState(out)
	require.NoError(err)
	require.Equal(&storage.State{Count: 3, LastIncr: 3}, s)

	_, err = UnmarshalCount([]byte{1})
	require.ErrorIs(err, ErrInvalidOutput)
}

func TestIncrementExecuteOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, err := (&Increment{Amount: consts.MaxUint32}).Execute(ctx, mu)
	require.NoError(err)
	out, err := (&Increment{Amount: 1}).Execute(ctx, mu)
	require.ErrorIs(err, program.ErrCountOverflow)
	require.Nil(out)
}

func TestStateKeys(t *testing.T) {
	require := require.New(t)

	k := string(storage.StateKey())
	require.True((&Increment{}).StateKeys()[k].Has(state.All))
	require.True((&GetState{}).StateKeys()[k].Has(state.Read))
	require.False((&GetState{}).StateKeys()[k].Has(state.Write))
}
