// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/ava-labs/hellovm/actions"
	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/storage"
	"github.com/ava-labs/hellovm/utils"
)

var actionNames = map[uint8]string{
	consts.HelloID:     "hello",
	consts.GoodbyeID:   "goodbye",
	consts.IncrementID: "increment",
	consts.GetStateID:  "get_state",
}

func actionName(typeID uint8) string {
	if name, ok := actionNames[typeID]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", typeID)
}

// formatOutput decodes the raw output of an action with [typeID].
func formatOutput(typeID uint8, out []byte) (string, error) {
	switch typeID {
	case consts.HelloID, consts.GoodbyeID:
		words, err := actions.UnmarshalGreeting(out)
		if err != nil {
			return "", err
		}
		return utils.FormatWords(words), nil
	case consts.IncrementID:
		count, err := actions.UnmarshalCount(out)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", count), nil
	case consts.GetStateID:
		s, err := storage.ParseState(out)
		if err != nil {
			return "", err
		}
		return formatState(s), nil
	default:
		return codec.ToHex(out), nil
	}
}

func formatState(s *storage.State) string {
	return fmt.Sprintf("count=%d last_incr=%d", s.Count, s.LastIncr)
}
