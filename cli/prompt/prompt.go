// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/utils"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInputTooLarge = errors.New("input is too large")
	ErrInvalidChoice = errors.New("invalid choice")
)

// Greeting prompts for a recipient. The empty string is a valid recipient.
func Greeting(label string) (string, error) {
	promptText := promptui.Prompt{
		Label:    label,
		Validate: ValidateGreeting,
	}
	return promptText.Run()
}

func ValidateGreeting(input string) error {
	if len(input) > consts.MaxGreetingSize {
		return ErrInputTooLarge
	}
	return nil
}

func Bytes(label string) ([]byte, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.LoadHex(input, -1)
			return err
		},
	}
	hexString, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return codec.LoadHex(hexString, -1)
}

// ParseUint32 parses a base-10 uint32 after trimming whitespace.
func ParseUint32(input string) (uint32, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := strconv.ParseUint(input, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q must be a uint32: %w", input, err)
	}
	return uint32(amount), nil
}

func Uint32(label string) (uint32, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseUint32(input)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return ParseUint32(rawAmount)
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label: "continue (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}
