// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v2"
)

const (
	MethodHello     = "hello"
	MethodGoodbye   = "goodbye"
	MethodIncrement = "increment"
	MethodGetState  = "get_state"
)

type Plan struct {
	// The name of the plan.
	Name string `json:"name" yaml:"name"`
	// A description of the plan.
	Description string `json:"description" yaml:"description"`
	// Steps to performed during simulation.
	Steps []Step `json:"steps" yaml:"steps"`
}

type Step struct {
	// Description of the step. (required)
	Description string `json:"description" yaml:"description"`
	// The entry point to call. (required)
	Method string `json:"method" yaml:"method"`
	// The parameters to pass to the method.
	Params []Parameter `json:"params" yaml:"params"`
	// Define required assertions against this step.
	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Parameter struct {
	// The optional name of the parameter. This is only used for readability.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// The type of the parameter. (required)
	Type Type `json:"type" yaml:"type"`
	// The value of the parameter. (required)
	Value interface{} `json:"value" yaml:"value"`
}

type Type string

const (
	String Type = "string"
	Uint32 Type = "u32"
)

type Require struct {
	// Assertions against the result of the step.
	Result *ResultAssertion `json:"result,omitempty" yaml:"result,omitempty"`
	// If set, the step must fail with an error containing this text.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type ResultAssertion struct {
	// The operator to use for the assertion.
	Operator string `json:"operator" yaml:"operator"`
	// The value to compare against.
	Value string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	Eq        Operator = "=="
	Ne        Operator = "!="
)

func NewResponse(id int) *Response {
	return &Response{
		ID: id,
	}
}

type Response struct {
	// The index of the step that generated this response.
	ID int `json:"id"`
	// The result of the step.
	Result *Result `json:"result,omitempty"`
	// The error message if available.
	Error string `json:"error,omitempty"`
}

type Result struct {
	// Sequence number of the committed invocation.
	Seq uint64 `json:"seq,omitempty"`
	// Greeting words.
	Words []string `json:"words,omitempty"`
	// Count after the step has completed.
	Count *uint32 `json:"count,omitempty"`
	// Last increment after the step has completed.
	LastIncr *uint32 `json:"lastIncr,omitempty"`
}

// Value is the scalar an assertion is checked against.
func (r *Result) Value() string {
	switch {
	case r == nil:
		return ""
	case r.Count != nil:
		return strconv.FormatUint(uint64(*r.Count), 10)
	default:
		b, _ := json.Marshal(r.Words)
		return string(b)
	}
}

func (r *Response) Print(w io.Writer) error {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

// validateAssertion reports whether [actual] satisfies [assertion]. Numeric
// operators require both sides to be base-10 integers.
func validateAssertion(actual string, assertion *ResultAssertion) (bool, error) {
	op := Operator(assertion.Operator)
	switch op {
	case Eq:
		return actual == assertion.Value, nil
	case Ne:
		return actual != assertion.Value, nil
	case NumericGt, NumericLt, NumericGe, NumericLe:
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, assertion.Operator)
	}

	a, err := strconv.ParseUint(actual, 10, 64)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not numeric", ErrInvalidOperator, actual)
	}
	v, err := strconv.ParseUint(assertion.Value, 10, 64)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not numeric", ErrInvalidOperator, assertion.Value)
	}
	switch op {
	case NumericGt:
		return a > v, nil
	case NumericLt:
		return a < v, nil
	case NumericGe:
		return a >= v, nil
	default:
		return a <= v, nil
	}
}

func unmarshalPlan(bytes []byte) (*Plan, error) {
	var p Plan
	switch {
	case isJSON(bytes):
		if err := json.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	case isYAML(bytes):
		if err := yaml.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidConfigFormat
	}
	return &p, nil
}

func isJSON(b []byte) bool {
	var js map[string]interface{}
	return json.Unmarshal(b, &js) == nil
}

func isYAML(b []byte) bool {
	var y map[string]interface{}
	return yaml.Unmarshal(b, &y) == nil
}

// toUint32 converts a decoded plan value. JSON decodes numbers as float64 and
// YAML as int.
func toUint32(v interface{}) (uint32, error) {
	var u uint64
	switch n := v.(type) {
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmt.Errorf("%w: %v", ErrFailedParamTypeCast, v)
		}
		u = uint64(n)
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: %v", ErrFailedParamTypeCast, v)
		}
		u = uint64(n)
	case string:
		var err error
		u, err = strconv.ParseUint(n, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrFailedParamTypeCast, err)
		}
	default:
		return 0, fmt.Errorf("%w: %T", ErrFailedParamTypeCast, v)
	}
	if u > uint64(^uint32(0)) {
		return 0, fmt.Errorf("%w: %d exceeds u32", ErrFailedParamTypeCast, u)
	}
	return uint32(u), nil
}
