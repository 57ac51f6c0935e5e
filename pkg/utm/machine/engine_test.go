// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/consensys/go-utm/pkg/util/assert"
	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/rule"
)

const (
	q1 = codec.State("q1")
	q2 = codec.State("q2")
	q3 = codec.State("q3")
)

// (q1,_) -> (q1,1,R) never halts on a blank tape.
var forever = []rule.Rule{{State: q1, Read: "_", Next: q1, Write: "1", Move: codec.RIGHT}}

// Appends a 1 to a unary number.
var increment = []rule.Rule{
	{State: q1, Read: "1", Next: q1, Write: "1", Move: codec.RIGHT},
	{State: q1, Read: "_", Next: q2, Write: "1", Move: codec.LEFT},
}

// Inverts a binary string, then returns to its start.
var invert = []rule.Rule{
	{State: q1, Read: "0", Next: q1, Write: "1", Move: codec.RIGHT},
	{State: q1, Read: "1", Next: q1, Write: "0", Move: codec.RIGHT},
	{State: q1, Read: "_", Next: q2, Write: "_", Move: codec.LEFT},
	{State: q2, Read: "0", Next: q2, Write: "0", Move: codec.LEFT},
	{State: q2, Read: "1", Next: q2, Write: "1", Move: codec.LEFT},
	{State: q2, Read: "_", Next: q3, Write: "_", Move: codec.RIGHT},
}

func TestEngine_SingleStep(t *testing.T) {
	engine := newEngine(t, forever, q1, "")
	//
	checkStep(t, engine, true)
	assert.Equal(t, q1, engine.State())
	assert.Equal(t, 1, engine.Head())
	assert.Equal(t, codec.Symbol("1"), engine.Work().Get(0))
	assert.Equal(t, RUNNING, engine.Status())
	// Blank at position 1 matches again
	checkStep(t, engine, true)
	assert.Equal(t, 2, engine.Head())
	assert.Equal(t, uint(2), engine.Steps())
}

func TestEngine_StepLimit(t *testing.T) {
	engine := newEngine(t, forever, q1, "")
	//
	n, err := engine.Run(5)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), n)
	assert.Equal(t, uint(5), engine.Steps())
	assert.Equal(t, STEP_LIMIT_REACHED, engine.Status())
	assert.Equal(t, "11111", render(engine.Output()))
	// Halted engines do not advance
	checkStep(t, engine, false)
	assert.Equal(t, uint(5), engine.Steps())
}

func TestEngine_DefaultLimit(t *testing.T) {
	engine := newEngine(t, forever, q1, "")
	//
	n, err := engine.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, DEFAULT_MAX_STEPS, n)
	assert.Equal(t, STEP_LIMIT_REACHED, engine.Status())
}

func TestEngine_NoMatchingRule(t *testing.T) {
	engine := newEngine(t, forever, q1, "0")
	before := engine.Snapshot()
	// No rule for (q1,0)
	checkStep(t, engine, false)
	assert.Equal(t, NO_MATCHING_RULE, engine.Status())
	// Nothing changed
	after := engine.Snapshot()
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Head, after.Head)
	assert.Equal(t, before.Cells, after.Cells)
	assert.Equal(t, uint(0), engine.Steps())
	//
	n, err := engine.Run(10)
	assert.NoError(t, err)
	assert.Equal(t, uint(0), n)
	assert.Equal(t, NO_MATCHING_RULE, engine.Status())
}

func TestEngine_Increment(t *testing.T) {
	engine := newEngine(t, increment, q1, "111")
	//
	n, err := engine.Run(20)
	assert.NoError(t, err)
	assert.Equal(t, uint(4), n)
	assert.Equal(t, NO_MATCHING_RULE, engine.Status())
	assert.Equal(t, q2, engine.State())
	assert.Equal(t, 2, engine.Head())
	assert.Equal(t, "1111", render(engine.Output()))
}

func TestEngine_Invert(t *testing.T) {
	engine := newEngine(t, invert, q1, "10110")
	//
	n, err := engine.Run(100)
	assert.NoError(t, err)
	assert.Equal(t, uint(12), n)
	assert.Equal(t, q3, engine.State())
	assert.Equal(t, 0, engine.Head())
	assert.Equal(t, "01001", render(engine.Output()))
}

func TestEngine_SharedDescription(t *testing.T) {
	var (
		c = newCodec(t)
		d = encode(t, c, invert)
	)
	//
	for _, input := range []string{"", "0", "1", "0110", "111000"} {
		engine, err := New(c, d, q1, symbols(input))
		assert.NoError(t, err)
		_, err = engine.Run(100)
		assert.NoError(t, err)
		assert.Equal(t, NO_MATCHING_RULE, engine.Status())
		assert.Equal(t, flip(input), render(engine.Output()))
	}
}

func TestEngine_Trace(t *testing.T) {
	var (
		engine   = newEngine(t, increment, q1, "1")
		recorder Recorder
	)
	//
	engine.Observe(recorder.Observe)
	_, err := engine.Run(10)
	assert.NoError(t, err)
	//
	trace := recorder.Trace()
	assert.Equal(t, 2, len(trace))
	assert.Equal(t, uint(1), trace[0].Step)
	assert.Equal(t, q1, trace[0].State)
	assert.Equal(t, codec.Code("1"), trace[0].StateCode)
	assert.Equal(t, 1, trace[0].Head)
	assert.Equal(t, codec.Symbol("_"), trace[0].Symbol)
	assert.Equal(t, uint(2), trace[1].Step)
	assert.Equal(t, q2, trace[1].State)
	assert.Equal(t, codec.Code("11"), trace[1].StateCode)
	assert.Equal(t, 0, trace[1].Head)
	// Window runs from position 0 to one beyond the rightmost cell.
	cells := trace[1].Cells
	assert.Equal(t, 3, len(cells))
	assert.Equal(t, 0, cells[0].Position)
	assert.True(t, cells[0].IsHead)
	assert.Equal(t, 2, cells[2].Position)
}

func TestEngine_Window(t *testing.T) {
	rules := []rule.Rule{
		{State: q1, Read: "1", Next: q1, Write: "1", Move: codec.LEFT},
		{State: q1, Read: "_", Next: q1, Write: "0", Move: codec.LEFT},
	}
	engine := newEngine(t, rules, q1, "1")
	//
	_, err := engine.Run(3)
	assert.NoError(t, err)
	assert.Equal(t, -3, engine.Head())
	//
	cells := engine.Window(0)
	assert.Equal(t, -3, cells[0].Position)
	assert.Equal(t, 1, cells[len(cells)-1].Position)
	//
	cells = engine.Window(2)
	assert.Equal(t, -5, cells[0].Position)
	assert.Equal(t, 3, cells[len(cells)-1].Position)
	assert.Equal(t, "001", render(engine.Output()))
}

func TestEngine_MalformedCode(t *testing.T) {
	var (
		c         = newCodec(t)
		malformed *codec.MalformedCodeError
	)
	// (q1,_) -> (q4,1,R) where q4 is unassigned.
	engine, err := New(c, "1010111101101", q1, nil)
	assert.NoError(t, err)
	//
	ok, err := engine.Step()
	assert.False(t, ok)
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, RUNNING, engine.Status())
	assert.Equal(t, q1, engine.State())
	assert.Equal(t, 0, engine.Head())
	assert.True(t, engine.Work().IsEmpty())
	// Failures are sticky
	n, err2 := engine.Run(10)
	assert.Equal(t, uint(0), n)
	assert.Equal(t, err, err2)
	assert.Equal(t, err, engine.Err())
}

func TestEngine_MalformedRule(t *testing.T) {
	var malformed *rule.MalformedRuleError
	// Lexical errors are reported at construction
	_, err := New(newCodec(t), "1010110000101", q1, nil)
	assert.ErrorAs(t, err, &malformed)
	// Field counts are checked on matching
	engine, err := New(newCodec(t), "101011", q1, nil)
	assert.NoError(t, err)
	_, err = engine.Step()
	assert.ErrorAs(t, err, &malformed)
}

func TestEngine_Invalid(t *testing.T) {
	var (
		c       = newCodec(t)
		d       = encode(t, c, increment)
		unknown *codec.UnknownValueError
	)
	//
	_, err := New(c, d, "q9", nil)
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, codec.STATE, unknown.Category)
	//
	_, err = New(c, d, q1, symbols("12"))
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, codec.SYMBOL, unknown.Category)
}

func TestEngine_Cancel(t *testing.T) {
	var (
		engine      = newEngine(t, forever, q1, "")
		ctx, cancel = context.WithCancel(context.Background())
	)
	// Cancel after three steps
	engine.Observe(func(s Snapshot) {
		if s.Step == 3 {
			cancel()
		}
	})
	//
	n, err := engine.RunContext(ctx, 100)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint(3), n)
	assert.Equal(t, RUNNING, engine.Status())
}

// ==================================================================
// Framework
// ==================================================================

func newCodec(t *testing.T) *codec.Codec {
	c, err := codec.New([]codec.State{q1, q2, q3}, []codec.Symbol{"_", "1", "0"})
	if err != nil {
		t.Fatal(err)
	}
	//
	return c
}

func encode(t *testing.T, c *codec.Codec, rules []rule.Rule) rule.Description {
	d, err := rule.Encode(c, rules)
	if err != nil {
		t.Fatal(err)
	}
	//
	return d
}

func newEngine(t *testing.T, rules []rule.Rule, start codec.State, input string) *Engine {
	c := newCodec(t)
	//
	engine, err := New(c, encode(t, c, rules), start, symbols(input))
	if err != nil {
		t.Fatal(err)
	}
	//
	return engine
}

func checkStep(t *testing.T, engine *Engine, expected bool) {
	advanced, err := engine.Step()
	assert.NoError(t, err)
	assert.Equal(t, expected, advanced)
}

func symbols(input string) []codec.Symbol {
	var syms []codec.Symbol
	//
	for _, c := range input {
		syms = append(syms, codec.Symbol(c))
	}
	//
	return syms
}

func render(symbols []codec.Symbol) string {
	var builder strings.Builder
	//
	for _, s := range symbols {
		builder.WriteString(string(s))
	}
	//
	return builder.String()
}

func flip(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '0' {
			return '1'
		}
		//
		return '0'
	}, input)
}
