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

	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/rule"
	"github.com/consensys/go-utm/pkg/utm/tape"
)

// DEFAULT_MAX_STEPS is the step limit used by Run when none is given.  Since an
// encoded machine need not halt, an engine never runs without some limit.
const DEFAULT_MAX_STEPS uint = 1000

// Engine is a universal machine.  It holds three tapes: the description tape
// (holding the binary encoded rules of the machine being simulated); the work
// tape (holding the contents of the simulated machine's tape); and the state
// register (a single cell holding the simulated machine's current state).  On
// each step, the engine encodes the current state and symbol, locates the
// first matching rule on the description tape and applies its decoded action.
//
// The description is never modified by the engine and, hence, the same
// description can be shared between any number of engines.  An engine itself
// is not safe for concurrent use.
type Engine struct {
	// Description tape (read only)
	description rule.Description
	matcher     *rule.Matcher
	// Work tape
	work *tape.Tape[codec.Symbol]
	// State register (head always at position 0)
	register *tape.Tape[codec.State]
	// Number of steps completed so far
	steps  uint
	status Status
	// Failure from a previous step (if any)
	failure   error
	observers []Observer
}

// New constructs an engine for a given description, whose state register holds
// the given start state and whose work tape holds the given input written from
// position 0.  An error is returned if the description is malformed, or if the
// start state or any input symbol is unknown to the codec.
func New(c *codec.Codec, d rule.Description, start codec.State, input []codec.Symbol) (*Engine, error) {
	matcher, err := rule.NewMatcher(c, d)
	if err != nil {
		return nil, err
	}
	// Sanity check start state and input
	if _, err := c.EncodeState(start); err != nil {
		return nil, err
	}
	//
	for _, s := range input {
		if _, err := c.EncodeSymbol(s); err != nil {
			return nil, err
		}
	}
	//
	return &Engine{
		description: d,
		matcher:     matcher,
		work:        tape.New(c.Blank(), input...),
		register:    tape.New[codec.State]("", start),
		steps:       0,
		status:      RUNNING,
	}, nil
}

// Observe registers an observer to be notified after every completed step.
func (p *Engine) Observe(observer Observer) {
	p.observers = append(p.observers, observer)
}

// Codec returns the codec used by this engine.
func (p *Engine) Codec() *codec.Codec {
	return p.matcher.Codec()
}

// Description returns the description being simulated.
func (p *Engine) Description() rule.Description {
	return p.description
}

// State returns the current contents of the state register.
func (p *Engine) State() codec.State {
	return p.register.Read()
}

// Symbol returns the symbol currently under the head of the work tape.
func (p *Engine) Symbol() codec.Symbol {
	return p.work.Read()
}

// Head returns the position of the head on the work tape.
func (p *Engine) Head() int {
	return p.work.Head()
}

// Steps returns the number of steps completed so far.
func (p *Engine) Steps() uint {
	return p.steps
}

// Status returns the current status of this engine.
func (p *Engine) Status() Status {
	return p.status
}

// Err returns the error which caused a previous step to fail, or nil.
func (p *Engine) Err() error {
	return p.failure
}

// Work returns a copy of the work tape.
func (p *Engine) Work() *tape.Tape[codec.Symbol] {
	return p.work.Clone()
}

// Window returns the cells of the work tape covering position 0, every written
// cell and the head, plus one cell beyond the rightmost of these.  The window
// is widened by margin cells on either side.
func (p *Engine) Window(margin uint) []tape.Cell[codec.Symbol] {
	lo, hi := p.work.Bounds()
	//
	return p.work.Window(min(0, lo)-int(margin), hi+1+int(margin))
}

// Output returns the contents of the work tape between the leftmost and
// rightmost non-blank cells (inclusive).
func (p *Engine) Output() []codec.Symbol {
	var output []codec.Symbol
	//
	if lo, hi, ok := p.work.Extent(); ok {
		for _, c := range p.work.Window(lo, hi) {
			output = append(output, c.Value)
		}
	}
	//
	return output
}

// Snapshot returns the observable configuration of this engine.
func (p *Engine) Snapshot() Snapshot {
	// NOTE: the state register always holds a known state.
	code, _ := p.Codec().EncodeState(p.State())
	//
	return Snapshot{
		Step:      p.steps,
		State:     p.State(),
		StateCode: code,
		Symbol:    p.Symbol(),
		Head:      p.Head(),
		Cells:     p.Window(0),
		Status:    p.status,
	}
}

// Step executes a single step of the simulated machine.  This returns true if
// the machine advanced, or false if it did not.  The latter arises when no rule
// matches the current state and symbol, in which case the engine halts; or when
// the engine has already halted; or when the matching rule could not be
// decoded, in which case the error is returned.  A step is atomic: if it does
// not advance, then neither the work tape nor state register are modified.
// Failed steps are not retried: once a step has failed, every subsequent step
// fails with the same error.
func (p *Engine) Step() (bool, error) {
	if p.failure != nil {
		return false, p.failure
	} else if p.status.IsHalted() {
		return false, nil
	}
	//
	r, ok, err := p.matcher.Match(p.register.Read(), p.work.Read())
	//
	if err != nil {
		p.failure = err
		return false, err
	} else if !ok {
		p.status = NO_MATCHING_RULE
		return false, nil
	}
	// Apply action
	p.work.Write(r.Write)
	p.work.Move(r.Move)
	p.register.Write(r.Next)
	p.steps++
	// Notify observers
	if len(p.observers) > 0 {
		snapshot := p.Snapshot()
		//
		for _, o := range p.observers {
			o(snapshot)
		}
	}
	//
	return true, nil
}

// Run the engine until either it halts, or it has taken a given number of
// steps (in which case it is halted with STEP_LIMIT_REACHED).  A limit of zero
// indicates the DEFAULT_MAX_STEPS.  This returns the number of steps taken, and
// any error arising from a failed step.
func (p *Engine) Run(maxSteps uint) (uint, error) {
	return p.RunContext(context.Background(), maxSteps)
}

// RunContext is like Run, except that it additionally stops (between steps)
// when the given context is cancelled.  In such case, the engine is not halted
// and the context's error is returned.
func (p *Engine) RunContext(ctx context.Context, maxSteps uint) (uint, error) {
	var n uint
	//
	if maxSteps == 0 {
		maxSteps = DEFAULT_MAX_STEPS
	}
	//
	for ; n < maxSteps; n++ {
		if err := ctx.Err(); err != nil {
			return n, err
		} else if advanced, err := p.Step(); err != nil || !advanced {
			return n, err
		}
	}
	//
	if !p.status.IsHalted() {
		p.status = STEP_LIMIT_REACHED
	}
	//
	return n, nil
}
