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
package definition

import (
	"fmt"

	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/machine"
	"github.com/consensys/go-utm/pkg/utm/rule"
)

// Program is a compiled machine.  That is, its rules have been encoded into a
// binary description using the machine's codec.
type Program struct {
	// Codec for states and symbols of this machine.
	Codec *codec.Codec
	// Rules of this machine in definition order.
	Rules []rule.Rule
	// Binary description of the rules.
	Description rule.Description
	// State in which the machine starts.
	Start codec.State
}

// Codec constructs the codec for this machine, either from its declared states
// and alphabet or by enumerating them from its transitions.
func (m *Machine) Codec() (*codec.Codec, error) {
	var (
		states  = m.States
		symbols = m.Symbols
	)
	//
	if len(states) == 0 {
		states = enumerate(m.InitialState, m.Transitions, func(t Transition) []string {
			return []string{t.State, t.Next}
		})
	}
	//
	if len(symbols) == 0 {
		symbols = enumerate(m.BlankSymbol(), m.Transitions, func(t Transition) []string {
			return []string{t.Read, t.Write}
		})
	}
	//
	return codec.New(convert[codec.State](states), convert[codec.Symbol](symbols))
}

// Rules converts the transitions of this machine into rules.
func (m *Machine) Rules() ([]rule.Rule, error) {
	rules := make([]rule.Rule, len(m.Transitions))
	//
	for i, t := range m.Transitions {
		dir, err := codec.ParseDirection(t.Move)
		if err != nil {
			return nil, &rule.EncodingError{Index: uint(i), Field: rule.MOVE_FIELD, Err: err}
		}
		//
		rules[i] = rule.Rule{
			State: codec.State(t.State),
			Read:  codec.Symbol(t.Read),
			Next:  codec.State(t.Next),
			Write: codec.Symbol(t.Write),
			Move:  dir,
		}
	}
	//
	return rules, nil
}

// Compile this machine into a program by encoding its rules.
func (m *Machine) Compile() (*Program, error) {
	c, err := m.Codec()
	if err != nil {
		return nil, err
	}
	//
	rules, err := m.Rules()
	if err != nil {
		return nil, err
	}
	//
	description, err := rule.Encode(c, rules)
	if err != nil {
		return nil, err
	}
	//
	start := codec.State(m.InitialState)
	if _, err := c.EncodeState(start); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	//
	return &Program{c, rules, description, start}, nil
}

// Boot constructs an engine to run this program on a given input string, where
// each character of the input is one symbol.
func (p *Program) Boot(input string) (*machine.Engine, error) {
	return machine.New(p.Codec, p.Description, p.Start, ParseInput(input))
}

// ParseInput converts an input string into a sequence of symbols, with one
// symbol per character.
func ParseInput(input string) []codec.Symbol {
	var symbols []codec.Symbol
	//
	for _, c := range input {
		symbols = append(symbols, codec.Symbol(c))
	}
	//
	return symbols
}

// Enumerate the distinct values of transitions, in order of first appearance.
func enumerate(first string, transitions []Transition, fn func(Transition) []string) []string {
	var (
		values = []string{first}
		seen   = map[string]bool{first: true}
	)
	//
	for _, t := range transitions {
		for _, v := range fn(t) {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	//
	return values
}

func convert[T ~string](values []string) []T {
	converted := make([]T, len(values))
	//
	for i, v := range values {
		converted[i] = T(v)
	}
	//
	return converted
}
