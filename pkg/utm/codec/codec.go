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
package codec

import (
	"fmt"
	"slices"
)

// Codec provides the bidirectional mapping between the logical states, symbols
// and directions of a machine and their unary codes.  Codes are assigned by
// enumeration order, such that the ith state (resp. symbol) receives a code of
// i+1 ones.  Thus, for states q1,q2,q3 we have q1 => 1, q2 => 11 and q3 => 111.
// Directions are fixed with R => 1 and L => 11.  The first symbol of the
// alphabet is the blank.
//
// A codec is immutable once constructed and, hence, can be safely shared.
type Codec struct {
	states  []State
	symbols []Symbol
	// Reverse mappings
	stateIndex  map[State]uint
	symbolIndex map[Symbol]uint
}

// New constructs a codec for a given (non-empty) set of states and (non-empty)
// alphabet, where the first symbol of the alphabet is taken as the blank.
// Neither may contain duplicates.
func New(states []State, symbols []Symbol) (*Codec, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("empty set of states")
	} else if len(symbols) == 0 {
		return nil, fmt.Errorf("empty alphabet")
	}
	//
	stateIndex, err := enumerate(STATE, states)
	if err != nil {
		return nil, err
	}
	//
	symbolIndex, err := enumerate(SYMBOL, symbols)
	if err != nil {
		return nil, err
	}
	//
	return &Codec{slices.Clone(states), slices.Clone(symbols), stateIndex, symbolIndex}, nil
}

// States returns the configured states in enumeration order.
func (p *Codec) States() []State {
	return slices.Clone(p.states)
}

// Symbols returns the configured alphabet in enumeration order.
func (p *Codec) Symbols() []Symbol {
	return slices.Clone(p.symbols)
}

// Blank returns the blank symbol of this codec's alphabet.
func (p *Codec) Blank() Symbol {
	return p.symbols[0]
}

// HasState checks whether a given state is known to this codec.
func (p *Codec) HasState(state State) bool {
	_, ok := p.stateIndex[state]
	return ok
}

// HasSymbol checks whether a given symbol is known to this codec.
func (p *Codec) HasSymbol(symbol Symbol) bool {
	_, ok := p.symbolIndex[symbol]
	return ok
}

// EncodeState returns the code for a given state, or an UnknownValueError.
func (p *Codec) EncodeState(state State) (Code, error) {
	if i, ok := p.stateIndex[state]; ok {
		return Unary(i + 1), nil
	}
	//
	return "", &UnknownValueError{STATE, string(state)}
}

// EncodeSymbol returns the code for a given symbol, or an UnknownValueError.
func (p *Codec) EncodeSymbol(symbol Symbol) (Code, error) {
	if i, ok := p.symbolIndex[symbol]; ok {
		return Unary(i + 1), nil
	}
	//
	return "", &UnknownValueError{SYMBOL, string(symbol)}
}

// EncodeDirection returns the code for a given direction, or an
// UnknownValueError.
func (p *Codec) EncodeDirection(dir Direction) (Code, error) {
	switch dir {
	case RIGHT, LEFT:
		return Unary(uint(dir) + 1), nil
	}
	//
	return "", &UnknownValueError{DIRECTION, dir.String()}
}

// DecodeState returns the state for a given code, or a MalformedCodeError.
func (p *Codec) DecodeState(code Code) (State, error) {
	if n := code.Length(); n > 0 && n <= uint(len(p.states)) {
		return p.states[n-1], nil
	}
	//
	return "", &MalformedCodeError{STATE, code}
}

// DecodeSymbol returns the symbol for a given code, or a MalformedCodeError.
func (p *Codec) DecodeSymbol(code Code) (Symbol, error) {
	if n := code.Length(); n > 0 && n <= uint(len(p.symbols)) {
		return p.symbols[n-1], nil
	}
	//
	return "", &MalformedCodeError{SYMBOL, code}
}

// DecodeDirection returns the direction for a given code, or a
// MalformedCodeError.
func (p *Codec) DecodeDirection(code Code) (Direction, error) {
	switch code.Length() {
	case 1:
		return RIGHT, nil
	case 2:
		return LEFT, nil
	}
	//
	return RIGHT, &MalformedCodeError{DIRECTION, code}
}

// Assign unique indices to a set of values, failing if any duplicates are
// encountered.
func enumerate[T ~string](category Category, values []T) (map[T]uint, error) {
	index := make(map[T]uint, len(values))
	//
	for i, v := range values {
		if _, ok := index[v]; ok {
			return nil, fmt.Errorf("duplicate %s \"%s\"", category, v)
		}
		//
		index[v] = uint(i)
	}
	//
	return index, nil
}
