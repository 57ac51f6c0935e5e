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
	"strings"
)

// Symbol is a logical token drawn from the finite alphabet of a machine (e.g.
// the blank "_", "0" or "1").
type Symbol string

// State is a logical label drawn from the finite set of control states of a
// machine (e.g. "q1").
type State string

// Code is a non-empty unary token consisting only of the digit '1'.  Its length
// is its only distinguishing feature.
type Code string

// ONE is the only digit permitted within a code.
const ONE = '1'

// Unary returns the code consisting of exactly n ones.
func Unary(n uint) Code {
	return Code(strings.Repeat(string(ONE), int(n)))
}

// Length returns the number of ones in this code, or 0 if it is not a well-formed
// code.
func (c Code) Length() uint {
	if !c.IsValid() {
		return 0
	}
	//
	return uint(len(c))
}

// IsValid checks that this code is non-empty and contains only ones.
func (c Code) IsValid() bool {
	if len(c) == 0 {
		return false
	}
	//
	for i := 0; i < len(c); i++ {
		if c[i] != ONE {
			return false
		}
	}
	//
	return true
}

// Direction indicates which way the head of a tape moves.
type Direction uint8

// RIGHT moves the head to the next higher position.
const RIGHT Direction = 0

// LEFT moves the head to the next lower position.
const LEFT Direction = 1

// ParseDirection converts the conventional single letter names "R" and "L" into
// directions.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "R", "r":
		return RIGHT, nil
	case "L", "l":
		return LEFT, nil
	}
	//
	return RIGHT, &UnknownValueError{DIRECTION, name}
}

// Offset returns the change in head position caused by moving in this direction.
func (d Direction) Offset() int {
	if d == LEFT {
		return -1
	}
	//
	return 1
}

func (d Direction) String() string {
	switch d {
	case RIGHT:
		return "R"
	case LEFT:
		return "L"
	}
	//
	return fmt.Sprintf("?%d", uint8(d))
}
