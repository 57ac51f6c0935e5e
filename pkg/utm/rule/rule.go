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
package rule

import (
	"fmt"

	"github.com/consensys/go-utm/pkg/utm/codec"
)

// Rule represents a single transition of a Turing machine.  That is, when the
// machine is in a given State and reads a given symbol from the tape, it
// writes a symbol, moves the head and enters the Next state.
type Rule struct {
	// State in which this rule applies
	State codec.State
	// Symbol under the head for which this rule applies
	Read codec.Symbol
	// State entered after this rule is applied
	Next codec.State
	// Symbol written at the head
	Write codec.Symbol
	// Direction in which the head moves after writing
	Move codec.Direction
}

func (r Rule) String() string {
	return fmt.Sprintf("(%s,%s) -> (%s,%s,%s)", r.State, r.Read, r.Next, r.Write, r.Move)
}

// Field identifies one of the five components of a rule.
type Field uint8

// STATE_FIELD is the state in which a rule applies.
const STATE_FIELD Field = 0

// READ_FIELD is the symbol read by a rule.
const READ_FIELD Field = 1

// NEXT_FIELD is the state entered by a rule.
const NEXT_FIELD Field = 2

// WRITE_FIELD is the symbol written by a rule.
const WRITE_FIELD Field = 3

// MOVE_FIELD is the direction moved by a rule.
const MOVE_FIELD Field = 4

// NUM_FIELDS is the number of fields in every well-formed rule.
const NUM_FIELDS = 5

func (f Field) String() string {
	switch f {
	case STATE_FIELD:
		return "state"
	case READ_FIELD:
		return "read"
	case NEXT_FIELD:
		return "next"
	case WRITE_FIELD:
		return "write"
	case MOVE_FIELD:
		return "move"
	}
	//
	return "unknown"
}
