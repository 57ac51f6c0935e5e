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
	"errors"
	"strings"

	"github.com/consensys/go-utm/pkg/utm/codec"
)

// SEPARATOR delimits the fields of a rule within a description.
const SEPARATOR = "0"

// RULE_SEPARATOR delimits the rules of a description.  Since codes contain only
// ones, this can never appear inside a single rule.
const RULE_SEPARATOR = SEPARATOR + SEPARATOR

// ErrNoRules is reported when attempting to encode an empty set of rules, since
// a description must contain at least one rule.
var ErrNoRules = errors.New("no rules to encode")

// Description is the binary encoding of a transition table.  It is a string over
// the alphabet {0,1} with the following grammar:
//
//	description := rule ("00" rule)*
//	rule        := code "0" code "0" code "0" code "0" code
//	code        := "1"+
//
// A description is immutable and, hence, may be safely shared.
type Description string

// Encode a sequence of rules into a single description, using a given codec to
// encode the fields of each rule.  Rules appear in the description in the order
// given, which determines which rule applies when two rules overlap (i.e. the
// first wins).  If any rule cannot be encoded, then an EncodingError is
// returned and no description is produced.
func Encode(c *codec.Codec, rules []Rule) (Description, error) {
	var builder strings.Builder
	//
	if len(rules) == 0 {
		return "", ErrNoRules
	}
	//
	for i, r := range rules {
		codes, field, err := encodeFields(c, r)
		// Check for errors
		if err != nil {
			return "", &EncodingError{uint(i), field, err}
		} else if i != 0 {
			builder.WriteString(RULE_SEPARATOR)
		}
		//
		writeCodes(&builder, codes[:]...)
	}
	//
	return Description(builder.String()), nil
}

// Prefix returns the separator-terminated prefix which identifies any rule
// applicable for a given state and symbol.  For example, with q1 => 1 and
// "1" => 11, the prefix is "10110".
func Prefix(c *codec.Codec, state codec.State, symbol codec.Symbol) (string, error) {
	var builder strings.Builder
	//
	stateCode, err := c.EncodeState(state)
	if err != nil {
		return "", err
	}
	//
	symbolCode, err := c.EncodeSymbol(symbol)
	if err != nil {
		return "", err
	}
	//
	writeCodes(&builder, stateCode, symbolCode)
	builder.WriteString(SEPARATOR)
	//
	return builder.String(), nil
}

func encodeFields(c *codec.Codec, r Rule) ([NUM_FIELDS]codec.Code, Field, error) {
	var (
		codes [NUM_FIELDS]codec.Code
		err   error
	)
	//
	if codes[STATE_FIELD], err = c.EncodeState(r.State); err != nil {
		return codes, STATE_FIELD, err
	} else if codes[READ_FIELD], err = c.EncodeSymbol(r.Read); err != nil {
		return codes, READ_FIELD, err
	} else if codes[NEXT_FIELD], err = c.EncodeState(r.Next); err != nil {
		return codes, NEXT_FIELD, err
	} else if codes[WRITE_FIELD], err = c.EncodeSymbol(r.Write); err != nil {
		return codes, WRITE_FIELD, err
	} else if codes[MOVE_FIELD], err = c.EncodeDirection(r.Move); err != nil {
		return codes, MOVE_FIELD, err
	}
	//
	return codes, 0, nil
}

func writeCodes(builder *strings.Builder, codes ...codec.Code) {
	for i, c := range codes {
		if i != 0 {
			builder.WriteString(SEPARATOR)
		}
		//
		builder.WriteString(string(c))
	}
}
