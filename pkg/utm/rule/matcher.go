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

// Matcher locates and decodes rules within a description.  The description is
// parsed once, when the matcher is constructed, rather than on every lookup.
// Like the description itself, a matcher is immutable.
type Matcher struct {
	codec *codec.Codec
	table Table
}

// NewMatcher constructs a matcher for a given description, or returns a
// MalformedRuleError if the description is not lexically well-formed.
func NewMatcher(c *codec.Codec, d Description) (*Matcher, error) {
	table, err := Parse(d)
	//
	if err != nil {
		return nil, err
	}
	//
	return &Matcher{c, table}, nil
}

// Codec returns the codec used by this matcher.
func (p *Matcher) Codec() *codec.Codec {
	return p.codec
}

// Match finds the first rule (in definition order) applicable to the given
// state and symbol, and decodes it.  If no rule applies then false is returned
// without an error, since this is how a machine halts.  An error is returned
// if the state or symbol cannot be encoded, if the matching rule does not have
// exactly five fields (MalformedRuleError), or if any of its fields cannot be
// decoded (MalformedCodeError).
func (p *Matcher) Match(state codec.State, symbol codec.Symbol) (Rule, bool, error) {
	stateCode, err := p.codec.EncodeState(state)
	if err != nil {
		return Rule{}, false, err
	}
	//
	symbolCode, err := p.codec.EncodeSymbol(symbol)
	if err != nil {
		return Rule{}, false, err
	}
	//
	for i := range p.table.chunks {
		if chunk := &p.table.chunks[i]; chunk.Matches(stateCode, symbolCode) {
			r, err := decodeChunk(p.codec, uint(i), chunk)
			if err != nil {
				return Rule{}, false, err
			}
			//
			return r, true, nil
		}
	}
	// No rule applies
	return Rule{}, false, nil
}

// FindAndDecode finds the first rule in a description applicable to the given
// state and symbol and decodes it.  This is a convenience for one-off lookups;
// repeated lookups should use a Matcher to avoid reparsing the description.
func FindAndDecode(c *codec.Codec, d Description, state codec.State, symbol codec.Symbol) (Rule, bool, error) {
	matcher, err := NewMatcher(c, d)
	if err != nil {
		return Rule{}, false, err
	}
	//
	return matcher.Match(state, symbol)
}

// Decode every rule in a description, returning them in definition order.
// This is the inverse of Encode.
func Decode(c *codec.Codec, d Description) ([]Rule, error) {
	table, err := Parse(d)
	if err != nil {
		return nil, err
	}
	//
	rules := make([]Rule, table.Len())
	//
	for i := range table.chunks {
		if rules[i], err = decodeChunk(c, uint(i), &table.chunks[i]); err != nil {
			return nil, err
		}
	}
	//
	return rules, nil
}

func decodeChunk(c *codec.Codec, index uint, chunk *Chunk) (Rule, error) {
	var (
		r   Rule
		err error
	)
	//
	if err = checkFieldCount(index, chunk); err != nil {
		return r, err
	}
	//
	fields := chunk.fields
	//
	if r.State, err = c.DecodeState(fields[STATE_FIELD]); err != nil {
		return r, fmt.Errorf("rule %d (%s): %w", index, STATE_FIELD, err)
	} else if r.Read, err = c.DecodeSymbol(fields[READ_FIELD]); err != nil {
		return r, fmt.Errorf("rule %d (%s): %w", index, READ_FIELD, err)
	} else if r.Next, err = c.DecodeState(fields[NEXT_FIELD]); err != nil {
		return r, fmt.Errorf("rule %d (%s): %w", index, NEXT_FIELD, err)
	} else if r.Write, err = c.DecodeSymbol(fields[WRITE_FIELD]); err != nil {
		return r, fmt.Errorf("rule %d (%s): %w", index, WRITE_FIELD, err)
	} else if r.Move, err = c.DecodeDirection(fields[MOVE_FIELD]); err != nil {
		return r, fmt.Errorf("rule %d (%s): %w", index, MOVE_FIELD, err)
	}
	//
	return r, nil
}
