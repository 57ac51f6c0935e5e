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
	"testing"

	"github.com/consensys/go-utm/pkg/util/assert"
	"github.com/consensys/go-utm/pkg/utm/codec"
)

var (
	q1 = codec.State("q1")
	q2 = codec.State("q2")
	q3 = codec.State("q3")
)

func TestEncode_Increment(t *testing.T) {
	rules := []Rule{
		{q1, "1", q1, "1", codec.RIGHT},
		{q1, "_", q2, "1", codec.LEFT},
	}
	//
	checkEncode(t, rules, "1011010110100101011011011")
}

func TestEncode_Single(t *testing.T) {
	checkEncode(t, []Rule{{q1, "_", q1, "1", codec.RIGHT}}, "1010101101")
	checkEncode(t, []Rule{{q3, "0", q2, "_", codec.LEFT}}, "111011101101011")
}

func TestEncode_Empty(t *testing.T) {
	_, err := Encode(newCodec(t), nil)
	assert.True(t, errors.Is(err, ErrNoRules))
}

func TestEncode_UnknownValue(t *testing.T) {
	var (
		rules = []Rule{
			{q1, "1", q1, "1", codec.RIGHT},
			{q1, "_", q2, "x", codec.LEFT},
		}
		encErr  *EncodingError
		unknown *codec.UnknownValueError
	)
	//
	d, err := Encode(newCodec(t), rules)
	assert.Equal(t, Description(""), d)
	assert.ErrorAs(t, err, &encErr)
	assert.Equal(t, uint(1), encErr.Index)
	assert.Equal(t, WRITE_FIELD, encErr.Field)
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, codec.SYMBOL, unknown.Category)
	assert.Equal(t, "x", unknown.Value)
	//
	_, err = Encode(newCodec(t), []Rule{{"q9", "1", q1, "1", codec.RIGHT}})
	assert.ErrorAs(t, err, &encErr)
	assert.Equal(t, STATE_FIELD, encErr.Field)
	//
	_, err = Encode(newCodec(t), []Rule{{q1, "1", q1, "1", codec.Direction(3)}})
	assert.ErrorAs(t, err, &encErr)
	assert.Equal(t, MOVE_FIELD, encErr.Field)
}

func TestEncode_RoundTrip(t *testing.T) {
	var (
		c     = newCodec(t)
		rules []Rule
	)
	// Every possible rule over the codec
	for _, s := range c.States() {
		for _, r := range c.Symbols() {
			for _, n := range c.States() {
				for _, w := range c.Symbols() {
					for _, m := range []codec.Direction{codec.RIGHT, codec.LEFT} {
						rules = append(rules, Rule{s, r, n, w, m})
					}
				}
			}
		}
	}
	//
	d, err := Encode(c, rules)
	assert.NoError(t, err)
	// Decode them all back
	decoded, err := Decode(c, d)
	assert.NoError(t, err)
	assert.Equal(t, rules, decoded)
	// Look each one up using its own prefix.  Since rules for the same state
	// and symbol overlap, the first one in definition order is expected.
	for _, r := range rules {
		found, ok, err := FindAndDecode(c, d, r.State, r.Read)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, firstFor(rules, r.State, r.Read), found)
	}
}

func TestMatch_FirstWins(t *testing.T) {
	rules := []Rule{
		{q1, "1", q2, "0", codec.LEFT},
		{q1, "1", q3, "_", codec.RIGHT},
	}
	//
	found := checkMatch(t, rules, q1, "1")
	assert.Equal(t, rules[0], found)
}

func TestMatch_NoRule(t *testing.T) {
	var (
		c = newCodec(t)
		d = Description("1011010110100101011011011")
	)
	//
	_, ok, err := FindAndDecode(c, d, q2, "1")
	assert.NoError(t, err)
	assert.False(t, ok)
	//
	_, ok, err = FindAndDecode(c, d, q1, "0")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_SeparatorBounded(t *testing.T) {
	var c = newCodec(t)
	// (q2,_) -> (q2,_,R) contains "1010" but does not start with it, whilst
	// (q1,1) -> (q1,1,L) starts with "101" but not "1010".
	d := Description("11010110101" + RULE_SEPARATOR + "101101011011")
	//
	_, ok, err := FindAndDecode(c, d, q1, "_")
	assert.NoError(t, err)
	assert.False(t, ok)
	//
	found, ok, err := FindAndDecode(c, d, q1, "1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Rule{q1, "1", q1, "1", codec.LEFT}, found)
	//
	found, ok, err = FindAndDecode(c, d, q2, "_")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Rule{q2, "_", q2, "_", codec.RIGHT}, found)
	// A code which is a proper prefix of another must not match it.  Here
	// q1 => 1 is a prefix of q2 => 11, and "_" => 1 a prefix of "1" => 11.
	d = Description("110110101011")
	//
	_, ok, err = FindAndDecode(c, d, q1, "1")
	assert.NoError(t, err)
	assert.False(t, ok)
	//
	_, ok, err = FindAndDecode(c, d, q2, "_")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_Prefix(t *testing.T) {
	prefix, err := Prefix(newCodec(t), q1, "1")
	assert.NoError(t, err)
	assert.Equal(t, "10110", prefix)
	//
	_, err = Prefix(newCodec(t), "q4", "1")
	assert.True(t, err != nil)
}

func TestMatch_UnknownValue(t *testing.T) {
	var unknown *codec.UnknownValueError
	//
	_, _, err := FindAndDecode(newCodec(t), "1010101101", q1, "#")
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, codec.SYMBOL, unknown.Category)
}

func TestMatch_MalformedCode(t *testing.T) {
	var (
		c         = newCodec(t)
		malformed *codec.MalformedCodeError
	)
	// Next state has code 1111 which is unassigned.
	_, ok, err := FindAndDecode(c, "1010111101101", q1, "_")
	assert.False(t, ok)
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, codec.STATE, malformed.Category)
	// Direction has code 111 which is unassigned.
	_, _, err = FindAndDecode(c, "10101010111", q1, "_")
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, codec.DIRECTION, malformed.Category)
}

func TestMatch_MalformedRule(t *testing.T) {
	var (
		c         = newCodec(t)
		malformed *MalformedRuleError
	)
	// Too few fields in the matching rule.
	_, ok, err := FindAndDecode(c, "101011", q1, "_")
	assert.False(t, ok)
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, uint(0), malformed.Index)
	// Too many fields in the matching rule.
	_, _, err = FindAndDecode(c, "101101011"+RULE_SEPARATOR+"101010110101", q1, "_")
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, uint(1), malformed.Index)
	// A malformed rule which does not match is not decoded.
	found, ok, err := FindAndDecode(c, "101011"+RULE_SEPARATOR+"10110101101", q1, "1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Rule{q1, "1", q1, "1", codec.RIGHT}, found)
}

func TestParse_Malformed(t *testing.T) {
	checkParseError(t, "", 0, 0, 0)
	checkParseError(t, "0", 0, 0, 1)
	checkParseError(t, "01", 0, 0, 1)
	checkParseError(t, "1000101", 0, 1, 4)
	checkParseError(t, "10101010100", 1, 11, 11)
	checkParseError(t, "1010101012", 0, 9, 10)
	checkParseError(t, "101010101000", 0, 9, 12)
	checkParseError(t, "10101010", 0, 8, 8)
	checkParseError(t, "101010101 00 1", 0, 9, 10)
}

func TestParse_Table(t *testing.T) {
	table, err := Parse("1011010110100101011011011")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), table.Len())
	assert.NoError(t, table.Check())
	//
	chunk := table.Chunk(1)
	span := chunk.Span()
	assert.Equal(t, 13, span.Start())
	assert.Equal(t, 25, span.End())
	assert.Equal(t, []codec.Code{"1", "1", "11", "11", "11"}, chunk.Fields())
	//
	table, err = Parse("1")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), table.Len())
	assert.True(t, table.Check() != nil)
	//
	_, err = Decode(newCodec(t), "1010101")
	assert.True(t, err != nil)
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

func checkEncode(t *testing.T, rules []Rule, expected Description) {
	d, err := Encode(newCodec(t), rules)
	assert.NoError(t, err)
	assert.Equal(t, expected, d)
}

func checkMatch(t *testing.T, rules []Rule, state codec.State, symbol codec.Symbol) Rule {
	var c = newCodec(t)
	//
	d, err := Encode(c, rules)
	assert.NoError(t, err)
	//
	matcher, err := NewMatcher(c, d)
	assert.NoError(t, err)
	//
	r, ok, err := matcher.Match(state, symbol)
	assert.NoError(t, err)
	assert.True(t, ok)
	//
	return r
}

func checkParseError(t *testing.T, d Description, index uint, start int, end int) {
	var malformed *MalformedRuleError
	//
	_, err := Parse(d)
	assert.ErrorAs(t, err, &malformed, "description %q", d)
	assert.Equal(t, index, malformed.Index, "description %q", d)
	assert.Equal(t, start, malformed.Span.Start(), "description %q", d)
	assert.Equal(t, end, malformed.Span.End(), "description %q", d)
}

func firstFor(rules []Rule, state codec.State, symbol codec.Symbol) Rule {
	for _, r := range rules {
		if r.State == state && r.Read == symbol {
			return r
		}
	}
	//
	panic("unreachable")
}
