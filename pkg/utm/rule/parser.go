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

	"github.com/consensys/go-utm/pkg/util/source"
	"github.com/consensys/go-utm/pkg/util/source/lex"
	"github.com/consensys/go-utm/pkg/utm/codec"
)

// Chunk represents the portion of a description corresponding to a single rule,
// broken into its separator-delimited fields.  A chunk is only guaranteed to be
// lexically well-formed; specifically, it may not have the expected number of
// fields.
type Chunk struct {
	span   source.Span
	fields []codec.Code
	spans  []source.Span
}

// Span returns the span of the description covered by this chunk.
func (p *Chunk) Span() source.Span {
	return p.span
}

// Fields returns the codes making up this chunk, in order.
func (p *Chunk) Fields() []codec.Code {
	return p.fields
}

// Matches checks whether this chunk begins with the given state and symbol
// codes.  Since fields are bounded by separators, this is equivalent to the
// serialised chunk starting with the prefix "state 0 symbol 0", and a code which
// is a proper prefix of another never matches.
func (p *Chunk) Matches(state codec.Code, symbol codec.Code) bool {
	return len(p.fields) > int(READ_FIELD) && p.fields[STATE_FIELD] == state && p.fields[READ_FIELD] == symbol
}

// Table is the result of parsing a description.  It holds the chunks of the
// description in their original order.
type Table struct {
	chunks []Chunk
}

// Len returns the number of chunks in this table.
func (p *Table) Len() uint {
	return uint(len(p.chunks))
}

// Chunk returns the ith chunk in this table.
func (p *Table) Chunk(i uint) *Chunk {
	return &p.chunks[i]
}

// Check that every chunk in this table has exactly the expected number of
// fields.
func (p *Table) Check() error {
	for i := range p.chunks {
		if err := checkFieldCount(uint(i), &p.chunks[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

// ============================================================================
// Parser
// ============================================================================

const (
	// END_OF signals the end of the description.
	END_OF uint = iota
	// ONES is a run of one or more '1'.
	ONES
	// ZEROS is a run of one or more '0'.
	ZEROS
)

// lexing rules for descriptions
var lexRules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Many(lex.Unit('1')), ONES),
	lex.Rule(lex.Many(lex.Unit('0')), ZEROS),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Parse a description into a table of chunks.  This checks the lexical
// structure of the description, namely that it consists of codes delimited by
// single separators (between fields) or double separators (between rules),
// with nothing else.  A MalformedRuleError is returned otherwise.  Note,
// however, that the number of fields in each chunk is not checked here; rather,
// this is checked when a chunk is decoded (or by Table.Check).
func Parse(d Description) (Table, error) {
	var (
		items  = []rune(string(d))
		lexer  = lex.NewLexer(items, lexRules...)
		tokens = lexer.Collect()
	)
	// Check everything was lexed
	if lexer.Remaining() != 0 {
		var (
			start = len(items) - int(lexer.Remaining())
			span  = source.NewSpan(start, start+1)
			index = countRules(tokens)
		)
		//
		return Table{}, &MalformedRuleError{index, span,
			fmt.Sprintf("unexpected character '%c'", items[start])}
	}
	//
	parser := parser{tokens: tokens}
	//
	return parser.parse()
}

type parser struct {
	tokens []lex.Token
	index  int
	chunks []Chunk
	// Chunk currently being parsed.
	fields []codec.Code
	spans  []source.Span
}

func (p *parser) parse() (Table, error) {
	for {
		// Every chunk begins with a code, and every separator is followed by one.
		code, err := p.expectCode()
		if err != nil {
			return Table{}, err
		}
		//
		p.fields = append(p.fields, code)
		// Determine what follows
		switch next := p.next(); {
		case next.Kind == END_OF:
			p.finishChunk()
			//
			return Table{p.chunks}, nil
		case next.Span.Length() == 1:
			// field separator
		case next.Span.Length() == 2:
			// rule separator
			p.finishChunk()
		default:
			return Table{}, p.error(next.Span, fmt.Sprintf("invalid separator (%d zeros)", next.Span.Length()))
		}
	}
}

func (p *parser) expectCode() (codec.Code, error) {
	var token = p.next()
	//
	switch token.Kind {
	case ONES:
		p.spans = append(p.spans, token.Span)
		return codec.Unary(uint(token.Span.Length())), nil
	case END_OF:
		if len(p.chunks) == 0 && len(p.fields) == 0 {
			return "", p.error(token.Span, "empty description")
		}
		//
		return "", p.error(token.Span, "missing code after separator")
	default:
		return "", p.error(token.Span, "missing code before separator")
	}
}

func (p *parser) next() lex.Token {
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *parser) finishChunk() {
	var (
		first = p.spans[0]
		last  = p.spans[len(p.spans)-1]
	)
	//
	p.chunks = append(p.chunks, Chunk{first.Join(last), p.fields, p.spans})
	p.fields = nil
	p.spans = nil
}

func (p *parser) error(span source.Span, msg string) *MalformedRuleError {
	return &MalformedRuleError{uint(len(p.chunks)), span, msg}
}

func checkFieldCount(index uint, chunk *Chunk) error {
	if n := len(chunk.fields); n != NUM_FIELDS {
		return &MalformedRuleError{index, chunk.span,
			fmt.Sprintf("expected %d fields, found %d", NUM_FIELDS, n)}
	}
	//
	return nil
}

// Count the number of rule separators in a token stream.
func countRules(tokens []lex.Token) uint {
	var count uint
	//
	for _, t := range tokens {
		if t.Kind == ZEROS && t.Span.Length() >= 2 {
			count++
		}
	}
	//
	return count
}
