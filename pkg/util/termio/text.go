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
package termio

// FormattedText is a chunk of text, along with an (optional) ANSI escape used
// to format it (e.g. to give it colour) when written to a terminal.
type FormattedText struct {
	text   []rune
	escape *AnsiEscape
}

// NewText constructs a chunk of unformatted text.
func NewText(text string) FormattedText {
	return FormattedText{[]rune(text), nil}
}

// NewColouredText constructs a chunk of text with a given foreground colour.
func NewColouredText(text string, colour uint) FormattedText {
	escape := NewAnsiEscape().FgColour(colour)
	return FormattedText{[]rune(text), &escape}
}

// NewFormattedText constructs a chunk of text with a given escape.
func NewFormattedText(text string, escape AnsiEscape) FormattedText {
	return FormattedText{[]rune(text), &escape}
}

// Len returns the number of visible characters in this chunk.
func (p *FormattedText) Len() uint {
	return uint(len(p.text))
}

// Clip this chunk of text so that only the characters from start upto (but not
// including) end remain.  Both are bounded by the length of the chunk.
func (p *FormattedText) Clip(start uint, end uint) {
	n := p.Len()
	start, end = min(start, n), min(end, n)
	//
	p.text = p.text[start:max(start, end)]
}

// String returns the visible characters of this chunk.
func (p *FormattedText) String() string {
	return string(p.text)
}

// Bytes returns the bytes to be written to a terminal for this chunk, including
// any escapes.
func (p *FormattedText) Bytes() []byte {
	if p.escape == nil {
		return []byte(string(p.text))
	}
	//
	text := p.escape.Apply(string(p.text))
	//
	return []byte(text)
}
