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

import (
	"strings"
	"testing"

	"github.com/consensys/go-utm/pkg/util/assert"
)

func TestFormattedText_Clip(t *testing.T) {
	text := NewText("abcdef")
	text.Clip(1, 4)
	assert.Equal(t, "bcd", text.String())
	assert.Equal(t, uint(3), text.Len())
	// Clipping beyond the end is bounded
	text.Clip(2, 100)
	assert.Equal(t, "d", text.String())
	text.Clip(5, 6)
	assert.Equal(t, uint(0), text.Len())
}

func TestFormattedText_Bytes(t *testing.T) {
	plain := NewText("[1]")
	assert.Equal(t, "[1]", string(plain.Bytes()))
	//
	coloured := NewColouredText("[1]", TERM_GREEN)
	assert.Equal(t, "\033[32m[1]\033[0m", string(coloured.Bytes()))
	//
	bold := NewFormattedText("x", BoldAnsiEscape().FgColour(TERM_RED))
	assert.Equal(t, "\033[1;31mx\033[0m", string(bold.Bytes()))
}

func TestCanvas_RenderLine(t *testing.T) {
	canvas := newTerminalCanvas(10, 1)
	canvas.Write(4, 0, NewText("tape"))
	canvas.Write(0, 0, NewText("q1"))
	// Clipped to the width of the canvas
	canvas.Write(8, 0, NewText("overflow"))
	//
	assert.Equal(t, "q1  tapeov", string(canvas.renderLine(0)))
	// Out of bounds writes are ignored
	canvas.Write(0, 1, NewText("ignored"))
	canvas.Write(10, 0, NewText("ignored"))
	assert.Equal(t, "q1  tapeov", string(canvas.renderLine(0)))
}

func TestTablePrinter(t *testing.T) {
	var (
		table   = NewTablePrinter(2, 2)
		builder strings.Builder
	)
	//
	table.SetRow(0, "state", "code")
	table.SetRow(1, "q1", "1")
	table.SetEscape(1, 1, NewAnsiEscape().FgColour(TERM_CYAN).Build())
	table.AnsiEscapes(false)
	table.Fprint(&builder)
	//
	assert.Equal(t, " state | code |\n    q1 |    1 |\n", builder.String())
}
