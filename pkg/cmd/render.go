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
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-utm/pkg/util/termio"
	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/machine"
	"github.com/consensys/go-utm/pkg/utm/rule"
	"github.com/consensys/go-utm/pkg/utm/tape"
)

// DESCRIPTION_PREVIEW determines how many characters of the description are
// shown when rendering the description tape.
const DESCRIPTION_PREVIEW = 20

// BANNER_WIDTH determines the number of '=' characters either side of a banner
// title.
const BANNER_WIDTH = 20

// HEAD_COLOUR is used to highlight the cell under the head.
const HEAD_COLOUR = termio.TERM_YELLOW

// Render the description tape, showing only a prefix of the description.
func renderDescription(description rule.Description) []termio.FormattedText {
	preview := string(description)
	//
	if len(preview) > DESCRIPTION_PREVIEW {
		preview = preview[:DESCRIPTION_PREVIEW]
	}
	//
	return []termio.FormattedText{
		termio.NewText("Tape 1 (Desc): "),
		termio.NewText(preview),
		termio.NewText("... (Binary Encoded Rules)"),
	}
}

// Render the work tape, where the cell under the head is bracketed (and
// highlighted).
func renderWork(cells []tape.Cell[codec.Symbol]) []termio.FormattedText {
	var texts = []termio.FormattedText{termio.NewText("Tape 2 (Work): ")}
	//
	for _, cell := range cells {
		if cell.IsHead {
			texts = append(texts, termio.NewColouredText(fmt.Sprintf("[%s]", cell.Value), HEAD_COLOUR))
		} else {
			texts = append(texts, termio.NewText(fmt.Sprintf(" %s ", cell.Value)))
		}
	}
	//
	return texts
}

// Render the state register, along with the binary code of its contents.
func renderState(snapshot machine.Snapshot) []termio.FormattedText {
	return []termio.FormattedText{
		termio.NewText("Tape 3 (Stat): "),
		termio.NewText(fmt.Sprintf("[%s] (Binary: %s)", snapshot.State, snapshot.StateCode)),
	}
}

// Render a banner line with a given title.
func renderBanner(title string) string {
	bar := strings.Repeat("=", BANNER_WIDTH)
	return fmt.Sprintf("%s %s %s", bar, title, bar)
}

// Render the message reported once a machine has halted.
func renderHalt(engine *machine.Engine) string {
	switch engine.Status() {
	case machine.NO_MATCHING_RULE:
		return ">>> Machine Halted (No Transition Found or Final State Reached) <<<"
	case machine.STEP_LIMIT_REACHED:
		return fmt.Sprintf(">>> Machine Stopped (Step Limit Reached after %d steps) <<<", engine.Steps())
	default:
		return fmt.Sprintf(">>> Machine Paused (after %d steps) <<<", engine.Steps())
	}
}

// Render the contents of the work tape once the machine has halted.
func renderOutput(output []codec.Symbol) string {
	var builder strings.Builder
	//
	for _, s := range output {
		builder.WriteString(string(s))
	}
	//
	return builder.String()
}

// Join chunks of formatted text into a single string, either with or without
// their escapes.
func join(texts []termio.FormattedText, ansi bool) string {
	var builder strings.Builder
	//
	for _, t := range texts {
		if ansi {
			builder.Write(t.Bytes())
		} else {
			builder.WriteString(t.String())
		}
	}
	//
	return builder.String()
}

// Printer writes the three tapes of a running machine to a given writer, in the
// line-oriented format.
type Printer struct {
	out         io.Writer
	description rule.Description
	window      uint
	ansi        bool
}

// NewPrinter constructs a new printer for a given description.
func NewPrinter(out io.Writer, description rule.Description, config Config) *Printer {
	return &Printer{out, description, config.Window, config.Ansi}
}

// Banner prints a banner with the given title, preceded by a blank line.
func (p *Printer) Banner(title string) {
	fmt.Fprintf(p.out, "\n%s\n", renderBanner(title))
}

// Tapes prints the three tapes of a given engine.
func (p *Printer) Tapes(engine *machine.Engine) {
	snapshot := engine.Snapshot()
	//
	fmt.Fprintln(p.out, join(renderDescription(p.description), p.ansi))
	fmt.Fprintln(p.out, join(renderWork(engine.Window(p.window)), p.ansi))
	fmt.Fprintln(p.out, join(renderState(snapshot), p.ansi))
}

// Step prints the banner and tapes for the most recently completed step.
func (p *Printer) Step(engine *machine.Engine) {
	p.Banner(fmt.Sprintf("STEP %d", engine.Steps()))
	p.Tapes(engine)
}

// Halt prints the halting message and the final output of the machine.
func (p *Printer) Halt(engine *machine.Engine) {
	fmt.Fprintf(p.out, "\n%s\n", renderHalt(engine))
	fmt.Fprintf(p.out, "[UTM] Output: '%s'\n", renderOutput(engine.Output()))
}
