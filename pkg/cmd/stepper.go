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
	"os"

	"github.com/consensys/go-utm/pkg/util/termio"
	"github.com/consensys/go-utm/pkg/util/termio/widget"
	"github.com/consensys/go-utm/pkg/utm/definition"
	"github.com/consensys/go-utm/pkg/utm/machine"
)

// Stepper provides a full-screen view of a running machine, which is advanced
// by key presses.
type Stepper struct {
	engine   *machine.Engine
	program  *definition.Program
	config   Config
	terminal *termio.Terminal
	// Widgets
	title       *widget.TextLine
	description *widget.TextLine
	work        *widget.TextLine
	state       *widget.TextLine
	status      *widget.TextLine
}

// NewStepper constructs a stepper for a given engine, taking control of the
// terminal.
func NewStepper(engine *machine.Engine, program *definition.Program, config Config) (*Stepper, error) {
	terminal, err := termio.NewTerminal()
	if err != nil {
		return nil, err
	}
	//
	stepper := &Stepper{engine, program, config, terminal,
		widget.NewText(), widget.NewText(), widget.NewText(), widget.NewText(), widget.NewText()}
	//
	terminal.Add(stepper.title)
	terminal.Add(widget.NewSeparator("="))
	terminal.Add(stepper.description)
	terminal.Add(stepper.work)
	terminal.Add(stepper.state)
	terminal.Add(widget.NewSeparator("-"))
	terminal.Add(stepper.status)
	terminal.Add(helpLine())
	//
	return stepper, nil
}

// Render the current configuration of the machine.
func (p *Stepper) Render() error {
	var (
		snapshot = p.engine.Snapshot()
		bold     = termio.BoldAnsiEscape()
	)
	//
	if p.engine.Steps() == 0 {
		p.title.Set(termio.NewFormattedText("INITIAL STATE", bold))
	} else {
		p.title.Set(termio.NewFormattedText(fmt.Sprintf("STEP %d", p.engine.Steps()), bold))
	}
	//
	p.description.Set(renderDescription(p.program.Description)...)
	p.work.Set(renderWork(p.engine.Window(p.config.Window))...)
	p.state.Set(renderState(snapshot)...)
	//
	if p.engine.Status().IsHalted() {
		p.status.Set(termio.NewColouredText(renderHalt(p.engine), termio.TERM_RED))
	} else {
		p.status.Set(termio.NewColouredText(fmt.Sprintf("running (%s)", snapshot.Status), termio.TERM_GREEN))
	}
	//
	return p.terminal.Render()
}

// Loop processes key presses until the user quits.  Enter, space or "s" take a
// single step; "r" runs the machine to completion; "q", escape or Ctrl-C
// quit.
func (p *Stepper) Loop() error {
	for {
		if err := p.Render(); err != nil {
			return err
		}
		//
		key, err := p.terminal.ReadKey()
		if err != nil {
			return err
		}
		//
		switch key {
		case termio.CARRIAGE_RETURN, termio.LINE_FEED, ' ', 's':
			_, err = advance(p.engine, p.config.MaxSteps)
		case 'r':
			err = finish(p.engine, p.config.MaxSteps)
		case 'q', termio.ESC, termio.CTRL_C:
			return nil
		}
		//
		if err != nil {
			return err
		}
	}
}

// Close the stepper, restoring the terminal.
func (p *Stepper) Close() error {
	return p.terminal.Restore()
}

func helpLine() *widget.TextLine {
	help := widget.NewText()
	help.Set(termio.NewColouredText("[enter] step  [r] run  [q] quit", termio.TERM_CYAN))
	//
	return help
}

// Run a machine interactively using the terminal, then report the outcome.
func runStepper(engine *machine.Engine, program *definition.Program, config Config) error {
	stepper, err := NewStepper(engine, program, config)
	if err != nil {
		return err
	}
	//
	err = stepper.Loop()
	// Always restore the terminal
	if rerr := stepper.Close(); rerr != nil && err == nil {
		err = rerr
	}
	//
	if err == nil {
		NewPrinter(os.Stdout, program.Description, config).Halt(engine)
	}
	//
	return err
}
