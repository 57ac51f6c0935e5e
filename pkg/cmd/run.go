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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/consensys/go-utm/pkg/util"
	"github.com/consensys/go-utm/pkg/util/termio"
	"github.com/consensys/go-utm/pkg/utm/definition"
	"github.com/consensys/go-utm/pkg/utm/machine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] machine_file input",
	Short: "simulate a machine on a given input.",
	Long: `Compile a given machine definition and simulate it, using the universal machine,
	 on a given input string (where each character is one symbol).  The three
	 tapes are printed initially and after every step.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		config, err := LoadConfig()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		config.Override(cmd)
		//
		quiet := getFlag(cmd, "quiet")
		interactive := getFlag(cmd, "interactive")
		//
		if !quiet {
			fmt.Println(">>> 3-Tape Universal Turing Machine Simulator <<<")
			fmt.Printf("[Compiler] Reading machine definition from %s...\n", args[0])
		}
		//
		program := compileMachineFile(args[0])
		//
		if !quiet {
			fmt.Println("[Compiler] Success! Machine Encoded to Binary.")
			fmt.Printf("[Debug] Tape 1 Content: %s\n\n", program.Description)
			fmt.Println("[UTM] Loading Tapes...")
			fmt.Printf("[UTM] Input String on Tape 2: '%s'\n", args[1])
		}
		//
		engine := bootProgram(program, args[1])
		//
		stats := util.NewPerfStats()
		//
		switch {
		case interactive && termio.IsTerminal():
			err = runStepper(engine, program, config)
		case interactive:
			err = runInteractive(engine, program, config, os.Stdin, os.Stdout)
		default:
			err = runToCompletion(engine, program, config, quiet, os.Stdout)
		}
		//
		stats.Log("Running machine")
		//
		if err != nil {
			reportDescriptionError(program.Description, err)
			os.Exit(4)
		}
	},
}

// Boot a program on a given input, or exit if the input is not valid for the
// machine.
func bootProgram(program *definition.Program, input string) *machine.Engine {
	engine, err := program.Boot(input)
	if err != nil {
		fmt.Printf("invalid input: %s\n", err)
		os.Exit(4)
	}
	// Trace steps at debug level
	engine.Observe(func(s machine.Snapshot) {
		log.Debugf("step %d: state %s, head %d, symbol %s", s.Step, s.State, s.Head, s.Symbol)
	})
	//
	return engine
}

// Run a machine until it halts, printing every step along the way (unless
// quiet).  The run can be interrupted with Ctrl-C.
func runToCompletion(engine *machine.Engine, program *definition.Program, config Config, quiet bool,
	out io.Writer) error {
	printer := NewPrinter(out, program.Description, config)
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	if !quiet {
		printer.Banner("INITIAL STATE")
		printer.Tapes(engine)
		//
		engine.Observe(func(machine.Snapshot) { printer.Step(engine) })
	}
	//
	if _, err := engine.RunContext(ctx, config.MaxSteps); errors.Is(err, context.Canceled) {
		log.Info("simulation interrupted")
	} else if err != nil {
		return err
	}
	//
	printer.Halt(engine)
	//
	return nil
}

// Run a machine one step at a time, waiting for a line of input between steps.
// This is used when interactive stepping is requested, but no terminal is
// available.  Entering "q" ends the simulation early.
func runInteractive(engine *machine.Engine, program *definition.Program, config Config, in io.Reader,
	out io.Writer) error {
	var (
		printer = NewPrinter(out, program.Description, config)
		reader  = bufio.NewReader(in)
	)
	//
	printer.Banner("INITIAL STATE")
	printer.Tapes(engine)
	//
	for !engine.Status().IsHalted() {
		fmt.Fprint(out, "Press Enter to step...")
		//
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) == "q" || (err != nil && line == "") {
			break
		}
		//
		if advanced, err := advance(engine, config.MaxSteps); err != nil {
			return err
		} else if advanced {
			printer.Step(engine)
		}
	}
	//
	printer.Halt(engine)
	//
	return nil
}

// Advance a machine by a single step, respecting a given step limit.  When the
// step being taken is the last one permitted, the engine is halted with
// STEP_LIMIT_REACHED if it did not otherwise halt.  A limit of zero indicates
// the default limit.
func advance(engine *machine.Engine, maxSteps uint) (bool, error) {
	if maxSteps == 0 {
		maxSteps = machine.DEFAULT_MAX_STEPS
	}
	//
	if engine.Steps()+1 >= maxSteps {
		n, err := engine.Run(1)
		return n == 1, err
	}
	//
	return engine.Step()
}

// Advance a machine until it halts, respecting a given step limit.
func finish(engine *machine.Engine, maxSteps uint) error {
	if maxSteps == 0 {
		maxSteps = machine.DEFAULT_MAX_STEPS
	}
	//
	if engine.Steps() < maxSteps {
		_, err := engine.Run(maxSteps - engine.Steps())
		return err
	}
	//
	return nil
}

// Register the flags accepted by the run command.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Uint("max-steps", machine.DEFAULT_MAX_STEPS, "maximum number of steps to execute")
	cmd.Flags().Uint("window", 0, "number of extra cells to show either side of the work tape")
	cmd.Flags().BoolP("interactive", "i", false, "step through the simulation interactively")
	cmd.Flags().BoolP("quiet", "q", false, "only report the final outcome")
	cmd.Flags().Bool("ansi", true, "use ANSI escapes when rendering")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}
