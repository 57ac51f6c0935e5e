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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-utm/pkg/util/assert"
	"github.com/consensys/go-utm/pkg/utm/definition"
	"github.com/consensys/go-utm/pkg/utm/machine"
)

const incrementMachine = `{
	"initial_state": "q1",
	"transitions": [
		{"q": "q1", "read": "1", "next_q": "q1", "write": "1", "move": "R"},
		{"q": "q1", "read": "_", "next_q": "q2", "write": "1", "move": "L"}
	]
}`

const foreverMachine = `{
	"initial_state": "q1",
	"transitions": [
		{"q": "q1", "read": "_", "next_q": "q1", "write": "_", "move": "R"}
	]
}`

var plain = Config{MaxSteps: 1000, Window: 0, Ansi: false}

func TestRender_Banner(t *testing.T) {
	assert.Equal(t, "==================== INITIAL STATE ====================", renderBanner("INITIAL STATE"))
	assert.Equal(t, "==================== STEP 12 ====================", renderBanner("STEP 12"))
}

func TestRender_Description(t *testing.T) {
	program := compile(t, incrementMachine)
	text := join(renderDescription(program.Description), false)
	//
	assert.Equal(t, "Tape 1 (Desc): 10110101101001010110... (Binary Encoded Rules)", text)
}

func TestRender_ShortDescription(t *testing.T) {
	text := join(renderDescription("1010101011"), false)
	//
	assert.Equal(t, "Tape 1 (Desc): 1010101011... (Binary Encoded Rules)", text)
}

func TestRender_Work_01(t *testing.T) {
	engine := boot(t, incrementMachine, "1")
	//
	assert.Equal(t, "Tape 2 (Work): [1] _ ", join(renderWork(engine.Window(0)), false))
	assert.Equal(t, "Tape 2 (Work):  _ [1] _  _ ", join(renderWork(engine.Window(1)), false))
}

func TestRender_Work_02(t *testing.T) {
	engine := boot(t, incrementMachine, "1")
	advanced, err := engine.Step()
	//
	assert.NoError(t, err)
	assert.True(t, advanced)
	assert.Equal(t, "Tape 2 (Work):  1 [_] _ ", join(renderWork(engine.Window(0)), false))
}

func TestRender_Work_Ansi(t *testing.T) {
	engine := boot(t, incrementMachine, "1")
	text := join(renderWork(engine.Window(0)), true)
	//
	assert.True(t, strings.Contains(text, "\033[33m[1]"), "missing head highlight in %q", text)
}

func TestRender_State(t *testing.T) {
	engine := boot(t, incrementMachine, "1")
	//
	assert.Equal(t, "Tape 3 (Stat): [q1] (Binary: 1)", join(renderState(engine.Snapshot()), false))
	//
	_, err := engine.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, "Tape 3 (Stat): [q2] (Binary: 11)", join(renderState(engine.Snapshot()), false))
}

func TestRender_Halt(t *testing.T) {
	engine := boot(t, foreverMachine, "")
	assert.Equal(t, ">>> Machine Paused (after 0 steps) <<<", renderHalt(engine))
	//
	_, err := engine.Run(3)
	assert.NoError(t, err)
	assert.Equal(t, ">>> Machine Stopped (Step Limit Reached after 3 steps) <<<", renderHalt(engine))
	//
	engine = boot(t, incrementMachine, "")
	_, err = engine.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, ">>> Machine Halted (No Transition Found or Final State Reached) <<<", renderHalt(engine))
}

func TestRun_ToCompletion(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, incrementMachine)
		engine  = boot(t, incrementMachine, "1")
	)
	//
	assert.NoError(t, runToCompletion(engine, program, plain, false, &out))
	//
	expected := []string{
		"==================== INITIAL STATE ====================",
		"Tape 2 (Work): [1] _ ",
		"Tape 3 (Stat): [q1] (Binary: 1)",
		"==================== STEP 1 ====================",
		"Tape 2 (Work):  1 [_] _ ",
		"==================== STEP 2 ====================",
		"Tape 2 (Work): [1] 1  _ ",
		"Tape 3 (Stat): [q2] (Binary: 11)",
		">>> Machine Halted (No Transition Found or Final State Reached) <<<",
		"[UTM] Output: '11'",
	}
	//
	checkLines(t, out.String(), expected)
	assert.False(t, strings.Contains(out.String(), "STEP 3"), "unexpected step")
}

func TestRun_Quiet(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, incrementMachine)
		engine  = boot(t, incrementMachine, "111")
	)
	//
	assert.NoError(t, runToCompletion(engine, program, plain, true, &out))
	//
	expected := "\n>>> Machine Halted (No Transition Found or Final State Reached) <<<\n[UTM] Output: '1111'\n"
	assert.Equal(t, expected, out.String())
}

func TestRun_StepLimit(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, foreverMachine)
		engine  = boot(t, foreverMachine, "")
		config  = Config{MaxSteps: 4}
	)
	//
	assert.NoError(t, runToCompletion(engine, program, config, true, &out))
	assert.Equal(t, machine.STEP_LIMIT_REACHED, engine.Status())
	assert.Equal(t, uint(4), engine.Steps())
}

func TestRun_Interactive_01(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, incrementMachine)
		engine  = boot(t, incrementMachine, "1")
	)
	// Third step discovers there is no matching rule.
	assert.NoError(t, runInteractive(engine, program, plain, strings.NewReader("\n\n\n\n"), &out))
	assert.Equal(t, machine.NO_MATCHING_RULE, engine.Status())
	assert.Equal(t, uint(2), engine.Steps())
	assert.Equal(t, 3, strings.Count(out.String(), "Press Enter to step..."))
	checkLines(t, out.String(), []string{"STEP 1", "STEP 2", ">>> Machine Halted", "[UTM] Output: '11'"})
}

func TestRun_Interactive_02(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, incrementMachine)
		engine  = boot(t, incrementMachine, "1")
	)
	// Quit after the first step
	assert.NoError(t, runInteractive(engine, program, plain, strings.NewReader("\nq\n"), &out))
	assert.Equal(t, machine.RUNNING, engine.Status())
	assert.Equal(t, uint(1), engine.Steps())
	checkLines(t, out.String(), []string{"STEP 1", ">>> Machine Paused (after 1 steps) <<<", "[UTM] Output: '1'"})
}

func TestRun_Interactive_03(t *testing.T) {
	var (
		out     bytes.Buffer
		program = compile(t, foreverMachine)
		engine  = boot(t, foreverMachine, "")
	)
	// End of input stops stepping
	assert.NoError(t, runInteractive(engine, program, plain, strings.NewReader("\n"), &out))
	assert.Equal(t, uint(1), engine.Steps())
}

func TestRun_Advance(t *testing.T) {
	engine := boot(t, foreverMachine, "")
	//
	for i := 0; i < 3; i++ {
		advanced, err := advance(engine, 3)
		assert.NoError(t, err)
		assert.True(t, advanced)
	}
	//
	assert.Equal(t, machine.STEP_LIMIT_REACHED, engine.Status())
	//
	advanced, err := advance(engine, 3)
	assert.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, uint(3), engine.Steps())
}

func TestRun_Finish(t *testing.T) {
	engine := boot(t, foreverMachine, "")
	//
	_, err := advance(engine, 5)
	assert.NoError(t, err)
	assert.NoError(t, finish(engine, 5))
	assert.Equal(t, uint(5), engine.Steps())
	assert.Equal(t, machine.STEP_LIMIT_REACHED, engine.Status())
	// Finishing a halted engine does nothing
	assert.NoError(t, finish(engine, 5))
	assert.Equal(t, uint(5), engine.Steps())
}

// ===================================================================
// Framework
// ===================================================================

func compile(t *testing.T, contents string) *definition.Program {
	t.Helper()
	//
	m, err := definition.Parse("machine.json", []byte(contents))
	assert.NoError(t, err)
	//
	program, err := m.Compile()
	assert.NoError(t, err)
	//
	return program
}

func boot(t *testing.T, contents string, input string) *machine.Engine {
	t.Helper()
	//
	engine, err := compile(t, contents).Boot(input)
	assert.NoError(t, err)
	//
	return engine
}

// Check that each of the expected strings occurs in the output, in order.
func checkLines(t *testing.T, output string, expected []string) {
	t.Helper()
	//
	for _, line := range expected {
		i := strings.Index(output, line)
		assert.True(t, i >= 0, "missing %q", line)
		output = output[i+len(line):]
	}
}
