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
package test

import (
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/consensys/go-utm/pkg/util"
	"github.com/consensys/go-utm/pkg/util/assert"
	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/definition"
	"github.com/consensys/go-utm/pkg/utm/machine"
	"github.com/consensys/go-utm/pkg/utm/rule"
	"github.com/segmentio/encoding/json"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the machine files and the corresponding runs are found.
const TestDir = "../../testdata"

// MACHINE_EXTENSIONS identifies the extensions tried when looking for a machine
// file.
var MACHINE_EXTENSIONS = []string{"json", "yaml", "yml"}

// Run describes a single expected run of a machine.
type Run struct {
	// Input string placed on the work tape.
	Input string `json:"input"`
	// Expected (non-blank) contents of the work tape after halting.
	Output string `json:"output"`
	// Expected number of steps taken.
	Steps uint `json:"steps"`
	// Expected status, either "halted" or "limit".
	Status string `json:"status"`
	// Step limit for the run (zero for the default).
	MaxSteps uint `json:"max_steps"`
}

// Check that every run expected for a given machine produces the expected
// output.  Each run is additionally checked against a direct simulation of the
// machine's rules, and the description is checked to decode back into those
// rules.
func Check(t *testing.T, test string) {
	var (
		filename = findMachineFile(test)
		runs     = ReadRunsFile(fmt.Sprintf("%s/machines/%s.runs", TestDir, test))
	)
	// Sanity check at least one run found.
	if len(runs) == 0 {
		panic(fmt.Sprintf("missing any runs for %s", test))
	}
	//
	m, err := definition.ReadFile(filename)
	assert.NoError(t, err, filename)
	//
	program, err := m.Compile()
	assert.NoError(t, err, filename)
	// Check round trip
	rules, err := rule.Decode(program.Codec, program.Description)
	assert.NoError(t, err, filename)
	assert.True(t, slices.Equal(rules, program.Rules), "%s: description does not decode into rules", filename)
	//
	for i, run := range runs {
		checkRun(t, fmt.Sprintf("%s:%d", filename, i+1), program, run)
	}
}

// CheckInvalid checks that a given machine file is rejected either when read,
// or when compiled.  The error is returned for further inspection.
func CheckInvalid(t *testing.T, test string) error {
	filename := fmt.Sprintf("%s/invalid/%s", TestDir, test)
	//
	if _, err := os.Stat(filename); err != nil {
		panic(err)
	}
	//
	m, err := definition.ReadFile(filename)
	if err == nil {
		_, err = m.Compile()
	}
	//
	assert.True(t, err != nil, "%s: expected failure", filename)
	//
	return err
}

// ReadRunsFile reads a file of runs, with one run (in JSON) per line.
func ReadRunsFile(filename string) []Run {
	lines, err := util.ReadInputFile(filename)
	if err != nil {
		panic(err)
	}
	//
	runs := make([]Run, len(lines))
	//
	for i, line := range lines {
		if err := json.Unmarshal([]byte(line), &runs[i]); err != nil {
			panic(fmt.Sprintf("%s:%d: %s", filename, i+1, err))
		}
	}
	//
	return runs
}

func checkRun(t *testing.T, id string, program *definition.Program, run Run) {
	engine, err := program.Boot(run.Input)
	assert.NoError(t, err, id)
	//
	n, err := engine.Run(run.MaxSteps)
	assert.NoError(t, err, id)
	assert.Equal(t, run.Steps, n, "%s: steps", id)
	assert.Equal(t, run.Steps, engine.Steps(), "%s: steps", id)
	assert.Equal(t, expectedStatus(run.Status), engine.Status(), "%s: status", id)
	assert.Equal(t, run.Output, symbolsToString(engine.Output()), "%s: output", id)
	// Compare against direct simulation
	output, steps := simulate(program, run)
	assert.Equal(t, output, symbolsToString(engine.Output()), "%s: simulated output", id)
	assert.Equal(t, steps, engine.Steps(), "%s: simulated steps", id)
}

// ===================================================================
// Framework
// ===================================================================

// Simulate a machine directly from its rules, without going through the
// description.  This returns the output and number of steps taken.
func simulate(program *definition.Program, run Run) (string, uint) {
	var (
		blank = program.Codec.Blank()
		cells = make(map[int]codec.Symbol)
		state = program.Start
		head  = 0
		steps uint
		limit = run.MaxSteps
	)
	//
	if limit == 0 {
		limit = machine.DEFAULT_MAX_STEPS
	}
	//
	for i, s := range definition.ParseInput(run.Input) {
		cells[i] = s
	}
	//
	for ; steps < limit; steps++ {
		symbol, ok := cells[head]
		if !ok {
			symbol = blank
		}
		//
		i := slices.IndexFunc(program.Rules, func(r rule.Rule) bool {
			return r.State == state && r.Read == symbol
		})
		//
		if i < 0 {
			break
		}
		//
		r := program.Rules[i]
		cells[head] = r.Write
		head += r.Move.Offset()
		state = r.Next
	}
	// Extract output
	var (
		output    []codec.Symbol
		positions []int
	)
	//
	for i, s := range cells {
		if s != blank {
			positions = append(positions, i)
		}
	}
	//
	if len(positions) > 0 {
		for i := slices.Min(positions); i <= slices.Max(positions); i++ {
			if s, ok := cells[i]; ok {
				output = append(output, s)
			} else {
				output = append(output, blank)
			}
		}
	}
	//
	return symbolsToString(output), steps
}

func expectedStatus(status string) machine.Status {
	switch status {
	case "halted":
		return machine.NO_MATCHING_RULE
	case "limit":
		return machine.STEP_LIMIT_REACHED
	}
	//
	panic(fmt.Sprintf("unknown status \"%s\"", status))
}

func symbolsToString(symbols []codec.Symbol) string {
	var builder strings.Builder
	//
	for _, s := range symbols {
		builder.WriteString(string(s))
	}
	//
	return builder.String()
}

func findMachineFile(test string) string {
	for _, ext := range MACHINE_EXTENSIONS {
		filename := path.Join(TestDir, "machines", fmt.Sprintf("%s.%s", test, ext))
		//
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
	}
	//
	panic(fmt.Sprintf("missing machine file for %s", test))
}
