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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-utm/pkg/util"
	"github.com/consensys/go-utm/pkg/util/source"
	"github.com/consensys/go-utm/pkg/utm/definition"
	"github.com/consensys/go-utm/pkg/utm/rule"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure the log level based on the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read a machine file and compile it into a program, or exit with an
// appropriate error code.
func compileMachineFile(filename string) *definition.Program {
	stats := util.NewPerfStats()
	//
	log.Debug(fmt.Sprintf("reading machine definition from %s", filename))
	//
	machine, err := definition.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	program, err := machine.Compile()
	if err != nil {
		fmt.Printf("%s: compilation failed: %s\n", filename, err)
		os.Exit(3)
	}
	//
	stats.Log("Compiling machine")
	log.Debug(fmt.Sprintf("encoded %d rules over %d states and %d symbols", len(program.Rules),
		len(program.Codec.States()), len(program.Codec.Symbols())))
	//
	return program
}

// Report an error arising from a description.  Malformed rules are reported as
// syntax errors with the offending portion of the description highlighted.
func reportDescriptionError(description rule.Description, err error) {
	var malformed *rule.MalformedRuleError
	//
	if errors.As(err, &malformed) {
		srcfile := source.NewSourceFile("description", []byte(description))
		printSyntaxError(srcfile.SyntaxError(malformed.Span, malformed.Error()))
	} else {
		fmt.Println(err)
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line).  An empty span is
	// highlighted as a single character.
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
