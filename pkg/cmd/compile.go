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
	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/rule"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] machine_file",
	Short: "compile a machine definition into a binary description.",
	Long: `Compile a given machine definition (JSON or YAML) into the binary description
	 read by the universal machine, and print that description.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		program := compileMachineFile(args[0])
		//
		if getFlag(cmd, "rules") {
			printRules(program.Codec, program.Rules, getFlag(cmd, "ansi"))
		} else {
			fmt.Println(program.Description)
		}
	},
}

// Print a table of rules, along with the binary encoding of each rule.
func printRules(c *codec.Codec, rules []rule.Rule, ansi bool) {
	tp := termio.NewTablePrinter(7, uint(len(rules)+1))
	bold := termio.BoldAnsiEscape().Build()
	//
	tp.SetRow(0, "#", "state", "read", "next", "write", "move", "encoding")
	//
	for col := uint(0); col < 7; col++ {
		tp.SetEscape(col, 0, bold)
	}
	//
	for i, r := range rules {
		// NOTE: rules here have already been encoded once, hence cannot fail.
		encoding, _ := rule.Encode(c, []rule.Rule{r})
		//
		tp.SetRow(uint(i+1), fmt.Sprintf("%d", i), string(r.State), string(r.Read), string(r.Next),
			string(r.Write), r.Move.String(), string(encoding))
	}
	//
	tp.AnsiEscapes(ansi)
	tp.Print()
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("rules", false, "print a table of the encoded rules")
	compileCmd.Flags().Bool("ansi", true, "use ANSI escapes when printing the table")
}
