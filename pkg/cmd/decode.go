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
	"strings"

	"github.com/consensys/go-utm/pkg/utm/rule"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] machine_file description",
	Short: "decode a binary description back into rules.",
	Long: `Decode a binary description into its rules, using the states and symbols of
	 a given machine definition to interpret the unary codes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		program := compileMachineFile(args[0])
		description := rule.Description(strings.TrimSpace(args[1]))
		//
		rules, err := rule.Decode(program.Codec, description)
		if err != nil {
			reportDescriptionError(description, err)
			os.Exit(4)
		}
		//
		printRules(program.Codec, rules, getFlag(cmd, "ansi"))
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool("ansi", true, "use ANSI escapes when printing the table")
}
