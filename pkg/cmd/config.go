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

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// Config holds the defaults used when running a machine.  These are read from
// the environment, and can then be overridden by explicitly given flags.
type Config struct {
	// Maximum number of steps to execute before giving up.
	MaxSteps uint `env:"UTM_MAX_STEPS" envDefault:"1000"`
	// Number of additional cells rendered either side of the work tape.
	Window uint `env:"UTM_WINDOW" envDefault:"0"`
	// Whether or not to use ANSI escapes when rendering.
	Ansi bool `env:"UTM_ANSI" envDefault:"true"`
}

// LoadConfig reads the run configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	//
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse utm env: %w", err)
	}
	//
	return cfg, nil
}

// Override those fields of this configuration whose flags were explicitly
// given on the command line.
func (p *Config) Override(cmd *cobra.Command) {
	if cmd.Flags().Changed("max-steps") {
		p.MaxSteps = getUint(cmd, "max-steps")
	}
	//
	if cmd.Flags().Changed("window") {
		p.Window = getUint(cmd, "window")
	}
	//
	if cmd.Flags().Changed("ansi") {
		p.Ansi = getFlag(cmd, "ansi")
	}
}
