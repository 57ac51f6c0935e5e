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
package definition

import (
	"fmt"
	"os"
	"path"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"
)

// DEFAULT_BLANK is the blank symbol used when a machine does not specify one.
const DEFAULT_BLANK = "_"

// Transition is a single rule of a machine, as written in a machine file.
type Transition struct {
	State string `json:"q" yaml:"q"`
	Read  string `json:"read" yaml:"read"`
	Next  string `json:"next_q" yaml:"next_q"`
	Write string `json:"write" yaml:"write"`
	Move  string `json:"move" yaml:"move"`
}

// Machine is the human-readable definition of a Turing machine, as read from a
// machine file.  The set of states and the alphabet are optional.  If given,
// they determine the code assigned to each state or symbol (by their order).
// Otherwise, they are enumerated from the transitions in order of first
// appearance, with the initial state first and the blank first.
type Machine struct {
	// Name of the machine (optional).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// State in which the machine starts.
	InitialState string `json:"initial_state" yaml:"initial_state"`
	// Blank symbol (optional, defaults to "_").
	Blank string `json:"blank,omitempty" yaml:"blank,omitempty"`
	// Set of states (optional).
	States []string `json:"states,omitempty" yaml:"states,omitempty"`
	// Alphabet (optional).  If given, the blank must come first.
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	// Transition rules in definition order.
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// Error is reported when a machine file cannot be read, decoded or compiled.
type Error struct {
	// Name of machine file
	Filename string
	// Underlying cause
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReadFile reads and parses a machine file, where the format is determined by
// its extension.
func ReadFile(filename string) (*Machine, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, &Error{filename, err}
	}
	//
	return Parse(filename, bytes)
}

// Parse the contents of a machine file, where the format (JSON or YAML) is
// determined by the extension of the given filename.
func Parse(filename string, bytes []byte) (*Machine, error) {
	var (
		machine Machine
		err     error
	)
	//
	switch ext := path.Ext(filename); ext {
	case ".json":
		err = json.Unmarshal(bytes, &machine)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &machine)
	default:
		err = fmt.Errorf("unknown machine file format: %s", ext)
	}
	//
	if err == nil {
		err = machine.check()
	}
	//
	if err != nil {
		return nil, &Error{filename, err}
	}
	//
	return &machine, nil
}

// BlankSymbol returns the blank symbol of this machine.
func (m *Machine) BlankSymbol() string {
	if m.Blank != "" {
		return m.Blank
	}
	//
	return DEFAULT_BLANK
}

// Sanity check the basic structure of a machine definition.
func (m *Machine) check() error {
	if m.InitialState == "" {
		return fmt.Errorf("missing initial_state")
	} else if len(m.Transitions) == 0 {
		return fmt.Errorf("no transitions")
	} else if len(m.Symbols) != 0 && m.Symbols[0] != m.BlankSymbol() {
		return fmt.Errorf("blank symbol \"%s\" must be first in alphabet", m.BlankSymbol())
	}
	//
	for i, t := range m.Transitions {
		if t.State == "" || t.Read == "" || t.Next == "" || t.Write == "" || t.Move == "" {
			return fmt.Errorf("transition %d is incomplete", i)
		}
	}
	//
	return nil
}
