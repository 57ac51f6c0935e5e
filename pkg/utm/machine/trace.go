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
package machine

import (
	"github.com/consensys/go-utm/pkg/utm/codec"
	"github.com/consensys/go-utm/pkg/utm/tape"
)

// Snapshot captures the observable configuration of an engine after a given
// number of steps.
type Snapshot struct {
	// Number of steps completed.
	Step uint
	// Contents of the state register.
	State codec.State
	// Binary code of the state register.
	StateCode codec.Code
	// Symbol currently under the head.
	Symbol codec.Symbol
	// Position of the head on the work tape.
	Head int
	// Window of the work tape covering all written cells and the head.
	Cells []tape.Cell[codec.Symbol]
	// Status of the engine.
	Status Status
}

// Observer is notified with a snapshot after every completed step.
type Observer func(Snapshot)

// Trace is an ordered sequence of snapshots, one per completed step.
type Trace []Snapshot

// Recorder is a simple observer which accumulates a trace.
type Recorder struct {
	trace Trace
}

// Observe records a given snapshot.
func (p *Recorder) Observe(snapshot Snapshot) {
	p.trace = append(p.trace, snapshot)
}

// Trace returns the snapshots recorded so far.
func (p *Recorder) Trace() Trace {
	return p.trace
}
