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

// Status indicates whether an engine is still running or, if not, why it
// halted.  Once halted, an engine remains halted.
type Status uint8

// RUNNING indicates the engine can still advance.
const RUNNING Status = 0

// NO_MATCHING_RULE indicates the engine halted because no rule applied to its
// current state and symbol.  This is the normal way for a machine to halt.
const NO_MATCHING_RULE Status = 1

// STEP_LIMIT_REACHED indicates the engine was halted because it reached the
// maximum number of steps it was permitted to take.
const STEP_LIMIT_REACHED Status = 2

// IsHalted checks whether this status is terminal.
func (s Status) IsHalted() bool {
	return s != RUNNING
}

func (s Status) String() string {
	switch s {
	case RUNNING:
		return "running"
	case NO_MATCHING_RULE:
		return "halted (no matching rule)"
	case STEP_LIMIT_REACHED:
		return "halted (step limit reached)"
	}
	//
	return "unknown"
}
