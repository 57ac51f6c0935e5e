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
package codec

import "fmt"

// Category identifies which of the three mappings held by a codec a value (or
// code) belongs to.
type Category uint8

// STATE identifies the mapping for control states.
const STATE Category = 0

// SYMBOL identifies the mapping for tape symbols.
const SYMBOL Category = 1

// DIRECTION identifies the mapping for head movements.
const DIRECTION Category = 2

func (c Category) String() string {
	switch c {
	case STATE:
		return "state"
	case SYMBOL:
		return "symbol"
	case DIRECTION:
		return "direction"
	}
	//
	return "unknown"
}

// UnknownValueError is reported when encoding a logical value which is not part
// of the configured states, alphabet or directions.
type UnknownValueError struct {
	// Category of the value being encoded.
	Category Category
	// Value which could not be encoded.
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s \"%s\"", e.Category, e.Value)
}

// MalformedCodeError is reported when decoding a code which does not correspond
// to any known logical value.  This signals a corrupted or incompatible
// description.
type MalformedCodeError struct {
	// Category of the value being decoded.
	Category Category
	// Code which could not be decoded.
	Code Code
}

func (e *MalformedCodeError) Error() string {
	if !e.Code.IsValid() {
		return fmt.Sprintf("malformed %s code \"%s\"", e.Category, e.Code)
	}
	//
	return fmt.Sprintf("unassigned %s code \"%s\" (length %d)", e.Category, e.Code, len(e.Code))
}
