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
package rule

import (
	"fmt"

	"github.com/consensys/go-utm/pkg/util/source"
)

// EncodingError is reported when a rule cannot be encoded, for example because
// it refers to a state or symbol unknown to the codec.  It identifies the
// offending rule (by its position in definition order) and field, and wraps the
// underlying codec error.
type EncodingError struct {
	// Index of rule in definition order.
	Index uint
	// Field which could not be encoded.
	Field Field
	// Underlying codec error
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("rule %d (%s): %s", e.Index, e.Field, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// MalformedRuleError is reported when a description does not conform to the
// description grammar.  It identifies the rule (by position) in which the
// problem arose, and the span of the description affected.
type MalformedRuleError struct {
	// Index of rule in definition order.
	Index uint
	// Span of description where the problem arose.
	Span source.Span
	// Message describing the problem.
	Message string
}

func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("malformed rule %d at %s: %s", e.Index, e.Span.String(), e.Message)
}
