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
package tape

import (
	"math"

	"github.com/consensys/go-utm/pkg/utm/codec"
)

// Tape is a two-way infinite sequence of cells with a movable head.  Storage is
// sparse, such that only cells which have been written occupy any space.  Any
// cell never written holds the blank.  Positions are unbounded signed integers
// with no bounds checking.
type Tape[T comparable] struct {
	blank T
	cells map[int]T
	head  int
}

// Cell describes the contents of a single position on the tape.
type Cell[T any] struct {
	// Position of this cell on the tape.
	Position int
	// Value held in this cell.
	Value T
	// Indicates whether the head is currently over this cell.
	IsHead bool
}

// New constructs a tape with a given blank whose cells from position 0 onwards
// are initialised with the given contents.  The head is placed at position 0.
func New[T comparable](blank T, contents ...T) *Tape[T] {
	cells := make(map[int]T, len(contents))
	//
	for i, c := range contents {
		cells[i] = c
	}
	//
	return &Tape[T]{blank, cells, 0}
}

// Blank returns the value of any cell never written.
func (p *Tape[T]) Blank() T {
	return p.blank
}

// Head returns the current position of the head.
func (p *Tape[T]) Head() int {
	return p.head
}

// Read the cell under the head.
func (p *Tape[T]) Read() T {
	return p.Get(p.head)
}

// Get reads the cell at a given position, irrespective of the head.
func (p *Tape[T]) Get(position int) T {
	if v, ok := p.cells[position]; ok {
		return v
	}
	//
	return p.blank
}

// Write a value into the cell under the head, overwriting whatever was there.
func (p *Tape[T]) Write(value T) {
	p.cells[p.head] = value
}

// Move the head one cell in a given direction.
func (p *Tape[T]) Move(dir codec.Direction) {
	p.head += dir.Offset()
}

// IsEmpty checks whether any cell of this tape has been written.
func (p *Tape[T]) IsEmpty() bool {
	return len(p.cells) == 0
}

// Bounds returns the smallest range of positions which includes every written
// cell and the head.
func (p *Tape[T]) Bounds() (int, int) {
	var lo, hi = p.head, p.head
	//
	for i := range p.cells {
		lo = min(lo, i)
		hi = max(hi, i)
	}
	//
	return lo, hi
}

// Extent returns the smallest range of positions which includes every written
// cell holding a non-blank value.  If there are no such cells, then false is
// returned.
func (p *Tape[T]) Extent() (int, int, bool) {
	var lo, hi = math.MaxInt, math.MinInt
	//
	for i, v := range p.cells {
		if v != p.blank {
			lo = min(lo, i)
			hi = max(hi, i)
		}
	}
	//
	return lo, hi, lo <= hi
}

// Window returns the cells from position lo to hi (inclusive) in order.  This
// is primarily useful for visualisation.
func (p *Tape[T]) Window(lo, hi int) []Cell[T] {
	var cells []Cell[T]
	//
	for i := lo; i <= hi; i++ {
		cells = append(cells, Cell[T]{i, p.Get(i), i == p.head})
	}
	//
	return cells
}

// Clone returns an independent copy of this tape.
func (p *Tape[T]) Clone() *Tape[T] {
	cells := make(map[int]T, len(p.cells))
	//
	for i, v := range p.cells {
		cells[i] = v
	}
	//
	return &Tape[T]{p.blank, cells, p.head}
}
