// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package mapper

import (
	"fmt"
	"strings"
)

// Mapping is the result of a mapping run: the reference plus the reads placed
// at each zero-based start position.
//
// Positions are kept in the order they were first populated, not in numeric
// order, and reads at one position are kept in the order they were added.
// Output formats depend on both orders. A read may be placed at several
// positions. Thread compatible.
type Mapping struct {
	// Reference is shared with the caller and must not be modified.
	Reference *Reference

	order []int // positions, in first-insertion order
	reads map[int][]*Read
	n     int
}

// NewMapping creates an empty Mapping against ref.
func NewMapping(ref *Reference) *Mapping {
	return &Mapping{Reference: ref, reads: make(map[int][]*Read)}
}

// Add places read at pos, after any reads already there.
func (m *Mapping) Add(read *Read, pos int) {
	rs, ok := m.reads[pos]
	if !ok {
		m.order = append(m.order, pos)
	}
	m.reads[pos] = append(rs, read)
	m.n++
}

// ReadsAt returns the reads placed at pos, in insertion order. It returns nil
// if there are none. The result must not be modified.
func (m *Mapping) ReadsAt(pos int) []*Read {
	return m.reads[pos]
}

// Positions returns the occupied positions in the order they were first
// populated.
func (m *Mapping) Positions() []int {
	return append([]int(nil), m.order...)
}

// Each calls fn for every placement, visiting positions in first-insertion
// order and reads at a position in insertion order. Each stops early and
// returns the error if fn fails.
func (m *Mapping) Each(fn func(read *Read, pos int) error) error {
	for _, pos := range m.order {
		for _, read := range m.reads[pos] {
			if err := fn(read, pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len returns the total number of placements.
func (m *Mapping) Len() int { return m.n }

// String summarizes the number of reads at each position.
func (m *Mapping) String() string {
	var b strings.Builder
	b.WriteString("Mapping to ")
	b.WriteString(m.Reference.Name)
	for _, pos := range m.order {
		fmt.Fprintf(&b, "\n  %d reads mapping at %d", len(m.reads[pos]), pos)
	}
	return b.String()
}
