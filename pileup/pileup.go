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

// Package pileup summarizes a mapper.Mapping as per-reference-position
// coverage and base agreement.
package pileup

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/readmap/mapper"
)

// MatchSymbol is emitted for a read base that agrees with the reference.
const MatchSymbol = '.'

// Column is the pileup of one reference position.
type Column struct {
	// Pos is the 1-based reference position.
	Pos int
	// RefBase is the reference base at Pos.
	RefBase byte
	// Depth is the number of reads covering Pos. It always equals
	// len(Symbols).
	Depth int
	// Symbols has one entry per covering read: MatchSymbol if the read base
	// equals RefBase, else the read base itself. Entries are ordered by the
	// reads' start positions, then by the order reads were added to the
	// Mapping at that start.
	Symbols string
}

// start is the set of reads placed at one start position, keyed for llrb.
type start struct {
	pos   int
	reads []*mapper.Read
}

// Compare implements llrb.Comparable.
func (s start) Compare(c llrb.Comparable) int {
	return s.pos - c.(start).pos
}

// Build computes one Column per reference base, in reference order. Positions
// with no coverage are included with zero depth.
func Build(m *mapper.Mapping) []Column {
	var (
		ref     = m.Reference.Bases
		starts  llrb.Tree
		symbols = make([][]byte, len(ref))
	)
	for _, pos := range m.Positions() {
		starts.Insert(start{pos: pos, reads: m.ReadsAt(pos)})
	}
	starts.Do(func(c llrb.Comparable) bool {
		s := c.(start)
		for _, read := range s.reads {
			for off := 0; off < len(read.Bases); off++ {
				i := s.pos + off
				if i < 0 {
					continue
				}
				if i >= len(ref) {
					break
				}
				sym := read.Bases[off]
				if sym == ref[i] {
					sym = MatchSymbol
				}
				symbols[i] = append(symbols[i], sym)
			}
		}
		return false
	})

	cols := make([]Column, len(ref))
	for i := range cols {
		cols[i] = Column{
			Pos:     i + 1,
			RefBase: ref[i],
			Depth:   len(symbols[i]),
			Symbols: string(symbols[i]),
		}
	}
	return cols
}
