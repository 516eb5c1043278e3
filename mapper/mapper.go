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

// Package mapper maps short reads against a single reference sequence.
//
// Mapping is seed-and-extend: the first SeedLength bases of each read are
// looked up in a k-mer index of the reference, and every exact seed hit is
// then scored over the full read length, counting substitutions only. A read
// is placed at every hit whose mismatch count is below MaxMismatches.
package mapper

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts controls a mapping run.
type Opts struct {
	// SeedLength is the number of leading read bases that must match the
	// reference exactly. It is also the k-mer length of the reference index.
	SeedLength int
	// MaxMismatches is the exclusive upper bound on the number of mismatches
	// in a placement. A placement with exactly MaxMismatches mismatches is
	// rejected.
	MaxMismatches int
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	SeedLength:    25,
	MaxMismatches: 2,
}

// Validate checks that opts describe a usable mapping run.
func (o Opts) Validate() error {
	if o.SeedLength <= 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("seed length must be positive, got %d", o.SeedLength))
	}
	if o.MaxMismatches < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("max mismatches must not be negative, got %d", o.MaxMismatches))
	}
	return nil
}

// Stats counts what happened during a mapping run.
type Stats struct {
	// Reads is the number of reads processed.
	Reads int
	// Seeded is the number of reads whose seed occurs in the reference.
	Seeded int
	// Mapped is the number of reads placed at least once.
	Mapped int
	// Placements is the total number of (read, position) pairs recorded.
	Placements int
}

func (s Stats) String() string {
	return fmt.Sprintf("reads: %d, seeded: %d, mapped: %d, placements: %d",
		s.Reads, s.Seeded, s.Mapped, s.Placements)
}

// Map places reads against ref. Reads are processed in input order; a read
// with no seed hit or no passing candidate is left out of the result.
//
// Map (re)builds ref's index for opts.SeedLength.
func Map(reads []*Read, ref *Reference, opts Opts) (*Mapping, Stats) {
	var (
		m     = NewMapping(ref)
		stats Stats
	)
	ref.EnsureIndex(opts.SeedLength)
	for _, read := range reads {
		stats.Reads++
		candidates := ref.Lookup(read.Seed(opts.SeedLength))
		if len(candidates) > 0 {
			stats.Seeded++
		}
		placed := false
		for _, pos := range candidates {
			if ref.ScoreAlignment(read, pos) < opts.MaxMismatches {
				m.Add(read, pos)
				stats.Placements++
				placed = true
			}
		}
		if placed {
			stats.Mapped++
		}
	}
	return m, stats
}
