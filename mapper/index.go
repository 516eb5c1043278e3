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
	"github.com/grailbio/base/log"
)

// kmerIndex maps every k-mer of a reference to its zero-based start
// positions. Positions for one k-mer are in ascending order. An index is built
// for exactly one k; it is never updated in place.
type kmerIndex struct {
	k         int
	positions map[string][]int
}

func newKmerIndex(bases string, k int) *kmerIndex {
	idx := &kmerIndex{k: k, positions: make(map[string][]int)}
	if k <= 0 {
		return idx
	}
	for pos := 0; pos+k <= len(bases); pos++ {
		kmer := bases[pos : pos+k]
		idx.positions[kmer] = append(idx.positions[kmer], pos)
	}
	return idx
}

// BuildIndex (re)indexes the reference for k-mers of length k, discarding any
// previous index.
func (r *Reference) BuildIndex(k int) {
	log.Debug.Printf("%s: indexing %d-mers over %d bases", r.Name, k, len(r.Bases))
	r.index = newKmerIndex(r.Bases, k)
}

// EnsureIndex builds the index for k unless the current index already has
// that k-mer length. It reports whether a (re)build happened.
func (r *Reference) EnsureIndex(k int) bool {
	if r.index != nil && r.index.k == k {
		return false
	}
	r.BuildIndex(k)
	return true
}

// IndexedK returns the k-mer length of the current index, or 0 if the
// reference has not been indexed yet.
func (r *Reference) IndexedK() int {
	if r.index == nil {
		return 0
	}
	return r.index.k
}

// Lookup returns the start positions of exact occurrences of kmer, in
// ascending order, or nil if there are none.
//
// If the index was built for a different length than len(kmer), it is
// silently rebuilt for len(kmer) first. The returned slice must not be
// modified.
func (r *Reference) Lookup(kmer string) []int {
	r.EnsureIndex(len(kmer))
	ps := r.index.positions[kmer]
	return ps[:len(ps):len(ps)]
}

// ScoreAlignment counts the substitutions between read and the reference
// bases starting at pos. Every read base past the end of the reference counts
// as one mismatch.
func (r *Reference) ScoreAlignment(read *Read, pos int) int {
	n := len(read.Bases)
	if avail := len(r.Bases) - pos; avail < n {
		n = avail
	}
	mismatches := 0
	for i := 0; i < n; i++ {
		if read.Bases[i] != r.Bases[pos+i] {
			mismatches++
		}
	}
	if overflow := pos + len(read.Bases) - len(r.Bases); overflow > 0 {
		mismatches += overflow
	}
	return mismatches
}
