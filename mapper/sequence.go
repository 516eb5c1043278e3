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
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/readmap/encoding/fasta"
)

// previewLen is the number of bases shown by Record.String.
const previewLen = 20

// Kind selects the record type built from a FASTA block.
type Kind int

const (
	// KindRead builds a *Read.
	KindRead Kind = iota
	// KindReference builds a *Reference.
	KindReference
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindReference:
		return "reference"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sequence is implemented by *Read and *Reference.
type Sequence interface {
	fmt.Stringer
	// Kind reports which record type this is.
	Kind() Kind
}

// Record is a named base sequence. It is immutable once built.
type Record struct {
	// Name is the header line minus the leading '>', trimmed.
	Name string
	// Bases is the upper-cased concatenation of all sequence lines, with
	// whitespace removed.
	Bases string
}

// newRecord builds a Record from a FASTA block. lines[0] is the header.
func newRecord(lines []string) Record {
	if len(lines) == 0 {
		return Record{}
	}
	name := strings.TrimSpace(lines[0])
	if len(name) > 0 {
		name = strings.TrimSpace(name[1:])
	}
	var bases strings.Builder
	for _, line := range lines[1:] {
		for _, field := range strings.Fields(line) {
			bases.WriteString(field)
		}
	}
	return Record{Name: name, Bases: strings.ToUpper(bases.String())}
}

// Len returns the number of bases.
func (r *Record) Len() int { return len(r.Bases) }

// String returns the name followed by the first few bases.
func (r *Record) String() string {
	preview := r.Bases
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	return r.Name + ": " + preview + "..."
}

// Read is a short sequencing read.
type Read struct {
	Record
}

// NewRead builds a Read from a header line followed by sequence lines.
func NewRead(lines ...string) *Read {
	return &Read{Record: newRecord(lines)}
}

// Kind implements Sequence.
func (r *Read) Kind() Kind { return KindRead }

// Seed returns the first k bases of the read. If the read is shorter than k,
// the whole read is returned; such a seed simply won't match the index.
func (r *Read) Seed(k int) string {
	if k > len(r.Bases) {
		return r.Bases
	}
	if k < 0 {
		return ""
	}
	return r.Bases[:k]
}

// Reference is the sequence reads are mapped against. It lazily owns a k-mer
// index over its bases.
type Reference struct {
	Record
	index *kmerIndex
}

// NewReference builds a Reference from a header line followed by sequence
// lines.
func NewReference(lines ...string) *Reference {
	return &Reference{Record: newRecord(lines)}
}

// Kind implements Sequence.
func (r *Reference) Kind() Kind { return KindReference }

// NewSequence builds the record type selected by kind from a FASTA block.
func NewSequence(kind Kind, lines []string) (Sequence, error) {
	switch kind {
	case KindRead:
		return NewRead(lines...), nil
	case KindReference:
		return NewReference(lines...), nil
	}
	return nil, errors.E(errors.Invalid, "unknown sequence kind", kind)
}

// ReadSequences parses FASTA text from r and builds one Sequence of the given
// kind per record, in file order.
func ReadSequences(r io.Reader, kind Kind) ([]Sequence, error) {
	var (
		sc   = fasta.NewScanner(r)
		seqs []Sequence
	)
	for sc.Scan() {
		seq, err := NewSequence(kind, sc.Block())
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return seqs, nil
}

// ReadReads parses every record in r as a Read.
func ReadReads(r io.Reader) ([]*Read, error) {
	seqs, err := ReadSequences(r, KindRead)
	if err != nil {
		return nil, err
	}
	reads := make([]*Read, len(seqs))
	for i, s := range seqs {
		reads[i] = s.(*Read)
	}
	return reads, nil
}

// ReadReference parses the first record in r as a Reference. Any further
// records are ignored.
func ReadReference(r io.Reader) (*Reference, error) {
	seqs, err := ReadSequences(r, KindReference)
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, errors.E(errors.Invalid, "empty FASTA file: no reference sequence")
	}
	return seqs[0].(*Reference), nil
}
