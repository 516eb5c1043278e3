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

// Package fasta splits FASTA files into per-sequence blocks.  FASTA files
// consist of a number of named sequences that may be interrupted by newlines.
// For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// yields two blocks, {">chr7", "ACGTAC", "GAGGAC", "GCG"} and {">chr8",
// "ACGT"}. Interpreting the header and the sequence lines is left to the
// caller.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// HeaderMarker starts every header line.
	HeaderMarker = '>'

	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Scanner reads FASTA blocks one at a time. Blank lines are skipped and
// trailing '\r's are removed. Text before the first header is an error.
//
// Usage:
//
//   sc := fasta.NewScanner(r)
//   for sc.Scan() {
//     lines := sc.Block()
//     ...
//   }
//   if err := sc.Err(); err != nil { ... }
type Scanner struct {
	sc      *bufio.Scanner
	block   []string
	pending string // header of the next block, if already read
	err     error
}

// NewScanner creates a Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, bufferInitSize)
	return &Scanner{sc: sc}
}

// Scan advances to the next block. It returns false at the end of the input or
// on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.block = nil
	if s.pending != "" {
		s.block = []string{s.pending}
		s.pending = ""
	}
	for s.sc.Scan() {
		line := strings.TrimRight(s.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == HeaderMarker { // Start a new sequence.
			if s.block != nil {
				s.pending = line
				return true
			}
			s.block = []string{line}
			continue
		}
		if s.block == nil {
			s.err = errors.Errorf("malformed FASTA file: sequence data before the first header: %q", line)
			return false
		}
		s.block = append(s.block, line)
	}
	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrap(err, "couldn't read FASTA data")
		return false
	}
	return s.block != nil
}

// Block returns the lines of the current block. The first line is the header,
// including the leading '>'. The slice is valid until the next call to Scan.
func (s *Scanner) Block() []string { return s.block }

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error { return s.err }
