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

// Package samwriter renders a mapper.Mapping as SAM text.
//
// The output has a single @SQ header line followed by one ungapped,
// forward-strand alignment line per placement, e.g.
//
//   @SQ	SN:ref	LN:13
//   read1	0	ref	3	255	9M	*	0	0	TGCTCGCGT	*
//
// Fields are separated by tabs only. Names are cut at their first
// whitespace, as SAM names cannot contain spaces. Mapping quality is always
// 255 (unavailable) and qualities are always '*'. Read bases are written as
// they appear in the read.
package samwriter

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/readmap/encoding/outfile"
	"github.com/grailbio/readmap/mapper"
)

const (
	// mapQUnavailable is the SAM MAPQ value meaning "not available".
	mapQUnavailable = 255
	// missing renders an absent string field.
	missing = "*"
)

// Name returns the SAM form of a record name: its first whitespace-delimited
// token, or "*" if the name is blank.
func Name(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return missing
	}
	return fields[0]
}

// NewRecord returns the SAM record for read placed at zero-based pos. The
// record has no reference attached and no packed sequence; Write supplies
// both from the Mapping. Unlike sam.NewRecord, it accepts names of any
// length.
func NewRecord(read *mapper.Read, pos int) *sam.Record {
	return &sam.Record{
		Name:    Name(read.Name),
		Pos:     pos,
		MapQ:    mapQUnavailable,
		Cigar:   []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, read.Len())},
		MatePos: -1,
	}
}

func writeHeader(tsvw *tsv.Writer, refName string, refLen int) error {
	tsvw.WriteString("@SQ")
	tsvw.WriteString("SN:" + refName)
	tsvw.WriteString("LN:" + strconv.Itoa(refLen))
	return tsvw.EndLine()
}

func writeRecord(tsvw *tsv.Writer, refName string, r *sam.Record, bases string) error {
	tsvw.WriteString(r.Name)
	tsvw.WriteUint32(uint32(r.Flags))
	tsvw.WriteString(refName)
	tsvw.WriteInt64(int64(r.Pos + 1)) // POS is 1-based in SAM text
	tsvw.WriteUint32(uint32(r.MapQ))
	tsvw.WriteString(r.Cigar.String())
	tsvw.WriteString(r.MateRef.Name()) // "*" when there is no mate
	tsvw.WriteInt64(int64(r.MatePos + 1))
	tsvw.WriteInt64(int64(r.TempLen))
	tsvw.WriteString(bases)
	tsvw.WriteString(missing)
	return tsvw.EndLine()
}

// Write writes m as SAM text to w. Alignment lines follow the Mapping's
// position order, then insertion order within a position.
func Write(w io.Writer, m *mapper.Mapping) error {
	refName := Name(m.Reference.Name)
	tsvw := tsv.NewWriter(w)
	if err := writeHeader(tsvw, refName, m.Reference.Len()); err != nil {
		return err
	}
	err := m.Each(func(read *mapper.Read, pos int) error {
		return writeRecord(tsvw, refName, NewRecord(read, pos), read.Bases)
	})
	if err != nil {
		return err
	}
	return tsvw.Flush()
}

// WriteFile writes m as SAM text to path. If bgzip is set, the output is
// block-gzipped.
func WriteFile(ctx context.Context, path string, m *mapper.Mapping, bgzip bool) error {
	err := outfile.Write(ctx, path, bgzip, func(w io.Writer) error {
		return Write(w, m)
	})
	if err != nil {
		return err
	}
	log.Debug.Printf("sam: wrote %d alignments to %s", m.Len(), path)
	return nil
}
