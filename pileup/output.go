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
package pileup

import (
	"context"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/readmap/encoding/outfile"
	"github.com/grailbio/readmap/mapper"
)

// Write writes cols as pileup text: one
// "<refName>\t<pos>\t<ref base>\t<depth>\t<symbols>" line per column, with no
// header line. The symbols field is empty for zero-depth columns.
func Write(w io.Writer, refName string, cols []Column) error {
	tsvw := tsv.NewWriter(w)
	for _, c := range cols {
		tsvw.WriteString(refName)
		tsvw.WriteUint32(uint32(c.Pos))
		tsvw.WriteByte(c.RefBase)
		tsvw.WriteUint32(uint32(c.Depth))
		tsvw.WriteString(c.Symbols)
		if err := tsvw.EndLine(); err != nil {
			return err
		}
	}
	return tsvw.Flush()
}

// WriteFile builds the pileup of m and writes it to path. If bgzip is set, the
// output is block-gzipped.
func WriteFile(ctx context.Context, path string, m *mapper.Mapping, bgzip bool) error {
	cols := Build(m)
	err := outfile.Write(ctx, path, bgzip, func(w io.Writer) error {
		return Write(w, m.Reference.Name, cols)
	})
	if err != nil {
		return err
	}
	log.Debug.Printf("pileup: wrote %d columns to %s", len(cols), path)
	return nil
}
