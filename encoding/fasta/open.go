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
package fasta

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

type reader struct {
	io.Reader
	ctx context.Context
	in  file.File
	gz  *gzip.Reader
}

// Close implements io.Closer.
func (r *reader) Close() error {
	var err error
	if r.gz != nil {
		err = r.gz.Close()
	}
	if e := r.in.Close(r.ctx); e != nil && err == nil {
		err = e
	}
	return err
}

// Open opens the FASTA file at path for reading. Paths ending in ".gz" are
// decompressed on the fly. The caller must close the result.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	r := &reader{Reader: in.Reader(ctx), ctx: ctx, in: in}
	if strings.HasSuffix(path, ".gz") {
		if r.gz, err = gzip.NewReader(r.Reader); err != nil {
			_ = in.Close(ctx)
			return nil, errors.Wrapf(err, "gunzip %s", path)
		}
		r.Reader = r.gz
	}
	return r, nil
}
