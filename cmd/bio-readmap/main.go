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
package main

/*
bio-readmap maps short reads against a single reference sequence using exact
k-mer seeds extended without gaps, and reports the result as SAM and/or
pileup text.

Example:

  bio-readmap -reference fluA.fasta -reads fluA_reads.fasta \
    -seed-length 25 -max-mismatches 2 -sam out.sam -pileup out.pileup
*/

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/readmap/encoding/fasta"
	"github.com/grailbio/readmap/encoding/samwriter"
	"github.com/grailbio/readmap/mapper"
	"github.com/grailbio/readmap/pileup"
)

var (
	referencePath = flag.String("reference", "", "Reference FASTA path (required); only the first sequence is used")
	readsPath     = flag.String("reads", "", "Reads FASTA path (required)")
	seedLength    = flag.Int("seed-length", mapper.DefaultOpts.SeedLength, "Length of the exact-match seed taken from the start of each read")
	maxMismatches = flag.Int("max-mismatches", mapper.DefaultOpts.MaxMismatches, "Placements need strictly fewer mismatches than this")
	samPath       = flag.String("sam", "", "If nonempty, write SAM output to this path")
	pileupPath    = flag.String("pileup", "", "If nonempty, write pileup output to this path")
	bgzip         = flag.Bool("bgzip", false, "Block-gzip the SAM and pileup outputs")
	summary       = flag.Bool("summary", true, "Print a per-position summary of the mapping to stdout")
)

type runFlags struct {
	referencePath, readsPath string
	samPath, pileupPath      string
	bgzip, summary           bool
}

func readReference(ctx context.Context, path string) (ref *mapper.Reference, err error) {
	in, err := fasta.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	return mapper.ReadReference(in)
}

func readReads(ctx context.Context, path string) (reads []*mapper.Read, err error) {
	in, err := fasta.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	return mapper.ReadReads(in)
}

func run(ctx context.Context, flags runFlags, opts mapper.Opts) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	ref, err := readReference(ctx, flags.referencePath)
	if err != nil {
		return err
	}
	reads, err := readReads(ctx, flags.readsPath)
	if err != nil {
		return err
	}
	log.Printf("read %d reads; reference %s has %d bases", len(reads), ref.Name, ref.Len())

	m, stats := mapper.Map(reads, ref, opts)
	log.Printf("mapping done: %v", stats)
	if flags.summary {
		fmt.Println(m)
	}
	if flags.samPath != "" {
		if err := samwriter.WriteFile(ctx, flags.samPath, m, flags.bgzip); err != nil {
			return err
		}
	}
	if flags.pileupPath != "" {
		if err := pileup.WriteFile(ctx, flags.pileupPath, m, flags.bgzip); err != nil {
			return err
		}
	}
	return nil
}

func bioReadmapUsage() {
	fmt.Printf("Usage: %s [OPTIONS] -reference ref.fa -reads reads.fa\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioReadmapUsage
	shutdown := grail.Init()
	defer shutdown()

	if *referencePath == "" || *readsPath == "" {
		log.Fatalf("-reference and -reads are both required")
	}
	if flag.NArg() != 0 {
		log.Fatalf("unexpected positional arguments: %v", flag.Args())
	}
	ctx := vcontext.Background()
	flags := runFlags{
		referencePath: *referencePath,
		readsPath:     *readsPath,
		samPath:       *samPath,
		pileupPath:    *pileupPath,
		bgzip:         *bgzip,
		summary:       *summary,
	}
	opts := mapper.Opts{
		SeedLength:    *seedLength,
		MaxMismatches: *maxMismatches,
	}
	if err := run(ctx, flags, opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
