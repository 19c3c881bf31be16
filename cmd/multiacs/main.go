package main

/*
multiacs computes the Average Common Substring distance from a reference
sequence to every other sequence in a collection, via two bounded-memory
sequential scans over a Generalized Enhanced Suffix Array.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/runner"
)

var (
	verbose      = flag.Bool("v", false, "Verbose output")
	inputFormat  = flag.Int("f", runner.InputFormatSplit, "Input file format (0 = pre-split .bwt/.lcp/.id triple, 1 = combined .gesa, split in place before computing distances)")
	memoryAmount = flag.Uint64("Q", gesaioDefaultMemory, "Memory budget, in bytes, for the rolling cLCP window")
)

// gesaioDefaultMemory mirrors the ported tool's default: BUFFER_SIZE
// Len-sized words.
const gesaioDefaultMemory = 10000 * 4

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-h] [-v] [-f input_format] [-Q amount] ref_seq target_seqs ref_color output\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositional := flag.NArg()
	positional := allArgs[len(allArgs)-nPositional:]
	if nPositional != 4 {
		usage()
		if nPositional < 4 {
			log.Fatalf("missing positional arguments (ref_seq, target_seqs, ref_color, output required); please check flag syntax: '%s'", strings.Join(positional, " "))
		} else {
			log.Fatalf("too many positional arguments (only ref_seq, target_seqs, ref_color, output expected); please check flag syntax: '%s'", strings.Join(positional, " "))
		}
	}

	var referenceColor uint64
	if _, err := fmt.Sscanf(positional[2], "%d", &referenceColor); err != nil {
		log.Fatalf("invalid reference color %q: %v", positional[2], err)
	}

	opts := &runner.Opts{
		Verbose:              *verbose,
		ReferenceSeqFileName: positional[0],
		TargetCollectionName: positional[1],
		InputFormat:          *inputFormat,
		ReferenceColor:       acstype.SeqId(referenceColor),
		OutputFileName:       positional[3],
		MemoryAmount:         acstype.Memory(*memoryAmount),
	}

	ctx := vcontext.Background()
	if err := runner.Run(ctx, opts); err != nil {
		log.Fatalf(err.Error())
	}
	log.Debug.Printf("exiting")
}
