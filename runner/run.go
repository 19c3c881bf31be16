// Package runner orchestrates a full ACS distance computation: loading
// collection metadata, running the D-generator and both colored-LCP
// passes, and writing the final distance vector. It is the library side
// of cmd/multiacs; main.go only parses flags and calls Run.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/colorlcp/multiacs/acsdist"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/clcp"
	"github.com/colorlcp/multiacs/collection"
	"github.com/colorlcp/multiacs/converter"
	"github.com/colorlcp/multiacs/dgen"
	"github.com/colorlcp/multiacs/gesaio"
)

// InputFormat values for Opts.InputFormat, matching the ported tool's -f flag.
const (
	// InputFormatSplit expects pre-split .bwt/.lcp/.id sidecars alongside
	// each .gesa file.
	InputFormatSplit = 0
	// InputFormatGESA expects only a combined .gesa file for each of
	// ReferenceSeqFileName and TargetCollectionName; Run splits each into
	// its .bwt/.lcp/.id sidecars before the forward/backward passes.
	InputFormatGESA = 1
)

// Opts mirrors MultiACSParameters from the ported tool.
type Opts struct {
	Verbose               bool
	ReferenceSeqFileName  string
	TargetCollectionName  string
	InputFormat           int
	ReferenceColor        acstype.SeqId
	OutputFileName        string
	MemoryAmount          acstype.Memory
}

const (
	extGESA      = ".gesa"
	extBwt       = ".bwt"
	extLcp       = ".lcp"
	extId        = ".id"
	extD         = ".d"
	extPartialC  = ".xclcp"
	extDistance  = ".acs"
	extLengthAux = ".lenSeqs.aux"
)

// Run performs the full pipeline described in SPEC_FULL.md §4: it loads
// collection lengths, generates D, runs the forward and backward
// colored-LCP passes, and writes the ACS distance vector to
// opts.OutputFileName + ".acs".
func Run(ctx context.Context, opts *Opts) error {
	if opts.InputFormat == InputFormatGESA {
		if err := splitGESA(ctx, opts.ReferenceSeqFileName); err != nil {
			return err
		}
		if err := splitGESA(ctx, opts.TargetCollectionName); err != nil {
			return err
		}
	}

	info, err := loadCollection(ctx, opts)
	if err != nil {
		return err
	}
	if _, ok := info.Colors[opts.ReferenceColor]; !ok {
		return acstype.Fail("runner", "Run", nil, "reference color not found in target collection")
	}
	if opts.Verbose {
		if werr := info.Print(os.Stdout); werr != nil {
			return werr
		}
		log.Printf("runner: %s", Fingerprint(info))
	}

	m := info.SequenceCount()
	nX := info.SequenceLength(opts.ReferenceColor)

	if err := runDGenerator(ctx, opts); err != nil {
		return err
	}

	q := clcp.ComputeQ(opts.MemoryAmount, m, nX)
	log.Debug.Printf("runner: m=%d n_x=%d Q=%d", m, nX, q)

	scoreR, err := runForward(ctx, opts, m, nX, q)
	if err != nil {
		return err
	}
	scoreX, err := runBackward(ctx, opts, m, nX, q)
	if err != nil {
		return err
	}

	lengths := make([]acstype.Len, m)
	for id, length := range info.Colors {
		if int(id) < m {
			lengths[id] = length
		}
	}

	distances, err := acsdist.Compute(m, opts.ReferenceColor, lengths, scoreX, scoreR)
	if err != nil {
		return err
	}
	return writeDistances(ctx, opts, distances)
}

// splitGESA extracts namePrefix+".bwt"/".lcp"/".id" from namePrefix+".gesa",
// mirroring GESAConverter::extractFromGESA. It is run once per input file
// (reference and target) when Opts.InputFormat is InputFormatGESA, so the
// rest of the pipeline can assume split sidecars exist regardless of which
// input format was requested.
func splitGESA(ctx context.Context, namePrefix string) error {
	gesaFile, err := file.Open(ctx, namePrefix+extGESA)
	if err != nil {
		return acstype.Fail("runner", "splitGESA", err, namePrefix+extGESA)
	}
	defer gesaFile.Close(ctx)

	e := errors.Once{}
	closeAll := func(files ...file.File) {
		for _, f := range files {
			if f != nil {
				e.Set(f.Close(ctx))
			}
		}
	}

	bwtFile, err := file.Create(ctx, namePrefix+extBwt)
	if err != nil {
		return acstype.Fail("runner", "splitGESA", err, namePrefix+extBwt)
	}
	lcpFile, err := file.Create(ctx, namePrefix+extLcp)
	if err != nil {
		closeAll(bwtFile)
		return acstype.Fail("runner", "splitGESA", err, namePrefix+extLcp)
	}
	idFile, err := file.Create(ctx, namePrefix+extId)
	if err != nil {
		closeAll(bwtFile, lcpFile)
		return acstype.Fail("runner", "splitGESA", err, namePrefix+extId)
	}
	defer closeAll(bwtFile, lcpFile, idFile)

	gesaReader := gesaio.NewGESAReader(gesaFile.Reader(ctx))
	bwtWriter := gesaio.NewSymbolWriter(bwtFile.Writer(ctx))
	lcpWriter := gesaio.NewLenWriter(lcpFile.Writer(ctx))
	idWriter := gesaio.NewIdWriter(idFile.Writer(ctx))

	if err := converter.Split(gesaReader, bwtWriter, lcpWriter, idWriter); err != nil {
		return err
	}
	if err := bwtWriter.Flush(); err != nil {
		return err
	}
	if err := lcpWriter.Flush(); err != nil {
		return err
	}
	if err := idWriter.Flush(); err != nil {
		return err
	}
	return e.Err()
}

func loadCollection(ctx context.Context, opts *Opts) (*collection.Info, error) {
	f, err := file.Open(ctx, opts.TargetCollectionName+extLengthAux)
	if err != nil {
		return nil, acstype.Fail("runner", "loadCollection", err, opts.TargetCollectionName+extLengthAux)
	}
	defer f.Close(ctx)
	info, err := collection.LoadLengths(f.Reader(ctx))
	if err != nil {
		return nil, err
	}
	return info, nil
}

func runDGenerator(ctx context.Context, opts *Opts) error {
	gesaFile, err := file.Open(ctx, opts.TargetCollectionName+extGESA)
	if err != nil {
		return acstype.Fail("runner", "runDGenerator", err, opts.TargetCollectionName+extGESA)
	}
	defer gesaFile.Close(ctx)

	dFile, err := file.Create(ctx, opts.OutputFileName+extD)
	if err != nil {
		return acstype.Fail("runner", "runDGenerator", err, opts.OutputFileName+extD)
	}
	defer dFile.Close(ctx)

	gesaReader := gesaio.NewGESAReader(gesaFile.Reader(ctx))
	dWriter := gesaio.NewDWriter(gesaio.NewLenWriter(dFile.Writer(ctx)))

	if _, err := dgen.Generate(gesaReader, dWriter, opts.ReferenceColor); err != nil {
		return err
	}
	return dWriter.Flush()
}

func runForward(ctx context.Context, opts *Opts, m int, nX, q acstype.Len) ([]acstype.Count, error) {
	e := errors.Once{}
	closeAll := func(files ...file.File) {
		for _, f := range files {
			if f != nil {
				e.Set(f.Close(ctx))
			}
		}
	}

	idFile, err := file.Open(ctx, opts.TargetCollectionName+extId)
	if err != nil {
		return nil, acstype.Fail("runner", "runForward", err, extId)
	}
	lcpFile, err := file.Open(ctx, opts.TargetCollectionName+extLcp)
	if err != nil {
		closeAll(idFile)
		return nil, acstype.Fail("runner", "runForward", err, extLcp)
	}
	dFile, err := file.Open(ctx, opts.OutputFileName+extD)
	if err != nil {
		closeAll(idFile, lcpFile)
		return nil, acstype.Fail("runner", "runForward", err, extD)
	}
	lcpXFile, err := file.Open(ctx, opts.ReferenceSeqFileName+extLcp)
	if err != nil {
		closeAll(idFile, lcpFile, dFile)
		return nil, acstype.Fail("runner", "runForward", err, "reference "+extLcp)
	}
	xclcpFile, err := file.Create(ctx, opts.OutputFileName+extPartialC)
	if err != nil {
		closeAll(idFile, lcpFile, dFile, lcpXFile)
		return nil, acstype.Fail("runner", "runForward", err, extPartialC)
	}
	defer closeAll(idFile, lcpFile, dFile, lcpXFile, xclcpFile)

	ids := gesaio.NewIdReader(idFile.Reader(ctx))
	lcps := gesaio.NewLenReader(lcpFile.Reader(ctx))
	ds := gesaio.NewLenReader(dFile.Reader(ctx))
	lcpX := gesaio.NewLenReader(lcpXFile.Reader(ctx))
	xclcpOut := gesaio.NewLenWriter(xclcpFile.Writer(ctx))

	result, err := clcp.Forward(ids, lcps, ds, lcpX, xclcpOut, m, opts.ReferenceColor, q, nX)
	if err != nil {
		return nil, err
	}
	if err := xclcpOut.Flush(); err != nil {
		return nil, err
	}
	if err := e.Err(); err != nil {
		return nil, err
	}
	return result.ScoreR, nil
}

func runBackward(ctx context.Context, opts *Opts, m int, nX, q acstype.Len) ([]acstype.Count, error) {
	lcpXFile, err := file.Open(ctx, opts.ReferenceSeqFileName+extLcp)
	if err != nil {
		return nil, acstype.Fail("runner", "runBackward", err, "reference "+extLcp)
	}
	defer lcpXFile.Close(ctx)

	xclcpFile, err := file.Open(ctx, opts.OutputFileName+extPartialC)
	if err != nil {
		return nil, acstype.Fail("runner", "runBackward", err, extPartialC)
	}
	defer xclcpFile.Close(ctx)

	lcpXSeeker, ok := lcpXFile.Reader(ctx).(io.ReadSeeker)
	if !ok {
		return nil, acstype.Fail("runner", "runBackward", nil, "reference lcp stream does not support seeking")
	}
	xclcpSeeker, ok := xclcpFile.Reader(ctx).(io.ReadSeeker)
	if !ok {
		return nil, acstype.Fail("runner", "runBackward", nil, "xclcp stream does not support seeking")
	}

	result, err := clcp.Backward(xclcpSeeker, lcpXSeeker, m, nX, q)
	if err != nil {
		return nil, err
	}
	return result.ScoreX, nil
}

func writeDistances(ctx context.Context, opts *Opts, distances []float64) error {
	out, err := file.Create(ctx, opts.OutputFileName+extDistance)
	if err != nil {
		return acstype.Fail("runner", "writeDistances", err, opts.OutputFileName+extDistance)
	}
	defer out.Close(ctx)
	if err := acsdist.Write(out.Writer(ctx), opts.ReferenceColor, distances); err != nil {
		return err
	}
	log.Printf("wrote %s", opts.OutputFileName+extDistance)
	return nil
}

// Fingerprint is a small debugging helper wired for -v runs: it reports a
// human-readable summary string for the collection so operators can
// sanity-check they pointed multiacs at the files they meant to.
func Fingerprint(info *collection.Info) string {
	return fmt.Sprintf("fingerprint=%x sequences=%d alphabet=%d", info.Fingerprint(), info.SequenceCount(), info.AlphabetSize())
}
