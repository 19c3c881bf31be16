// Package converter splits a combined GESA stream into its per-field
// sidecar streams (BWT symbols, LCP values, sequence ids) and offers a
// narrow in-place maintenance operation over an already-produced BWT file.
package converter

import (
	"io"

	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

// Split reads gesa row by row and writes its Bwt, Lcp, and Text fields to
// bwtOut, lcpOut, and idOut respectively. The BWT field is already
// canonicalised (NUL rewritten to acstype.Terminate) by the GESA reader's
// own decode step. This mirrors extractFromGESA in the ported tool.
func Split(gesa *gesaio.Reader[acstype.GSA], bwtOut *gesaio.Writer[acstype.Symbol], lcpOut *gesaio.Writer[acstype.Len], idOut *gesaio.Writer[acstype.SeqId]) error {
	for {
		row, err := gesa.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return acstype.Fail("converter", "Split", err)
		}
		bwtOut.Write(row.Bwt)
		lcpOut.Write(row.Lcp)
		idOut.Write(row.Text)
	}
	return nil
}

// RepairTerminate scans an already-produced BWT file in place and rewrites
// any literal NUL byte to acstype.Terminate, without reading the whole
// file into memory. It is a narrow maintenance operation grounded in the
// ported writer's in-place segment-writer family (InplaceZSegmentWriter
// and its siblings in Writer.cpp), repurposed here to a single-pass
// symbol-canonicalisation sweep rather than a sequential append.
func RepairTerminate(rw interface {
	io.ReaderAt
	io.WriterAt
}, size int64) error {
	patcher := gesaio.NewInPlacePatcher(rw, size)
	return patcher.Patch(func(page []byte) {
		for i, b := range page {
			if b == 0 {
				page[i] = acstype.Terminate
			}
		}
	})
}
