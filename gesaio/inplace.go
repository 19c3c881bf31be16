package gesaio

import (
	"io"

	"github.com/grailbio/base/errors"
)

// InPlacePatcher reads rw page-by-page (BufferSize bytes at a time),
// offers each page to patch for in-place mutation, and writes the mutated
// page back to the same offset before advancing. It is the Go analogue of
// the read-modify-write-at-offset segment writers (InplaceZSegmentWriter
// and friends) in the ported algorithm, used outside the hot cLCP path for
// narrow maintenance operations over an already-produced file.
type InPlacePatcher struct {
	rw     io.ReaderAt
	wa     io.WriterAt
	size   int64
	offset int64
}

// NewInPlacePatcher returns a patcher over rw, which must support both
// ReadAt and WriteAt against the same underlying file of the given size.
func NewInPlacePatcher(rw interface {
	io.ReaderAt
	io.WriterAt
}, size int64) *InPlacePatcher {
	return &InPlacePatcher{rw: rw, wa: rw, size: size}
}

// Patch applies fn to every page of the file in order, writing back any
// bytes fn mutates in place.
func (p *InPlacePatcher) Patch(fn func(page []byte)) error {
	buf := make([]byte, BufferSize)
	for p.offset < p.size {
		n := int64(len(buf))
		if remaining := p.size - p.offset; remaining < n {
			n = remaining
		}
		page := buf[:n]
		if _, err := p.rw.ReadAt(page, p.offset); err != nil && err != io.EOF {
			return errors.E(err, "inplace read", p.offset)
		}
		fn(page)
		if _, err := p.wa.WriteAt(page, p.offset); err != nil {
			return errors.E(err, "inplace write", p.offset)
		}
		p.offset += n
	}
	return nil
}
