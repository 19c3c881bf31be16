package gesaio

import (
	"io"

	"github.com/grailbio/base/errors"
)

const bitsPerGroup = 8

// IrrelevantReader reads a bit-packed, LSB-first stream of "irrelevant"
// flags, stopping once nBits have been delivered even if the underlying
// byte stream has trailing pad bits in its final byte.
type IrrelevantReader struct {
	r     io.Reader
	nBits uint64
	read  uint64

	buf      []byte
	cursor   int
	lastBits int
}

// NewIrrelevantReader returns a reader over nBits bits packed LSB-first in r.
func NewIrrelevantReader(r io.Reader, nBits uint64) *IrrelevantReader {
	return &IrrelevantReader{r: r, nBits: nBits, buf: make([]byte, BufferSize)}
}

// Next returns the next bit, or io.EOF once nBits bits have been returned.
func (ir *IrrelevantReader) Next() (bool, error) {
	if ir.read >= ir.nBits {
		return false, io.EOF
	}
	if ir.cursor == ir.lastBits {
		n, err := io.ReadFull(ir.r, ir.buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return false, errors.E(err, "buffered read", "irrelevant stream")
		}
		if n == 0 {
			return false, errors.E("irrelevant stream truncated before declared bit count")
		}
		ir.lastBits = n * bitsPerGroup
		ir.cursor = 0
	}
	byteIdx := ir.cursor / bitsPerGroup
	shift := uint(ir.cursor % bitsPerGroup)
	bit := ir.buf[byteIdx]&(1<<shift) != 0
	ir.cursor++
	ir.read++
	return bit, nil
}

// IrrelevantWriter writes a bit-packed, LSB-first stream of "irrelevant"
// flags.
type IrrelevantWriter struct {
	w   io.Writer
	buf []byte
	bit int
	err errors.Once
}

// NewIrrelevantWriter returns a writer that packs bits LSB-first into
// BufferSize-byte groups before flushing to w.
func NewIrrelevantWriter(w io.Writer) *IrrelevantWriter {
	return &IrrelevantWriter{w: w, buf: make([]byte, BufferSize)}
}

// Write appends one bit to the stream.
func (iw *IrrelevantWriter) Write(v bool) {
	if iw.bit == len(iw.buf)*bitsPerGroup {
		iw.flush(len(iw.buf))
	}
	byteIdx := iw.bit / bitsPerGroup
	shift := uint(iw.bit % bitsPerGroup)
	if v {
		iw.buf[byteIdx] |= 1 << shift
	} else {
		iw.buf[byteIdx] &^= 1 << shift
	}
	iw.bit++
}

func (iw *IrrelevantWriter) flush(nBits int) {
	if nBits == 0 {
		return
	}
	nBytes := (nBits + bitsPerGroup - 1) / bitsPerGroup
	if _, err := iw.w.Write(iw.buf[:nBytes]); err != nil {
		iw.err.Set(errors.E(err, "buffered write", "irrelevant stream"))
	}
	for i := range iw.buf {
		iw.buf[i] = 0
	}
	iw.bit = 0
}

// Flush writes any buffered bits (padded with zero bits in the final byte)
// and returns the first write error encountered, if any.
func (iw *IrrelevantWriter) Flush() error {
	iw.flush(iw.bit)
	return iw.err.Err()
}
