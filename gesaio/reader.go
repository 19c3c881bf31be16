// Package gesaio provides the buffered, fixed-record binary streams that
// every multiacs pass is built on: generic readers/writers over GESA rows,
// symbols, ids, and lengths, a bit-packed "irrelevant" stream, and an
// in-place patcher used outside the hot path. Every stream keeps a single
// BufferSize-record buffer and refills it in one read, mirroring the
// buffered-record streams in the ported algorithm this package replaces.
package gesaio

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/colorlcp/multiacs/acstype"
)

// BufferSize is the number of fixed-size records buffered per refill.
const BufferSize = 10000

// Reader buffers RecordSize-byte records read from r and decodes them with
// decode. It has no notion of EOF beyond what Next reports: once the
// underlying reader is exhausted, Next returns io.EOF forever after.
type Reader[T any] struct {
	r          io.Reader
	recordSize int
	decode     func([]byte) T

	buf      []byte
	cursor   int
	lastRead int
	eof      bool
}

// NewReader returns a Reader over r, where each record is recordSize bytes
// and decode converts one record's bytes into a T.
func NewReader[T any](r io.Reader, recordSize int, decode func([]byte) T) *Reader[T] {
	return &Reader[T]{
		r:          r,
		recordSize: recordSize,
		decode:     decode,
		buf:        make([]byte, recordSize*BufferSize),
	}
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (rd *Reader[T]) Next() (T, error) {
	var zero T
	if rd.eof {
		return zero, io.EOF
	}
	if rd.cursor == rd.lastRead {
		n, err := io.ReadFull(rd.r, rd.buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			rd.eof = true
			return zero, errors.E(err, "buffered read")
		}
		// A trailing short read (n not a multiple of recordSize) means the
		// stream ends in the middle of a record; that is reported as an
		// error rather than dropped.
		if rem := n % rd.recordSize; rem != 0 {
			rd.eof = true
			return zero, errors.E("truncated record", rem, "trailing bytes")
		}
		recordsRead := n / rd.recordSize
		if recordsRead == 0 {
			rd.eof = true
			return zero, io.EOF
		}
		rd.lastRead = recordsRead * rd.recordSize
		rd.cursor = 0
	}
	off := rd.cursor
	rd.cursor += rd.recordSize
	return rd.decode(rd.buf[off : off+rd.recordSize]), nil
}

// decodeGESA decodes one 14-byte GESA record: text(4) | suff(4) | lcp(4) |
// bwt(1) | pad(1). The pad byte is always discarded.
func decodeGESA(b []byte) acstype.GSA {
	return acstype.GSA{
		Text: binary.LittleEndian.Uint32(b[0:4]),
		Suff: binary.LittleEndian.Uint32(b[4:8]),
		Lcp:  binary.LittleEndian.Uint32(b[8:12]),
		Bwt:  acstype.CanonicalizeBwt(b[12]),
	}
}

// NewGESAReader returns a Reader over a stream of 14-byte GESA records.
func NewGESAReader(r io.Reader) *Reader[acstype.GSA] {
	return NewReader(r, acstype.GESARecordSize, decodeGESA)
}

func decodeSymbol(b []byte) acstype.Symbol { return acstype.CanonicalizeBwt(b[0]) }

// NewSymbolReader returns a Reader over a stream of 1-byte symbols (BWT or
// text characters).
func NewSymbolReader(r io.Reader) *Reader[acstype.Symbol] {
	return NewReader(r, 1, decodeSymbol)
}

func decodeId(b []byte) acstype.SeqId { return binary.LittleEndian.Uint32(b) }

// NewIdReader returns a Reader over a stream of 4-byte sequence ids.
func NewIdReader(r io.Reader) *Reader[acstype.SeqId] {
	return NewReader(r, 4, decodeId)
}

func decodeLen(b []byte) acstype.Len { return binary.LittleEndian.Uint32(b) }

// NewLenReader returns a Reader over a stream of 4-byte lengths, shared by
// the LCP, D, and reference-LCP streams.
func NewLenReader(r io.Reader) *Reader[acstype.Len] {
	return NewReader(r, 4, decodeLen)
}

// NextLenOrZero reads the next Len from rd, returning 0 once the stream is
// exhausted instead of propagating io.EOF. It implements the past-EOF
// zero-fill convention the forward cLCP pass relies on when consuming the
// reference LCP stream past its last row.
func NextLenOrZero(rd *Reader[acstype.Len]) acstype.Len {
	v, err := rd.Next()
	if err != nil {
		return 0
	}
	return v
}
