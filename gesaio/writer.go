package gesaio

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/colorlcp/multiacs/acstype"
)

// Writer buffers values and flushes them to w encoded recordSize bytes at a
// time, mirroring the buffered writers in the algorithm this package
// replaces: it fills an in-memory buffer of BufferSize records and issues
// one write per full buffer.
type Writer[T any] struct {
	w          io.Writer
	recordSize int
	encode     func(T, []byte)

	buf    []byte
	cursor int
	err    errors.Once
}

// NewWriter returns a Writer over w, where each record is recordSize bytes
// and encode serialises one T into a recordSize-byte slice.
func NewWriter[T any](w io.Writer, recordSize int, encode func(T, []byte)) *Writer[T] {
	return &Writer[T]{
		w:          w,
		recordSize: recordSize,
		encode:     encode,
		buf:        make([]byte, recordSize*BufferSize),
	}
}

// Write appends one record to the buffer, flushing to the underlying writer
// when the buffer fills.
func (wr *Writer[T]) Write(v T) {
	if wr.cursor == len(wr.buf) {
		wr.flushBuf(len(wr.buf))
	}
	wr.encode(v, wr.buf[wr.cursor:wr.cursor+wr.recordSize])
	wr.cursor += wr.recordSize
}

func (wr *Writer[T]) flushBuf(n int) {
	if n == 0 {
		return
	}
	if _, err := wr.w.Write(wr.buf[:n]); err != nil {
		wr.err.Set(errors.E(err, "buffered write"))
	}
	wr.cursor = 0
}

// Flush writes any buffered-but-unwritten records and returns the first
// write error encountered, if any.
func (wr *Writer[T]) Flush() error {
	wr.flushBuf(wr.cursor)
	return wr.err.Err()
}

func encodeGESA(v acstype.GSA, b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], v.Text)
	binary.LittleEndian.PutUint32(b[4:8], v.Suff)
	binary.LittleEndian.PutUint32(b[8:12], v.Lcp)
	b[12] = v.Bwt
	b[13] = 0
}

// NewGESAWriter returns a Writer over a stream of 14-byte GESA records.
func NewGESAWriter(w io.Writer) *Writer[acstype.GSA] {
	return NewWriter(w, acstype.GESARecordSize, encodeGESA)
}

func encodeSymbol(v acstype.Symbol, b []byte) { b[0] = v }

// NewSymbolWriter returns a Writer over a stream of 1-byte symbols.
func NewSymbolWriter(w io.Writer) *Writer[acstype.Symbol] {
	return NewWriter(w, 1, encodeSymbol)
}

func encodeId(v acstype.SeqId, b []byte) { binary.LittleEndian.PutUint32(b, v) }

// NewIdWriter returns a Writer over a stream of 4-byte sequence ids.
func NewIdWriter(w io.Writer) *Writer[acstype.SeqId] {
	return NewWriter(w, 4, encodeId)
}

func encodeLen(v acstype.Len, b []byte) { binary.LittleEndian.PutUint32(b, v) }

// NewLenWriter returns a Writer over a stream of 4-byte lengths.
func NewLenWriter(w io.Writer) *Writer[acstype.Len] {
	return NewWriter(w, 4, encodeLen)
}
