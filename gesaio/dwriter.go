package gesaio

import "github.com/colorlcp/multiacs/acstype"

// DWriter wraps a Len Writer with the D-generator's run-length encoding: a
// closed LCP interval of value lcp ending at pos is recorded as zeros for
// every row between the last emitted position and pos, followed by one
// value of lcp+1 at pos itself. This mirrors LCPWriter's writeLCPPair and
// fillWithZeros in the ported algorithm: D is stored densely (one word per
// GESA row) even though most rows carry no new information, so the reader
// side never needs interval bookkeeping of its own.
type DWriter struct {
	w *Writer[acstype.Len]
}

// NewDWriter returns a DWriter over w.
func NewDWriter(w *Writer[acstype.Len]) *DWriter {
	return &DWriter{w: w}
}

// WritePair emits the zero run-up to pos followed by lcp+1 at pos. lastPos
// is the position last written to this stream, or 0 if nothing has been
// written yet; in that case the run-up is pos zeros (positions 0..pos-1)
// instead of pos-lastPos-1, so the value still lands at position pos.
func (dw *DWriter) WritePair(pos acstype.Count, lcp acstype.Len, lastPos acstype.Count) {
	toWrite := pos - lastPos
	if lastPos == 0 {
		toWrite++
	}
	for i := acstype.Count(1); i < toWrite; i++ {
		dw.w.Write(0)
	}
	dw.w.Write(lcp + 1)
}

// FillZeros appends n zero rows, used to pad the D stream out to the full
// GESA row count once the D-generator's stack has drained.
func (dw *DWriter) FillZeros(n acstype.Count) {
	for i := acstype.Count(0); i < n; i++ {
		dw.w.Write(0)
	}
}

// Flush flushes the underlying Writer.
func (dw *DWriter) Flush() error { return dw.w.Flush() }
