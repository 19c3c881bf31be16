package gesaio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
)

func TestGESAWriterReaderRoundTrip(t *testing.T) {
	rows := []acstype.GSA{
		{Text: 0, Suff: 0, Lcp: 0, Bwt: 'A'},
		{Text: 1, Suff: 3, Lcp: 2, Bwt: 0}, // NUL must round-trip as Terminate
		{Text: 2, Suff: 7, Lcp: 5, Bwt: 'C'},
	}

	var buf bytes.Buffer
	w := NewGESAWriter(&buf)
	for _, r := range rows {
		w.Write(r)
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, len(rows)*acstype.GESARecordSize, buf.Len())

	r := NewGESAReader(&buf)
	for _, want := range rows {
		want.Bwt = acstype.CanonicalizeBwt(want.Bwt)
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestLenReaderSpansMultipleBuffers(t *testing.T) {
	n := BufferSize*2 + 7
	var buf bytes.Buffer
	w := NewLenWriter(&buf)
	for i := 0; i < n; i++ {
		w.Write(acstype.Len(i))
	}
	require.NoError(t, w.Flush())

	r := NewLenReader(&buf)
	for i := 0; i < n; i++ {
		v, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, acstype.Len(i), v)
	}
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNextLenOrZeroPastEOF(t *testing.T) {
	var buf bytes.Buffer
	w := NewLenWriter(&buf)
	w.Write(42)
	require.NoError(t, w.Flush())

	r := NewLenReader(&buf)
	assert.Equal(t, acstype.Len(42), NextLenOrZero(r))
	assert.Equal(t, acstype.Len(0), NextLenOrZero(r))
	assert.Equal(t, acstype.Len(0), NextLenOrZero(r))
}
