package converter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

func TestSplitDistributesFieldsToSidecarStreams(t *testing.T) {
	var gesaBuf bytes.Buffer
	gw := gesaio.NewGESAWriter(&gesaBuf)
	gw.Write(acstype.GSA{Text: 2, Suff: 7, Lcp: 3, Bwt: 'A'})
	gw.Write(acstype.GSA{Text: 1, Suff: 4, Lcp: 0, Bwt: 0})
	require.NoError(t, gw.Flush())

	gesa := gesaio.NewGESAReader(bytes.NewReader(gesaBuf.Bytes()))

	var bwtBuf, lcpBuf, idBuf bytes.Buffer
	bwtOut := gesaio.NewSymbolWriter(&bwtBuf)
	lcpOut := gesaio.NewLenWriter(&lcpBuf)
	idOut := gesaio.NewIdWriter(&idBuf)

	require.NoError(t, Split(gesa, bwtOut, lcpOut, idOut))
	require.NoError(t, bwtOut.Flush())
	require.NoError(t, lcpOut.Flush())
	require.NoError(t, idOut.Flush())

	bwtReader := gesaio.NewSymbolReader(bytes.NewReader(bwtBuf.Bytes()))
	b1, err := bwtReader.Next()
	require.NoError(t, err)
	b2, err := bwtReader.Next()
	require.NoError(t, err)
	assert.Equal(t, acstype.Symbol('A'), b1)
	// The GESA reader already canonicalised the second row's NUL byte.
	assert.Equal(t, acstype.Terminate, b2)

	lcpReader := gesaio.NewLenReader(bytes.NewReader(lcpBuf.Bytes()))
	l1, _ := lcpReader.Next()
	l2, _ := lcpReader.Next()
	assert.EqualValues(t, 3, l1)
	assert.EqualValues(t, 0, l2)

	idReader := gesaio.NewIdReader(bytes.NewReader(idBuf.Bytes()))
	id1, _ := idReader.Next()
	id2, _ := idReader.Next()
	assert.EqualValues(t, 2, id1)
	assert.EqualValues(t, 1, id2)
}

func TestRepairTerminateRewritesNULBytesInPlace(t *testing.T) {
	data := []byte{'A', 0, 'C', 0, 'T'}
	rw := &memFileAt{data: data}

	require.NoError(t, RepairTerminate(rw, int64(len(data))))
	assert.Equal(t, []byte{'A', acstype.Terminate, 'C', acstype.Terminate, 'T'}, rw.data)
}

type memFileAt struct{ data []byte }

func (m *memFileAt) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, bytes.ErrTooLarge
	}
	return n, nil
}

func (m *memFileAt) WriteAt(p []byte, off int64) (int, error) {
	copy(m.data[off:], p)
	return len(p), nil
}
