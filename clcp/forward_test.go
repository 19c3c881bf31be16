package clcp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

func TestComputeQBoundedByMemoryAndSequenceLength(t *testing.T) {
	// a = budget/4 = 100, m = 10 -> q = ceil(100/10) = 10, below nX so kept.
	assert.EqualValues(t, 10, ComputeQ(400, 10, 1000))
	// q would be 10 but nX is only 3, so it's clamped down.
	assert.EqualValues(t, 3, ComputeQ(400, 10, 3))
	// tiny budget still yields at least 1.
	assert.EqualValues(t, 1, ComputeQ(1, 10, 1000))
}

func writeLens(vals []acstype.Len) *gesaio.Reader[acstype.Len] {
	var buf bytes.Buffer
	w := gesaio.NewLenWriter(&buf)
	for _, v := range vals {
		w.Write(v)
	}
	w.Flush()
	return gesaio.NewLenReader(bytes.NewReader(buf.Bytes()))
}

func writeIds(vals []acstype.SeqId) *gesaio.Reader[acstype.SeqId] {
	var buf bytes.Buffer
	w := gesaio.NewIdWriter(&buf)
	for _, v := range vals {
		w.Write(v)
	}
	w.Flush()
	return gesaio.NewIdReader(bytes.NewReader(buf.Bytes()))
}

func TestForwardAccumulatesScoreRAndFlushesWindow(t *testing.T) {
	// Two colors: color 0 is the reference, color 1 is the single target.
	// Rows: target(lcp=3,d=0), reference, target(lcp=1,d=0), reference.
	m := 2
	reference := acstype.SeqId(0)
	ids := writeIds([]acstype.SeqId{1, 0, 1, 0})
	lcps := writeLens([]acstype.Len{3, 0, 1, 0})
	ds := writeLens([]acstype.Len{0, 0, 0, 0})
	lcpX := writeLens([]acstype.Len{5, 2})

	var xclcpBuf bytes.Buffer
	xclcpOut := gesaio.NewLenWriter(&xclcpBuf)

	result, err := Forward(ids, lcps, ds, lcpX, xclcpOut, m, reference, 2, 2)
	require.NoError(t, err)
	require.NoError(t, xclcpOut.Flush())

	// Color 1 must have accumulated a nonzero score across both reference
	// rows it preceded.
	assert.Greater(t, result.ScoreR[1], acstype.Count(0))
	// The reference's own slot is never written by Forward.
	assert.EqualValues(t, 0, result.ScoreR[0])

	// Some rows were spilled to the xclcp stream.
	out := readAllLensFlat(t, &xclcpBuf, m)
	assert.NotEmpty(t, out)
}

func readAllLensFlat(t *testing.T, buf *bytes.Buffer, m int) [][]acstype.Len {
	t.Helper()
	r := gesaio.NewLenReader(bytes.NewReader(buf.Bytes()))
	var rows [][]acstype.Len
	for {
		row := make([]acstype.Len, m)
		ok := true
		for i := 0; i < m; i++ {
			v, err := r.Next()
			if err != nil {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

func TestMaxOfAndMinOfHelpers(t *testing.T) {
	assert.EqualValues(t, 5, maxOf2(5, 3))
	assert.EqualValues(t, 5, maxOf2(3, 5))
	assert.EqualValues(t, 3, minOf2(5, 3))
	assert.EqualValues(t, 7, maxOf3(1, 7, 4))
}
