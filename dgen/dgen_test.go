package dgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

func readAllLens(t *testing.T, buf *bytes.Buffer) []acstype.Len {
	t.Helper()
	r := gesaio.NewLenReader(bytes.NewReader(buf.Bytes()))
	var out []acstype.Len
	for {
		v, err := r.Next()
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

func writeGESA(rows []acstype.GSA) *gesaio.Reader[acstype.GSA] {
	var buf bytes.Buffer
	w := gesaio.NewGESAWriter(&buf)
	for _, r := range rows {
		w.Write(r)
	}
	w.Flush()
	return gesaio.NewGESAReader(bytes.NewReader(buf.Bytes()))
}

func TestGenerateAllSameColorNeverFlushes(t *testing.T) {
	// Every row belongs to the reference color, so no boundary crossing
	// ever happens; the stack is never drained and the trailing
	// FillZeros call is the D stream's only content.
	rows := []acstype.GSA{
		{Text: 0, Lcp: 0},
		{Text: 0, Lcp: 1},
		{Text: 0, Lcp: 2},
	}
	gesa := writeGESA(rows)
	var dbuf bytes.Buffer
	dw := gesaio.NewDWriter(gesaio.NewLenWriter(&dbuf))

	stats, err := Generate(gesa, dw, 0)
	require.NoError(t, err)
	require.NoError(t, dw.Flush())
	assert.EqualValues(t, 3, stats.RowCount)
	assert.Equal(t, []acstype.Len{0, 0}, readAllLens(t, &dbuf))
}

func TestGenerateEmitsOnColorBoundary(t *testing.T) {
	// Two colors: rows 0-1 belong to color 1 (non-reference), row 2
	// belongs to color 0 (reference) -- at the boundary both open
	// intervals (lcp=1 opened at row 0, lcp=2 opened at row 1) must be
	// flushed, oldest (lowest position) first.
	rows := []acstype.GSA{
		{Text: 1, Lcp: 0},
		{Text: 1, Lcp: 1},
		{Text: 0, Lcp: 2},
	}
	gesa := writeGESA(rows)
	var dbuf bytes.Buffer
	dw := gesaio.NewDWriter(gesaio.NewLenWriter(&dbuf))

	stats, err := Generate(gesa, dw, 0)
	require.NoError(t, err)
	require.NoError(t, dw.Flush())
	assert.Equal(t, 2, stats.MaxStackDepth)
	assert.Equal(t, []acstype.Len{2, 0, 3, 0}, readAllLens(t, &dbuf))
}
