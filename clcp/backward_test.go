package clcp

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
)

func encodeLensLE(vals []acstype.Len) []byte {
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf
}

func TestBackwardFillDownRecurrence(t *testing.T) {
	// m=1, nX=4, q=2: one column of cLCP values and one reference LCP
	// stream, chunked in two reverse passes of size 2.
	xclcp := bytes.NewReader(encodeLensLE([]acstype.Len{10, 20, 30, 40}))
	lcpX := bytes.NewReader(encodeLensLE([]acstype.Len{100, 200, 300, 400}))

	result, err := Backward(xclcp, lcpX, 1, 4, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 140, result.ScoreX[0])
}

func TestCeilDiv(t *testing.T) {
	assert.EqualValues(t, 2, ceilDiv(4, 2))
	assert.EqualValues(t, 3, ceilDiv(5, 2))
	assert.EqualValues(t, 1, ceilDiv(1, 2))
}
