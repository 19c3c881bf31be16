package clcp

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/colorlcp/multiacs/acstype"
)

// BackwardResult holds the backward pass's output.
type BackwardResult struct {
	ScoreX []acstype.Count // indexed by color, length m
}

// Backward completes the colored-LCP computation by reverse-reading the
// forward pass's (Q+1)xm spilled window together with the reference LCP
// stream, applying a min/max "fill-down" recurrence chunk by chunk from
// the end of the reference sequence back to its start.
//
// xclcp must contain nX rows of m Len values each (the full spill produced
// by Forward); lcpX must contain nX Len values. Both are consumed by
// seeking to an absolute byte offset and reading forward from there,
// mirroring the ported algorithm's fseek-then-fread chunking rather than
// true random access.
func Backward(xclcp, lcpX io.ReadSeeker, m int, nX, q acstype.Len) (BackwardResult, error) {
	result := BackwardResult{ScoreX: make([]acstype.Count, m)}

	window := make([][]acstype.Len, q+1)
	for i := range window {
		window[i] = make([]acstype.Len, m)
	}
	lcpXBuf := make([]acstype.Len, q+1)

	h := ceilDiv(nX, q)
	qq := q
	queryPos := nX

	for step := acstype.Len(1); step <= h; step++ {
		if qq > queryPos {
			qq = queryPos
		}
		queryPos -= qq

		extra := acstype.Len(0)
		if step != 1 {
			extra = 1
		}
		rowsToRead := int(qq + extra)

		if _, err := xclcp.Seek(int64(queryPos)*int64(m)*4, io.SeekStart); err != nil {
			return result, acstype.Fail("clcp", "Backward", err, "seek xclcp", queryPos)
		}
		if err := readLenRows(xclcp, window, m, rowsToRead); err != nil {
			return result, acstype.Fail("clcp", "Backward", err, "read xclcp chunk", queryPos)
		}

		if _, err := lcpX.Seek(int64(queryPos)*4, io.SeekStart); err != nil {
			return result, acstype.Fail("clcp", "Backward", err, "seek lcp_x", queryPos)
		}
		if err := readLenFlat(lcpX, lcpXBuf, rowsToRead); err != nil {
			return result, acstype.Fail("clcp", "Backward", err, "read lcp_x chunk", queryPos)
		}

		for k := qq; k > 0; k-- {
			for r := 0; r < m; r++ {
				if queryPos+k == nX {
					result.ScoreX[r] += acstype.Count(window[k-1][r])
				} else {
					v := maxOf2(minOf2(window[k][r], lcpXBuf[k]), window[k-1][r])
					window[k-1][r] = v
					result.ScoreX[r] += acstype.Count(v)
				}
			}
		}
	}

	log.Debug.Printf("clcp backward: %d chunks processed", h)
	return result, nil
}

func readLenRows(r io.Reader, window [][]acstype.Len, m, rows int) error {
	buf := make([]byte, rows*m*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for j := 0; j < rows; j++ {
		for c := 0; c < m; c++ {
			off := (j*m + c) * 4
			window[j][c] = leUint32(buf[off : off+4])
		}
	}
	return nil
}

func readLenFlat(r io.Reader, out []acstype.Len, n int) error {
	buf := make([]byte, n*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = leUint32(buf[i*4 : i*4+4])
	}
	return nil
}

func leUint32(b []byte) acstype.Len {
	return acstype.Len(b[0]) | acstype.Len(b[1])<<8 | acstype.Len(b[2])<<16 | acstype.Len(b[3])<<24
}

func ceilDiv(a, b acstype.Len) acstype.Len {
	return (a + b - 1) / b
}
