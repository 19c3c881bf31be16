// Package clcp implements the two colored-LCP passes: a forward scan that
// builds score_r and spills a rolling (Q+1)xm window of partial cLCP values
// to disk, and a backward scan that reverse-reads that spill to complete
// score_x. The forward pass keeps its rolling window in a single flat []Len
// buffer indexed i*m+j, one contiguous allocation regardless of Q; the
// backward pass holds each chunk as Q+1 separate per-row slices.
package clcp

import (
	"io"
	"math"

	"github.com/grailbio/base/log"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

// maxLen is the forward pass's "infinity" sentinel for alpha, matching the
// ported algorithm's all-ones SequenceLength constant.
const maxLen acstype.Len = math.MaxUint32

// ComputeQ returns the forward/backward window depth Q: the number of
// reference rows whose cLCP values are held in memory at once, bounded by
// both the memory budget and the reference sequence's own length.
func ComputeQ(memoryBudget acstype.Memory, m int, nX acstype.Len) acstype.Len {
	a := memoryBudget / 4 // sizeof(Len)
	q := acstype.Len((a + acstype.Memory(m) - 1) / acstype.Memory(m))
	if q == 0 {
		q = 1
	}
	if q > nX {
		q = nX
	}
	return q
}

// ForwardResult holds the forward pass's output.
type ForwardResult struct {
	ScoreR []acstype.Count // indexed by color, length m
}

// Forward performs the forward colored-LCP scan: it reads the joint
// (id, lcp, d) stream row by row, and once per reference row also reads
// one value from lcpX, accumulating score_r and spilling the rolling
// (Q+1)xm window to xclcpOut.
//
// m is the number of colors in the collection; reference is the color
// whose rows delimit windows; nX is the reference sequence's stored length
// (including terminator); Q is the window depth from ComputeQ.
func Forward(
	ids *gesaio.Reader[acstype.SeqId],
	lcps *gesaio.Reader[acstype.Len],
	ds *gesaio.Reader[acstype.Len],
	lcpX *gesaio.Reader[acstype.Len],
	xclcpOut *gesaio.Writer[acstype.Len],
	m int, reference acstype.SeqId, q, nX acstype.Len,
) (ForwardResult, error) {
	result := ForwardResult{ScoreR: make([]acstype.Count, m)}

	window := make([]acstype.Len, (int(q)+1)*m)
	lcLcpBit := make([]bool, m)

	var hX, hXIdx acstype.Len
	var alpha acstype.Len = maxLen
	var k acstype.Len

	lcpXValue := gesaio.NextLenOrZero(lcpX)

	row := func(idx acstype.Len) []acstype.Len {
		off := int(idx) * m
		return window[off : off+m]
	}

	for {
		id, err := ids.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, acstype.Fail("clcp", "Forward", err, "id stream")
		}
		lcpValue, err := lcps.Next()
		if err != nil {
			return result, acstype.Fail("clcp", "Forward", err, "lcp stream")
		}
		dValue, err := ds.Next()
		if err != nil {
			return result, acstype.Fail("clcp", "Forward", err, "d stream")
		}

		if id != reference {
			if lcpValue < alpha {
				alpha = lcpValue
			}
			if dValue > 0 && dValue-1 > k {
				k = dValue - 1
			}

			cur := row(hXIdx)
			switch {
			case hX == 0:
				result.ScoreR[id] += acstype.Count(k)
				cur[id] = k
			case alpha > lcpXValue:
				result.ScoreR[id] += acstype.Count(alpha)
				if hX < nX {
					cur[id] = lcpXValue
				}
			default:
				v := maxOf3(alpha, k, lcpXValue)
				result.ScoreR[id] += acstype.Count(v)
				cur[id] = maxOf2(k, lcpXValue)
			}

			if hX > 0 && !lcLcpBit[id] {
				prev := row(hXIdx - 1)
				if alpha > prev[id] {
					prev[id] = alpha
				}
				lcLcpBit[id] = true
			}
		} else {
			if hX > 0 {
				cur := row(hXIdx)
				prev := row(hXIdx - 1)
				for r := 0; r < m; r++ {
					cur[r] = maxOf2(minOf2(prev[r], lcpXValue), cur[r])
				}
			}

			hX++
			hXIdx++
			if hXIdx == q+1 {
				flushRows(xclcpOut, window, m, int(q))
				copy(row(0), row(q))
				for r := 0; r < m; r++ {
					for j := acstype.Len(1); j < q+1; j++ {
						row(j)[r] = 0
					}
				}
				hXIdx = 1
			}
			alpha = maxLen
			k = 0
			for r := range lcLcpBit {
				lcLcpBit[r] = false
			}

			lcpXValue = gesaio.NextLenOrZero(lcpX)
		}
	}

	flushRows(xclcpOut, window, m, int(hXIdx))
	log.Debug.Printf("clcp forward: h_x=%d rows flushed", hX)
	return result, nil
}

func flushRows(w *gesaio.Writer[acstype.Len], window []acstype.Len, m, rows int) {
	for i := 0; i < rows*m; i++ {
		w.Write(window[i])
	}
}

func maxOf2(a, b acstype.Len) acstype.Len {
	if a > b {
		return a
	}
	return b
}

func minOf2(a, b acstype.Len) acstype.Len {
	if a < b {
		return a
	}
	return b
}

func maxOf3(a, b, c acstype.Len) acstype.Len {
	return maxOf2(maxOf2(a, b), c)
}
