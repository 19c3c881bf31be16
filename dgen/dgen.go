// Package dgen computes the D array from a GESA in a single forward scan,
// using a stack of open LCP intervals that close (and get flushed to the
// D stream) whenever the scan crosses a color boundary relative to a
// distinguished reference color.
package dgen

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/colorlcp/multiacs/acstype"
	"github.com/colorlcp/multiacs/gesaio"
)

// interval is one open LCP interval on the stack: the GESA row position
// where it opened and the LCP value it was opened at.
type interval struct {
	pos acstype.Count
	lcp acstype.Len
}

// Stats reports diagnostics from a Generate run.
type Stats struct {
	RowCount     acstype.Count
	MaxStackDepth int
}

// Generate reads the GESA stream gesa row by row and writes one Len value
// per row to d, encoding the D array via dw's run-length scheme. reference
// is the color whose boundary crossings trigger a stack flush. It returns
// once gesa is exhausted.
//
// This mirrors generateD in the ported algorithm: a stack of open LCP
// intervals, pushed when the LCP strictly increases, popped (and replaced
// by a wider interval starting at the popped interval's position) when the
// LCP strictly decreases, and fully drained — oldest interval first — every
// time the current row's color differs from the previous row's color
// relative to the reference.
func Generate(gesa *gesaio.Reader[acstype.GSA], dw *gesaio.DWriter, reference acstype.SeqId) (Stats, error) {
	var stats Stats
	var stack []interval

	isRef := func(id acstype.SeqId) bool { return id == reference }

	var k acstype.Count
	var lastPos acstype.Count
	var topLcp, maxCommonLcp acstype.Len
	var currentColor bool
	started := false

	for {
		row, err := gesa.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, acstype.Fail("dgen", "Generate", err)
		}
		stats.RowCount++

		if !started {
			if row.Lcp == 0 {
				k++
				continue
			}
			stack = append(stack, interval{pos: k - 1, lcp: row.Lcp})
			if len(stack) > stats.MaxStackDepth {
				stats.MaxStackDepth = len(stack)
			}
			topLcp = row.Lcp
			currentColor = isRef(row.Text)
			started = true
			k++
			continue
		}

		successiveColor := isRef(row.Text)

		if row.Lcp != 0 {
			switch {
			case row.Lcp > topLcp:
				stack = append(stack, interval{pos: k - 1, lcp: row.Lcp})
				if len(stack) > stats.MaxStackDepth {
					stats.MaxStackDepth = len(stack)
				}
				topLcp = row.Lcp
			case row.Lcp < topLcp:
				iniPos := k - 1
				for len(stack) > 0 && row.Lcp < topLcp {
					iniPos = stack[len(stack)-1].pos
					stack = stack[:len(stack)-1]
					if len(stack) > 0 {
						topLcp = stack[len(stack)-1].lcp
					} else {
						topLcp = 0
					}
				}
				if row.Lcp > maxCommonLcp {
					if row.Lcp > topLcp {
						stack = append(stack, interval{pos: iniPos, lcp: row.Lcp})
						if len(stack) > stats.MaxStackDepth {
							stats.MaxStackDepth = len(stack)
						}
					}
				} else {
					maxCommonLcp = row.Lcp
				}
				topLcp = row.Lcp
			}

			if successiveColor != currentColor {
				// Drain oldest-first: the bottom of the stack holds the
				// earliest-opened (and therefore lowest-position) interval.
				for _, iv := range stack {
					dw.WritePair(iv.pos, iv.lcp, lastPos)
					lastPos = iv.pos
					maxCommonLcp = iv.lcp
				}
				stack = stack[:0]
				currentColor = successiveColor
			}
		} else {
			stack = stack[:0]
			currentColor = successiveColor
			maxCommonLcp = 0
			topLcp = 0
		}
		k++
	}

	if started {
		dw.FillZeros(k - 1 - lastPos)
	}
	log.Debug.Printf("dgen: %d rows, max stack depth %d", stats.RowCount, stats.MaxStackDepth)
	return stats, nil
}
