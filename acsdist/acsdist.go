// Package acsdist aggregates the forward/backward colored-LCP scores into
// the Ulitsky-style Average Common Substring distance between a reference
// sequence and every other sequence in its collection.
package acsdist

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/colorlcp/multiacs/acstype"
)

// Compute returns the ACS distance from the reference color to every color
// in [0, m), with the reference's own slot set to 0. lengths[c] must be
// the stored length of color c (including its terminator, per
// collection.Info.SequenceLength); scoreX and scoreR are the backward/
// forward pass outputs, both indexed by color.
//
// This implements computeACS's per-pair formula from the ported tool:
// for reference length n_x and target length n_r (both minus one to
// exclude the terminator),
//
//	d(x,r) = 0.5 * ( log10(s1)/(scoreR/s2) - 2*log10(s2)/s2
//	               + log10(s2)/(scoreX/s1) - 2*log10(s1)/s1 )
//
// where s1 = n_x-1 and s2 = n_r-1. A target whose positive length yields a
// zero score sum (no shared substring at all against a non-trivial
// reference) is an integrity error, not a silent distance of +Inf.
func Compute(m int, reference acstype.SeqId, lengths []acstype.Len, scoreX, scoreR []acstype.Count) ([]float64, error) {
	if len(lengths) != m || len(scoreX) != m || len(scoreR) != m {
		return nil, acstype.Fail("acsdist", "Compute", nil, "mismatched slice lengths")
	}
	nX := lengths[reference]
	if nX == 0 {
		return nil, acstype.Fail("acsdist", "Compute", nil, "reference color has zero length")
	}
	s1 := float64(nX - 1)

	distances := make([]float64, m)
	for r := 0; r < m; r++ {
		if acstype.SeqId(r) == reference {
			distances[r] = 0
			continue
		}
		nR := lengths[r]
		s2 := float64(nR - 1)

		sumR := float64(scoreR[r])
		sumX := float64(scoreX[r])
		if (nR > 0 && sumR == 0) || (nX > 0 && sumX == 0) {
			return nil, acstype.Fail("acsdist", "Compute", nil,
				"zero common-substring score between reference and color", r)
		}

		distances[r] = 0.5 * (
			math.Log10(s1)/(sumR/s2) - (2.0*math.Log10(s2))/s2 +
				math.Log10(s2)/(sumX/s1) - (2.0*math.Log10(s1))/s1)
	}
	return distances, nil
}

// Write serialises distances as tab-separated values, one per color in
// order, matching the ported tool's "%f\t" per-field output -- except at
// reference's own slot, which is always the literal "0" rather than
// "0.000000", matching fprintf(distance_file, "0\t") in
// original_source/src/MultiACS.cpp.
func Write(w io.Writer, reference acstype.SeqId, distances []float64) error {
	bw := bufio.NewWriter(w)
	for r, d := range distances {
		var err error
		if acstype.SeqId(r) == reference {
			_, err = fmt.Fprintf(bw, "0\t")
		} else {
			_, err = fmt.Fprintf(bw, "%f\t", d)
		}
		if err != nil {
			return acstype.Fail("acsdist", "Write", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return acstype.Fail("acsdist", "Write", err)
	}
	return nil
}
