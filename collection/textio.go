package collection

import (
	"bufio"
	"fmt"
	"io"

	"github.com/colorlcp/multiacs/acstype"
)

// SaveText writes info's `.info` sidecar: total size, a `#`-prefixed
// alphabet-size line followed by one `symbol\tfrequency` line per symbol,
// then a `#`-prefixed sequence-count line followed by one `color\tlength`
// line per sequence — the same counted-section layout the ported tool's
// saveCollectionInfo produces.
func (info *Info) SaveText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", info.Size)
	fmt.Fprintf(bw, "#%d\n", len(info.Freq))
	for _, symbol := range sortedSymbols(info.Freq) {
		fmt.Fprintf(bw, "%c\t%d\n", symbol, info.Freq[symbol])
	}
	fmt.Fprintf(bw, "#%d\n", len(info.Colors))
	for _, id := range sortedSeqIds(info.Colors) {
		fmt.Fprintf(bw, "%d\t%d\n", id, info.Colors[id])
	}
	if err := bw.Flush(); err != nil {
		return acstype.Fail("collection", "SaveText", err)
	}
	return nil
}

// LoadText reads an `.info` sidecar written by SaveText (or by the ported
// tool it replaces) into a newly allocated Info.
func LoadText(r io.Reader) (*Info, error) {
	info := New()
	br := bufio.NewReader(r)

	if _, err := fmt.Fscanf(br, "%d\n", &info.Size); err != nil {
		return nil, acstype.Fail("collection", "LoadText", err, "size line")
	}

	var alpha int
	if _, err := fmt.Fscanf(br, "#%d\n", &alpha); err != nil {
		return nil, acstype.Fail("collection", "LoadText", err, "alphabet count line")
	}
	for i := 0; i < alpha; i++ {
		var symbol rune
		var freq acstype.Count
		if _, err := fmt.Fscanf(br, "%c\t%d\n", &symbol, &freq); err != nil {
			return nil, acstype.Fail("collection", "LoadText", err, "frequency row", i)
		}
		info.Freq[acstype.Symbol(symbol)] = freq
	}

	var seqs int
	if _, err := fmt.Fscanf(br, "#%d\n", &seqs); err != nil {
		return nil, acstype.Fail("collection", "LoadText", err, "sequence count line")
	}
	for i := 0; i < seqs; i++ {
		var id acstype.SeqId
		var length acstype.Len
		if _, err := fmt.Fscanf(br, "%d\t%d\n", &id, &length); err != nil {
			return nil, acstype.Fail("collection", "LoadText", err, "color row", i)
		}
		info.Colors[id] = length
	}
	return info, nil
}
