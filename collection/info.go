// Package collection tracks the per-color and per-symbol statistics of a
// sequence collection backing a GESA: color lengths, alphabet symbol
// frequencies, and the join operation used to merge two collections' worth
// of metadata when their GESAs are concatenated.
package collection

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	farm "github.com/dgryski/go-farm"
	"github.com/colorlcp/multiacs/acstype"
)

// Info is the color→length and symbol→frequency metadata for a collection,
// plus the total collection size including per-sequence terminators.
type Info struct {
	Size  acstype.Count
	Freq  map[acstype.Symbol]acstype.Count
	Colors map[acstype.SeqId]acstype.Len
}

// New returns an empty Info ready to be populated by a scan or a load.
func New() *Info {
	return &Info{
		Freq:   make(map[acstype.Symbol]acstype.Count),
		Colors: make(map[acstype.SeqId]acstype.Len),
	}
}

// AlphabetSize returns the number of distinct symbols observed, including
// the terminator.
func (info *Info) AlphabetSize() int { return len(info.Freq) }

// SequenceCount returns the number of sequences (colors) registered.
func (info *Info) SequenceCount() int { return len(info.Colors) }

// SequenceLength returns the stored length (including the terminator) of
// the given color. It returns 0 for an unregistered color.
func (info *Info) SequenceLength(id acstype.SeqId) acstype.Len { return info.Colors[id] }

// Observe records one GESA row's contribution to the symbol-frequency and
// color-length tables, mirroring collectSymbolsAndColorsInfo in the ported
// scanner: every row increments its BWT symbol's frequency and its text
// color's length.
func (info *Info) Observe(bwt acstype.Symbol, color acstype.SeqId) {
	info.Size++
	info.Freq[bwt]++
	info.Colors[color]++
}

// Join merges collection's metadata into info, as if info's GESA and
// collection's GESA had been concatenated. It preserves the original
// implementation's map-collision quirk: colors that collide with an id
// already present in info are renumbered by info's current sequence count,
// but colors that do NOT collide are (incorrectly, but deliberately
// preserved here) inserted into the frequency map rather than the color
// map. See DESIGN.md for why this is kept rather than fixed.
func (info *Info) Join(other *Info) {
	info.Size += other.Size
	for symbol, freq := range other.Freq {
		info.Freq[symbol] += freq
	}
	sequenceNumber := acstype.Len(len(info.Colors))
	for _, id := range sortedSeqIds(other.Colors) {
		length := other.Colors[id]
		if _, collides := info.Colors[id]; collides {
			info.Colors[id+sequenceNumber] = length
		} else {
			info.Freq[acstype.Symbol(id)] += acstype.Count(length)
		}
	}
}

func sortedSeqIds(m map[acstype.SeqId]acstype.Len) []acstype.SeqId {
	ids := make([]acstype.SeqId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Fingerprint returns a hash of the sorted (color, length) and (symbol,
// frequency) pairs, letting two operators confirm they are computing a
// distance over bit-identical collections without diffing the whole .info
// sidecar.
func (info *Info) Fingerprint() uint64 {
	h := farm.Fingerprint64([]byte(fmt.Sprintf("size:%d", info.Size)))
	for _, symbol := range sortedSymbols(info.Freq) {
		h = farm.Fingerprint64(append(uint64ToBytes(h), byte(symbol)))
		h = farm.Fingerprint64(append(uint64ToBytes(h), uint64ToBytes(uint64(info.Freq[symbol]))...))
	}
	for _, id := range sortedSeqIds(info.Colors) {
		h = farm.Fingerprint64(append(uint64ToBytes(h), uint64ToBytes(uint64(id))...))
		h = farm.Fingerprint64(append(uint64ToBytes(h), uint64ToBytes(uint64(info.Colors[id]))...))
	}
	return h
}

func sortedSymbols(m map[acstype.Symbol]acstype.Count) []acstype.Symbol {
	symbols := make([]acstype.Symbol, 0, len(m))
	for s := range m {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}

// Print writes a human-readable report of info to w, mirroring
// printCollectionInfo's layout in the ported tool.
func (info *Info) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Collection Size (with separators): %d\n", info.Size)
	fmt.Fprintf(bw, "Collection Size (without separators): %d\n", info.Size-acstype.Count(len(info.Colors)))
	fmt.Fprintf(bw, "Alphabet dimension: %d (%d + %c)\n", len(info.Freq), len(info.Freq)-1, acstype.Terminate)
	fmt.Fprint(bw, "Symbols Frequency Distribution:")
	for _, symbol := range sortedSymbols(info.Freq) {
		label := symbol
		if label == 0 {
			label = acstype.Terminate
		}
		fmt.Fprintf(bw, " [%c:%d]", label, info.Freq[symbol])
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Number of Sequences: %d\n", len(info.Colors))
	fmt.Fprintln(bw, "Sequences Length Distribution")
	for _, id := range sortedSeqIds(info.Colors) {
		fmt.Fprintf(bw, "Seq %d: %d\n", id, info.Colors[id]-1)
	}
	if err := bw.Flush(); err != nil {
		return acstype.Fail("collection", "Print", err)
	}
	return nil
}
