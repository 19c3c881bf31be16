package collection

import (
	"encoding/binary"
	"io"

	"github.com/colorlcp/multiacs/acstype"
)

// LoadLengths reads a `<collection>.lenSeqs.aux` sidecar: a flat stream of
// 32-bit little-endian sequence lengths, one per sequence, not including
// the terminator. Each length is stored in info as len+1 (to account for
// the terminator), colors are assigned ids 0, 1, 2, ... in stream order,
// and Size accumulates the same len+1 values, mirroring
// loadCollectionLengths in the ported tool.
func LoadLengths(r io.Reader) (*Info, error) {
	info := New()
	buf := make([]byte, 4*4096)
	var color acstype.SeqId
	for {
		n, err := io.ReadFull(r, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, acstype.Fail("collection", "LoadLengths", err)
		}
		count := n / 4
		for i := 0; i < count; i++ {
			length := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
			storedLen := acstype.Len(length) + 1
			info.Colors[color] = storedLen
			info.Size += acstype.Count(storedLen)
			color++
		}
		if count == 0 {
			break
		}
	}
	return info, nil
}
