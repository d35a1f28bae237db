package compress

import "encoding/binary"

func loadWordsSlow(x *[8]uint64, b *Block) {
	for i := range x {
		x[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
}
