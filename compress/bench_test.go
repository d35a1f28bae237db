package compress

import (
	"fmt"
	"testing"
)

func BenchmarkCompress(b *testing.B) {
	s, blk := iv, seqBlock()
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(&s, blk)
	}
}

func BenchmarkBlocks(b *testing.B) {
	for _, n := range []int{1, 16, 1024} {
		buf := make([]byte, n*BlockSize)
		b.Run(fmt.Sprintf("%04d_blocks", n), func(b *testing.B) {
			s := iv
			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Blocks(&s, buf)
			}
		})
	}
}
