//go:build !safe
// +build !safe

package compress

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Puns the block into words on little-endian machines if it's aligned.
func loadWords(x *[8]uint64, b *Block) {
	if !cpu.IsBigEndian && uintptr(unsafe.Pointer(b))&7 == 0 {
		*x = *(*[8]uint64)(unsafe.Pointer(b))
		return
	}
	loadWordsSlow(x, b)
}
