//go:build safe
// +build safe

package compress

// Decodes the words with encoding/binary.
func loadWords(x *[8]uint64, b *Block) {
	loadWordsSlow(x, b)
}
