// Package compress implements the block compression function of the Tiger hash,
// as specified in http://www.cs.technion.ac.il/~biham/Reports/Tiger/tiger/tiger.html
//
// The package only mixes fixed-size 512-bit blocks into a 192-bit state.
// Buffering, padding and the output encoding belong to the callers,
// see the digest package.
package compress

const (
	BlockSize = 64 // 512 bits
	StateSize = 24 // 192 bits
)

// State is the running value of a Tiger computation.
type State [3]uint64

// Block is a single message block. It's read as eight little-endian words.
type Block [BlockSize]byte

// multipliers of the three passes
const (
	mul1 = 5
	mul2 = 7
	mul3 = 9
)

// Compress mixes the block into the state.
//
// It never fails and takes the same time for any input.
func Compress(s *State, blk *Block) {
	var x [8]uint64
	loadWords(&x, blk)
	compressWords(s, &x)
}

// Blocks compresses all full blocks from p in order and returns the bytes left.
func Blocks(s *State, p []byte) []byte {
	for len(p) >= BlockSize {
		Compress(s, (*Block)(p[:BlockSize]))
		p = p[BlockSize:]
	}
	return p
}

func compressWords(s *State, x *[8]uint64) {
	// no need to save abc

	// first pass
	a, b, c := pass(s[0], s[1], s[2], x, mul1)

	// second pass
	keySchedule(x)
	c, a, b = pass(c, a, b, x, mul2)

	// third pass
	keySchedule(x)
	b, c, a = pass(b, c, a, x, mul3)

	// feed forward
	s[0] ^= a
	s[1] = b - s[1]
	s[2] = c + s[2]
}
