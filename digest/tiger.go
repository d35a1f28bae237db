// Package digest implements the Tiger/192 and Tiger2/192 hash functions.
//
// Tiger/160 and Tiger/128 are simply truncations of the Tiger/192 sum, so there's no specific implementation for those.
package digest

import (
	"encoding"
	"encoding/binary"
	"hash"

	"github.com/pkg/errors"

	"github.com/direct-connect/go-tiger/compress"
)

const (
	BlockSize = compress.BlockSize // 512 bits
	Size      = compress.StateSize // 192 bits
)

// IV is the initial state of Tiger and Tiger2.
var IV = compress.State{0x0123456789ABCDEF, 0xFEDCBA9876543210, 0xF096A5B4C3B2E187}

const (
	padTiger  = 0x01 // MD4 scheme
	padTiger2 = 0x80 // MD5 scheme
)

// ErrInvalidState is returned when restoring a digest from a malformed state.
var ErrInvalidState = errors.New("tiger: invalid hash state")

var (
	_ hash.Hash                  = (*digest)(nil)
	_ encoding.BinaryMarshaler   = (*digest)(nil)
	_ encoding.BinaryUnmarshaler = (*digest)(nil)
)

type digest struct {
	padding byte // 0x01 on Tiger, 0x80 on Tiger2

	s compress.State

	x  compress.Block
	nx int

	// size of the message in bytes
	len uint64
}

// New returns a new hash.Hash that calculates the Tiger/192 hash digest.
//
// The returned hash also implements encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler to save and restore its internal state.
func New() hash.Hash {
	d := &digest{padding: padTiger}
	d.Reset()
	return d
}

// New2 returns a new hash.Hash that calculates the Tiger2/192 hash digest.
//
// Tiger2 is exactly the same as Tiger but with a different padding scheme: while Tiger uses MD4's scheme
// of a 0x01 byte followed by zeros, Tiger2 uses MD5's scheme of a 0x80 byte followed by zeros.
func New2() hash.Hash {
	d := &digest{padding: padTiger2}
	d.Reset()
	return d
}

// Sum returns the Tiger/192 digest of the data.
func Sum(data []byte) [Size]byte {
	d := digest{padding: padTiger, s: IV}
	d.Write(data)
	return d.checkSum()
}

// Sum2 returns the Tiger2/192 digest of the data.
func Sum2(data []byte) [Size]byte {
	d := digest{padding: padTiger2, s: IV}
	d.Write(data)
	return d.checkSum()
}

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Size() int { return Size }

func (d *digest) Reset() {
	d.s = IV
	d.nx = 0
	d.len = 0
}

func (d *digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == BlockSize {
			compress.Compress(&d.s, &d.x)
			d.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= BlockSize {
		p = compress.Blocks(&d.s, p)
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *digest) Sum(in []byte) []byte {
	// make a copy of d so that caller can keep writing and summing
	d0 := *d
	hash := d0.checkSum()
	return append(in, hash[:]...)
}

func (d *digest) checkSum() [Size]byte {
	sz := d.len

	var pad [BlockSize + 8]byte
	pad[0] = d.padding
	if sz%BlockSize < 56 {
		d.Write(pad[:56-sz%BlockSize])
	} else {
		d.Write(pad[:BlockSize+56-sz%BlockSize])
	}

	// length of entire message in bits
	binary.LittleEndian.PutUint64(pad[:8], sz<<3)
	d.Write(pad[:8])

	if d.nx != 0 {
		panic("leftover bytes in buffer")
	}

	var out [Size]byte
	binary.LittleEndian.PutUint64(out[0:], d.s[0])
	binary.LittleEndian.PutUint64(out[8:], d.s[1])
	binary.LittleEndian.PutUint64(out[16:], d.s[2])
	return out
}
