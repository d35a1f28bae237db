package digest

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	magic         = "tgr\x01"
	magic2        = "tgr\x02"
	marshaledSize = len(magic) + Size + BlockSize + 8
)

func (d *digest) magic() string {
	if d.padding == padTiger2 {
		return magic2
	}
	return magic
}

// MarshalBinary saves the state of the digest.
// The layout is the magic, three state words, the block buffer and the message length;
// all integers are big-endian.
func (d *digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, d.magic()...)
	b = appendUint64(b, d.s[0])
	b = appendUint64(b, d.s[1])
	b = appendUint64(b, d.s[2])
	b = append(b, d.x[:d.nx]...)
	b = b[:len(b)+len(d.x)-d.nx] // already zero
	b = appendUint64(b, d.len)
	return b, nil
}

// UnmarshalBinary restores the state saved by MarshalBinary.
// The state must come from the same variant of the hash.
func (d *digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) {
		return errors.Wrap(ErrInvalidState, "state is too short")
	} else if m := string(b[:len(magic)]); m != d.magic() {
		if m == magic || m == magic2 {
			return errors.Wrap(ErrInvalidState, "state belongs to another hash variant")
		}
		return errors.Wrap(ErrInvalidState, "unknown state identifier")
	}
	if len(b) != marshaledSize {
		return errors.Wrapf(ErrInvalidState, "unexpected state size: %d vs %d", len(b), marshaledSize)
	}
	b = b[len(magic):]
	b, d.s[0] = consumeUint64(b)
	b, d.s[1] = consumeUint64(b)
	b, d.s[2] = consumeUint64(b)
	b = b[copy(d.x[:], b):]
	b, d.len = consumeUint64(b)
	d.nx = int(d.len % BlockSize)
	return nil
}

func appendUint64(b []byte, x uint64) []byte {
	var a [8]byte
	binary.BigEndian.PutUint64(a[:], x)
	return append(b, a[:]...)
}

func consumeUint64(b []byte) ([]byte, uint64) {
	return b[8:], binary.BigEndian.Uint64(b)
}
