// Package tiger implements Tiger hash function and TTH (Tiger Tree Hash) algorithm.
package tiger

import (
	"encoding"
	"encoding/base32"
	"encoding/hex"
	"hash"

	"github.com/pkg/errors"

	"github.com/direct-connect/go-tiger/digest"
)

// New returns a new hash.Hash that calculates the Tiger/192 hash digest.
func New() hash.Hash {
	return digest.New()
}

// New2 returns a new hash.Hash that calculates the Tiger2/192 hash digest.
//
// Tiger2 is exactly the same as Tiger but with a different padding scheme: while Tiger uses MD4's scheme
// of a 0x01 byte followed by zeros, Tiger2 uses MD5's scheme of a 0x80 byte followed by zeros.
func New2() hash.Hash {
	return digest.New2()
}

const (
	BlockSize = digest.BlockSize // 512 bits
	Size      = digest.Size      // 192 bits
)

// HashBytes calculates the tiger hash of a byte slice.
func HashBytes(b []byte) Hash {
	return Hash(digest.Sum(b))
}

// HashBytes2 calculates the tiger2 hash of a byte slice.
func HashBytes2(b []byte) Hash {
	return Hash(digest.Sum2(b))
}

// MustParseBase32 parses the tiger hash from base32 encoding and panics on error.
func MustParseBase32(s string) Hash {
	h, err := ParseBase32(s)
	if err != nil {
		panic(err)
	}
	return h
}

// ParseBase32 parses the tiger hash from base32 encoding.
func ParseBase32(s string) (out Hash, err error) {
	err = out.FromBase32(s)
	return
}

// ParseHex parses the tiger hash from hexadecimal encoding.
func ParseHex(s string) (out Hash, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, errors.Wrap(err, "invalid hex hash")
	} else if len(b) != Size {
		return out, errors.Errorf("wrong hex size: %d vs %d", len(b), Size)
	}
	copy(out[:], b)
	return out, nil
}

var (
	_ encoding.TextMarshaler   = (*Hash)(nil)
	_ encoding.TextUnmarshaler = (*Hash)(nil)
)

var zeroTH = Hash{}

// Hash is a tiger hash value.
type Hash [Size]byte

// IsZero check if hash value is zero.
func (h Hash) IsZero() bool { return h == zeroTH }

// Bytes returns byte slice from the hash. Same as h[:].
func (h Hash) Bytes() []byte { return h[:] }

// String returns base32 representation of the hash.
func (h Hash) String() string { return h.Base32() }

// Hex returns hexadecimal representation of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Base32 returns base32 representation of the hash, without the padding.
func (h Hash) Base32() string {
	return base32.StdEncoding.EncodeToString(h[:])[:39]
}

// FromBase32 parses hash from base32 encoding.
func (h *Hash) FromBase32(s string) error {
	if len(s) != 39 {
		return errors.Errorf("wrong base32 length: %d vs %d", len(s), 39)
	}
	b, err := base32.StdEncoding.DecodeString(s + "=")
	if err != nil {
		return errors.Wrap(err, "invalid base32 hash")
	} else if n := copy((*h)[:], b); n != len(h) {
		return errors.Errorf("wrong base32 size: %d vs %d", n, len(h))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Base32()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	return h.FromBase32(string(text))
}
