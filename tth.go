package tiger

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/direct-connect/go-tiger/digest"
)

// LeafSize is the size of data blocks at the bottom of the hash tree.
const LeafSize = 1024

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// TreeHash calculates a Tiger Tree Hash of a reader.
func TreeHash(r io.Reader) (Hash, error) {
	var t TreeHasher
	if _, err := io.Copy(&t, r); err != nil {
		return Hash{}, err
	}
	return t.Sum(), nil
}

// TreeHashFile calculates a Tiger Tree Hash of a file.
func TreeHashFile(path string) (Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hash{}, err
	}
	defer f.Close()
	h, err := TreeHash(f)
	if err != nil {
		return Hash{}, errors.Wrapf(err, "cannot hash %q", path)
	}
	return h, nil
}

type subtree struct {
	h   Hash
	lvl int
}

// TreeHasher calculates a Tiger Tree Hash of the data written to it.
//
// Only the roots of complete subtrees are kept, so the memory used grows
// with the logarithm of the data size. The zero value is ready to use.
type TreeHasher struct {
	leaf   [1 + LeafSize]byte
	n      int   // bytes in the current leaf
	size   int64 // total bytes written
	leaves int64
	stack  []subtree
}

// NewTreeHasher creates a new Tiger Tree Hash calculator.
func NewTreeHasher() *TreeHasher {
	return &TreeHasher{}
}

// Size returns the number of bytes written so far.
func (t *TreeHasher) Size() int64 { return t.size }

// Reset clears the state of the hasher.
func (t *TreeHasher) Reset() {
	t.n = 0
	t.size = 0
	t.leaves = 0
	t.stack = t.stack[:0]
}

// Write implements io.Writer. It never returns an error.
func (t *TreeHasher) Write(p []byte) (int, error) {
	total := len(p)
	t.size += int64(total)
	for len(p) > 0 {
		if t.n == LeafSize {
			t.flushLeaf()
		}
		c := copy(t.leaf[1+t.n:], p)
		t.n += c
		p = p[c:]
	}
	return total, nil
}

func (t *TreeHasher) flushLeaf() {
	t.leaf[0] = leafPrefix
	h := Hash(digest.Sum(t.leaf[:1+t.n]))
	t.n = 0
	t.leaves++
	t.stack = append(t.stack, subtree{h: h})
	// merge complete subtrees of the same height
	for len(t.stack) >= 2 {
		l, r := t.stack[len(t.stack)-2], t.stack[len(t.stack)-1]
		if l.lvl != r.lvl {
			break
		}
		t.stack = t.stack[:len(t.stack)-2]
		t.stack = append(t.stack, subtree{h: hashNode(l.h, r.h), lvl: l.lvl + 1})
	}
}

func hashNode(l, r Hash) Hash {
	var buf [1 + 2*Size]byte
	buf[0] = nodePrefix
	copy(buf[1:], l[:])
	copy(buf[1+Size:], r[:])
	return Hash(digest.Sum(buf[:]))
}

// Sum returns the root hash of the data written so far.
// It does not change the state of the hasher.
func (t *TreeHasher) Sum() Hash {
	t0 := *t
	t0.stack = append([]subtree(nil), t.stack...)
	// the last leaf may be partial; empty input still has a single empty leaf
	if t0.n > 0 || t0.leaves == 0 {
		t0.flushLeaf()
	}
	// unpaired subtrees are promoted, so fold right to left
	root := t0.stack[len(t0.stack)-1].h
	for i := len(t0.stack) - 2; i >= 0; i-- {
		root = hashNode(t0.stack[i].h, root)
	}
	return root
}
