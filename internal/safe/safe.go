// Package safe provides values that can be shared between goroutines.
package safe

import "sync/atomic"

// Bool is a flag that can be set and read concurrently.
type Bool struct {
	v uint32
}

func (b *Bool) Get() bool {
	return atomic.LoadUint32(&b.v) != 0
}

func (b *Bool) Set(v bool) {
	if v {
		atomic.StoreUint32(&b.v, 1)
	} else {
		atomic.StoreUint32(&b.v, 0)
	}
}

// Swap sets the flag and reports its previous value.
func (b *Bool) Swap(v bool) bool {
	var n uint32
	if v {
		n = 1
	}
	return atomic.SwapUint32(&b.v, n) != 0
}

// Counter is a monotonic counter.
type Counter struct {
	v uint64
}

func (c *Counter) Add(n uint64) uint64 {
	return atomic.AddUint64(&c.v, n)
}

func (c *Counter) Inc() uint64 {
	return c.Add(1)
}

func (c *Counter) Get() uint64 {
	return atomic.LoadUint64(&c.v)
}
